package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *AuthClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAuthClient(srv.URL, "anon-key").WithHTTPClient(srv.Client())
}

func TestGetUser(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"7d0f","email":"ana@example.com","user_metadata":{"display_name":"Ana"}}`))
	})

	user, err := client.GetUser(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "7d0f", user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "Ana", user.UserMetadata["display_name"])
}

func TestGetUserRejected(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		invalid bool
	}{
		{"unauthorized", http.StatusUnauthorized, true},
		{"forbidden", http.StatusForbidden, true},
		{"server error", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"msg":"nope"}`, tt.status)
			})

			_, err := client.GetUser(context.Background(), "token")
			require.Error(t, err)
			assert.Equal(t, tt.invalid, err == ErrInvalidToken)
		})
	}
}

func TestGetUserEmptyToken(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be called without a token")
	})

	_, err := client.GetUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignOut(t *testing.T) {
	var called bool
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.SignOut(context.Background(), "token"))
	assert.True(t, called)
}

func TestSignOutFailure(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	assert.Error(t, client.SignOut(context.Background(), "token"))
}
