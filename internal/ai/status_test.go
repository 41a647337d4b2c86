package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func TestStatusWithoutKey(t *testing.T) {
	c := NewChecker("", "http://unused")
	c.now = fixedNow

	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Available)
	assert.Equal(t, fixedNow(), st.Timestamp)
}

func TestStatusKeyOnly(t *testing.T) {
	st, err := NewChecker("key", "").Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Available)
}

func TestStatusProbe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"ok", http.StatusOK, true},
		{"rate limited", http.StatusTooManyRequests, false},
		{"down", http.StatusServiceUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)

			st, err := NewChecker("key", srv.URL).Status(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, st.Available)
		})
	}
}

func TestStatusUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	st, err := NewChecker("key", url).Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Available)
}

func TestStatusBadURL(t *testing.T) {
	st, err := NewChecker("key", "://bad").Status(context.Background())
	assert.Error(t, err)
	assert.False(t, st.Available)
}
