package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/status", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("sb-access-token"); err == nil && c.Value == "tok" {
			_, _ = w.Write([]byte(`{"authenticated":true,"user":{"id":"u1","email":"ana@example.com","name":"Ana"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"authenticated":false,"user":null}`))
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Logged out successfully"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"nutrictl"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestWhoamiSignedIn(t *testing.T) {
	api := newAPI(t)
	stdout, stderr, err := run(t, "--api", api.URL, "--token", "tok", "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"email": "ana@example.com"`)
	assert.Empty(t, stderr)
}

func TestWhoamiSignedOutRedirectsOnce(t *testing.T) {
	api := newAPI(t)
	stdout, stderr, err := run(t, "--api", api.URL, "--login-url", "https://app.example/login", "whoami")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, "not signed in; sign in at https://app.example/login\n", stderr)
}

func TestLogout(t *testing.T) {
	api := newAPI(t)
	stdout, _, err := run(t, "--api", api.URL, "--token", "tok", "logout")
	require.NoError(t, err)
	assert.Equal(t, "signed out\n", stdout)
}
