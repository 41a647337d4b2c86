package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"nutrition/internal/auth"
)

type statusUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type statusResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *statusUser `json:"user"`
}

// handleAuthStatus never reports verification failures as errors: a bad or
// expired token, or a failing backend, is simply "not authenticated".
func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	defer s.recoverJSON(w, r, "Failed to check authentication status")

	token := auth.AccessToken(r)
	if token == "" {
		s.deps.Metrics.ObserveAuthCheck("anonymous")
		s.writeJSON(w, http.StatusOK, statusResponse{})
		return
	}

	if !s.deps.Verifier.Configured() {
		s.writeError(w, http.StatusServiceUnavailable, "Authentication service not configured")
		return
	}

	user, err := s.deps.Verifier.Verify(r.Context(), token)
	if err != nil {
		s.logVerifyFailure(r, err)
		s.writeJSON(w, http.StatusOK, statusResponse{})
		return
	}

	s.deps.Metrics.ObserveAuthCheck("authenticated")
	s.writeJSON(w, http.StatusOK, statusResponse{
		Authenticated: true,
		User:          &statusUser{ID: user.ID, Email: user.Email, Name: user.Name()},
	})
}

// handleLogout runs in two phases. The remote sign-out result is only
// logged; the cookie clearing that follows always runs.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	err := s.invalidateRemoteSession(r, auth.AccessToken(r))

	auth.ClearAuthCookies(w, s.secureCookie)

	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("logout failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// invalidateRemoteSession returns an error only for unexpected internal
// failures; upstream sign-out errors are logged and swallowed.
func (s *Server) invalidateRemoteSession(r *http.Request, token string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("remote sign-out panicked: %v", rec)
		}
	}()

	if token == "" || !s.deps.Verifier.Configured() {
		s.deps.Metrics.ObserveLogout("skipped")
		return nil
	}

	if signOutErr := s.deps.Verifier.SignOut(r.Context(), token); signOutErr != nil {
		hlog.FromRequest(r).Warn().Err(signOutErr).Msg("backend sign-out failed; clearing cookies anyway")
		s.deps.Metrics.ObserveLogout("failed")
		return nil
	}

	s.deps.Metrics.ObserveLogout("ok")
	return nil
}

// requireUser admits requests with a verified access token. Cookie first,
// then an Authorization bearer header.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.AccessToken(r)
		if token == "" {
			token = bearerToken(r)
		}
		if token == "" {
			s.deps.Metrics.ObserveAuthCheck("anonymous")
			s.writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if !s.deps.Verifier.Configured() {
			s.writeError(w, http.StatusServiceUnavailable, "Authentication service not configured")
			return
		}

		user, err := s.deps.Verifier.Verify(r.Context(), token)
		if err != nil {
			s.logVerifyFailure(r, err)
			s.writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		s.deps.Metrics.ObserveAuthCheck("authenticated")
		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
	})
}

func (s *Server) logVerifyFailure(r *http.Request, err error) {
	if errors.Is(err, auth.ErrUnauthenticated) {
		s.deps.Metrics.ObserveAuthCheck("rejected")
		hlog.FromRequest(r).Debug().Err(err).Msg("access token rejected")
		return
	}
	s.deps.Metrics.ObserveAuthCheck("error")
	hlog.FromRequest(r).Error().Err(err).Msg("token verification failed")
}

func (s *Server) recoverJSON(w http.ResponseWriter, r *http.Request, msg string) {
	if rec := recover(); rec != nil {
		hlog.FromRequest(r).Error().Interface("panic", rec).Msg("handler panicked")
		s.writeError(w, http.StatusInternalServerError, msg)
	}
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}
