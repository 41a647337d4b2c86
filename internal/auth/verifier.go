package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"nutrition/internal/cache"
	"nutrition/internal/supabase"
)

var (
	// ErrUnauthenticated means the token is absent, malformed, expired or revoked.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotConfigured means no auth backend is wired.
	ErrNotConfigured = errors.New("auth backend not configured")
)

// Backend is the hosted identity service.
type Backend interface {
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Verifier turns access tokens into users. Every failure is fail-closed.
type Verifier struct {
	backend Backend
	parser  *TokenParser
	cache   cache.Cache
	ttl     time.Duration
}

type VerifierOption func(*Verifier)

// WithTokenParser enables the local signature/expiry pre-check.
func WithTokenParser(p *TokenParser) VerifierOption {
	return func(v *Verifier) { v.parser = p }
}

// WithCache keeps successful verifications for ttl.
func WithCache(c cache.Cache, ttl time.Duration) VerifierOption {
	return func(v *Verifier) {
		v.cache = c
		v.ttl = ttl
	}
}

// NewVerifier returns nil when backend is nil so callers can detect a
// missing configuration with Configured.
func NewVerifier(backend Backend, opts ...VerifierOption) *Verifier {
	if backend == nil {
		return nil
	}
	v := &Verifier{backend: backend}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Verifier) Configured() bool {
	return v != nil && v.backend != nil
}

// Verify resolves token to a user. Invalid tokens yield ErrUnauthenticated;
// transport or upstream failures are wrapped and returned as-is.
func (v *Verifier) Verify(ctx context.Context, token string) (*User, error) {
	if !v.Configured() {
		return nil, ErrNotConfigured
	}
	if token == "" {
		return nil, ErrUnauthenticated
	}

	if v.parser != nil {
		if _, err := v.parser.Parse(token); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}
	}

	logger := zerolog.Ctx(ctx)
	if v.cache != nil {
		entry, ok, err := v.cache.Get(ctx, token)
		if err != nil {
			logger.Warn().Err(err).Msg("verification cache read failed")
		} else if ok {
			return &User{ID: entry.UserID, Email: entry.Email, DisplayName: entry.DisplayName}, nil
		}
	}

	remote, err := v.backend.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, supabase.ErrInvalidToken) {
			return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}

	user := &User{
		ID:          remote.ID,
		Email:       remote.Email,
		DisplayName: displayNameFromMetadata(remote.UserMetadata),
	}

	if v.cache != nil && v.ttl > 0 {
		entry := cache.Entry{UserID: user.ID, Email: user.Email, DisplayName: user.DisplayName}
		if err := v.cache.Set(ctx, token, entry, v.ttl); err != nil {
			logger.Warn().Err(err).Msg("verification cache write failed")
		}
	}

	return user, nil
}

// KnownUserID returns the user behind token without asking the backend.
// With a token parser the signature decides; otherwise only a cached
// verification counts.
func (v *Verifier) KnownUserID(ctx context.Context, token string) (string, bool) {
	if !v.Configured() || token == "" {
		return "", false
	}
	if v.parser != nil {
		claims, err := v.parser.Parse(token)
		if err != nil {
			return "", false
		}
		return claims.Subject, true
	}
	if v.cache == nil {
		return "", false
	}
	entry, ok, err := v.cache.Get(ctx, token)
	if err != nil || !ok {
		return "", false
	}
	return entry.UserID, true
}

// SignOut revokes the session upstream and drops any cached verification.
// The cache is always cleared, even when the upstream call fails.
func (v *Verifier) SignOut(ctx context.Context, token string) error {
	if !v.Configured() {
		return ErrNotConfigured
	}
	if v.cache != nil {
		if err := v.cache.Delete(ctx, token); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("verification cache delete failed")
		}
	}
	return v.backend.SignOut(ctx, token)
}
