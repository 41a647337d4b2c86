// Package cache keeps short-lived token verification results so repeated
// requests with the same access token skip the auth API round-trip.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Entry is a verified identity bound to one access token.
type Entry struct {
	UserID      string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
}

type Cache interface {
	Get(ctx context.Context, token string) (*Entry, bool, error)
	Set(ctx context.Context, token string, entry Entry, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
	Close() error
}

// HashToken derives the cache key; raw tokens are never stored as keys.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
