package session

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoProvider is returned by FromContext when no Store was installed.
var ErrNoProvider = errors.New("session: no store in context")

type contextKey struct{}

// NewContext installs store for every consumer reached through ctx.
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext returns the installed Store or ErrNoProvider.
func FromContext(ctx context.Context) (*Store, error) {
	store, ok := ctx.Value(contextKey{}).(*Store)
	if !ok || store == nil {
		return nil, ErrNoProvider
	}
	return store, nil
}

type remotePanicError struct {
	value any
}

func (e *remotePanicError) Error() string {
	return fmt.Sprintf("session: remote logout panicked: %v", e.value)
}
