package auth

import (
	"context"
	"strings"
)

// contextKey prevents collisions with other context values.
type contextKey string

const userKey contextKey = "nutrition:user"

// User is the verified identity attached to a request.
type User struct {
	ID          string
	Email       string
	DisplayName string
}

// Name returns the display name, falling back to the local part of the email.
func (u User) Name() string {
	if name := strings.TrimSpace(u.DisplayName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// WithUser stores the user on the request context.
func WithUser(ctx context.Context, u *User) context.Context {
	if u == nil {
		return ctx
	}
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext retrieves the authenticated user from context, when available.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey).(*User)
	return u, ok
}

// displayNameFromMetadata picks the first non-empty name key Supabase
// profiles commonly carry.
func displayNameFromMetadata(meta map[string]any) string {
	for _, key := range []string{"display_name", "full_name", "name"} {
		if v, ok := meta[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
