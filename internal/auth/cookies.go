package auth

import (
	"net/http"
	"time"
)

const (
	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"
)

// AuthCookieNames lists every cookie the Supabase helpers may write,
// including the .0/.1 halves used when a token is split across cookies.
var AuthCookieNames = [...]string{
	AccessTokenCookie,
	AccessTokenCookie + ".0",
	AccessTokenCookie + ".1",
	RefreshTokenCookie,
	RefreshTokenCookie + ".0",
	RefreshTokenCookie + ".1",
}

// AccessToken returns the access token carried by r, or "" when absent.
func AccessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	var joined string
	for _, suffix := range []string{".0", ".1"} {
		c, err := r.Cookie(AccessTokenCookie + suffix)
		if err != nil {
			break
		}
		joined += c.Value
	}
	return joined
}

// ClearAuthCookies expires every auth cookie in one pass.
func ClearAuthCookies(w http.ResponseWriter, secure bool) {
	for _, name := range AuthCookieNames {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
		})
	}
}
