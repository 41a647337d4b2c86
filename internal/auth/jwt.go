package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of a Supabase access token we read locally.
type Claims struct {
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

// TokenParser checks signature and expiry of Supabase HS256 access tokens
// before the auth API is asked about them.
type TokenParser struct {
	secret []byte
}

func NewTokenParser(secret string) *TokenParser {
	if secret == "" {
		return nil
	}
	return &TokenParser{secret: []byte(secret)}
}

// Parse validates the token and returns the embedded claims.
func (p *TokenParser) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing subject")
	}

	return claims, nil
}
