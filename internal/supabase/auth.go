package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// ErrInvalidToken is returned when the auth API rejects an access token.
var ErrInvalidToken = errors.New("invalid or expired access token")

// AuthClient talks to the Supabase GoTrue REST API.
type AuthClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// User is the subset of the GoTrue user object we rely on.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func NewAuthClient(baseURL, apiKey string) *AuthClient {
	return &AuthClient{
		baseURL:    fmt.Sprintf("%s/auth/v1", baseURL),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *AuthClient) WithHTTPClient(hc *http.Client) *AuthClient {
	c.httpClient = hc
	return c
}

// GetUser resolves the user that owns accessToken.
func (c *AuthClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, ErrInvalidToken
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/user", accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidToken
	}
	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("supabase get user failed: %s: %s", resp.Status, string(data))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &user, nil
}

// SignOut revokes the refresh tokens bound to accessToken.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", accessToken)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("supabase sign out failed: %s: %s", resp.Status, string(data))
	}
	return nil
}

func (c *AuthClient) newRequest(ctx context.Context, method, path, accessToken string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("Accept", "application/json")
	return req, nil
}
