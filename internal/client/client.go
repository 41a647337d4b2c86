// Package client calls the nutrition API as a signed-in browser would.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nutrition/internal/auth"
	"nutrition/internal/session"
)

type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func New(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

type statusPayload struct {
	Authenticated bool `json:"authenticated"`
	User          *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

// Status implements session.Backend.
func (c *Client) Status(ctx context.Context) (*session.UserInfo, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/auth/status")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var payload statusPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	if !payload.Authenticated || payload.User == nil {
		return nil, nil
	}
	return &session.UserInfo{
		ID:          payload.User.ID,
		Email:       payload.User.Email,
		DisplayName: payload.User.Name,
	}, nil
}

// Logout implements session.Backend.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/logout")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: c.accessToken})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status, body.Error)
	}
	return errors.New(resp.Status)
}
