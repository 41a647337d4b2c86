package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const probeTimeout = 5 * time.Second

// Status is the availability report served to the frontend.
type Status struct {
	Available bool      `json:"available"`
	Timestamp time.Time `json:"timestamp"`
}

// Checker reports whether the AI meal-suggestion provider can be used.
type Checker struct {
	apiKey   string
	probeURL string
	client   *http.Client
	now      func() time.Time
}

func NewChecker(apiKey, probeURL string) *Checker {
	return &Checker{
		apiKey:   apiKey,
		probeURL: probeURL,
		client:   &http.Client{Timeout: probeTimeout},
		now:      time.Now,
	}
}

// Status returns an error only when the probe could not be attempted at all;
// an unreachable provider is reported as unavailable.
func (c *Checker) Status(ctx context.Context) (Status, error) {
	st := Status{Timestamp: c.now().UTC()}
	if c.apiKey == "" {
		return st, nil
	}
	if c.probeURL == "" {
		st.Available = true
		return st, nil
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.probeURL, nil)
	if err != nil {
		return st, fmt.Errorf("build probe request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.client.Do(req)
	if err != nil {
		return st, nil
	}
	defer resp.Body.Close()

	st.Available = resp.StatusCode >= 200 && resp.StatusCode < 300
	return st, nil
}
