// Package deploy is a thin HTTP client used by the deploy command to
// verify that a target instance is up before declaring a deployment
// done.
package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Check probes the target's health endpoint and fails unless it
// reports healthy.
func (c *Client) Check(ctx context.Context) error {
	url := c.baseURL + "/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.log.Debug("checking target health", zap.String("url", url))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach target: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("target returned status %d", resp.StatusCode)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to decode health response: %w", err)
	}

	if health.Status != "healthy" {
		return fmt.Errorf("target reports status %q", health.Status)
	}

	return nil
}
