// Package pagerduty provides the two ports.Directory implementations: a
// live PagerDuty REST client and an in-memory fixture for offline use.
package pagerduty

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/opskit/slipway/pkg/domain"
)

// DefaultBaseURL is the public PagerDuty API endpoint.
const DefaultBaseURL = "https://api.pagerduty.com"

// resultLimit caps the number of services fetched per lookup.
const resultLimit = 100

// Client is the live directory backed by the PagerDuty services API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint (used by tests and proxies).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a live directory client. The token is the PagerDuty REST
// API credential, supplied out of band via configuration.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listResponse struct {
	Services []domain.Service `json:"services"`
}

// FetchServices implements ports.Directory against the live API. Every call
// re-fetches; nothing is cached.
func (c *Client) FetchServices(ctx context.Context, query string) ([]domain.Service, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", resultLimit))
	if query != "" {
		params.Set("query", query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/services?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build services request: %w", err)
	}
	req.Header.Set("Authorization", "Token token="+c.token)
	req.Header.Set("Accept", "application/vnd.pagerduty+json;version=2")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services from PagerDuty: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("PagerDuty API error: %d", resp.StatusCode)
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode services response: %w", err)
	}
	return out.Services, nil
}
