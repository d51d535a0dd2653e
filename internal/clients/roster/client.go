// Package roster implements the HTTP client for team roster lookups,
// used to resolve actor names to player photos.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/pitchline/pkg/logger"
	"github.com/okian/pitchline/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Player is one roster row.
type Player struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Number string `json:"number,omitempty"`
	Photo  string `json:"photo,omitempty"`
}

// Client fetches team rosters.
type Client interface {
	// FetchRoster returns the roster for a team name.
	FetchRoster(ctx context.Context, team string) ([]Player, error)
}

type httpClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   logger.Logger
}

// Option applies a configuration option to the client.
type Option func(*httpClient)

// WithAPIKey sets the bearer token sent to the provider.
func WithAPIKey(key string) Option {
	return func(c *httpClient) {
		c.apiKey = key
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *httpClient) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *httpClient) {
		if client != nil {
			c.client = client
		}
	}
}

// New creates a roster client for the given endpoint.
func New(endpoint string, opts ...Option) Client {
	c := &httpClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   logger.Get().Named("roster-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rosterResponse struct {
	Players []Player `json:"players"`
}

// FetchRoster returns the roster for a team name.
func (c *httpClient) FetchRoster(ctx context.Context, team string) ([]Player, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}

	metrics.RecordRosterLookup()

	reqURL := c.endpoint + "?team=" + url.QueryEscape(team)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error(ctx, "roster provider error",
			logger.Int("status", resp.StatusCode),
			logger.String("team", team),
		)
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	var parsed rosterResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug(ctx, "roster fetched",
		logger.String("team", team),
		logger.Int("players", len(parsed.Players)),
	)
	return parsed.Players, nil
}
