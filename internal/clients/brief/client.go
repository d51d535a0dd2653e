// Package brief implements the HTTP client for the remote brief
// enrichment provider.
package brief

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/pkg/logger"
	"github.com/okian/pitchline/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout        = 15 * time.Second
	defaultRequestsPerSec = 5
	defaultBurst          = 10
)

// EventPayload is one cluster member in the batch request.
type EventPayload struct {
	Minute string   `json:"minute"`
	Type   string   `json:"type"`
	Player string   `json:"player,omitempty"`
	Team   string   `json:"team,omitempty"`
	Note   string   `json:"note,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// BatchRequest asks the provider for one brief per event group.
type BatchRequest struct {
	EventID   string         `json:"event_id,omitempty"`
	EventName string         `json:"event_name"`
	Date      string         `json:"date,omitempty"`
	Events    []EventPayload `json:"events"`
}

// Item is the provider response for one event group, positionally
// aligned with the request's events.
type Item struct {
	Brief       string `json:"brief"`
	PlayerImage string `json:"player_image,omitempty"`
	TeamLogo    string `json:"team_logo,omitempty"`
}

type batchResponse struct {
	Items []Item `json:"items"`
}

// Client fetches briefs from the remote provider.
type Client interface {
	// FetchBriefs requests briefs for the clusters described in req.
	// The returned items align positionally with req.Events.
	FetchBriefs(ctx context.Context, req BatchRequest) ([]Item, error)
}

// httpClient implements Client over plain HTTP with rate limiting.
type httpClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	logger   logger.Logger
}

// New creates a brief client for the given endpoint.
func New(endpoint string, opts ...Option) Client {
	c := &httpClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
		limiter:  rate.NewLimiter(rate.Limit(defaultRequestsPerSec), defaultBurst),
		logger:   logger.Get().Named("brief-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBriefs requests briefs for the clusters described in req.
func (c *httpClient) FetchBriefs(ctx context.Context, req BatchRequest) ([]Item, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	metrics.RecordEnrichmentRequest()

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.RecordEnrichmentFailure()
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordEnrichmentFailure()
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordEnrichmentFailure()
		c.logger.Error(ctx, "brief provider error",
			logger.Int("status", resp.StatusCode),
			logger.String("event", req.EventName),
		)
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	var parsed batchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		metrics.RecordEnrichmentFailure()
		return nil, fmt.Errorf("parse response: %w", err)
	}

	metrics.RecordEnrichmentLatency(float64(time.Since(start).Milliseconds()))
	c.logger.Debug(ctx, "briefs fetched",
		logger.String("event", req.EventName),
		logger.Int("items", len(parsed.Items)),
	)
	return parsed.Items, nil
}

func (c *httpClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// PayloadForCluster flattens a cluster into the provider's event shape.
func PayloadForCluster(cluster model.Cluster, match model.MatchContext) []EventPayload {
	payloads := make([]EventPayload, 0, len(cluster.Events))
	for _, event := range cluster.Events {
		var tags []string
		for _, tag := range event.Tags {
			tags = append(tags, tag.Name)
		}
		payloads = append(payloads, EventPayload{
			Minute: event.MinuteText,
			Type:   string(event.Type),
			Player: event.PrimaryActor,
			Team:   match.TeamFor(event.Side),
			Note:   event.Note,
			Tags:   tags,
		})
	}
	return payloads
}
