package testmatches

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// matchOutcome carries the per-match results back to the runner.
type matchOutcome struct {
	match  Match
	events int
	layout *LayoutResult
	err    error
}

// submitMatches posts each match to /timeline and /layout concurrently.
func submitMatches(ctx context.Context, config *Config, matches []Match, stats *Stats) ([]matchOutcome, error) {
	log.Printf("📤 Submitting %d matches with %d workers...", len(matches), config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		successful int64
		failed     int64
		submitted  int64
		events     int64
	)

	matchChan := make(chan Match, config.Workers*WorkerChannelMultiplier)
	outcomeChan := make(chan matchOutcome, len(matches))
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for match := range matchChan {
				select {
				case <-ctx.Done():
					return
				default:
					outcome := submitSingleMatch(ctx, client, config, match)

					atomic.AddInt64(&submitted, 1)
					if outcome.err != nil {
						atomic.AddInt64(&failed, 1)
					} else {
						atomic.AddInt64(&successful, 1)
						atomic.AddInt64(&events, int64(outcome.events))
					}
					outcomeChan <- outcome
				}
			}
		}()
	}

	go func() {
		defer close(matchChan)
		for _, match := range matches {
			select {
			case <-ctx.Done():
				return
			case matchChan <- match:
			}
		}
	}()

	wg.Wait()
	close(outcomeChan)

	outcomes := make([]matchOutcome, 0, len(matches))
	for outcome := range outcomeChan {
		outcomes = append(outcomes, outcome)
	}

	stats.MatchesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.MatchesSuccessful = int(atomic.LoadInt64(&successful))
	stats.MatchesFailed = int(atomic.LoadInt64(&failed))
	stats.EventsSynthesized = int(atomic.LoadInt64(&events))

	log.Printf(`✅ Match submission completed:
   Successful: %d
   Failed: %d
   Events synthesized: %d
`, stats.MatchesSuccessful, stats.MatchesFailed, stats.EventsSynthesized)

	return outcomes, nil
}

// submitSingleMatch posts one match payload to /timeline and /layout.
func submitSingleMatch(ctx context.Context, client *HTTPClient, config *Config, match Match) matchOutcome {
	outcome := matchOutcome{match: match}

	resp, err := client.Post(ctx, config.BaseURL+"/timeline", match.Payload)
	if err != nil {
		outcome.err = fmt.Errorf("timeline request failed: %w", err)
		return outcome
	}
	body, err := readResponseBody(resp)
	if err != nil {
		outcome.err = fmt.Errorf("timeline response read failed: %w", err)
		return outcome
	}
	if resp.StatusCode != StatusOK {
		outcome.err = fmt.Errorf("timeline request returned status %d", resp.StatusCode)
		return outcome
	}

	var timeline TimelineResult
	if err := json.Unmarshal(body, &timeline); err != nil {
		outcome.err = fmt.Errorf("timeline response parse failed: %w", err)
		return outcome
	}
	outcome.events = len(timeline.Events)

	layoutURL := config.BaseURL + "/layout?width=" + strconv.FormatFloat(config.Width, 'f', -1, 64)
	resp, err = client.Post(ctx, layoutURL, match.Payload)
	if err != nil {
		outcome.err = fmt.Errorf("layout request failed: %w", err)
		return outcome
	}
	body, err = readResponseBody(resp)
	if err != nil {
		outcome.err = fmt.Errorf("layout response read failed: %w", err)
		return outcome
	}
	if resp.StatusCode != StatusOK {
		outcome.err = fmt.Errorf("layout request returned status %d", resp.StatusCode)
		return outcome
	}

	var layout LayoutResult
	if err := json.Unmarshal(body, &layout); err != nil {
		outcome.err = fmt.Errorf("layout response parse failed: %w", err)
		return outcome
	}
	outcome.layout = &layout

	return outcome
}
