package testmatches

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// retrieveBriefs posts each match to /briefs, counting resolved and
// still-pending briefs. The runner waits between submission and this
// pass so the async pipeline has time to settle.
func retrieveBriefs(ctx context.Context, config *Config, matches []Match, stats *Stats) error {
	log.Printf("📝 Retrieving briefs for %d matches with %d workers...", len(matches), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/briefs"

	var (
		resolved int64
		pending  int64
		failed   int64
	)

	matchChan := make(chan Match, config.Workers*WorkerChannelMultiplier)
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
					res, pend, err := retrieveMatchBriefs(ctx, client, url, match)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						continue
					}
					atomic.AddInt64(&resolved, int64(res))
					atomic.AddInt64(&pending, int64(pend))
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

	stats.BriefsResolved = int(atomic.LoadInt64(&resolved))
	stats.BriefsPending = int(atomic.LoadInt64(&pending))

	log.Printf(`✅ Brief retrieval completed:
   Resolved: %d
   Pending: %d
   Failed matches: %d
`, stats.BriefsResolved, stats.BriefsPending, atomic.LoadInt64(&failed))

	return nil
}

// retrieveMatchBriefs fetches the briefs for one match and counts
// resolved versus pending entries.
func retrieveMatchBriefs(ctx context.Context, client *HTTPClient, url string, match Match) (resolved, pending int, err error) {
	resp, err := client.Post(ctx, url, match.Payload)
	if err != nil {
		return 0, 0, fmt.Errorf("briefs request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return 0, 0, fmt.Errorf("briefs response read failed: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return 0, 0, fmt.Errorf("briefs request returned status %d", resp.StatusCode)
	}

	var result BriefsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, 0, fmt.Errorf("briefs response parse failed: %w", err)
	}

	for _, entry := range result.Briefs {
		if entry.Brief.Pending {
			pending++
		} else {
			resolved++
		}
	}
	return resolved, pending, nil
}
