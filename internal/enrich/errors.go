package enrich

import "errors"

var (
	// ErrQueueFull indicates the enrichment queue rejected a job.
	ErrQueueFull = errors.New("enrichment queue full")
	// ErrNoItems indicates the provider returned an empty batch.
	ErrNoItems = errors.New("provider returned no items")
)
