// Package inflight defines the interface for coalescing concurrent
// enrichment requests for the same cluster key.
package inflight

import (
	"context"
	"sync"
	"sync/atomic"
)

// Tracker records keys whose enrichment is already underway so that
// repeated requests for the same cluster trigger at most one fetch.
type Tracker interface {
	// SeenAndRecord atomically checks if key is in flight and records
	// it if not. Returns true if key was already in flight, false if it
	// was newly recorded. This is the ONLY method for coalescing -
	// thread-safe and atomic.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key from the in-flight set once its fetch has
	// completed or failed, allowing the next request to retry it.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// inMemoryTracker implements Tracker with a mutex-guarded set. Entries
// are short-lived because every enqueued job unrecords its key on
// completion, so no eviction policy is needed.
type inMemoryTracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
	size atomic.Int64
}

// NewInMemoryTracker creates a new in-memory tracker.
func NewInMemoryTracker() Tracker {
	return &inMemoryTracker{
		seen: make(map[string]struct{}),
	}
}

// SeenAndRecord atomically checks if key is in flight and records it if not.
// Returns true if key was already in flight, false if it was newly recorded.
func (t *inMemoryTracker) SeenAndRecord(ctx context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.seen[key]; exists {
		return true
	}
	t.seen[key] = struct{}{}
	t.size.Add(1)
	return false
}

// Unrecord removes a key from the in-flight set.
func (t *inMemoryTracker) Unrecord(ctx context.Context, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.seen[key]; exists {
		delete(t.seen, key)
		t.size.Add(-1)
	}
}

// Size returns the current number of in-flight keys.
func (t *inMemoryTracker) Size() int64 {
	return t.size.Load()
}
