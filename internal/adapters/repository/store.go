// Package repository defines the enrichment cache store interface and errors.
package repository

import (
	"context"
	"time"
)

// BriefRecord is a persisted cluster brief.
type BriefRecord struct {
	SessionKey string
	CacheKey   string
	Text       string
	Provenance string
	UpdatedAt  time.Time
}

// ImageRecord is a persisted actor or team image resolution.
type ImageRecord struct {
	SessionKey string
	CacheKey   string
	URL        string
	UpdatedAt  time.Time
}

// Store provides the persisted tier of the brief and image caches.
// Records are scoped per session so concurrent matches never collide.
type Store interface {
	// SaveBrief upserts a brief. A stored remote brief is never replaced
	// by a fallback one; the reverse replacement is always allowed.
	SaveBrief(ctx context.Context, rec BriefRecord) error

	// GetBrief returns the brief for a session and cache key.
	// Returns ErrNotFound if no brief is stored.
	GetBrief(ctx context.Context, sessionKey, cacheKey string) (BriefRecord, error)

	// BriefsForSession returns every stored brief for a session.
	BriefsForSession(ctx context.Context, sessionKey string) ([]BriefRecord, error)

	// SaveImage upserts an image resolution.
	SaveImage(ctx context.Context, rec ImageRecord) error

	// GetImage returns the image for a session and cache key.
	// Returns ErrNotFound if no image is stored.
	GetImage(ctx context.Context, sessionKey, cacheKey string) (ImageRecord, error)

	// BriefCount returns the number of stored briefs across all sessions.
	BriefCount(ctx context.Context) (int, error)

	// Close releases the underlying resources.
	Close() error
}
