// Package types contains common types used across the application
package types

import "github.com/okian/pitchline/internal/domain/model"

// Anchor is a labeled tick on the minute axis (Start, HT, FT, and the
// maximum observed minute when play ran past 90).
type Anchor struct {
	Minute float64 `json:"minute"`
	X      float64 `json:"x"`
	Label  string  `json:"label"`
}

// LayoutResult is the full output of one layout pass. Positions is
// index-aligned with Clusters.
type LayoutResult struct {
	Clusters   []model.Cluster `json:"clusters"`
	Positions  []float64       `json:"positions"`
	TotalWidth float64         `json:"total_width"`
	Anchors    []Anchor        `json:"anchors"`
}

// Brief is the resolved (or placeholder) text for one cluster.
type Brief struct {
	Text       string `json:"text"`
	Provenance string `json:"provenance"`
	Pending    bool   `json:"pending"`
}

// Brief provenance values. Remote entries may overwrite fallback
// entries in the cache, never the reverse.
const (
	ProvenanceRemote   = "remote"
	ProvenanceFallback = "local-fallback"
)
