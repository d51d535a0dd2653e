// Package model contains domain models passed between layers.
package model

// RawEventRecord is one provider-specific record as decoded from JSON.
// Providers disagree on field names and value types, so it stays an
// opaque mapping until the normalizer extracts what it can.
type RawEventRecord map[string]any

// EventType classifies a canonical event.
type EventType string

// Canonical event types.
const (
	Goal         EventType = "goal"
	OwnGoal      EventType = "own_goal"
	PenaltyScore EventType = "penalty_score"
	PenaltyMiss  EventType = "penalty_miss"
	YellowCard   EventType = "yellow_card"
	RedCard      EventType = "red_card"
	Substitution EventType = "substitution"
	Other        EventType = "other"
)

// Side identifies which team an event belongs to.
type Side string

// Sides of a match.
const (
	Home Side = "home"
	Away Side = "away"
)

// TagSource records where a tag came from, used for overwrite precedence.
type TagSource string

// Tag provenance values. Provider tags win over heuristic ones.
const (
	TagProvider  TagSource = "provider"
	TagHeuristic TagSource = "heuristic"
	TagModel     TagSource = "model"
)

// Tag is a label attached to an event with its provenance and an
// optional confidence (zero means unspecified).
type Tag struct {
	Name       string    `json:"name"`
	Source     TagSource `json:"source"`
	Confidence float64   `json:"confidence,omitempty"`
}

// CanonicalEvent is the provider-agnostic representation of one match
// incident. Minute encodes stoppage time as base + extension/100 so
// "45+2" sorts between 45 and 46; MinuteText keeps the display form.
type CanonicalEvent struct {
	Minute         float64        `json:"minute"`
	MinuteText     string         `json:"minute_text"`
	Type           EventType      `json:"type"`
	Side           Side           `json:"side"`
	PrimaryActor   string         `json:"primary_actor,omitempty"`
	SecondaryActor string         `json:"secondary_actor,omitempty"`
	Note           string         `json:"note,omitempty"`
	Tags           []Tag          `json:"tags,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	Raw            RawEventRecord `json:"-"` // diagnostics only, never business logic
}

// StoppageBase returns the whole-minute part of the event minute.
func (e CanonicalEvent) StoppageBase() int {
	return int(e.Minute)
}

// IsStoppage reports whether the event sits in stoppage time.
func (e CanonicalEvent) IsStoppage() bool {
	return e.Minute != float64(int(e.Minute))
}

// Cluster groups canonical events sharing a minute bucket. Events keep
// their input order.
type Cluster struct {
	MinuteKey string           `json:"minute_key"`
	Minute    float64          `json:"minute"`
	Events    []CanonicalEvent `json:"events"`
}

// TypeSignature joins the cluster's event types in order, used as part
// of the brief cache key.
func (c Cluster) TypeSignature() string {
	sig := ""
	for i, e := range c.Events {
		if i > 0 {
			sig += "+"
		}
		sig += string(e.Type)
	}
	return sig
}

// Key returns the composite enrichment key for the cluster.
func (c Cluster) Key() string {
	return c.MinuteKey + "|" + c.TypeSignature()
}
