// Package normalize converts raw provider records into canonical
// events. Every extraction path is a heuristic over known field
// aliases; unparseable records yield ok=false, never an error.
package normalize

import (
	"strings"

	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/pkg/metrics"
)

// Known provider aliases for the free-text description.
var noteFields = []string{"note", "text", "detail", "description", "info", "comment"}

// Known provider aliases for the acting players.
var (
	primaryActorFields   = []string{"player", "scorer", "player_name", "player_in", "in"}
	secondaryActorFields = []string{"assist", "assist_name", "player_out", "out"}
)

// Known provider aliases for an explicit image on the record.
var imageFields = []string{"player_image", "image", "photo", "logo"}

// Normalizer converts raw records using pluggable detection strategies.
type Normalizer struct {
	detectSide SideDetector
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithSideDetector replaces the side-detection strategy.
func WithSideDetector(d SideDetector) Option {
	return func(n *Normalizer) {
		if d != nil {
			n.detectSide = d
		}
	}
}

// New constructs a Normalizer with default strategies.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		detectSide: DetectSide,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts one raw record into a canonical event. Records
// without a parseable minute are dropped (ok=false): zero is reserved
// for true kickoff events, so nothing is defaulted.
func (n *Normalizer) Normalize(raw model.RawEventRecord, ctx model.MatchContext) (model.CanonicalEvent, bool) {
	if raw == nil {
		return model.CanonicalEvent{}, false
	}

	minute, minuteText, ok := ExtractMinute(raw)
	if !ok {
		metrics.RecordEventDropped()
		return model.CanonicalEvent{}, false
	}

	note := firstString(raw, noteFields)
	event := model.CanonicalEvent{
		Minute:         minute,
		MinuteText:     minuteText,
		Type:           DetectType(raw, note),
		Side:           n.detectSide(raw, ctx),
		PrimaryActor:   firstString(raw, primaryActorFields),
		SecondaryActor: firstString(raw, secondaryActorFields),
		Note:           note,
		Tags:           ExtractTags(raw, note),
		ImageURL:       firstString(raw, imageFields),
		Raw:            raw,
	}
	metrics.RecordEventNormalized()
	return event, true
}

// DetectType classifies a record. Precedence: explicit card field, then
// explicit type field, then keyword detection over the note text.
func DetectType(raw model.RawEventRecord, note string) model.EventType {
	if card := firstString(raw, []string{"card", "card_type"}); card != "" {
		return cardType(card)
	}
	if explicit := firstString(raw, []string{"type", "event_type", "kind"}); explicit != "" {
		if t, ok := explicitType(explicit); ok {
			return t
		}
	}
	if t := DetectTypeFromText(note); t != model.Other {
		return t
	}
	// Provider-specific scorer records carry no type marker at all.
	if firstString(raw, []string{"scorer", "home_scorer", "away_scorer"}) != "" {
		return model.Goal
	}
	return model.Other
}

func cardType(card string) model.EventType {
	folded := strings.ToLower(card)
	if strings.Contains(folded, "red") || strings.Contains(folded, "second yellow") {
		return model.RedCard
	}
	return model.YellowCard
}

func explicitType(s string) (model.EventType, bool) {
	folded := strings.ToLower(strings.TrimSpace(s))
	folded = strings.ReplaceAll(folded, "_", " ")
	switch {
	case folded == "own goal" || folded == "owngoal":
		return model.OwnGoal, true
	case strings.Contains(folded, "penalty") && containsAny(folded, "miss", "saved", "wasted"):
		return model.PenaltyMiss, true
	case strings.Contains(folded, "penalty"):
		return model.PenaltyScore, true
	case folded == "goal":
		return model.Goal, true
	case strings.Contains(folded, "yellow"):
		return model.YellowCard, true
	case strings.Contains(folded, "red"):
		return model.RedCard, true
	case strings.HasPrefix(folded, "subst") || folded == "sub":
		return model.Substitution, true
	}
	return model.Other, false
}

// DetectTypeFromText is the keyword path shared with commentary
// synthesis. Case-insensitive, ordered from most to least specific.
func DetectTypeFromText(s string) model.EventType {
	folded := strings.ToLower(s)
	switch {
	case folded == "":
		return model.Other
	case strings.Contains(folded, "own goal"):
		return model.OwnGoal
	case strings.Contains(folded, "penalty") && containsAny(folded, "miss", "saved", "wasted", "off target"):
		return model.PenaltyMiss
	case strings.Contains(folded, "penalty"):
		return model.PenaltyScore
	case strings.Contains(folded, "second yellow"):
		return model.RedCard
	case strings.Contains(folded, "red card") || strings.Contains(folded, "sent off"):
		return model.RedCard
	case strings.Contains(folded, "yellow card") || containsAny(folded, "booked", "booking", "caution"):
		return model.YellowCard
	case strings.Contains(folded, "substitut") || strings.Contains(folded, "replaces"):
		return model.Substitution
	case containsAny(folded, "goal", "scores", "scored"):
		return model.Goal
	}
	return model.Other
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// firstString returns the first non-empty string value among the given
// field aliases.
func firstString(raw model.RawEventRecord, fields []string) string {
	for _, field := range fields {
		if v, present := raw[field]; present {
			if s, ok := v.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}
