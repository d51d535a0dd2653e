// Package timeline synthesizes a canonical event list from a full
// match payload, combining the provider's explicit timeline with events
// derived from structured arrays and free-text commentary.
package timeline

import (
	"sort"
	"strings"

	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/internal/domain/normalize"
	"github.com/okian/pitchline/pkg/metrics"
)

// dedupNotePrefix bounds the note part of the merge key.
const dedupNotePrefix = 80

// Synthesizer builds canonical timelines.
type Synthesizer struct {
	normalizer *normalize.Normalizer
}

// Option applies a configuration option to the Synthesizer.
type Option func(*Synthesizer)

// WithNormalizer replaces the event normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(s *Synthesizer) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// New constructs a Synthesizer with default configuration.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		normalizer: normalize.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build produces the canonical event list for a match payload. Sources
// are merged in authority order (provider, structured, synthesized),
// deduplicated on (minute, note prefix), and sorted stably by effective
// minute. A per-source extraction failure degrades that source to an
// empty list; Build never fails.
func (s *Synthesizer) Build(payload model.MatchPayload) []model.CanonicalEvent {
	ctx := Context(payload)

	provider := s.normalizeAll(providerRecords(payload), ctx)
	structured := s.normalizeAll(structuredRecords(payload), ctx)
	synthesized := s.normalizeAll(commentRecords(payload), ctx)

	merged := mergeSources(provider, structured, synthesized)

	if len(merged) == 0 {
		merged = append(merged, fallbackEvent(ctx))
		metrics.RecordSynthesisFallback()
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Minute < merged[j].Minute
	})

	metrics.RecordTimelineBuilt(len(merged))
	return merged
}

func (s *Synthesizer) normalizeAll(records []model.RawEventRecord, ctx model.MatchContext) []model.CanonicalEvent {
	var events []model.CanonicalEvent
	for _, raw := range records {
		if event, ok := s.normalizer.Normalize(raw, ctx); ok {
			events = append(events, event)
		}
	}
	return events
}

// mergeSources concatenates the source lists in authority order and
// drops later events that collide on the dedup key, so provider data is
// never overwritten by heuristics.
func mergeSources(sources ...[]model.CanonicalEvent) []model.CanonicalEvent {
	seen := make(map[string]struct{})
	var merged []model.CanonicalEvent
	for _, source := range sources {
		for _, event := range source {
			key := dedupKey(event)
			if _, dup := seen[key]; dup {
				metrics.RecordEventDeduplicated()
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, event)
		}
	}
	return merged
}

func dedupKey(event model.CanonicalEvent) string {
	note := strings.ToLower(event.Note)
	if runes := []rune(note); len(runes) > dedupNotePrefix {
		note = string(runes[:dedupNotePrefix])
	}
	return event.MinuteText + "|" + note
}

// fallbackEvent carries the final score and team names so downstream
// layers always receive at least one data point. It is the only event
// allowed an empty minute text.
func fallbackEvent(ctx model.MatchContext) model.CanonicalEvent {
	note := ctx.EventName()
	if ctx.FinalScore != "" {
		note = ctx.HomeTeam + " " + ctx.FinalScore + " " + ctx.AwayTeam
	}
	return model.CanonicalEvent{
		Minute:     0,
		MinuteText: "",
		Type:       model.Other,
		Side:       model.Home,
		Note:       note,
	}
}
