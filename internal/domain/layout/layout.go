// Package layout groups canonical events into minute clusters and
// computes non-linear horizontal positions along a single minute axis.
package layout

import (
	"strconv"
	"strings"
	"time"

	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/internal/domain/types"
	"github.com/okian/pitchline/pkg/metrics"
)

// Default layout configuration constants (pixels).
const (
	defaultLeftPad         = 24.0
	defaultRightPad        = 24.0
	defaultPixelsPerMinute = 8.0
	defaultMinGap          = 18.0
	defaultMaxGap          = 90.0
	defaultBoundaryPad     = 28.0
)

// Minute-axis boundaries that get extra breathing room.
const (
	halftimeMinute = 45.0
	fulltimeMinute = 90.0
)

// Engine computes cluster layouts. It is a pure function of its inputs:
// identical events and width always yield identical positions.
type Engine struct {
	leftPad         float64
	rightPad        float64
	pixelsPerMinute float64
	minGap          float64
	maxGap          float64
	boundaryPad     float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithPadding sets the left and right axis padding.
func WithPadding(left, right float64) Option {
	return func(e *Engine) {
		if left > 0 {
			e.leftPad = left
		}
		if right > 0 {
			e.rightPad = right
		}
	}
}

// WithPixelsPerMinute sets the nominal minute-to-pixel scale.
func WithPixelsPerMinute(ppm float64) Option {
	return func(e *Engine) {
		if ppm > 0 {
			e.pixelsPerMinute = ppm
		}
	}
}

// WithGapBounds sets the clamp applied to inter-cluster gaps.
func WithGapBounds(minGap, maxGap float64) Option {
	return func(e *Engine) {
		if minGap > 0 && maxGap > minGap {
			e.minGap = minGap
			e.maxGap = maxGap
		}
	}
}

// WithBoundaryPadding sets the extra padding injected around the
// halftime and fulltime boundaries.
func WithBoundaryPadding(pad float64) Option {
	return func(e *Engine) {
		if pad > 0 {
			e.boundaryPad = pad
		}
	}
}

// New constructs an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		leftPad:         defaultLeftPad,
		rightPad:        defaultRightPad,
		pixelsPerMinute: defaultPixelsPerMinute,
		minGap:          defaultMinGap,
		maxGap:          defaultMaxGap,
		boundaryPad:     defaultBoundaryPad,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ClusterEvents buckets events by minute. First-half stoppage collapses
// into a single "45+" bucket; stoppage at or past minute 90 keeps each
// base+extension distinct because late stoppage commonly spans several
// separate incidents.
func ClusterEvents(events []model.CanonicalEvent) []model.Cluster {
	var clusters []model.Cluster
	index := make(map[string]int)
	for _, event := range events {
		key := bucketKey(event)
		if i, exists := index[key]; exists {
			clusters[i].Events = append(clusters[i].Events, event)
			continue
		}
		index[key] = len(clusters)
		clusters = append(clusters, model.Cluster{
			MinuteKey: key,
			Minute:    event.Minute,
			Events:    []model.CanonicalEvent{event},
		})
	}
	return clusters
}

func bucketKey(event model.CanonicalEvent) string {
	text := event.MinuteText
	if text == "" {
		// Only the score-summary fallback event has no minute text.
		return "0"
	}
	if strings.Contains(text, "+") && event.StoppageBase() == int(halftimeMinute) {
		return "45+"
	}
	return text
}

// Layout clusters the events and assigns horizontal positions.
func (e *Engine) Layout(events []model.CanonicalEvent, containerWidth float64) types.LayoutResult {
	start := time.Now()

	clusters := ClusterEvents(events)
	positions := e.positions(clusters)

	totalWidth := e.leftPad + e.rightPad
	if len(positions) > 0 {
		totalWidth = positions[len(positions)-1] + e.rightPad
	}

	// Uniformly stretch all gaps when the natural width underfills the
	// container, so the timeline does not look sparse only at the end.
	if containerWidth > totalWidth {
		positions = e.stretch(positions, containerWidth)
		totalWidth = containerWidth
	}

	result := types.LayoutResult{
		Clusters:   clusters,
		Positions:  positions,
		TotalWidth: totalWidth,
		Anchors:    e.anchors(clusters, positions, totalWidth),
	}

	metrics.RecordLayoutComputation(float64(time.Since(start).Microseconds())/1000.0, len(clusters))
	return result
}

// positions walks the clusters left to right: a fixed left pad, then a
// clamped per-minute gap, plus boundary padding when the gap straddles
// halftime or fulltime.
func (e *Engine) positions(clusters []model.Cluster) []float64 {
	positions := make([]float64, len(clusters))
	x := e.leftPad
	for i, cluster := range clusters {
		if i > 0 {
			gap := clamp((cluster.Minute-clusters[i-1].Minute)*e.pixelsPerMinute, e.minGap, e.maxGap)
			if straddles(clusters[i-1].Minute, cluster.Minute, halftimeMinute) {
				gap += e.boundaryPad
			}
			if straddles(clusters[i-1].Minute, cluster.Minute, fulltimeMinute) {
				gap += e.boundaryPad
			}
			x += gap
		}
		positions[i] = x
	}
	return positions
}

func (e *Engine) stretch(positions []float64, containerWidth float64) []float64 {
	if len(positions) < 2 {
		return positions
	}
	span := positions[len(positions)-1] - positions[0]
	if span <= 0 {
		return positions
	}
	scale := (containerWidth - e.leftPad - e.rightPad) / span
	stretched := make([]float64, len(positions))
	for i, p := range positions {
		stretched[i] = e.leftPad + (p-e.leftPad)*scale
	}
	return stretched
}

// anchors places the Start/HT/FT ticks plus, when play ran past 90, one
// more at the maximum observed minute. X positions are interpolated
// piecewise-linearly between the enclosing clusters and pinned to the
// outer edges outside the cluster range.
func (e *Engine) anchors(clusters []model.Cluster, positions []float64, totalWidth float64) []types.Anchor {
	anchors := []types.Anchor{
		{Minute: 0, Label: "Start"},
		{Minute: halftimeMinute, Label: "HT"},
		{Minute: fulltimeMinute, Label: "FT"},
	}

	maxMinute := 0.0
	maxText := ""
	for _, cluster := range clusters {
		for _, event := range cluster.Events {
			if event.Minute > maxMinute {
				maxMinute = event.Minute
				maxText = event.MinuteText
			}
		}
	}
	if maxMinute > fulltimeMinute {
		anchors = append(anchors, types.Anchor{Minute: maxMinute, Label: maxText + "'"})
	}

	for i := range anchors {
		anchors[i].X = e.interpolate(anchors[i].Minute, clusters, positions, totalWidth)
	}
	return anchors
}

func (e *Engine) interpolate(minute float64, clusters []model.Cluster, positions []float64, totalWidth float64) float64 {
	// Anchors outside the cluster range sit on the outer edges, inside
	// the pads, so the first and last clusters never cover them.
	leftBound := 0.0
	rightBound := totalWidth
	if len(clusters) == 0 {
		return leftBound
	}
	if minute <= clusters[0].Minute {
		return leftBound
	}
	last := len(clusters) - 1
	if minute >= clusters[last].Minute {
		// Never extrapolated past the padding bounds.
		if minute > clusters[last].Minute {
			return rightBound
		}
		return clamp(positions[last], leftBound, rightBound)
	}
	for i := 1; i <= last; i++ {
		if minute <= clusters[i].Minute {
			prev, cur := clusters[i-1].Minute, clusters[i].Minute
			frac := 0.0
			if cur > prev {
				frac = (minute - prev) / (cur - prev)
			}
			x := positions[i-1] + frac*(positions[i]-positions[i-1])
			return clamp(x, leftBound, rightBound)
		}
	}
	return rightBound
}

func straddles(prev, cur, boundary float64) bool {
	return prev < boundary && cur >= boundary
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// FormatMinute renders an effective minute back into display text.
func FormatMinute(minute float64) string {
	base := int(minute)
	ext := int((minute-float64(base))*100 + 0.5)
	if ext > 0 {
		return strconv.Itoa(base) + "+" + strconv.Itoa(ext)
	}
	return strconv.Itoa(base)
}
