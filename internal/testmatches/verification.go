package testmatches

import (
	"fmt"
	"log"
)

// verifyResults checks the layout invariants of each successful match.
func verifyResults(config *Config, outcomes []matchOutcome, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	verified := 0
	byShape := make(map[string]int)
	for _, outcome := range outcomes {
		if outcome.err != nil || outcome.layout == nil {
			continue
		}
		if err := verifyLayout(outcome); err != nil {
			log.Printf("⚠️  Layout invariant warning for %s (%s): %v", outcome.match.ID, outcome.match.Shape, err)
			continue
		}
		verified++
		byShape[outcome.match.Shape]++
	}

	stats.LayoutsVerified = verified

	if config.Verbose {
		for shape, count := range byShape {
			log.Printf("   %s: %d verified", shape, count)
		}
	}

	if verified == 0 && len(outcomes) > 0 {
		return fmt.Errorf("no layouts passed verification")
	}

	log.Printf("✅ Verified %d/%d layouts", verified, len(outcomes))
	return nil
}

// verifyLayout checks that positions are sorted, in bounds, and that
// the anchors stay inside the timeline width.
func verifyLayout(outcome matchOutcome) error {
	layout := outcome.layout.Layout

	for i, pos := range layout.Positions {
		if pos < 0 || pos > layout.TotalWidth {
			return fmt.Errorf("position %d (%.1f) outside [0, %.1f]", i, pos, layout.TotalWidth)
		}
		if i > 0 && pos < layout.Positions[i-1] {
			return fmt.Errorf("positions not sorted: index %d (%.1f) < index %d (%.1f)",
				i, pos, i-1, layout.Positions[i-1])
		}
	}

	if len(layout.Positions) > 0 && len(layout.Anchors) == 0 {
		return fmt.Errorf("no anchors for a non-empty timeline")
	}

	for i, anchor := range layout.Anchors {
		if anchor.X < 0 || anchor.X > layout.TotalWidth {
			return fmt.Errorf("anchor %d (%s at %.1f) outside [0, %.1f]",
				i, anchor.Label, anchor.X, layout.TotalWidth)
		}
		if i > 0 && anchor.Minute < layout.Anchors[i-1].Minute {
			return fmt.Errorf("anchors not in minute order at index %d", i)
		}
	}

	return nil
}
