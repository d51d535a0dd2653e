package testmatches

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"github.com/okian/pitchline/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	shapeDivisor       = 4
	minuteMax          = 90
	stoppageMax        = 6
)

// Payload shape cases. Each generated match uses one provider shape so
// a run exercises every extraction path.
const (
	caseProviderTimeline = 0
	caseStructuredLists  = 1
	caseObjectOfArrays   = 2
	caseCommentary       = 3
)

var shapeNames = map[int64]string{
	caseProviderTimeline: "timeline",
	caseStructuredLists:  "structured",
	caseObjectOfArrays:   "halves",
	caseCommentary:       "commentary",
}

var teamNames = []string{
	"Northport FC", "Riverton United", "Eastvale Athletic", "Seabrook City",
	"Halton Rovers", "Westmoor Town", "Oakfield Albion", "Lakeside Wanderers",
}

var playerNames = []string{
	"A. Smith", "B. Jones", "C. Vega", "D. Costa", "E. Novak", "F. Laurent",
	"G. Lind", "H. Mart", "I. Okafor", "J. Petit", "K. Sato", "L. Moreno",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

func randomMinuteText() string {
	minute := randomInt(minuteMax) + 1
	// Occasional stoppage-time minute on either boundary.
	if getRandomFloat() < 0.15 {
		base := int64(45)
		if getRandomFloat() < 0.5 {
			base = 90
		}
		return strconv.FormatInt(base, 10) + "+" + strconv.FormatInt(randomInt(stoppageMax)+1, 10)
	}
	return strconv.FormatInt(minute, 10)
}

func randomPlayer() string {
	return playerNames[randomInt(int64(len(playerNames)))]
}

// generateMatches creates the specified number of matches across the
// supported payload shapes.
func generateMatches(ctx context.Context, config *Config, stats *Stats) ([]Match, error) {
	logger.Get().Info(ctx, "generating matches", logger.Int("numMatches", config.NumMatches))

	matches := make([]Match, config.NumMatches)

	type matchResult struct {
		index int
		match Match
		err   error
	}

	resultChan := make(chan matchResult, config.NumMatches)

	workerCount := minInt(config.Workers, config.NumMatches)
	matchesPerWorker := config.NumMatches / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * matchesPerWorker
		end := start + matchesPerWorker
		if worker == workerCount-1 {
			end = config.NumMatches
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- matchResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- matchResult{index: i, match: generateSingleMatch(i)}
				}
			}
		}(start, end)
	}

	for i := 0; i < config.NumMatches; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during match generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate match %d: %w", result.index, result.err)
			}
			matches[result.index] = result.match
		}
	}

	stats.MatchesGenerated = len(matches)
	logger.Get().Info(ctx, "generated matches successfully", logger.Int("count", len(matches)))

	return matches, nil
}

// generateSingleMatch creates one match payload in a random provider shape.
func generateSingleMatch(index int) Match {
	home := teamNames[randomInt(int64(len(teamNames)))]
	away := teamNames[randomInt(int64(len(teamNames)))]
	if away == home {
		away = teamNames[(randomInt(int64(len(teamNames)))+1)%int64(len(teamNames))]
	}

	matchID := "test_" + strconv.Itoa(index) + "_" + uuid.New().String()
	shape := randomInt(shapeDivisor)

	payload := map[string]any{
		"match_id":  matchID,
		"home_team": home,
		"away_team": away,
		"date":      "2026-08-30",
	}

	eventCount := randomInt(6) + 3
	switch shape {
	case caseProviderTimeline:
		entries := make([]any, 0, eventCount)
		for i := int64(0); i < eventCount; i++ {
			entries = append(entries, randomTimelineEntry(home, away))
		}
		payload["timeline"] = entries
	case caseStructuredLists:
		payload["goalscorers"] = randomScorerEntries(eventCount / 2)
		payload["cards"] = randomCardEntries(eventCount - eventCount/2)
		payload["substitutions"] = []any{
			map[string]any{
				"minute": randomMinuteText(),
				"team":   "home",
				"substitution": map[string]any{
					"in":  randomPlayer(),
					"out": randomPlayer(),
				},
			},
		}
	case caseObjectOfArrays:
		first := make([]any, 0, eventCount/2)
		second := make([]any, 0, eventCount-eventCount/2)
		for i := int64(0); i < eventCount/2; i++ {
			first = append(first, randomTimelineEntry(home, away))
		}
		for i := eventCount / 2; i < eventCount; i++ {
			second = append(second, randomTimelineEntry(home, away))
		}
		payload["events"] = map[string]any{
			"first_half":  first,
			"second_half": second,
		}
	case caseCommentary:
		entries := make([]any, 0, eventCount)
		for i := int64(0); i < eventCount; i++ {
			entries = append(entries, map[string]any{
				"minute":  randomMinuteText(),
				"comment": "Goal! " + randomPlayer() + " finds the net for " + home,
			})
		}
		payload["commentary"] = entries
	}

	return Match{
		ID:      matchID,
		Shape:   shapeNames[shape],
		Payload: payload,
	}
}

func randomTimelineEntry(home, away string) map[string]any {
	team := home
	if getRandomFloat() < 0.5 {
		team = away
	}
	entry := map[string]any{
		"minute": randomMinuteText(),
		"player": randomPlayer(),
		"team":   team,
	}
	switch randomInt(4) {
	case 0:
		entry["type"] = "goal"
	case 1:
		entry["card"] = "yellow card"
	case 2:
		entry["card"] = "red card"
	default:
		entry["type"] = "goal"
		entry["assist"] = randomPlayer()
	}
	return entry
}

func randomScorerEntries(count int64) []any {
	entries := make([]any, 0, count)
	for i := int64(0); i < count; i++ {
		rec := map[string]any{"time": randomMinuteText(), "score": "1 - 0"}
		if getRandomFloat() < 0.5 {
			rec["home_scorer"] = randomPlayer()
		} else {
			rec["away_scorer"] = randomPlayer()
		}
		entries = append(entries, rec)
	}
	return entries
}

func randomCardEntries(count int64) []any {
	entries := make([]any, 0, count)
	for i := int64(0); i < count; i++ {
		card := "yellow card"
		if getRandomFloat() < 0.2 {
			card = "red card"
		}
		rec := map[string]any{"time": randomMinuteText(), "card": card}
		if getRandomFloat() < 0.5 {
			rec["home_fault"] = randomPlayer()
		} else {
			rec["away_fault"] = randomPlayer()
		}
		entries = append(entries, rec)
	}
	return entries
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
