package timeline

import (
	"sort"
	"strings"

	"github.com/okian/pitchline/internal/domain/model"
)

// Known payload aliases per source. Providers scatter partial data
// across several of these at once.
var (
	timelineFields = []string{"timeline", "events", "incidents", "match_events"}
	scorerFields   = []string{"goalscorers", "goalscorer", "scorers", "goals"}
	cardFields     = []string{"cards", "bookings"}
	subFields      = []string{"substitutions", "subs", "substitutes"}
	commentFields  = []string{"comments", "commentary", "play_by_play"}
)

// Known payload aliases for the match context.
var (
	homeTeamFields = []string{"home_team", "hometeam", "event_home_team", "localteam", "home"}
	awayTeamFields = []string{"away_team", "awayteam", "event_away_team", "visitorteam", "away"}
	matchIDFields  = []string{"match_id", "event_key", "fixture_id", "id"}
	dateFields     = []string{"date", "event_date", "match_date"}
	scoreFields    = []string{"final_score", "event_final_result", "ft_score", "score"}
	homeLogoFields = []string{"home_team_logo", "home_logo"}
	awayLogoFields = []string{"away_team_logo", "away_logo"}
)

// Context extracts the match identity from a payload. Missing fields
// stay empty; downstream heuristics tolerate that.
func Context(payload model.MatchPayload) model.MatchContext {
	return model.MatchContext{
		MatchID:    stringField(payload, matchIDFields),
		HomeTeam:   teamName(payload, homeTeamFields),
		AwayTeam:   teamName(payload, awayTeamFields),
		Date:       stringField(payload, dateFields),
		FinalScore: stringField(payload, scoreFields),
		HomeLogo:   stringField(payload, homeLogoFields),
		AwayLogo:   stringField(payload, awayLogoFields),
	}
}

// teamName accepts either a plain string or a nested object with a
// "name" field.
func teamName(payload model.MatchPayload, fields []string) string {
	for _, field := range fields {
		switch v := payload[field].(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case map[string]any:
			if name, ok := v["name"].(string); ok && strings.TrimSpace(name) != "" {
				return strings.TrimSpace(name)
			}
		}
	}
	return ""
}

func stringField(payload model.MatchPayload, fields []string) string {
	for _, field := range fields {
		if s, ok := payload[field].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// providerRecords collects the explicit timeline entries. The value may
// be a flat array or an object-of-arrays that must be flattened; object
// keys are walked in sorted order so extraction stays deterministic.
func providerRecords(payload model.MatchPayload) []model.RawEventRecord {
	var records []model.RawEventRecord
	for _, field := range timelineFields {
		v, present := payload[field]
		if !present {
			continue
		}
		switch entries := v.(type) {
		case []any:
			records = append(records, toRecords(entries)...)
		case map[string]any:
			keys := make([]string, 0, len(entries))
			for k := range entries {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if arr, ok := entries[k].([]any); ok {
					records = append(records, toRecords(arr)...)
				}
			}
		}
		if len(records) > 0 {
			return records
		}
	}
	return records
}

func toRecords(entries []any) []model.RawEventRecord {
	var records []model.RawEventRecord
	for _, entry := range entries {
		if m, ok := entry.(map[string]any); ok {
			records = append(records, model.RawEventRecord(m))
		}
	}
	return records
}

// structuredRecords derives raw records from the goal-scorer, card and
// substitution arrays. These exist even when a provider list is
// present: some providers put partial data in each location.
func structuredRecords(payload model.MatchPayload) []model.RawEventRecord {
	var records []model.RawEventRecord
	records = append(records, scorerRecords(payload)...)
	records = append(records, cardRecords(payload)...)
	records = append(records, subRecords(payload)...)
	return records
}

func scorerRecords(payload model.MatchPayload) []model.RawEventRecord {
	var records []model.RawEventRecord
	for _, rec := range arrayField(payload, scorerFields) {
		minute := minuteValue(rec)
		if minute == nil {
			continue
		}
		switch {
		case str(rec, "home_scorer") != "":
			records = append(records, model.RawEventRecord{
				"minute": minute,
				"scorer": str(rec, "home_scorer"),
				"assist": str(rec, "home_assist"),
				"side":   "home",
				"note":   str(rec, "score"),
				"type":   "goal",
			})
		case str(rec, "away_scorer") != "":
			records = append(records, model.RawEventRecord{
				"minute": minute,
				"scorer": str(rec, "away_scorer"),
				"assist": str(rec, "away_assist"),
				"side":   "away",
				"note":   str(rec, "score"),
				"type":   "goal",
			})
		case str(rec, "scorer") != "" || str(rec, "player") != "":
			out := model.RawEventRecord{"minute": minute, "type": "goal"}
			for k, v := range rec {
				if k != "time" && k != "minute" {
					out[k] = v
				}
			}
			records = append(records, out)
		}
	}
	return records
}

func cardRecords(payload model.MatchPayload) []model.RawEventRecord {
	var records []model.RawEventRecord
	for _, rec := range arrayField(payload, cardFields) {
		minute := minuteValue(rec)
		if minute == nil {
			continue
		}
		card := str(rec, "card")
		if card == "" {
			card = "yellow card"
		}
		switch {
		case str(rec, "home_fault") != "":
			records = append(records, model.RawEventRecord{
				"minute": minute, "player": str(rec, "home_fault"), "side": "home", "card": card,
			})
		case str(rec, "away_fault") != "":
			records = append(records, model.RawEventRecord{
				"minute": minute, "player": str(rec, "away_fault"), "side": "away", "card": card,
			})
		case str(rec, "player") != "":
			out := model.RawEventRecord{"minute": minute, "card": card}
			for k, v := range rec {
				if k != "time" && k != "minute" && k != "card" {
					out[k] = v
				}
			}
			records = append(records, out)
		}
	}
	return records
}

func subRecords(payload model.MatchPayload) []model.RawEventRecord {
	var records []model.RawEventRecord
	for _, rec := range arrayField(payload, subFields) {
		minute := minuteValue(rec)
		if minute == nil {
			continue
		}
		out := model.RawEventRecord{"minute": minute, "type": "substitution"}
		if nested, ok := rec["substitution"].(map[string]any); ok {
			out["player_in"] = nested["in"]
			out["player_out"] = nested["out"]
		} else {
			out["player_in"] = firstOf(rec, "player_in", "in")
			out["player_out"] = firstOf(rec, "player_out", "out")
		}
		if side := str(rec, "team"); side != "" {
			out["side"] = side
		}
		if out["player_in"] == nil && out["player_out"] == nil {
			continue
		}
		records = append(records, out)
	}
	return records
}

// commentRecords derives raw records from free-text commentary. The
// comment text doubles as the note; type detection happens in the
// normalizer's keyword path.
func commentRecords(payload model.MatchPayload) []model.RawEventRecord {
	var records []model.RawEventRecord
	for _, rec := range arrayField(payload, commentFields) {
		minute := minuteValue(rec)
		if minute == nil {
			continue
		}
		text := str(rec, "comment", "comments_text", "text", "description")
		if text == "" {
			continue
		}
		records = append(records, model.RawEventRecord{"minute": minute, "text": text})
	}
	return records
}

func arrayField(payload model.MatchPayload, fields []string) []model.RawEventRecord {
	for _, field := range fields {
		if arr, ok := payload[field].([]any); ok {
			return toRecords(arr)
		}
	}
	return nil
}

// minuteValue returns the raw minute-ish value from a record, or nil.
func minuteValue(rec model.RawEventRecord) any {
	for _, field := range []string{"time", "minute", "min", "elapsed"} {
		if v, present := rec[field]; present && v != nil {
			return v
		}
	}
	return nil
}

func str(rec model.RawEventRecord, keys ...string) string {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func firstOf(rec model.RawEventRecord, keys ...string) any {
	for _, key := range keys {
		if v, present := rec[key]; present && v != nil {
			return v
		}
	}
	return nil
}
