package enrich

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/okian/pitchline/internal/domain/model"
)

// minUsefulBriefRunes is the shortest remote brief worth showing.
// Anything shorter reads like a label, not a sentence.
const minUsefulBriefRunes = 12

// labelOnlyBrief matches degenerate provider output like "Goal:".
var labelOnlyBrief = regexp.MustCompile(`^\S+:$`)

// PoorBrief reports whether a remote brief is too thin to replace the
// locally generated one.
func PoorBrief(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minUsefulBriefRunes {
		return true
	}
	return labelOnlyBrief.MatchString(trimmed)
}

// FallbackBrief builds a deterministic local brief for a cluster from
// the event facts alone. Used as the placeholder while the remote fetch
// is in flight and as the final text when it fails.
func FallbackBrief(cluster model.Cluster, match model.MatchContext) string {
	lines := make([]string, 0, len(cluster.Events))
	for _, event := range cluster.Events {
		if line := eventLine(event, match); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "Minute " + cluster.MinuteKey
	}
	return strings.Join(lines, ". ")
}

func eventLine(event model.CanonicalEvent, match model.MatchContext) string {
	team := match.TeamFor(event.Side)
	actor := event.PrimaryActor

	switch event.Type {
	case model.Goal:
		return withActor("Goal", "by", actor, team)
	case model.OwnGoal:
		return withActor("Own goal", "by", actor, team)
	case model.PenaltyScore:
		return withActor("Penalty scored", "by", actor, team)
	case model.PenaltyMiss:
		return withActor("Penalty missed", "by", actor, team)
	case model.YellowCard:
		return withActor("Yellow card", "for", actor, team)
	case model.RedCard:
		return withActor("Red card", "for", actor, team)
	case model.Substitution:
		if actor != "" && event.SecondaryActor != "" {
			return substitutionLine(team, actor, event.SecondaryActor)
		}
		return withActor("Substitution", "for", actor, team)
	default:
		if event.Note != "" {
			return event.Note
		}
		return ""
	}
}

func withActor(what, preposition, actor, team string) string {
	line := what
	if actor != "" {
		line += " " + preposition + " " + actor
	}
	if team != "" {
		line += " (" + team + ")"
	}
	return line
}

func substitutionLine(team, in, out string) string {
	line := "Substitution"
	if team != "" {
		line += " for " + team
	}
	return line + ": " + in + " on for " + out
}
