package normalize

import (
	"strings"

	"github.com/okian/pitchline/internal/domain/model"
)

// sideFields are the known provider aliases for the team a record
// belongs to, checked in order.
var sideFields = []string{"side", "team", "team_name", "scoring_team", "club"}

// SideDetector resolves which side of the match a record belongs to.
// Kept as a replaceable strategy: side detection is string matching and
// its accuracy is a known soft spot.
type SideDetector func(raw model.RawEventRecord, ctx model.MatchContext) model.Side

// DetectSide is the default SideDetector. Literal home/away markers win;
// otherwise the team field is compared against the known home identity
// by name equality, then substring containment. When the home comparison
// fails the event is attributed to away.
func DetectSide(raw model.RawEventRecord, ctx model.MatchContext) model.Side {
	for _, field := range sideFields {
		v, present := raw[field]
		if !present {
			continue
		}
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		return sideFromValue(s, ctx)
	}
	return model.Away
}

func sideFromValue(s string, ctx model.MatchContext) model.Side {
	folded := strings.ToLower(strings.TrimSpace(s))
	switch folded {
	case "home", "local", "localteam", "1", "h":
		return model.Home
	case "away", "visitor", "visitorteam", "2", "a":
		return model.Away
	}
	if teamMatches(folded, ctx.HomeTeam) {
		return model.Home
	}
	// Unresolved names land on away rather than being dropped.
	return model.Away
}

// teamMatches compares a folded candidate against a team name by
// equality, then containment in either direction.
func teamMatches(folded, team string) bool {
	t := strings.ToLower(strings.TrimSpace(team))
	if t == "" || folded == "" {
		return false
	}
	if folded == t {
		return true
	}
	return strings.Contains(t, folded) || strings.Contains(folded, t)
}
