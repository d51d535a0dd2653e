// Package model contains domain models passed between layers.
package model

// MatchPayload is one full match document as delivered by an upstream
// aggregation API. Like RawEventRecord it has no fixed schema.
type MatchPayload map[string]any

// MatchContext carries the match identity and team facts the normalizer
// and resolver need. Extracted once per payload.
type MatchContext struct {
	MatchID    string `json:"match_id,omitempty"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	Date       string `json:"date,omitempty"`
	FinalScore string `json:"final_score,omitempty"`
	HomeLogo   string `json:"home_logo,omitempty"`
	AwayLogo   string `json:"away_logo,omitempty"`
}

// EventName composes the "<home> vs <away>" identity sent to the
// enrichment collaborator when no match id exists.
func (m MatchContext) EventName() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}

// Identity returns the most specific match identity available.
func (m MatchContext) Identity() string {
	if m.MatchID != "" {
		return m.MatchID
	}
	id := m.EventName()
	if m.Date != "" {
		id += "|" + m.Date
	}
	return id
}

// LogoFor returns the supplied logo for a side, if any.
func (m MatchContext) LogoFor(side Side) string {
	if side == Home {
		return m.HomeLogo
	}
	return m.AwayLogo
}

// TeamFor returns the team name for a side.
func (m MatchContext) TeamFor(side Side) string {
	if side == Home {
		return m.HomeTeam
	}
	return m.AwayTeam
}

// EnrichJob is one background enrichment fetch flowing through the
// queue to the worker pool.
type EnrichJob struct {
	SessionKey string
	Key        string
	Cluster    Cluster
	Match      MatchContext
}
