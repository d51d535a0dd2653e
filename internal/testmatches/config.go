package testmatches

import "time"

// Config holds configuration for the match test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumMatches int           // Number of matches to generate
	Width      float64       // Container width for layout requests
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for matches
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Match is one generated provider payload plus bookkeeping about the
// shape it was generated in.
type Match struct {
	ID      string         `json:"id"`
	Shape   string         `json:"shape"`
	Payload map[string]any `json:"payload"`
}

// TimelineResult is the response from POST /timeline.
type TimelineResult struct {
	Match  map[string]any   `json:"match"`
	Events []map[string]any `json:"events"`
}

// LayoutResult is the response from POST /layout.
type LayoutResult struct {
	Layout struct {
		Positions  []float64 `json:"positions"`
		TotalWidth float64   `json:"total_width"`
		Anchors    []struct {
			Minute float64 `json:"minute"`
			X      float64 `json:"x"`
			Label  string  `json:"label"`
		} `json:"anchors"`
	} `json:"layout"`
}

// BriefsResult is the response from POST /briefs.
type BriefsResult struct {
	Briefs []struct {
		Key   string `json:"key"`
		Brief struct {
			Text       string `json:"text"`
			Provenance string `json:"provenance"`
			Pending    bool   `json:"pending"`
		} `json:"brief"`
	} `json:"briefs"`
}

// Stats holds test statistics
type Stats struct {
	MatchesGenerated  int
	MatchesSubmitted  int
	MatchesSuccessful int
	MatchesFailed     int
	EventsSynthesized int
	LayoutsVerified   int
	BriefsResolved    int
	BriefsPending     int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
