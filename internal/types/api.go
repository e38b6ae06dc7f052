package types

// MatchRequest is the body of POST /api/jobs/match.
type MatchRequest struct {
	Skills []string `json:"skills" validate:"max=200,dive,max=100"`
	// Resolve maps each token to its canonical skill name (abbreviation, exact
	// catalog entry or best suggestion) before matching.
	Resolve bool `json:"resolve,omitempty"`
}

// MatchResponse is the ranked match output.
type MatchResponse struct {
	Skills  []string      `json:"skills"`
	Results []MatchResult `json:"results"`
	Count   int           `json:"count"`
}

// SuggestResponse is the autocomplete output for a query.
type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// SkillsResponse lists the indexed skill catalog.
type SkillsResponse struct {
	Skills []string `json:"skills"`
	Count  int      `json:"count"`
}

// RefreshResponse reports the result of a catalog refresh.
type RefreshResponse struct {
	Jobs       int `json:"jobs"`
	Skills     int `json:"skills"`
	Degenerate int `json:"degenerate"`
}
