//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"
	"strconv"
)

// Relevance is a match percentage in [0, 100] held at two-decimal precision.
type Relevance float64

// NewRelevance rounds a raw percentage to two decimals and clamps it to [0, 100].
func NewRelevance(percent float64) Relevance {
	if math.IsNaN(percent) || percent < 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return Relevance(math.Round(percent*100) / 100)
}

// String formats the relevance with exactly two decimals.
func (r Relevance) String() string {
	return strconv.FormatFloat(float64(r), 'f', 2, 64)
}

// MarshalJSON encodes the relevance as a number with exactly two decimals (e.g. 50.00).
func (r Relevance) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

// MatchResult is the scored outcome of one job against a selected-skill set.
type MatchResult struct {
	Title       string    `json:"title"`
	Relevance   Relevance `json:"relevance"`
	Comment     *string   `json:"comment"`
	Suggestions []string  `json:"suggestions"`
}

// MatchedComment returns the comment text or an empty string when there is none.
func (m MatchResult) MatchedComment() string {
	if m.Comment == nil {
		return ""
	}
	return *m.Comment
}
