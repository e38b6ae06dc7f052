package skills

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// DefaultThreshold is the default edit-distance threshold for fuzzy lookup.
// 0 accepts only exact substrings; 1 accepts anything.
const DefaultThreshold = 0.4

// FuzzyMatcher returns the candidates that approximately match query, closest first.
type FuzzyMatcher interface {
	Match(query string, candidates []string) []string
}

// EditDistanceMatcher scores each candidate by the fewest edits needed to turn the
// query into some substring of the candidate, divided by the query length.
// Candidates scoring at or under Threshold are returned; ties keep candidate order.
type EditDistanceMatcher struct {
	Threshold float64
}

// Match implements FuzzyMatcher.
func (m EditDistanceMatcher) Match(query string, candidates []string) []string {
	pattern := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(pattern) == 0 {
		return []string{}
	}

	type scored struct {
		value string
		score float64
	}

	hits := make([]scored, 0)
	for _, candidate := range candidates {
		dist := substringDistance(pattern, []rune(strings.ToLower(candidate)))
		score := float64(dist) / float64(len(pattern))
		if score <= m.Threshold {
			hits = append(hits, scored{value: candidate, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score < hits[j].score
	})

	out := make([]string, len(hits))
	for i, hit := range hits {
		out[i] = hit.value
	}
	return out
}

// substringDistance is the minimum Levenshtein distance between pattern and any
// substring of text (Sellers' variant: free leading and trailing text).
func substringDistance(pattern, text []rune) int {
	prev := make([]int, len(text)+1)
	curr := make([]int, len(text)+1)

	for i := 1; i <= len(pattern); i++ {
		curr[0] = i
		for j := 1; j <= len(text); j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	best := len(pattern)
	for _, d := range prev {
		best = min(best, d)
	}
	return best
}

// SubsequenceMatcher matches candidates that contain every query character in order,
// ranked by sahilm/fuzzy's score. It tolerates skipped letters but not typos.
type SubsequenceMatcher struct{}

// Match implements FuzzyMatcher.
func (SubsequenceMatcher) Match(query string, candidates []string) []string {
	q := strings.TrimSpace(query)
	if q == "" || len(candidates) == 0 {
		return []string{}
	}

	matches := fuzzy.Find(q, candidates)
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.Str)
	}
	return out
}
