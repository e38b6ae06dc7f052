package skills

import (
	"slices"
	"strings"
)

// Index is an immutable, searchable view over the known skill catalog.
// An Index is safe for concurrent use once BuildIndex returns.
type Index struct {
	trie          *Trie
	catalog       []string
	abbreviations Abbreviations
	matcher       FuzzyMatcher
	limit         int
}

// Option configures an Index at build time.
type Option func(*Index)

// WithAbbreviations replaces the default abbreviation table.
func WithAbbreviations(abbreviations map[string]string) Option {
	return func(idx *Index) {
		idx.abbreviations = NewAbbreviations(abbreviations)
	}
}

// WithMatcher sets the fuzzy matcher used by Suggest.
func WithMatcher(matcher FuzzyMatcher) Option {
	return func(idx *Index) {
		if matcher != nil {
			idx.matcher = matcher
		}
	}
}

// WithThreshold uses an EditDistanceMatcher with the given threshold.
func WithThreshold(threshold float64) Option {
	return WithMatcher(EditDistanceMatcher{Threshold: threshold})
}

// WithLimit caps the number of suggestions returned. Zero means no cap.
func WithLimit(limit int) Option {
	return func(idx *Index) {
		idx.limit = max(limit, 0)
	}
}

// BuildIndex builds an index over catalog. Names are trimmed, blanks dropped, and
// case-insensitive duplicates collapse onto the first display form seen.
func BuildIndex(catalog []string, opts ...Option) *Index {
	idx := &Index{
		trie:          NewTrie(),
		abbreviations: NewAbbreviations(DefaultAbbreviations()),
		matcher:       EditDistanceMatcher{Threshold: DefaultThreshold},
	}
	for _, opt := range opts {
		opt(idx)
	}

	for _, name := range catalog {
		idx.trie.Insert(strings.TrimSpace(name))
	}

	// Snapshot of the empty-prefix query; the fuzzy pass runs over it.
	idx.catalog = idx.trie.Search("")
	return idx
}

// Len returns the number of distinct skills in the index.
func (idx *Index) Len() int {
	return idx.trie.Len()
}

// Catalog returns every skill in the index in lexicographic order.
func (idx *Index) Catalog() []string {
	return slices.Clone(idx.catalog)
}

// Search returns the skills starting with prefix (case-insensitive).
func (idx *Index) Search(prefix string) []string {
	return idx.trie.Search(prefix)
}

// Abbreviation expands token if it is a known abbreviation.
func (idx *Index) Abbreviation(token string) (string, bool) {
	return idx.abbreviations.Lookup(token)
}

// Fuzzy returns catalog entries approximately matching query, closest first.
func (idx *Index) Fuzzy(query string) []string {
	return idx.matcher.Match(query, idx.catalog)
}

// Suggest returns autocomplete suggestions for input: the abbreviation expansion,
// then prefix hits, then fuzzy hits, with case-insensitive duplicates removed.
// Blank input yields no suggestions. When a limit truncates the list, an exact
// catalog match for input is kept in the last slot.
func (idx *Index) Suggest(input string) []string {
	text := strings.TrimSpace(input)
	if text == "" {
		return []string{}
	}

	candidates := make([]string, 0)
	if canonical, ok := idx.Abbreviation(text); ok {
		candidates = append(candidates, canonical)
	}
	candidates = append(candidates, idx.Search(text)...)
	candidates = append(candidates, idx.Fuzzy(text)...)

	suggestions := Unique(candidates)
	if idx.limit > 0 && len(suggestions) > idx.limit {
		suggestions = suggestions[:idx.limit]
		// An exact catalog hit always survives truncation.
		if exact, ok := idx.trie.Get(text); ok && !slices.ContainsFunc(suggestions, func(s string) bool {
			return strings.EqualFold(s, exact)
		}) {
			suggestions[len(suggestions)-1] = exact
		}
	}
	return suggestions
}

// Suggest is the functional form of (*Index).Suggest.
func Suggest(idx *Index, input string) []string {
	return idx.Suggest(input)
}

// Resolve maps a raw token to a canonical skill name. Abbreviations win, then an
// exact case-insensitive catalog hit, then the best suggestion. When nothing matches
// the trimmed token is returned with ok=false.
func (idx *Index) Resolve(token string) (string, bool) {
	text := strings.TrimSpace(token)
	if text == "" {
		return "", false
	}
	if canonical, ok := idx.Abbreviation(text); ok {
		return canonical, true
	}
	if exact, ok := idx.trie.Get(text); ok {
		return exact, true
	}
	if suggestions := idx.Suggest(text); len(suggestions) > 0 {
		return suggestions[0], true
	}
	return text, false
}

// ResolveAll resolves every token and returns the unique canonical names.
func (idx *Index) ResolveAll(tokens []string) []string {
	resolved := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if name, _ := idx.Resolve(token); name != "" {
			resolved = append(resolved, name)
		}
	}
	return Unique(resolved)
}
