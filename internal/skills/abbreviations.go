package skills

import "strings"

// Abbreviations maps upper-case abbreviation tokens to canonical skill names.
type Abbreviations map[string]string

// DefaultAbbreviations returns the built-in abbreviation table.
func DefaultAbbreviations() map[string]string {
	return map[string]string{
		"JS":      "JavaScript",
		"TS":      "TypeScript",
		"SQL":     "SQL",
		"K8S":     "Kubernetes",
		"GOLANG":  "Go",
		"NODEJS":  "Node.js",
		"REACTJS": "React",
		"VUEJS":   "Vue",
	}
}

// NewAbbreviations normalizes keys to trimmed upper-case and drops blank entries.
func NewAbbreviations(m map[string]string) Abbreviations {
	out := make(Abbreviations, len(m))
	for token, canonical := range m {
		token = strings.ToUpper(strings.TrimSpace(token))
		canonical = strings.TrimSpace(canonical)
		if token == "" || canonical == "" {
			continue
		}
		out[token] = canonical
	}
	return out
}

// Lookup returns the canonical name for token, compared after upper-casing.
func (a Abbreviations) Lookup(token string) (string, bool) {
	canonical, ok := a[strings.ToUpper(strings.TrimSpace(token))]
	return canonical, ok
}
