package skills

import (
	"strings"

	"github.com/jonathan/job-skill-matcher/internal/types"
)

// Unique trims names, drops blanks, and removes case-insensitive duplicates,
// keeping the first display form and the original order.
func Unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// ParseSkills splits free-text input such as "JavaScript, Python; react" into skill tokens.
func ParseSkills(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	return Unique(fields)
}

// CollectCatalog gathers the skill universe from every job's required and suggested
// skills plus any extra known names, deduplicated case-insensitively.
func CollectCatalog(jobs []types.Job, extra ...string) []string {
	names := make([]string, 0, len(extra))
	for _, job := range jobs {
		names = append(names, job.RequiredSkills...)
		names = append(names, job.SuggestedSkills...)
	}
	names = append(names, extra...)
	return Unique(names)
}
