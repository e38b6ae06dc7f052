package ranking

import "strings"

// DefaultEmphasis is the markdown-style marker placed around matched skill names.
const DefaultEmphasis = "**"

// comment renders the explanation for matched skills, or nil when nothing matched.
func (e *Engine) comment(matched []string) *string {
	if len(matched) == 0 {
		return nil
	}

	emphasized := make([]string, len(matched))
	for i, skill := range matched {
		emphasized[i] = e.emphasis + skill + e.emphasis
	}

	text := "Matches your skills: " + strings.Join(emphasized, ", ")
	return &text
}
