package skills

import (
	"testing"

	"github.com/jonathan/job-skill-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"Go", "rust"}, Unique([]string{" Go", "go", "", "rust", "GO ", "Rust"}))
	assert.Empty(t, Unique(nil))
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t,
		[]string{"JavaScript", "python", "react"},
		ParseSkills("JavaScript, python; ,react\nJavascript"))
	assert.Empty(t, ParseSkills(" , ;"))
}

func TestCollectCatalog(t *testing.T) {
	jobs := []types.Job{
		{Title: "Frontend", RequiredSkills: []string{"HTML", "CSS"}, SuggestedSkills: []string{"Redux"}},
		{Title: "Full Stack", RequiredSkills: []string{"html", "Node.js"}, SuggestedSkills: []string{"GraphQL"}},
	}

	catalog := CollectCatalog(jobs, "Java", "redux")

	assert.Equal(t, []string{"HTML", "CSS", "Redux", "Node.js", "GraphQL", "Java"}, catalog)
}
