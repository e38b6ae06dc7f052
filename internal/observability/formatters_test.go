package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-skill-matcher/internal/types"
)

func TestPrintMatchResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	comment := "Matches your skills: **React**"
	results := []types.MatchResult{
		{Title: "Frontend", Relevance: 50, Comment: &comment, Suggestions: []string{"Redux"}},
		{Title: "Full Stack", Relevance: types.NewRelevance(100.0 / 3), Suggestions: []string{}},
	}

	p.PrintMatchResults([]string{"React", "HTML"}, results)
	output := buf.String()

	assert.Contains(t, output, "MATCHING JOBS")
	assert.Contains(t, output, "Skills: React, HTML")
	assert.Contains(t, output, "#1  Frontend")
	assert.Contains(t, output, "Relevance: 50.00%")
	assert.Contains(t, output, "Relevance: 33.33%")
	assert.Contains(t, output, "**React**")
	assert.Contains(t, output, "Consider learning: Redux")
	assert.Less(t, strings.Index(output, "Frontend"), strings.Index(output, "Full Stack"))
}

func TestPrintMatchResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResults([]string{"COBOL"}, nil)

	assert.Contains(t, buf.String(), "No jobs matched")
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSuggestions("js", []string{"JavaScript", "Node.js"})
	output := buf.String()

	assert.Contains(t, output, "SUGGESTIONS")
	assert.Contains(t, output, `Query: "js"`)
	assert.Contains(t, output, "• JavaScript")
	assert.Contains(t, output, "• Node.js")

	buf.Reset()
	p.PrintSuggestions("zz", nil)
	assert.Contains(t, buf.String(), "No suggestions")
}

func TestPrintCatalogSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	catalog := &types.Catalog{
		Skills:        []string{"Go"},
		Abbreviations: map[string]string{"GOLANG": "Go"},
	}
	for i := 0; i < 7; i++ {
		catalog.Jobs = append(catalog.Jobs, types.Job{Title: fmt.Sprintf("Job %d", i), RequiredSkills: []string{"Go"}})
	}

	p.PrintCatalogSummary("CATALOG", catalog)
	output := buf.String()

	assert.Contains(t, output, "CATALOG")
	assert.Contains(t, output, "Jobs:          7")
	assert.Contains(t, output, "Job 0 (1 required)")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Job 6")
}

func TestPrintCatalogSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCatalogSummary("CATALOG", nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 60))
}
