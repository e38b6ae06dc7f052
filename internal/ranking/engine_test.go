package ranking

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/job-skill-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frontendJob() types.Job {
	return types.Job{
		Title:           "Frontend",
		RequiredSkills:  []string{"HTML", "CSS", "JavaScript", "React"},
		SuggestedSkills: []string{"Redux"},
	}
}

func TestMatch_PartialOverlap(t *testing.T) {
	results, err := Match([]string{"javascript", "react"}, []types.Job{frontendJob()})
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "Frontend", got.Title)
	assert.Equal(t, types.Relevance(50), got.Relevance)
	require.NotNil(t, got.Comment)
	assert.Contains(t, *got.Comment, "javascript")
	assert.Contains(t, *got.Comment, "react")
	assert.Equal(t, []string{"Redux"}, got.Suggestions)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"relevance":50.00`)
}

func TestMatch_NoOverlapExcluded(t *testing.T) {
	results, err := Match([]string{"cobol"}, []types.Job{frontendJob()})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestMatch_EmptySelection(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
	}{
		{name: "nil", selected: nil},
		{name: "empty", selected: []string{}},
		{name: "blank entries", selected: []string{"", "  ", "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Match(tt.selected, []types.Job{frontendJob()})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, results)
		})
	}
}

func TestMatch_TiesKeepInputOrder(t *testing.T) {
	jobs := []types.Job{
		{Title: "Low", RequiredSkills: []string{"Go", "Rust", "C", "Zig"}},
		{Title: "First", RequiredSkills: []string{"Python", "SQL", "Pandas", "Excel"}},
		{Title: "Second", RequiredSkills: []string{"SQL", "Excel", "Python", "Tableau"}},
		{Title: "Top", RequiredSkills: []string{"Python"}},
	}

	results, err := Match([]string{"Python", "SQL", "Excel", "Go"}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 4)

	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{"Top", "First", "Second", "Low"}, titles)
	assert.Equal(t, types.Relevance(75), results[1].Relevance)
	assert.Equal(t, types.Relevance(75), results[2].Relevance)
}

func TestMatch_SkipsDegenerateJobs(t *testing.T) {
	jobs := []types.Job{
		{Title: "Empty", RequiredSkills: nil, SuggestedSkills: []string{"Go"}},
		frontendJob(),
		{Title: "Also Empty", RequiredSkills: []string{}},
	}

	results, err := Match([]string{"HTML"}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Frontend", results[0].Title)
	assert.Equal(t, 2, CountDegenerate(jobs))
}

func TestMatch_RelevanceRoundedToTwoDecimals(t *testing.T) {
	jobs := []types.Job{{Title: "Thirds", RequiredSkills: []string{"A1", "B2", "C3"}}}

	results, err := Match([]string{"a1"}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, types.Relevance(33.33), results[0].Relevance)
	assert.Equal(t, "33.33", results[0].Relevance.String())
}

func TestMatch_SubstringPolicy(t *testing.T) {
	jobs := []types.Job{{Title: "Web", RequiredSkills: []string{"JavaScript", "TypeScript"}}}

	results, err := Match([]string{"script"}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, types.Relevance(50), results[0].Relevance)
}

func TestMatch_RelevanceClampedAtHundred(t *testing.T) {
	// "java" and "javascript" both match the single required skill
	jobs := []types.Job{{Title: "JS", RequiredSkills: []string{"JavaScript"}}}

	results, err := Match([]string{"Java", "JavaScript"}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, types.Relevance(100), results[0].Relevance)
}

func TestEngine_ExactPolicy(t *testing.T) {
	engine := NewEngine(WithPolicy(PolicyExact))
	jobs := []types.Job{{Title: "Web", RequiredSkills: []string{"JavaScript", "TypeScript"}}}

	results, err := engine.Match([]string{"script"}, jobs)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = engine.Match([]string{"  TYPESCRIPT "}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, types.Relevance(50), results[0].Relevance)
}

func TestEngine_Comment(t *testing.T) {
	jobs := []types.Job{frontendJob()}

	results, err := NewEngine().Match([]string{"React", "HTML", "cobol"}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Matches your skills: **React**, **HTML**", results[0].MatchedComment())

	results, err = NewEngine(WithEmphasis("")).Match([]string{"React"}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Matches your skills: React", results[0].MatchedComment())
}

func TestMatch_DuplicateSelectionsCountOnce(t *testing.T) {
	results, err := Match([]string{"React", "react", " REACT "}, []types.Job{frontendJob()})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, types.Relevance(25), results[0].Relevance)
}

func TestMatch_DoesNotAliasJobs(t *testing.T) {
	jobs := []types.Job{frontendJob()}

	results, err := Match([]string{"React"}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results[0].Suggestions[0] = "changed"
	assert.Equal(t, []string{"Redux"}, jobs[0].SuggestedSkills)
	assert.Equal(t, frontendJob(), jobs[0])
}

func TestMatch_EmptySuggestionsSerializeAsArray(t *testing.T) {
	jobs := []types.Job{{Title: "Solo", RequiredSkills: []string{"Go"}}}

	results, err := Match([]string{"Go"}, jobs)
	require.NoError(t, err)
	require.Len(t, results, 1)

	data, err := json.Marshal(results[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Solo","relevance":100,"comment":"Matches your skills: **Go**","suggestions":[]}`, string(data))
}

func TestMatch_Idempotent(t *testing.T) {
	jobs := []types.Job{
		frontendJob(),
		{Title: "Backend", RequiredSkills: []string{"Node.js", "SQL", "Python"}, SuggestedSkills: []string{"Docker"}},
		{Title: "Full Stack", RequiredSkills: []string{"HTML", "CSS", "JavaScript", "Node.js", "SQL"}},
	}
	selected := []string{"JavaScript", "SQL", "CSS"}

	first, err := Match(selected, jobs)
	require.NoError(t, err)
	second, err := Match(selected, jobs)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMatch_OrderAndBounds(t *testing.T) {
	jobs := []types.Job{
		frontendJob(),
		{Title: "Backend", RequiredSkills: []string{"Node.js", "SQL", "Python"}},
		{Title: "Data Analyst", RequiredSkills: []string{"Python", "SQL", "Excel", "Tableau"}},
		{Title: "Network Administrator", RequiredSkills: []string{"Networking", "Linux", "Cisco"}},
		{Title: "Full Stack", RequiredSkills: []string{"HTML", "CSS", "JavaScript", "Node.js", "SQL"}},
	}

	results, err := Match([]string{"SQL", "Python", "HTML", "Linux"}, jobs)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i, r := range results {
		assert.Greater(t, float64(r.Relevance), 0.0)
		assert.LessOrEqual(t, float64(r.Relevance), 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].Relevance, r.Relevance)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{input: "", want: PolicySubstring},
		{input: "substring", want: PolicySubstring},
		{input: " EXACT ", want: PolicyExact},
		{input: "regex", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
