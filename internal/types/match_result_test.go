//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelevance(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected Relevance
	}{
		{"half", 50, 50},
		{"one third", 100.0 / 3.0, 33.33},
		{"two thirds", 200.0 / 3.0, 66.67},
		{"over one hundred clamps", 200, 100},
		{"negative clamps", -5, 0},
		{"NaN is zero", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewRelevance(tt.input))
		})
	}
}

func TestRelevance_String(t *testing.T) {
	assert.Equal(t, "50.00", Relevance(50).String())
	assert.Equal(t, "33.33", NewRelevance(100.0/3.0).String())
	assert.Equal(t, "100.00", Relevance(100).String())
	assert.Equal(t, "0.00", Relevance(0).String())
}

func TestMatchResult_JSON(t *testing.T) {
	comment := "Matched skills: **React**"
	result := MatchResult{
		Title:       "Frontend Developer",
		Relevance:   NewRelevance(25),
		Comment:     &comment,
		Suggestions: []string{"Redux"},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Frontend Developer","relevance":25.00,"comment":"Matched skills: **React**","suggestions":["Redux"]}`, string(data))
	assert.Contains(t, string(data), `"relevance":25.00`)
}

func TestMatchResult_NilCommentEncodesNull(t *testing.T) {
	data, err := json.Marshal(MatchResult{Title: "Ops", Relevance: 10, Suggestions: []string{}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"comment":null`)
	assert.Equal(t, "", MatchResult{}.MatchedComment())
}
