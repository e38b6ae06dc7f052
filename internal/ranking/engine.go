// Package ranking scores job roles against a selected-skill set and ranks the results.
package ranking

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jonathan/job-skill-matcher/internal/skills"
	"github.com/jonathan/job-skill-matcher/internal/types"
)

// Policy decides when a selected skill counts as matching a required skill.
type Policy string

const (
	// PolicySubstring matches when the required skill contains the selected skill,
	// case-insensitively ("script" matches "JavaScript").
	PolicySubstring Policy = "substring"
	// PolicyExact matches only on case-insensitive equality.
	PolicyExact Policy = "exact"
)

// DefaultPolicy is the matching rule used when none is configured.
const DefaultPolicy = PolicySubstring

// ParsePolicy converts a configuration string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicySubstring:
		return PolicySubstring, nil
	case PolicyExact:
		return PolicyExact, nil
	default:
		return "", fmt.Errorf("unknown match policy %q (valid: substring, exact)", s)
	}
}

// Engine scores jobs. It holds only immutable settings and is safe for concurrent use.
type Engine struct {
	policy   Policy
	emphasis string
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the matching policy.
func WithPolicy(policy Policy) Option {
	return func(e *Engine) {
		if policy != "" {
			e.policy = policy
		}
	}
}

// WithEmphasis sets the inline markup wrapped around matched skills in comments.
func WithEmphasis(marker string) Option {
	return func(e *Engine) {
		e.emphasis = marker
	}
}

// NewEngine returns an engine using the substring policy and "**" emphasis by default.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		policy:   DefaultPolicy,
		emphasis: DefaultEmphasis,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the engine's matching policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Match scores every job against selected and returns the jobs with a positive
// relevance, highest first. Jobs that tie keep their input order. Jobs without
// required skills are skipped. An empty selection returns ErrInvalidInput.
func (e *Engine) Match(selected []string, jobs []types.Job) ([]types.MatchResult, error) {
	selection := skills.Unique(selected)
	if len(selection) == 0 {
		return nil, ErrInvalidInput
	}

	loweredSelection := make([]string, len(selection))
	for i, s := range selection {
		loweredSelection[i] = strings.ToLower(s)
	}

	results := make([]types.MatchResult, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		if job.IsDegenerate() {
			continue
		}

		matched := e.matchedSkills(selection, loweredSelection, job.RequiredSkills)
		relevance := types.NewRelevance(float64(len(matched)) / float64(len(job.RequiredSkills)) * 100)
		if relevance == 0 {
			continue
		}

		suggestions := slices.Clone(job.SuggestedSkills)
		if suggestions == nil {
			suggestions = []string{}
		}

		results = append(results, types.MatchResult{
			Title:       job.Title,
			Relevance:   relevance,
			Comment:     e.comment(matched),
			Suggestions: suggestions,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	return results, nil
}

// matchedSkills returns the selected skills (display form, selection order) that
// satisfy the policy against at least one required skill.
func (e *Engine) matchedSkills(selection, loweredSelection, required []string) []string {
	loweredRequired := make([]string, len(required))
	for i, r := range required {
		loweredRequired[i] = strings.ToLower(strings.TrimSpace(r))
	}

	matched := make([]string, 0)
	for i, skill := range loweredSelection {
		for _, req := range loweredRequired {
			if e.matches(req, skill) {
				matched = append(matched, selection[i])
				break
			}
		}
	}
	return matched
}

func (e *Engine) matches(required, selected string) bool {
	if e.policy == PolicyExact {
		return required == selected
	}
	return strings.Contains(required, selected)
}

// Match scores jobs with a default engine.
func Match(selected []string, jobs []types.Job) ([]types.MatchResult, error) {
	return NewEngine().Match(selected, jobs)
}

// CountDegenerate returns how many jobs have no required skills and cannot be scored.
func CountDegenerate(jobs []types.Job) int {
	count := 0
	for i := range jobs {
		if jobs[i].IsDegenerate() {
			count++
		}
	}
	return count
}
