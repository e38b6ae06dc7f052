// Package types provides type definitions for structured data used throughout the job skill matcher.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Job represents a job role and the skills it asks for.
// RequiredSkills may be empty at the storage boundary; the match engine skips such records.
// Jobs that never had an ID (bundled catalog entries) omit it from JSON.
type Job struct {
	ID              uuid.UUID `json:"id,omitzero"`
	Title           string    `json:"title" validate:"required"`
	RequiredSkills  []string  `json:"requiredSkills" validate:"dive,required"`
	SuggestedSkills []string  `json:"suggestedSkills" validate:"dive,required"`
}

// Validate checks the job record using the validator.
func (j *Job) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

// IsDegenerate reports whether the job has no required skills to score against.
func (j *Job) IsDegenerate() bool {
	return len(j.RequiredSkills) == 0
}

// Catalog is the on-disk shape of a bundled job catalog.
type Catalog struct {
	Skills        []string          `json:"skills,omitempty"`
	Abbreviations map[string]string `json:"abbreviations,omitempty"`
	Jobs          []Job             `json:"jobs" validate:"dive"`
}

// Validate checks every job in the catalog.
func (c *Catalog) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
