package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-skill-matcher/internal/types"
)

// JobRow represents a row of the jobs table
type JobRow struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	RequiredSkills  []string  `json:"required_skills"`
	SuggestedSkills []string  `json:"suggested_skills"`
	Ordinal         int       `json:"ordinal"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToJob converts the row into the domain record.
func (r *JobRow) ToJob() types.Job {
	return types.Job{
		ID:              r.ID,
		Title:           r.Title,
		RequiredSkills:  nonNil(r.RequiredSkills),
		SuggestedSkills: nonNil(r.SuggestedSkills),
	}
}

// rowFromJob builds the row stored for job at position ordinal, assigning an ID when missing.
func rowFromJob(job types.Job, ordinal int) JobRow {
	id := job.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return JobRow{
		ID:              id,
		Title:           job.Title,
		RequiredSkills:  nonNil(job.RequiredSkills),
		SuggestedSkills: nonNil(job.SuggestedSkills),
		Ordinal:         ordinal,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
