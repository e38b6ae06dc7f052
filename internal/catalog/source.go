package catalog

import (
	"context"
	"slices"

	"github.com/jonathan/job-skill-matcher/internal/types"
)

// Source fetches the full list of job records.
type Source interface {
	Name() string
	FetchJobs(ctx context.Context) ([]types.Job, error)
}

// StaticSource serves a fixed, in-memory job list such as the bundled catalog.
type StaticSource struct {
	name string
	jobs []types.Job
}

// NewStaticSource returns a source serving copies of jobs.
func NewStaticSource(name string, jobs []types.Job) *StaticSource {
	return &StaticSource{name: name, jobs: cloneJobs(jobs)}
}

// Name returns the source name.
func (s *StaticSource) Name() string {
	return s.name
}

// FetchJobs returns a copy of the static job list.
func (s *StaticSource) FetchJobs(ctx context.Context) ([]types.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, &UnavailableError{Source: s.name, Cause: err}
	}
	return cloneJobs(s.jobs), nil
}

// JobLister is the storage capability PostgresSource needs; *db.DB satisfies it.
type JobLister interface {
	ListJobs(ctx context.Context) ([]types.Job, error)
}

// PostgresSource reads jobs from the database.
type PostgresSource struct {
	store JobLister
}

// NewPostgresSource wraps a job store.
func NewPostgresSource(store JobLister) *PostgresSource {
	return &PostgresSource{store: store}
}

// Name returns "postgres".
func (s *PostgresSource) Name() string {
	return "postgres"
}

// FetchJobs lists every stored job. Failures are reported as *UnavailableError.
func (s *PostgresSource) FetchJobs(ctx context.Context) ([]types.Job, error) {
	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return nil, &UnavailableError{Source: s.Name(), Cause: err}
	}
	return jobs, nil
}

// SelectSource picks primary when probe succeeds and fallback otherwise. A nil
// probe always selects primary; a nil fallback always selects primary.
func SelectSource(ctx context.Context, primary, fallback Source, probe func(context.Context) error) Source {
	if fallback == nil || probe == nil {
		return primary
	}
	if err := probe(ctx); err != nil {
		return fallback
	}
	return primary
}

func cloneJobs(jobs []types.Job) []types.Job {
	out := make([]types.Job, len(jobs))
	for i, job := range jobs {
		out[i] = types.Job{
			ID:              job.ID,
			Title:           job.Title,
			RequiredSkills:  slices.Clone(job.RequiredSkills),
			SuggestedSkills: slices.Clone(job.SuggestedSkills),
		}
	}
	return out
}
