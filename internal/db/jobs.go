package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-skill-matcher/internal/types"
)

// ListJobs returns every stored job in insertion order.
func (db *DB) ListJobs(ctx context.Context) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, required_skills, suggested_skills, ordinal, created_at
		 FROM jobs ORDER BY ordinal, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]types.Job, 0)
	for rows.Next() {
		var r JobRow
		if err := rows.Scan(&r.ID, &r.Title, &r.RequiredSkills, &r.SuggestedSkills, &r.Ordinal, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, r.ToJob())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// CountJobs returns the number of stored jobs.
func (db *DB) CountJobs(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}

// InsertJobs appends jobs after the existing ones in a single transaction and
// returns the IDs they were stored under.
func (db *DB) InsertJobs(ctx context.Context, jobs []types.Job) ([]uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids, err := insertJobs(ctx, tx, jobs)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return ids, nil
}

// DeleteAllJobs removes every stored job and returns how many were deleted.
func (db *DB) DeleteAllJobs(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReplaceJobs swaps the stored jobs for the given set atomically.
func (db *DB) ReplaceJobs(ctx context.Context, jobs []types.Job) ([]uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM jobs`); err != nil {
		return nil, fmt.Errorf("failed to clear jobs: %w", err)
	}

	ids, err := insertJobs(ctx, tx, jobs)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return ids, nil
}

func insertJobs(ctx context.Context, tx pgx.Tx, jobs []types.Job) ([]uuid.UUID, error) {
	var next int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(ordinal) + 1, 0) FROM jobs`).Scan(&next); err != nil {
		return nil, fmt.Errorf("failed to read next ordinal: %w", err)
	}

	batch := &pgx.Batch{}
	ids := make([]uuid.UUID, 0, len(jobs))
	for i, job := range jobs {
		r := rowFromJob(job, next+i)
		batch.Queue(
			`INSERT INTO jobs (id, title, required_skills, suggested_skills, ordinal)
			 VALUES ($1, $2, $3, $4, $5)`,
			r.ID, r.Title, r.RequiredSkills, r.SuggestedSkills, r.Ordinal,
		)
		ids = append(ids, r.ID)
	}

	results := tx.SendBatch(ctx, batch)
	for _, job := range jobs {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return nil, fmt.Errorf("failed to insert job %q: %w", job.Title, err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert jobs: %w", err)
	}
	return ids, nil
}
