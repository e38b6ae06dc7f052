//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/jonathan/job-skill-matcher/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if _, err := db.DeleteAllJobs(ctx); err != nil {
		t.Fatalf("Failed to clear jobs: %v", err)
	}

	return db
}

func TestIntegration_Jobs_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	seed := []types.Job{
		{Title: "Frontend Developer", RequiredSkills: []string{"HTML", "CSS"}, SuggestedSkills: []string{"Redux"}},
		{Title: "Network Administrator", RequiredSkills: []string{"Linux"}},
	}

	t.Run("insert and list keeps order", func(t *testing.T) {
		ids, err := db.InsertJobs(ctx, seed)
		if err != nil {
			t.Fatalf("InsertJobs failed: %v", err)
		}
		if len(ids) != 2 {
			t.Fatalf("len(ids) = %d, want 2", len(ids))
		}

		jobs, err := db.ListJobs(ctx)
		if err != nil {
			t.Fatalf("ListJobs failed: %v", err)
		}
		if len(jobs) != 2 {
			t.Fatalf("len(jobs) = %d, want 2", len(jobs))
		}
		if jobs[0].Title != "Frontend Developer" || jobs[1].Title != "Network Administrator" {
			t.Errorf("unexpected order: %q, %q", jobs[0].Title, jobs[1].Title)
		}
		if jobs[1].SuggestedSkills == nil {
			t.Error("SuggestedSkills should be an empty slice, not nil")
		}
	})

	t.Run("replace jobs", func(t *testing.T) {
		_, err := db.ReplaceJobs(ctx, []types.Job{{Title: "Data Analyst", RequiredSkills: []string{"SQL"}}})
		if err != nil {
			t.Fatalf("ReplaceJobs failed: %v", err)
		}

		n, err := db.CountJobs(ctx)
		if err != nil {
			t.Fatalf("CountJobs failed: %v", err)
		}
		if n != 1 {
			t.Errorf("CountJobs = %d, want 1", n)
		}
	})

	t.Run("delete all", func(t *testing.T) {
		deleted, err := db.DeleteAllJobs(ctx)
		if err != nil {
			t.Fatalf("DeleteAllJobs failed: %v", err)
		}
		if deleted != 1 {
			t.Errorf("deleted = %d, want 1", deleted)
		}
	})
}
