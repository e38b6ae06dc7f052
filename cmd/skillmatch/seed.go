package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-skill-matcher/internal/catalog"
	"github.com/jonathan/job-skill-matcher/internal/db"
	"github.com/jonathan/job-skill-matcher/internal/observability"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a job catalog into the database",
	Long: `Create the jobs table if needed and replace its contents with the jobs of a
catalog file, or the bundled catalog when --file is omitted. A configured redis
cache is invalidated afterwards.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Catalog file to load (defaults to catalog.path or the bundled catalog)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Database.URL == "" {
		return errors.New("a database URL is required (set DATABASE_URL or database.url)")
	}

	path := seedFile
	if path == "" {
		path = cfg.Catalog.Path
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	ids, err := database.ReplaceJobs(ctx, cat.Jobs)
	if err != nil {
		return fmt.Errorf("failed to seed jobs: %w", err)
	}
	logger.Info("jobs seeded", zap.Int("count", len(ids)))

	if cfg.Redis.URL != "" {
		client, err := catalog.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		defer func() { _ = client.Close() }()

		cached := catalog.NewCachedSource(catalog.NewPostgresSource(database), client, cfg.Redis.CacheTTL, logger)
		if err := cached.Invalidate(ctx); err != nil {
			logger.Warn("failed to invalidate job cache", zap.String("key", cached.Key()), zap.Error(err))
		}
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]int{"seeded": len(ids)})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintCatalogSummary("SEEDED CATALOG", cat)
	return nil
}
