package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jonathan/job-skill-matcher/internal/catalog"
	"github.com/jonathan/job-skill-matcher/internal/config"
	"github.com/jonathan/job-skill-matcher/internal/db"
	"github.com/jonathan/job-skill-matcher/internal/ranking"
	"github.com/jonathan/job-skill-matcher/internal/skills"
	"github.com/jonathan/job-skill-matcher/internal/types"
)

var errEmptyStore = errors.New("job store is empty")

// dataSource bundles the job source chosen from configuration with the catalog
// it falls back to and the connections it owns.
type dataSource struct {
	source  catalog.Source
	catalog *types.Catalog
	closers []func()
}

func (d *dataSource) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// openSource builds the job source described by cfg. Without a database URL, or
// when the database is unreachable or unseeded, the bundled (or configured)
// catalog is served. Otherwise Postgres is read through the optional redis cache
// behind a circuit breaker that falls back to the catalog.
func openSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*dataSource, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	static := catalog.NewStaticSource("static", cat.Jobs)
	ds := &dataSource{source: static, catalog: cat}

	if cfg.Database.URL == "" {
		logger.Info("no database configured, serving the local catalog", zap.Int("jobs", len(cat.Jobs)))
		return ds, nil
	}

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Warn("database unavailable, serving the local catalog", zap.Error(err))
		return ds, nil
	}

	var primary catalog.Source = catalog.NewPostgresSource(database)
	var redisCloser func()
	if cfg.Redis.URL != "" {
		client, err := catalog.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		primary = catalog.NewCachedSource(primary, client, cfg.Redis.CacheTTL, logger)
		redisCloser = func() { _ = client.Close() }
	}

	fallback := catalog.NewFallbackSource(primary, static, breakerSettings(cfg), logger)
	selected := catalog.SelectSource(ctx, fallback, static, func(ctx context.Context) error {
		n, err := database.CountJobs(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			return errEmptyStore
		}
		return nil
	})

	if selected == catalog.Source(static) {
		logger.Warn("job store not usable, serving the local catalog")
		if redisCloser != nil {
			redisCloser()
		}
		database.Close()
		return ds, nil
	}

	ds.source = selected
	ds.closers = append(ds.closers, database.Close)
	if redisCloser != nil {
		ds.closers = append(ds.closers, redisCloser)
	}
	logger.Info("serving jobs from database",
		zap.String("source", selected.Name()),
		zap.String("breaker", fallback.State()))
	return ds, nil
}

func breakerSettings(cfg *config.Config) catalog.BreakerSettings {
	return catalog.BreakerSettings{
		MaxRequests:         cfg.Breaker.MaxRequests,
		Interval:            cfg.Breaker.Interval,
		Timeout:             cfg.Breaker.Timeout,
		ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		FetchTimeout:        cfg.Server.FetchTimeout,
	}
}

// newEngine builds the match engine from the match settings.
func newEngine(cfg *config.Config) (*ranking.Engine, error) {
	policy, err := ranking.ParsePolicy(cfg.Match.Policy)
	if err != nil {
		return nil, err
	}
	return ranking.NewEngine(ranking.WithPolicy(policy), ranking.WithEmphasis(cfg.Match.Emphasis)), nil
}

// indexOptions maps the suggest settings onto skill index options.
func indexOptions(cfg *config.Config) []skills.Option {
	opts := []skills.Option{skills.WithLimit(cfg.Suggest.Limit)}
	if cfg.Suggest.Algorithm == config.AlgorithmSubsequence {
		return append(opts, skills.WithMatcher(skills.SubsequenceMatcher{}))
	}
	return append(opts, skills.WithThreshold(cfg.Suggest.Threshold))
}

// buildIndex indexes the catalog's skills together with every skill the jobs name.
func buildIndex(cfg *config.Config, cat *types.Catalog, jobs []types.Job) *skills.Index {
	opts := append([]skills.Option{skills.WithAbbreviations(catalog.Abbreviations(cat))}, indexOptions(cfg)...)
	return skills.BuildIndex(catalog.SkillNames(cat, jobs), opts...)
}

// fetchJobs reads the job list under the configured fetch timeout.
func fetchJobs(ctx context.Context, cfg *config.Config, source catalog.Source) ([]types.Job, error) {
	if cfg.Server.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Server.FetchTimeout)
		defer cancel()
	}
	return source.FetchJobs(ctx)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
