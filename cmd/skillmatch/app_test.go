package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-skill-matcher/internal/config"
	"github.com/jonathan/job-skill-matcher/internal/logging"
	"github.com/jonathan/job-skill-matcher/internal/ranking"
	"github.com/jonathan/job-skill-matcher/internal/types"
)

func TestOpenSource_WithoutDatabase(t *testing.T) {
	cfg := config.Default()

	ds, err := openSource(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, "static", ds.source.Name())
	jobs, err := ds.source.FetchJobs(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, len(ds.catalog.Jobs))
	assert.NotEmpty(t, jobs)
}

func TestOpenSource_BadCatalogPath(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Path = "does-not-exist.json"

	_, err := openSource(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestNewEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Match.Policy = string(ranking.PolicyExact)

	engine, err := newEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, ranking.PolicyExact, engine.Policy())

	cfg.Match.Policy = "nearest"
	_, err = newEngine(cfg)
	assert.Error(t, err)
}

func TestBuildIndex_Algorithms(t *testing.T) {
	cat := &types.Catalog{Skills: []string{"JavaScript", "Java", "Python"}}

	t.Run("edit distance tolerates typos", func(t *testing.T) {
		cfg := config.Default()
		idx := buildIndex(cfg, cat, nil)
		assert.Contains(t, idx.Suggest("pyhton"), "Python")
	})

	t.Run("subsequence tolerates skipped letters", func(t *testing.T) {
		cfg := config.Default()
		cfg.Suggest.Algorithm = config.AlgorithmSubsequence
		idx := buildIndex(cfg, cat, nil)
		assert.Contains(t, idx.Suggest("jvscrpt"), "JavaScript")
	})

	t.Run("limit caps suggestions", func(t *testing.T) {
		cfg := config.Default()
		cfg.Suggest.Limit = 1
		idx := buildIndex(cfg, cat, nil)
		assert.Len(t, idx.Suggest("ja"), 1)
	})

	t.Run("indexes job skills and default abbreviations", func(t *testing.T) {
		cfg := config.Default()
		jobs := []types.Job{{Title: "Ops", RequiredSkills: []string{"Kubernetes"}}}
		idx := buildIndex(cfg, cat, jobs)
		assert.Equal(t, []string{"Kubernetes"}, idx.Search("kub"))
		got, ok := idx.Resolve("k8s")
		assert.True(t, ok)
		assert.Equal(t, "Kubernetes", got)
	})
}

func TestBreakerSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Breaker.ConsecutiveFailures = 7
	cfg.Breaker.Timeout = time.Second

	settings := breakerSettings(cfg)
	assert.Equal(t, uint32(7), settings.ConsecutiveFailures)
	assert.Equal(t, time.Second, settings.Timeout)
	assert.Equal(t, cfg.Breaker.MaxRequests, settings.MaxRequests)
	assert.Equal(t, cfg.Server.FetchTimeout, settings.FetchTimeout)
}

func TestDataSourceClose_RunsInReverseOrder(t *testing.T) {
	var order []int
	ds := &dataSource{closers: []func(){
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	}}

	ds.Close()
	ds.Close()

	assert.Equal(t, []int{2, 1}, order)
}
