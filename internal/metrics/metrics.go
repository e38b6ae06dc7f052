// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillmatch_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillmatch_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	MatchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skillmatch_match_results",
			Help:    "Number of jobs returned per match request",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	SourceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillmatch_source_fetches_total",
			Help: "Job fetches by data source and outcome",
		},
		[]string{"source", "outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillmatch_cache_lookups_total",
			Help: "Job cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	DegenerateJobs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skillmatch_degenerate_jobs",
			Help: "Jobs without required skills skipped in the last fetch",
		},
	)

	IndexedSkills = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skillmatch_indexed_skills",
			Help: "Number of skills in the published skill index",
		},
	)
)

// Outcome labels for SourceFetches.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeFallback = "fallback"
)
