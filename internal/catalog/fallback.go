package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/job-skill-matcher/internal/logging"
	"github.com/jonathan/job-skill-matcher/internal/metrics"
	"github.com/jonathan/job-skill-matcher/internal/types"
)

// BreakerSettings configures the circuit breaker guarding the primary source.
type BreakerSettings struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which closed-state counts reset. Zero never resets.
	Interval time.Duration
	// Timeout the breaker stays open before probing again.
	Timeout time.Duration
	// ConsecutiveFailures that trip the breaker.
	ConsecutiveFailures uint32
	// FetchTimeout bounds one shared fetch, independent of any caller's deadline.
	FetchTimeout time.Duration
}

// DefaultFetchTimeout bounds a shared fetch when BreakerSettings.FetchTimeout is unset.
const DefaultFetchTimeout = 10 * time.Second

// DefaultBreakerSettings returns conservative breaker settings.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 3,
		FetchTimeout:        DefaultFetchTimeout,
	}
}

// FallbackSource serves the primary source behind a circuit breaker and falls back
// to a secondary source (normally the bundled catalog) when it fails or the
// breaker is open. Concurrent fetches share a single in-flight call, which runs
// detached from the callers so one caller going away never fails the others.
type FallbackSource struct {
	primary      Source
	fallback     Source
	breaker      *gobreaker.CircuitBreaker[[]types.Job]
	group        singleflight.Group
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// NewFallbackSource wires primary and fallback. fallback may be nil, in which
// case primary failures surface as *UnavailableError.
func NewFallbackSource(primary, fallback Source, settings BreakerSettings, logger *zap.Logger) *FallbackSource {
	logger = logging.OrNop(logger)
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = DefaultBreakerSettings().ConsecutiveFailures
	}
	if settings.FetchTimeout <= 0 {
		settings.FetchTimeout = DefaultFetchTimeout
	}

	s := &FallbackSource{
		primary:      primary,
		fallback:     fallback,
		fetchTimeout: settings.FetchTimeout,
		logger:       logger,
	}
	s.breaker = gobreaker.NewCircuitBreaker[[]types.Job](gobreaker.Settings{
		Name:        primary.Name(),
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		// Cancellation says nothing about the store's health. Deadlines do: the
		// shared fetch has its own timeout, so DeadlineExceeded means the store is slow.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				zap.String("source", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return s
}

// Name returns the primary source name.
func (s *FallbackSource) Name() string {
	return s.primary.Name()
}

// State reports the breaker state ("closed", "half-open", "open").
func (s *FallbackSource) State() string {
	return s.breaker.State().String()
}

// FetchJobs fetches from the primary, or from the fallback when the primary fails.
// When ctx ends first the caller gets ctx.Err() and the shared fetch carries on
// for anyone else waiting on it.
func (s *FallbackSource) FetchJobs(ctx context.Context) ([]types.Job, error) {
	ch := s.group.DoChan("jobs", func() (interface{}, error) {
		return s.fetch(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// callers sharing one flight must not share slices
		return cloneJobs(res.Val.([]types.Job)), nil
	}
}

// fetch runs one shared fetch. base carries no cancellation; each stage gets its
// own timeout so a slow primary does not starve the fallback.
func (s *FallbackSource) fetch(base context.Context) ([]types.Job, error) {
	jobs, err := s.breaker.Execute(func() ([]types.Job, error) {
		ctx, cancel := context.WithTimeout(base, s.fetchTimeout)
		defer cancel()
		return s.primary.FetchJobs(ctx)
	})
	if err == nil {
		metrics.SourceFetches.WithLabelValues(s.primary.Name(), metrics.OutcomeSuccess).Inc()
		return jobs, nil
	}

	metrics.SourceFetches.WithLabelValues(s.primary.Name(), metrics.OutcomeFailure).Inc()
	if s.fallback == nil {
		s.logger.Error("job source failed", zap.String("source", s.primary.Name()), zap.Error(err))
		return nil, &UnavailableError{Source: s.primary.Name(), Cause: err}
	}

	s.logger.Warn("job source failed, using fallback",
		zap.String("source", s.primary.Name()),
		zap.String("fallback", s.fallback.Name()),
		zap.Error(err))

	fallbackCtx, cancel := context.WithTimeout(base, s.fetchTimeout)
	defer cancel()
	jobs, fallbackErr := s.fallback.FetchJobs(fallbackCtx)
	if fallbackErr != nil {
		metrics.SourceFetches.WithLabelValues(s.fallback.Name(), metrics.OutcomeFailure).Inc()
		return nil, &UnavailableError{
			Source: s.primary.Name() + "," + s.fallback.Name(),
			Cause:  errors.Join(err, fallbackErr),
		}
	}

	metrics.SourceFetches.WithLabelValues(s.fallback.Name(), metrics.OutcomeFallback).Inc()
	return jobs, nil
}
