// Package server provides the HTTP REST API for the job skill matcher.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonathan/job-skill-matcher/internal/catalog"
	"github.com/jonathan/job-skill-matcher/internal/logging"
	"github.com/jonathan/job-skill-matcher/internal/metrics"
	"github.com/jonathan/job-skill-matcher/internal/ranking"
	"github.com/jonathan/job-skill-matcher/internal/server/ratelimit"
	"github.com/jonathan/job-skill-matcher/internal/skills"
	"github.com/jonathan/job-skill-matcher/internal/types"
)

// DefaultFetchTimeout bounds a single job fetch when Config.FetchTimeout is unset.
const DefaultFetchTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	source       catalog.Source
	catalog      *types.Catalog
	registry     *skills.Registry
	engine       *ranking.Engine
	indexOptions []skills.Option
	rateLimiter  *ratelimit.Limiter
	validator    *validator.Validate
	logger       *zap.Logger
	fetchTimeout time.Duration
	refreshMu    sync.Mutex
	onClose      func()
}

// Config holds server configuration
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	FetchTimeout time.Duration

	// Source supplies job records. Required.
	Source catalog.Source
	// Catalog provides the known-skill list and abbreviations. Defaults to the bundled seed.
	Catalog *types.Catalog
	// Engine scores jobs. Defaults to ranking.NewEngine().
	Engine       *ranking.Engine
	IndexOptions []skills.Option
	// RateLimit configures per-client limiting; nil disables it.
	RateLimit *ratelimit.Config
	Logger    *zap.Logger
	// OnClose runs after the HTTP server has shut down (e.g. closing the database).
	OnClose func()
}

// New creates a new server instance and builds the initial skill index. A failed
// initial fetch is logged and the index falls back to the catalog's own skill list.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if cfg.Source == nil {
		return nil, errors.New("server: a job source is required")
	}

	if cfg.Catalog == nil {
		seed, err := catalog.Seed()
		if err != nil {
			return nil, fmt.Errorf("failed to load bundled catalog: %w", err)
		}
		cfg.Catalog = seed
	}
	if cfg.Engine == nil {
		cfg.Engine = ranking.NewEngine()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.NewConfig(0, 0)
	}

	s := &Server{
		source:       cfg.Source,
		catalog:      cfg.Catalog,
		registry:     skills.NewRegistry(nil),
		engine:       cfg.Engine,
		indexOptions: cfg.IndexOptions,
		rateLimiter:  ratelimit.NewLimiter(rateConfig),
		validator:    validator.New(),
		logger:       logging.OrNop(cfg.Logger),
		fetchTimeout: cfg.FetchTimeout,
		onClose:      cfg.OnClose,
	}

	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn("initial job fetch failed, indexing catalog skills only", zap.Error(err))
		s.publishIndex(nil)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("POST /api/jobs/match", s.handleMatch)

	mux.HandleFunc("GET /api/skills", s.handleListSkills)
	mux.HandleFunc("GET /api/skills/suggest", s.handleSuggest)

	mux.HandleFunc("POST /api/catalog/refresh", s.handleRefresh)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Index returns the currently published skill index.
func (s *Server) Index() *skills.Index {
	return s.registry.Load()
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr), zap.String("source", s.source.Name()))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serveErr:
		s.cleanup()
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.cleanup()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) cleanup() {
	s.rateLimiter.Stop()
	if s.onClose != nil {
		s.onClose()
	}
}

// Refresh refetches every job, rebuilds the skill index and publishes it atomically.
// Readers keep using the previous index until the new one is complete.
func (s *Server) Refresh(ctx context.Context) (types.RefreshResponse, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	jobs, err := s.fetchJobs(ctx)
	if err != nil {
		return types.RefreshResponse{}, err
	}

	idx := s.publishIndex(jobs)
	return types.RefreshResponse{
		Jobs:       len(jobs),
		Skills:     idx.Len(),
		Degenerate: ranking.CountDegenerate(jobs),
	}, nil
}

func (s *Server) publishIndex(jobs []types.Job) *skills.Index {
	opts := make([]skills.Option, 0, len(s.indexOptions)+1)
	opts = append(opts, skills.WithAbbreviations(catalog.Abbreviations(s.catalog)))
	opts = append(opts, s.indexOptions...)

	idx := s.registry.Rebuild(catalog.SkillNames(s.catalog, jobs), opts...)
	metrics.IndexedSkills.Set(float64(idx.Len()))
	s.logger.Debug("skill index published", zap.Int("skills", idx.Len()), zap.Int("jobs", len(jobs)))
	return idx
}

// fetchJobs reads all jobs from the source under the fetch timeout. Every failure is
// reported as data unavailability; partial results are never returned.
func (s *Server) fetchJobs(ctx context.Context) ([]types.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	jobs, err := s.source.FetchJobs(ctx)
	if err != nil {
		if !errors.Is(err, catalog.ErrDataUnavailable) {
			err = &catalog.UnavailableError{Source: s.source.Name(), Cause: err}
		}
		return nil, err
	}

	if n := ranking.CountDegenerate(jobs); n > 0 {
		s.logger.Warn("skipping jobs without required skills", zap.Int("count", n))
		metrics.DegenerateJobs.Set(float64(n))
	} else {
		metrics.DegenerateJobs.Set(0)
	}
	return jobs, nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs each request and records request metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		// the mux fills in Pattern on the way through
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
			zap.String("remote", r.RemoteAddr))
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractClientID extracts the client identifier (IP address) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "Rate limit exceeded. Please try again later.",
		"code":      "rate_limit_exceeded",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded", zap.Int("limit", info.Limit))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message, "code": code})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
