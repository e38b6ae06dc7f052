package server

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/job-skill-matcher/internal/metrics"
	"github.com/jonathan/job-skill-matcher/internal/ranking"
	"github.com/jonathan/job-skill-matcher/internal/skills"
	"github.com/jonathan/job-skill-matcher/internal/types"
)

const maxRequestBody = 1 << 20

// handleListJobs returns every job from the data source
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.fetchJobs(r.Context())
	if err != nil {
		s.logger.Error("failed to fetch jobs", zap.Error(err))
		s.errorResponse(w, http.StatusServiceUnavailable, CodeDataUnavailable, "Failed to fetch jobs.")
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleMatch scores the submitted skills against every job
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		verr := newValidationError(err)
		s.errorResponse(w, HTTPStatus(verr), ErrorCode(verr), verr.Error())
		return
	}

	selected := skills.Unique(req.Skills)
	if req.Resolve {
		selected = s.Index().ResolveAll(selected)
	}
	if len(selected) == 0 {
		// Reject before touching the data source.
		s.writeError(w, ranking.ErrInvalidInput)
		return
	}

	jobs, err := s.fetchJobs(r.Context())
	if err != nil {
		s.logger.Error("failed to fetch jobs", zap.Error(err))
		s.errorResponse(w, http.StatusServiceUnavailable, CodeDataUnavailable, "Failed to fetch jobs.")
		return
	}

	results, err := s.engine.Match(selected, jobs)
	if err != nil {
		s.writeError(w, err)
		return
	}

	metrics.MatchResults.Observe(float64(len(results)))
	s.jsonResponse(w, http.StatusOK, types.MatchResponse{
		Skills:  selected,
		Results: results,
		Count:   len(results),
	})
}

// handleListSkills returns the full indexed skill catalog
func (s *Server) handleListSkills(w http.ResponseWriter, _ *http.Request) {
	names := s.Index().Catalog()
	s.jsonResponse(w, http.StatusOK, types.SkillsResponse{Skills: names, Count: len(names)})
}

// handleSuggest returns autocomplete suggestions for ?q=
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	s.jsonResponse(w, http.StatusOK, types.SuggestResponse{
		Query:       query,
		Suggestions: s.Index().Suggest(query),
	})
}

// handleRefresh refetches jobs and republishes the skill index
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	resp, err := s.Refresh(r.Context())
	if err != nil {
		s.logger.Error("catalog refresh failed", zap.Error(err))
		s.writeError(w, err)
		return
	}
	s.logger.Info("catalog refreshed", zap.Int("jobs", resp.Jobs), zap.Int("skills", resp.Skills))
	s.jsonResponse(w, http.StatusOK, resp)
}

// writeError maps err to a status code and error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	s.errorResponse(w, status, ErrorCode(err), message)
}
