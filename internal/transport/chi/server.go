// Package chi exposes the search engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/domain"
	healthuc "github.com/lorehub/relevance/internal/usecase/health"
	searchuc "github.com/lorehub/relevance/internal/usecase/search"
)

// Server holds the HTTP handlers for the search API.
type Server struct {
	search *searchuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{search: search, health: health, logger: logger}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/search", s.handleSearch)
	r.Get("/v1/suggest", s.handleSuggest)
	r.Get("/v1/filters", s.handleFilters)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// handleSearch handles POST /v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	query, err := queryFromRequest(req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	resp := s.search.Search(ctx, query)
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, responseToDTO(resp))
}

// handleSuggest handles GET /v1/suggest.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	suggestions, err := s.search.Suggest(r.Context(), partial, limit)
	if err != nil {
		s.logger.Error("Suggest failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "suggestions unavailable")
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

// handleFilters handles GET /v1/filters.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := s.search.AvailableFilters(r.Context())
	if err != nil {
		s.logger.Error("Filter enumeration failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "filters unavailable")
		return
	}
	writeJSON(w, http.StatusOK, filtersToDTO(filters))
}

// handleHealth handles GET /healthz. Degraded deployments still answer 200:
// lexical search works without the embedding provider.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.StatusDown {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
