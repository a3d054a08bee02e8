package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
)

// GetDashboardMetricsHandler godoc
// @Summary Inventory summary for the dashboard
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /metrics/dashboard [get]
func (s *Server) GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.metrics.GetDashboardMetrics(r.Context())
	if err != nil {
		s.log.WithError(err).Error("dashboard metrics")
		s.fail(w, http.StatusInternalServerError, "Internal", "failed to fetch metrics")
		return
	}
	s.respond(w, http.StatusOK, m)
}

// ListImportsHandler godoc
// @Summary Recent import reports, newest first
// @Tags import
// @Produce json
// @Param limit query int false "Maximum number of reports (default 20)"
// @Success 200 {object} ImportsResult
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /imports [get]
func (s *Server) ListImportsHandler(w http.ResponseWriter, r *http.Request) {
	limit := int64(20)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			s.fail(w, http.StatusBadRequest, "InvalidQuery", "limit must be greater than zero")
			return
		}
		limit = n
	}

	result := ImportsResult{Data: []ingest.Report{}}
	if s.history != nil {
		reports, err := s.history.RecentImports(r.Context(), limit)
		if err != nil {
			s.log.WithError(err).Error("import history")
			s.fail(w, http.StatusInternalServerError, "Internal", "failed to fetch import history")
			return
		}
		result.Data = append(result.Data, reports...)
	}
	s.respond(w, http.StatusOK, result)
}

// HealthHandler godoc
// @Summary Liveness and dependency checks
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: map[string]string{}}
	status := http.StatusOK
	for name, p := range s.checks {
		if err := p.Ping(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	s.respond(w, status, resp)
}
