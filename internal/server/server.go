package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/okorotenko/email-risk/docs"
	"github.com/okorotenko/email-risk/internal/analytics"
	"github.com/okorotenko/email-risk/internal/engine"
	"github.com/okorotenko/email-risk/internal/lock"
	"github.com/okorotenko/email-risk/internal/logger"
	"github.com/okorotenko/email-risk/internal/updater"
)

const validateTimeout = 30 * time.Second

// Server exposes the validation engine, analytics and refresh job over HTTP.
// Reporter, updater and refresh lock are optional; their routes respond 503
// when the backing service is not configured.
type Server struct {
	engine   *engine.Engine
	reporter *analytics.Reporter
	updater  *updater.Updater
	refresh  *lock.RefreshLock
	port     string
}

// NewServer creates a Server listening on the given port.
func NewServer(eng *engine.Engine, reporter *analytics.Reporter, upd *updater.Updater, refresh *lock.RefreshLock, port string) *Server {
	return &Server{
		engine:   eng,
		reporter: reporter,
		updater:  upd,
		refresh:  refresh,
		port:     port,
	}
}

// Start initializes the routes and begins listening for HTTP requests
func (s *Server) Start() error {
	router := http.NewServeMux()
	router.HandleFunc("/validate", s.handleValidate)   // Route for single-email validation
	router.HandleFunc("/analytics", s.handleAnalytics) // Route for aggregate reports
	router.Handle("/admin/refresh", AdminMiddleware(http.HandlerFunc(s.handleRefresh)))
	router.Handle("/metrics", promhttp.Handler())           // Route for prometheus metrics
	router.HandleFunc("/healthz", s.handleHealth)           // Route for liveness probe
	router.HandleFunc("/swagger/", httpSwagger.WrapHandler) // Route for swagger UI

	handler := loggingMiddleware(corsMiddleware(router))

	logger.Logf("listening on :%s", s.port)
	return http.ListenAndServe(":"+s.port, handler)
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Email      string            `json:"email"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	StrictMode bool              `json:"strictMode,omitempty"`
}

// handleValidate runs the full probe battery for one address
// @Summary      Assess one email address
// @Accept       json
// @Produce      json
// @Param        request body ValidateRequest true "address to assess"
// @Success      200 {object} types.Report
// @Router       /validate [post]
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), validateTimeout)
	defer cancel()

	report, err := s.engine.Validate(ctx, req.Email, req.Metadata, req.StrictMode)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidEmail) {
			respondError(w, http.StatusBadRequest, "Invalid email format")
			return
		}
		respondError(w, http.StatusInternalServerError, "Validation failed")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// handleAnalytics serves aggregate reports over recorded validations
// @Summary      Aggregate validation analytics
// @Produce      json
// @Param        days    query int    false "lookback window in days"
// @Param        start   query string false "range start YYYY-MM-DD"
// @Param        end     query string false "range end YYYY-MM-DD"
// @Param        domain  query string false "filter by domain"
// @Success      200 {object} analytics.Report
// @Router       /analytics [get]
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.reporter == nil {
		respondError(w, http.StatusServiceUnavailable, "Analytics storage not configured")
		return
	}

	q := analytics.Query{
		Start:  r.URL.Query().Get("start"),
		End:    r.URL.Query().Get("end"),
		Domain: r.URL.Query().Get("domain"),
	}
	q.Days, _ = strconv.Atoi(r.URL.Query().Get("days"))
	q.MinRisk, _ = strconv.Atoi(r.URL.Query().Get("minRisk"))
	q.MaxRisk, _ = strconv.Atoi(r.URL.Query().Get("maxRisk"))

	report, err := s.reporter.Run(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// handleRefresh triggers a disposable-list rebuild. Admin only. The lock
// keeps concurrent triggers, local or from other replicas, from overlapping.
// @Summary      Rebuild the disposable-domain store
// @Produce      json
// @Success      200 {object} updater.Result
// @Router       /admin/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.updater == nil {
		respondError(w, http.StatusServiceUnavailable, "Updater not configured")
		return
	}

	if s.refresh != nil {
		if !s.refresh.Acquire(r.Context()) {
			respondError(w, http.StatusConflict, "Refresh already in progress")
			return
		}
		defer s.refresh.Release(r.Context())
	}

	result, err := s.updater.Run(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log("Failed to write response: " + err.Error())
	}
}
