// Package api provides the HTTP boundary of the payments ledger.
// It resolves the caller's profile, validates request parameters, invokes
// the query/settlement/aggregation services and renders JSON with a uniform
// error envelope: {status, error: {code, message, detail?}}.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fairlane-hq/fairlane/internal/app/aggregate"
	"github.com/fairlane-hq/fairlane/internal/app/query"
	"github.com/fairlane-hq/fairlane/internal/app/settlement"
	"github.com/fairlane-hq/fairlane/internal/domain"
	"github.com/fairlane-hq/fairlane/internal/infra/observability"
	"github.com/fairlane-hq/fairlane/internal/infra/sqlite"
)

// Server is the ledger HTTP API server.
type Server struct {
	db             *sqlite.DB
	queries        *query.Service
	settlements    *settlement.Engine
	reports        *aggregate.Engine
	metricsEnabled bool
}

// NewServer creates an API server over the ledger store and services.
func NewServer(db *sqlite.DB, queries *query.Service, settlements *settlement.Engine, reports *aggregate.Engine) *Server {
	return &Server{db: db, queries: queries, settlements: settlements, reports: reports}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	// Profile-scoped routes: every caller must resolve to a profile.
	r.Group(func(r chi.Router) {
		r.Use(s.requireProfile)

		r.Get("/contracts/{id}", s.handleContractByID)
		r.Get("/contracts/", s.handleContracts)
		r.Get("/jobs/unpaid", s.handleUnpaidJobs)
		r.Post("/jobs/{job_id}/pay", s.handlePayForJob)
		r.Post("/balances/deposit/{userId}", s.handleDeposit)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/best-profession", s.handleBestProfession)
			r.Get("/best-clients", s.handleBestClients)
			r.Get("/settlements", s.handleSettlements)
		})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// handleHealth reports whether the ledger store is reachable.
// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		log.Printf("[api] health check failed: %v", err)
		writeError(w, domain.ServerError())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─── JSON Helpers ───────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorEnvelope is the uniform error shape.
type errorEnvelope struct {
	Status int           `json:"status"`
	Error  *domain.Error `json:"error"`
}

// writeError renders an error. Coded business errors map to their own
// status; anything else is logged and surfaced as an opaque 500 so store
// internals never leak to the caller.
func writeError(w http.ResponseWriter, err error) {
	coded, ok := domain.AsError(err)
	if !ok {
		log.Printf("[api] internal error: %v", err)
		observability.StoreErrors.Inc()
		coded = domain.ServerError()
	}
	writeJSON(w, coded.Status, errorEnvelope{Status: coded.Status, Error: coded})
}

// corsMiddleware adds CORS headers for browser clients.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, profile_id")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
