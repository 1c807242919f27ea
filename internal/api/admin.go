package api

import (
	"net/http"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Admin Routes ───────────────────────────────────────────────────────────
// Reporting queries run against the full ledger, unscoped by the caller's
// profile.

// handleBestProfession returns the profession that earned the most in the
// window.
// GET /admin/best-profession?start=<date>&end=<date>
func (s *Server) handleBestProfession(w http.ResponseWriter, r *http.Request) {
	start, end, err := windowParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	profession, err := s.reports.BestProfession(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": profession})
}

// handleBestClients returns the top-paying clients in the window.
// GET /admin/best-clients?start=<date>&end=<date>&limit=<integer>
func (s *Server) handleBestClients(w http.ResponseWriter, r *http.Request) {
	start, end, err := windowParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := limitParam(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}

	clients, err := s.reports.BestClients(r.Context(), start, end, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": clients})
}

// handleSettlements returns the most recent settlement audit rows.
// GET /admin/settlements?limit=<integer>
func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}

	settlements, err := s.db.RecentSettlements(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if settlements == nil {
		settlements = []domain.Settlement{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"settlements": settlements})
}
