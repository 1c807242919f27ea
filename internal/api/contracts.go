package api

import (
	"net/http"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Contract Routes ────────────────────────────────────────────────────────

// handleContractByID returns a single contract if it belongs to the caller.
// GET /contracts/{id}
func (s *Server) handleContractByID(w http.ResponseWriter, r *http.Request) {
	profile := profileFrom(r)

	id, err := idParam(r, "id", "Contract id")
	if err != nil {
		writeError(w, err)
		return
	}

	contract, ok, err := s.queries.ContractByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, domain.NotFound("No contract found with the given id"))
		return
	}
	if !contract.BelongsTo(profile) {
		writeError(w, domain.Unauthorized(""))
		return
	}

	writeJSON(w, http.StatusOK, contract)
}

// handleContracts lists the caller's non-terminated contracts.
// GET /contracts/
func (s *Server) handleContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := s.queries.NonTerminatedContractsForProfile(r.Context(), profileFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if contracts == nil {
		contracts = []domain.Contract{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"contracts": contracts})
}
