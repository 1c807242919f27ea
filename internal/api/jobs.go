package api

import (
	"net/http"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Job Routes ─────────────────────────────────────────────────────────────

// handleUnpaidJobs lists the caller's unpaid jobs on active contracts.
// GET /jobs/unpaid
func (s *Server) handleUnpaidJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contracts, err := s.queries.ActiveContractsForProfile(ctx, profileFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	contractIDs := make([]int64, 0, len(contracts))
	for _, c := range contracts {
		contractIDs = append(contractIDs, c.ID)
	}

	jobs, err := s.queries.UnpaidJobsForContracts(ctx, contractIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"unpaidJobs": jobs})
}

// handlePayForJob settles a job: moves its price from the calling client to
// the contractor and marks it paid.
// POST /jobs/{job_id}/pay
func (s *Server) handlePayForJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := idParam(r, "job_id", "Job id")
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := s.settlements.PayForJob(r.Context(), profileFrom(r), jobID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Payment successful"})
}
