package api

import (
	"encoding/json"
	"net/http"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Balance Routes ─────────────────────────────────────────────────────────

// depositRequest is the POST /balances/deposit body.
type depositRequest struct {
	AmountCents *int64 `json:"amount_to_deposit"`
}

// handleDeposit credits a client's own balance, capped at 25% of their
// unpaid work.
// POST /balances/deposit/{userId}
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	targetID, err := idParam(r, "userId", "User id")
	if err != nil {
		writeError(w, err)
		return
	}

	var body depositRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.InvalidParam("Amount should be a number"))
		return
	}
	if body.AmountCents == nil {
		writeError(w, domain.ParamMissing("Amount is missing"))
		return
	}

	if err := s.settlements.Deposit(r.Context(), profileFrom(r), targetID, *body.AmountCents); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deposit successful"})
}
