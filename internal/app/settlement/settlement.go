// Package settlement implements the Settlement Engine: the only component
// that moves money. It validates the pay-for-job precondition ladder and
// the deposit cap, then delegates the atomic balance mutation to the
// ledger store's transaction.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fairlane-hq/fairlane/internal/app/query"
	"github.com/fairlane-hq/fairlane/internal/domain"
	"github.com/fairlane-hq/fairlane/internal/infra/observability"
	"github.com/fairlane-hq/fairlane/internal/infra/sqlite"
)

// Engine validates and executes settlements and deposits.
type Engine struct {
	db      *sqlite.DB
	queries *query.Service
	now     func() time.Time
}

// New creates a Settlement Engine.
func New(db *sqlite.DB, queries *query.Service) *Engine {
	return &Engine{db: db, queries: queries, now: time.Now}
}

// ─── Pay For Job ────────────────────────────────────────────────────────────

// PayForJob transfers a job's price from the paying client to the
// contractor and marks the job paid. Preconditions are checked in order,
// first failure wins; none of them touches a mutation path. The mutation
// itself re-verifies the racy checks inside one transaction.
func (e *Engine) PayForJob(ctx context.Context, payer domain.Profile, jobID int64) (domain.Settlement, error) {
	s, err := e.payForJob(ctx, payer, jobID)
	observability.SettlementsTotal.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		observability.SettledAmountCents.Add(float64(s.AmountCents))
	}
	return s, err
}

func (e *Engine) payForJob(ctx context.Context, payer domain.Profile, jobID int64) (domain.Settlement, error) {
	// Only clients pay.
	if !payer.IsClient() {
		return domain.Settlement{}, domain.Unauthorized("Only clients can pay for jobs")
	}

	jc, ok, err := e.queries.JobWithContract(ctx, jobID)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("load job %d: %w", jobID, err)
	}
	if !ok {
		return domain.Settlement{}, domain.NotFound("No job found with the given id")
	}
	if jc.Contract.ID == 0 {
		return domain.Settlement{}, domain.NotFound("No contract found for the given job")
	}

	// The payer must be the contract's client.
	if payer.ID != jc.Contract.ClientID {
		return domain.Settlement{}, domain.Unauthorized("You are not eligible to pay for this job")
	}
	if payer.BalanceCents < jc.Job.PriceCents {
		return domain.Settlement{}, domain.BadRequest("Insufficient balance")
	}
	if jc.Contract.Status != domain.ContractInProgress {
		return domain.Settlement{}, domain.BadRequest("Contract has been terminated. Payment can not be made for a terminated contract.")
	}
	if jc.Job.Paid {
		return domain.Settlement{}, domain.BadRequest("This job has already been paid for!")
	}

	s, err := e.db.SettleJob(ctx, jobID, payer.ID, e.now())
	if err != nil {
		// A sentinel here means a concurrent request won the race between
		// the checks above and the transaction; report the same business
		// error the pre-check would have.
		switch {
		case errors.Is(err, sqlite.ErrJobNotFound):
			return domain.Settlement{}, domain.NotFound("No job found with the given id")
		case errors.Is(err, sqlite.ErrJobAlreadyPaid):
			return domain.Settlement{}, domain.BadRequest("This job has already been paid for!")
		case errors.Is(err, sqlite.ErrContractNotActive):
			return domain.Settlement{}, domain.BadRequest("Contract has been terminated. Payment can not be made for a terminated contract.")
		case errors.Is(err, sqlite.ErrInsufficientBalance):
			return domain.Settlement{}, domain.BadRequest("Insufficient balance")
		}
		return domain.Settlement{}, fmt.Errorf("settle job %d: %w", jobID, err)
	}

	log.Printf("[settlement] job %d settled: client %d → contractor %d, %d cents",
		s.JobID, s.ClientID, s.ContractorID, s.AmountCents)
	return s, nil
}

// ─── Deposit ────────────────────────────────────────────────────────────────

// Deposit credits a client's own balance. The amount may not exceed 25% of
// the client's total unpaid-job value across active contracts, so with no
// unpaid work every positive deposit is rejected.
func (e *Engine) Deposit(ctx context.Context, caller domain.Profile, targetID, amountCents int64) error {
	err := e.deposit(ctx, caller, targetID, amountCents)
	observability.DepositsTotal.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		observability.DepositedAmountCents.Add(float64(amountCents))
	}
	return err
}

func (e *Engine) deposit(ctx context.Context, caller domain.Profile, targetID, amountCents int64) error {
	if caller.ID != targetID {
		return domain.Unauthorized("Clients can only deposit to their own balance")
	}
	if !caller.IsClient() {
		return domain.Unauthorized("Only clients can deposit")
	}
	if amountCents <= 0 {
		return domain.InvalidParam("Amount should be a positive number")
	}

	totalUnpaid, err := e.queries.UnpaidTotalForProfile(ctx, caller)
	if err != nil {
		return fmt.Errorf("unpaid total for profile %d: %w", caller.ID, err)
	}

	// amount > 0.25 × totalUnpaid, in exact integer arithmetic. The cap is
	// strictly greater-than: boundary-equal amounts are allowed.
	if 4*amountCents > totalUnpaid {
		return domain.BadRequest("Amount is more than 25% of the total of jobs that are unpaid")
	}

	if err := e.db.Deposit(ctx, targetID, amountCents); err != nil {
		return fmt.Errorf("deposit %d cents to profile %d: %w", amountCents, targetID, err)
	}

	log.Printf("[settlement] deposit: client %d credited %d cents", targetID, amountCents)
	return nil
}

// outcome buckets an error for the attempt counters.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if coded, ok := domain.AsError(err); ok {
		switch coded.Status {
		case 401:
			return "unauthorized"
		case 404:
			return "not_found"
		case 400:
			return "bad_request"
		}
	}
	return "error"
}
