package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Settlement Sentinels ───────────────────────────────────────────────────
// Returned when an in-transaction re-check fails. Callers pre-validate, so
// hitting one of these means a concurrent request won the race; the engine
// maps them back to the same business errors the pre-check would have given.

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrJobAlreadyPaid      = errors.New("job already paid")
	ErrContractNotActive   = errors.New("contract not in progress")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ─── Settlement Transaction ─────────────────────────────────────────────────

// SettleJob executes the pay-for-job transfer as one IMMEDIATE transaction:
// debit the client, credit the contractor, mark the job paid, write the
// audit row. All four commit together or none do.
//
// The job, contract and balance preconditions are re-verified inside the
// transaction. The caller's earlier checks ran outside any lock; only the
// re-check under the write lock closes the double-pay race.
func (db *DB) SettleJob(ctx context.Context, jobID, clientID int64, now time.Time) (domain.Settlement, error) {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback()

	// Re-read job + contract under the write lock.
	var (
		priceCents   int64
		paidInt      int
		contractorID int64
		status       string
	)
	err = tx.QueryRowContext(ctx, `
		SELECT j.price_cents, j.paid, c.contractor_id, c.status
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.id = ? AND c.client_id = ?
	`, jobID, clientID).Scan(&priceCents, &paidInt, &contractorID, &status)
	if err == sql.ErrNoRows {
		return domain.Settlement{}, ErrJobNotFound
	}
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("settlement read: %w", err)
	}
	if paidInt == 1 {
		return domain.Settlement{}, ErrJobAlreadyPaid
	}
	if domain.ContractStatus(status) != domain.ContractInProgress {
		return domain.Settlement{}, ErrContractNotActive
	}

	// Debit the client. The balance guard is part of the UPDATE so the
	// read-check-write is a single statement under the transaction lock.
	res, err := tx.ExecContext(ctx, `
		UPDATE profiles SET balance_cents = balance_cents - ?
		WHERE id = ? AND balance_cents >= ?
	`, priceCents, clientID, priceCents)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("debit client: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Settlement{}, ErrInsufficientBalance
	}

	// Credit the contractor. A vanished contractor profile rolls back the
	// debit — money is never left in flight.
	res, err = tx.ExecContext(ctx, `
		UPDATE profiles SET balance_cents = balance_cents + ?
		WHERE id = ?
	`, priceCents, contractorID)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("credit contractor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Settlement{}, fmt.Errorf("contractor %d: %w", contractorID, domain.ErrProfileMissing)
	}

	// Mark the job paid exactly once.
	settledAt := now.UTC().Truncate(time.Second)
	res, err = tx.ExecContext(ctx, `
		UPDATE jobs SET paid = 1, payment_date = ?
		WHERE id = ? AND paid = 0
	`, encodeTime(settledAt), jobID)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("mark job paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Settlement{}, ErrJobAlreadyPaid
	}

	s := domain.Settlement{
		ID:           uuid.NewString(),
		JobID:        jobID,
		ClientID:     clientID,
		ContractorID: contractorID,
		AmountCents:  priceCents,
		SettledAt:    settledAt,
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settlements (id, job_id, client_id, contractor_id, amount_cents, settled_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.ID, s.JobID, s.ClientID, s.ContractorID, s.AmountCents, encodeTime(s.SettledAt)); err != nil {
		return domain.Settlement{}, fmt.Errorf("write settlement audit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Settlement{}, fmt.Errorf("commit settlement: %w", err)
	}
	return s, nil
}

// Deposit credits a profile balance by amountCents. A unilateral credit
// needs no transaction coupling — it is a single-row update.
func (db *DB) Deposit(ctx context.Context, profileID, amountCents int64) error {
	res, err := db.db.ExecContext(ctx, `
		UPDATE profiles SET balance_cents = balance_cents + ?
		WHERE id = ?
	`, amountCents, profileID)
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %d: %w", profileID, domain.ErrProfileMissing)
	}
	return nil
}

// ─── Audit Queries ──────────────────────────────────────────────────────────

// RecentSettlements returns the latest settlement audit rows, newest first.
func (db *DB) RecentSettlements(ctx context.Context, limit int) ([]domain.Settlement, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.db.QueryContext(ctx, `
		SELECT id, job_id, client_id, contractor_id, amount_cents, settled_at
		FROM settlements
		ORDER BY settled_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Settlement
	for rows.Next() {
		var s domain.Settlement
		var settledAt string
		if err := rows.Scan(&s.ID, &s.JobID, &s.ClientID, &s.ContractorID, &s.AmountCents, &settledAt); err != nil {
			return nil, err
		}
		s.SettledAt = decodeTime(settledAt)
		result = append(result, s)
	}
	return result, rows.Err()
}
