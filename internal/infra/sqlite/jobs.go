package sqlite

import (
	"context"
	"database/sql"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Job Operations ─────────────────────────────────────────────────────────

// InsertJob inserts a job with an explicit id (seed/admin path).
func (db *DB) InsertJob(ctx context.Context, j domain.Job) error {
	var paymentDate *string
	if j.PaymentDate != nil {
		s := encodeTime(*j.PaymentDate)
		paymentDate = &s
	}
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO jobs (id, contract_id, description, price_cents, paid, payment_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, j.ID, j.ContractID, j.Description, j.PriceCents, boolInt(j.Paid), paymentDate, encodeTime(j.CreatedAt))
	return err
}

// UnpaidJobsForContracts returns unpaid jobs whose contract id is in the
// given set. An empty set short-circuits without querying.
func (db *DB) UnpaidJobsForContracts(ctx context.Context, contractIDs []int64) ([]domain.Job, error) {
	if len(contractIDs) == 0 {
		return nil, nil
	}

	rows, err := db.db.QueryContext(ctx, `
		SELECT id, contract_id, description, price_cents, paid, payment_date, created_at
		FROM jobs
		WHERE paid = 0 AND contract_id IN (`+placeholders(len(contractIDs))+`)
		ORDER BY id
	`, int64Args(contractIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, j)
	}
	return result, rows.Err()
}

// JobWithContract returns the job joined with its owning contract, or
// ok=false when no such job exists.
func (db *DB) JobWithContract(ctx context.Context, jobID int64) (domain.JobContract, bool, error) {
	var (
		jc          domain.JobContract
		paidInt     int
		paymentDate sql.NullString
		createdAt   string
		status      string
	)
	err := db.db.QueryRowContext(ctx, `
		SELECT j.id, j.contract_id, j.description, j.price_cents, j.paid, j.payment_date, j.created_at,
		       c.id, c.client_id, c.contractor_id, c.terms, c.status
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.id = ?
	`, jobID).Scan(
		&jc.Job.ID, &jc.Job.ContractID, &jc.Job.Description, &jc.Job.PriceCents, &paidInt, &paymentDate, &createdAt,
		&jc.Contract.ID, &jc.Contract.ClientID, &jc.Contract.ContractorID, &jc.Contract.Terms, &status,
	)
	if err == sql.ErrNoRows {
		return domain.JobContract{}, false, nil
	}
	if err != nil {
		return domain.JobContract{}, false, err
	}

	jc.Job.Paid = paidInt == 1
	if paymentDate.Valid {
		t := decodeTime(paymentDate.String)
		jc.Job.PaymentDate = &t
	}
	jc.Job.CreatedAt = decodeTime(createdAt)
	jc.Contract.Status = domain.ContractStatus(status)
	return jc, true, nil
}

// scanJob scans a job row in column order id, contract_id, description,
// price_cents, paid, payment_date, created_at.
func scanJob(rows *sql.Rows) (domain.Job, error) {
	var (
		j           domain.Job
		paidInt     int
		paymentDate sql.NullString
		createdAt   string
	)
	if err := rows.Scan(&j.ID, &j.ContractID, &j.Description, &j.PriceCents, &paidInt, &paymentDate, &createdAt); err != nil {
		return domain.Job{}, err
	}
	j.Paid = paidInt == 1
	if paymentDate.Valid {
		t := decodeTime(paymentDate.String)
		j.PaymentDate = &t
	}
	j.CreatedAt = decodeTime(createdAt)
	return j, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
