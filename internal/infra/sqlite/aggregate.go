package sqlite

import (
	"context"
	"time"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Aggregation Queries ────────────────────────────────────────────────────
// Windowed sums of paid jobs. Bounds are strictly exclusive on both sides,
// matching the admin reporting contract.

// GroupPaymentsByContractor sums paid-job prices with created_at strictly
// between start and end, grouped by the contractor of the owning contract.
// Rows are ordered ascending by contractor id.
func (db *DB) GroupPaymentsByContractor(ctx context.Context, start, end time.Time) ([]domain.ContractorPayment, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT c.contractor_id, SUM(j.price_cents) AS total_paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid = 1 AND j.created_at > ? AND j.created_at < ?
		GROUP BY c.contractor_id
		ORDER BY c.contractor_id
	`, encodeTime(start), encodeTime(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContractorPayment
	for rows.Next() {
		var p domain.ContractorPayment
		if err := rows.Scan(&p.ContractorID, &p.TotalCents); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GroupPaymentsByClient sums paid-job prices with created_at strictly
// between start and end, grouped by the client of the owning contract.
// Rows are ordered by total paid descending; callers truncate, never
// re-sort.
func (db *DB) GroupPaymentsByClient(ctx context.Context, start, end time.Time) ([]domain.ClientPayment, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT c.client_id, SUM(j.price_cents) AS total_paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid = 1 AND j.created_at > ? AND j.created_at < ?
		GROUP BY c.client_id
		ORDER BY total_paid DESC, c.client_id
	`, encodeTime(start), encodeTime(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClientPayment
	for rows.Next() {
		var p domain.ClientPayment
		if err := rows.Scan(&p.ClientID, &p.TotalCents); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
