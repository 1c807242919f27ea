package sqlite

import (
	"context"
	"database/sql"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Contract Operations ────────────────────────────────────────────────────

// InsertContract inserts a contract with an explicit id (seed/admin path).
func (db *DB) InsertContract(ctx context.Context, c domain.Contract) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO contracts (id, client_id, contractor_id, terms, status)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.ClientID, c.ContractorID, c.Terms, string(c.Status))
	return err
}

// ContractByID returns the contract with the given id, or ok=false if absent.
func (db *DB) ContractByID(ctx context.Context, id int64) (domain.Contract, bool, error) {
	var c domain.Contract
	var status string
	err := db.db.QueryRowContext(ctx, `
		SELECT id, client_id, contractor_id, terms, status
		FROM contracts WHERE id = ?
	`, id).Scan(&c.ID, &c.ClientID, &c.ContractorID, &c.Terms, &status)
	if err == sql.ErrNoRows {
		return domain.Contract{}, false, nil
	}
	if err != nil {
		return domain.Contract{}, false, err
	}
	c.Status = domain.ContractStatus(status)
	return c, true, nil
}

// ContractsForProfile returns the contracts where the profile sits on its
// join side and the status is one of the given set.
func (db *DB) ContractsForProfile(ctx context.Context, profileID int64, role domain.JoinRole, statuses []domain.ContractStatus) ([]domain.Contract, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	column := "client_id"
	if role == domain.RoleContractor {
		column = "contractor_id"
	}

	args := []any{profileID}
	for _, s := range statuses {
		args = append(args, string(s))
	}

	rows, err := db.db.QueryContext(ctx, `
		SELECT id, client_id, contractor_id, terms, status
		FROM contracts
		WHERE `+column+` = ? AND status IN (`+placeholders(len(statuses))+`)
		ORDER BY id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contract
	for rows.Next() {
		var c domain.Contract
		var status string
		if err := rows.Scan(&c.ID, &c.ClientID, &c.ContractorID, &c.Terms, &status); err != nil {
			return nil, err
		}
		c.Status = domain.ContractStatus(status)
		result = append(result, c)
	}
	return result, rows.Err()
}
