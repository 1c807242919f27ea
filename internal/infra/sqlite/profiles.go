package sqlite

import (
	"context"
	"database/sql"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── Profile Operations ─────────────────────────────────────────────────────

// InsertProfile inserts a profile with an explicit id (seed/admin path).
func (db *DB) InsertProfile(ctx context.Context, p domain.Profile) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO profiles (id, type, first_name, last_name, profession, balance_cents)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, string(p.Type), p.FirstName, p.LastName, p.Profession, p.BalanceCents)
	return err
}

// ProfileByID returns the profile with the given id, or ok=false if absent.
func (db *DB) ProfileByID(ctx context.Context, id int64) (domain.Profile, bool, error) {
	var p domain.Profile
	var typ string
	err := db.db.QueryRowContext(ctx, `
		SELECT id, type, first_name, last_name, profession, balance_cents
		FROM profiles WHERE id = ?
	`, id).Scan(&p.ID, &typ, &p.FirstName, &p.LastName, &p.Profession, &p.BalanceCents)
	if err == sql.ErrNoRows {
		return domain.Profile{}, false, nil
	}
	if err != nil {
		return domain.Profile{}, false, err
	}
	p.Type = domain.ProfileType(typ)
	return p, true, nil
}

// ProfilesByIDs returns the profiles matching the given ids in one IN query.
// Absent ids are simply missing from the result; the caller decides whether
// that is an inconsistency.
func (db *DB) ProfilesByIDs(ctx context.Context, ids []int64) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, type, first_name, last_name, profession, balance_cents
		FROM profiles WHERE id IN (` + placeholders(len(ids)) + `)`

	rows, err := db.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Profile
	for rows.Next() {
		var p domain.Profile
		var typ string
		if err := rows.Scan(&p.ID, &typ, &p.FirstName, &p.LastName, &p.Profession, &p.BalanceCents); err != nil {
			return nil, err
		}
		p.Type = domain.ProfileType(typ)
		result = append(result, p)
	}
	return result, rows.Err()
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	s := make([]byte, 0, n*3-2)
	for i := 0; i < n; i++ {
		if i > 0 {
			s = append(s, ", "...)
		}
		s = append(s, '?')
	}
	return string(s)
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
