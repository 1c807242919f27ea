// Package sqlite implements the Ledger Store: durable relational storage
// for profiles, contracts, jobs and settlement audit rows.
//
// The store is the only place money moves. Profile balances are contended
// by concurrent settlements and deposits, so every multi-row mutation runs
// inside an IMMEDIATE transaction on a single writer connection — the
// store's locking, not the callers', serializes the check-then-act
// sequences.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite ledger database.
type DB struct {
	db *sql.DB
}

// Open creates (or opens) the ledger database under dir and applies the
// schema migrations. The connection pool is capped at one connection:
// SQLite has a single writer anyway, and the cap makes BEGIN IMMEDIATE
// transactions serialize cleanly instead of returning SQLITE_BUSY.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	dsn := filepath.Join(dir, "ledger.db") +
		"?_txlock=immediate" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := &DB{db: sqlDB}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate ledger db: %w", err)
	}
	return db, nil
}

// Close closes the underlying database.
func (db *DB) Close() error { return db.db.Close() }

// Ping verifies the store is reachable.
func (db *DB) Ping(ctx context.Context) error { return db.db.PingContext(ctx) }

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id            INTEGER PRIMARY KEY,
			type          TEXT NOT NULL CHECK (type IN ('client', 'contractor')),
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			profession    TEXT NOT NULL DEFAULT '',
			balance_cents INTEGER NOT NULL DEFAULT 0 CHECK (balance_cents >= 0)
		)`,

		`CREATE TABLE IF NOT EXISTS contracts (
			id            INTEGER PRIMARY KEY,
			client_id     INTEGER NOT NULL REFERENCES profiles(id),
			contractor_id INTEGER NOT NULL REFERENCES profiles(id),
			terms         TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL CHECK (status IN ('new', 'in_progress', 'terminated'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contracts_client ON contracts(client_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_contracts_contractor ON contracts(contractor_id, status)`,

		`CREATE TABLE IF NOT EXISTS jobs (
			id           INTEGER PRIMARY KEY,
			contract_id  INTEGER NOT NULL REFERENCES contracts(id),
			description  TEXT NOT NULL DEFAULT '',
			price_cents  INTEGER NOT NULL CHECK (price_cents > 0),
			paid         INTEGER NOT NULL DEFAULT 0,
			payment_date TEXT,
			created_at   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_contract_paid ON jobs(contract_id, paid)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_paid_created ON jobs(paid, created_at)`,

		// Audit trail: one row per successful settlement, written inside
		// the same transaction that moves the money.
		`CREATE TABLE IF NOT EXISTS settlements (
			id            TEXT PRIMARY KEY,
			job_id        INTEGER NOT NULL REFERENCES jobs(id),
			client_id     INTEGER NOT NULL REFERENCES profiles(id),
			contractor_id INTEGER NOT NULL REFERENCES profiles(id),
			amount_cents  INTEGER NOT NULL,
			settled_at    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_settlements_job ON settlements(job_id)`,
	}
}

func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ─── Time Encoding ──────────────────────────────────────────────────────────
// Timestamps are stored as RFC3339 UTC text at second precision. With a
// fixed-width format and zone, lexicographic comparison equals temporal
// comparison, so window bounds are plain > / < on the column. A variable
// fractional part would break that ("T10:00:00Z" sorts after
// "T10:00:00.5Z"), hence no sub-second digits.

const timeFormat = time.RFC3339

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func decodeTime(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
