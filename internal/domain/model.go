// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import (
	"fmt"
	"time"
)

// ─── Profile Types ──────────────────────────────────────────────────────────

// ProfileType distinguishes the two parties of the marketplace.
type ProfileType string

const (
	ProfileClient     ProfileType = "client"
	ProfileContractor ProfileType = "contractor"
)

// JoinRole names the contract column a profile type joins on.
type JoinRole int

const (
	RoleClient JoinRole = iota
	RoleContractor
)

// JoinRole maps a profile type to its contract side. Clients own the
// client_id column, contractors the contractor_id column.
func (t ProfileType) JoinRole() JoinRole {
	if t == ProfileContractor {
		return RoleContractor
	}
	return RoleClient
}

// Profile is a party in the system: a client who funds jobs or a
// contractor who gets paid for them.
type Profile struct {
	ID           int64       `json:"id"`
	Type         ProfileType `json:"type"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Profession   string      `json:"profession,omitempty"`
	BalanceCents int64       `json:"balance_cents"`
}

// IsClient reports whether the profile is on the paying side.
func (p Profile) IsClient() bool { return p.Type == ProfileClient }

// FullName returns "First Last".
func (p Profile) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

// ─── Contract Types ─────────────────────────────────────────────────────────

// ContractStatus is the lifecycle state of a contract.
// Transitions run new → in_progress → terminated; the ledger core only
// reads status to gate payment eligibility.
type ContractStatus string

const (
	ContractNew        ContractStatus = "new"
	ContractInProgress ContractStatus = "in_progress"
	ContractTerminated ContractStatus = "terminated"
)

// Contract is an agreement between exactly one client and one contractor.
type Contract struct {
	ID           int64          `json:"id"`
	ClientID     int64          `json:"client_id"`
	ContractorID int64          `json:"contractor_id"`
	Terms        string         `json:"terms,omitempty"`
	Status       ContractStatus `json:"status"`
}

// PartyID returns the profile id on the given contract side.
func (c Contract) PartyID(role JoinRole) int64 {
	if role == RoleContractor {
		return c.ContractorID
	}
	return c.ClientID
}

// BelongsTo reports whether the profile sits on its own side of the contract.
func (c Contract) BelongsTo(p Profile) bool {
	return c.PartyID(p.Type.JoinRole()) == p.ID
}

// ─── Job Types ──────────────────────────────────────────────────────────────

// Job is a unit of billable work under one contract. Once paid, price and
// paid are immutable — there is no un-paying.
type Job struct {
	ID          int64      `json:"id"`
	ContractID  int64      `json:"contract_id"`
	Description string     `json:"description,omitempty"`
	PriceCents  int64      `json:"price_cents"`
	Paid        bool       `json:"paid"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// JobContract is a job joined with its owning contract.
type JobContract struct {
	Job      Job      `json:"job"`
	Contract Contract `json:"contract"`
}

// ─── Settlement Types ───────────────────────────────────────────────────────

// Settlement is the audit record of one successful pay-for-job transfer.
// It is written in the same transaction that moves the money.
type Settlement struct {
	ID           string    `json:"id"`
	JobID        int64     `json:"job_id"`
	ClientID     int64     `json:"client_id"`
	ContractorID int64     `json:"contractor_id"`
	AmountCents  int64     `json:"amount_cents"`
	SettledAt    time.Time `json:"settled_at"`
}

// ─── Aggregation Types ──────────────────────────────────────────────────────

// ContractorPayment is one row of the windowed paid-job sum grouped by
// contractor.
type ContractorPayment struct {
	ContractorID int64 `json:"ContractorId"`
	TotalCents   int64 `json:"totalPaid"`
}

// ClientPayment is one row of the windowed paid-job sum grouped by client,
// optionally enriched with the client's full name.
type ClientPayment struct {
	ClientID   int64  `json:"ClientId"`
	TotalCents int64  `json:"totalPaid"`
	FullName   string `json:"fullName,omitempty"`
}
