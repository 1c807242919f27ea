// Package query implements the Contract Query Service: read-only lookups
// scoping contracts and jobs to a caller's profile. It never mutates the
// ledger.
package query

import (
	"context"

	"github.com/fairlane-hq/fairlane/internal/domain"
	"github.com/fairlane-hq/fairlane/internal/infra/sqlite"
)

// Service answers profile-scoped contract and job lookups.
type Service struct {
	db *sqlite.DB
}

// New creates a Contract Query Service backed by the ledger store.
func New(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// ActiveContractsForProfile returns the profile's in_progress contracts on
// its join side. This scopes "what can I pay / be paid on".
func (s *Service) ActiveContractsForProfile(ctx context.Context, profile domain.Profile) ([]domain.Contract, error) {
	return s.db.ContractsForProfile(ctx, profile.ID, profile.Type.JoinRole(),
		[]domain.ContractStatus{domain.ContractInProgress})
}

// NonTerminatedContractsForProfile returns the profile's contracts with
// status new or in_progress, for the general contract listing.
func (s *Service) NonTerminatedContractsForProfile(ctx context.Context, profile domain.Profile) ([]domain.Contract, error) {
	return s.db.ContractsForProfile(ctx, profile.ID, profile.Type.JoinRole(),
		[]domain.ContractStatus{domain.ContractInProgress, domain.ContractNew})
}

// UnpaidJobsForContracts returns unpaid jobs under the given contracts.
// An empty id set short-circuits to an empty result without querying.
func (s *Service) UnpaidJobsForContracts(ctx context.Context, contractIDs []int64) ([]domain.Job, error) {
	if len(contractIDs) == 0 {
		return nil, nil
	}
	return s.db.UnpaidJobsForContracts(ctx, contractIDs)
}

// JobWithContract returns the job joined with its owning contract.
// Absence is an explicit ok=false, not an error — the boundary turns it
// into a 404.
func (s *Service) JobWithContract(ctx context.Context, jobID int64) (domain.JobContract, bool, error) {
	return s.db.JobWithContract(ctx, jobID)
}

// ContractByID returns a single contract for the direct-lookup route.
func (s *Service) ContractByID(ctx context.Context, id int64) (domain.Contract, bool, error) {
	return s.db.ContractByID(ctx, id)
}

// UnpaidTotalForProfile computes the total unpaid-job value across the
// profile's currently active contracts. The deposit cap is checked against
// this figure.
func (s *Service) UnpaidTotalForProfile(ctx context.Context, profile domain.Profile) (int64, error) {
	contracts, err := s.ActiveContractsForProfile(ctx, profile)
	if err != nil {
		return 0, err
	}
	ids := make([]int64, 0, len(contracts))
	for _, c := range contracts {
		ids = append(ids, c.ID)
	}

	jobs, err := s.UnpaidJobsForContracts(ctx, ids)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, j := range jobs {
		total += j.PriceCents
	}
	return total, nil
}
