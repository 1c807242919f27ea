package query

import (
	"context"
	"testing"
	"time"

	"github.com/fairlane-hq/fairlane/internal/domain"
	"github.com/fairlane-hq/fairlane/internal/infra/sqlite"
)

// setupService seeds:
//
//	client 1 — contract 10 (in_progress, contractor 5), contract 11 (new,
//	           contractor 6), contract 12 (terminated, contractor 5)
//	jobs: 100 (c10, unpaid 201.00), 101 (c10, paid), 102 (c11, unpaid 100.00)
func setupService(t *testing.T) (*Service, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	profiles := []domain.Profile{
		{ID: 1, Type: domain.ProfileClient, FirstName: "Harry", LastName: "Potter", BalanceCents: 100000},
		{ID: 5, Type: domain.ProfileContractor, FirstName: "John", LastName: "Lenon", Profession: "musician"},
		{ID: 6, Type: domain.ProfileContractor, FirstName: "Linus", LastName: "Torvalds", Profession: "programmer"},
	}
	for _, p := range profiles {
		if err := db.InsertProfile(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	contracts := []domain.Contract{
		{ID: 10, ClientID: 1, ContractorID: 5, Status: domain.ContractInProgress},
		{ID: 11, ClientID: 1, ContractorID: 6, Status: domain.ContractNew},
		{ID: 12, ClientID: 1, ContractorID: 5, Status: domain.ContractTerminated},
	}
	for _, c := range contracts {
		if err := db.InsertContract(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
	created := time.Date(2020, 8, 15, 12, 0, 0, 0, time.UTC)
	paidAt := created.Add(time.Hour)
	jobs := []domain.Job{
		{ID: 100, ContractID: 10, PriceCents: 20100, CreatedAt: created},
		{ID: 101, ContractID: 10, PriceCents: 5000, Paid: true, PaymentDate: &paidAt, CreatedAt: created},
		{ID: 102, ContractID: 11, PriceCents: 10000, CreatedAt: created},
	}
	for _, j := range jobs {
		if err := db.InsertJob(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	return New(db), db
}

func clientProfile(t *testing.T, db *sqlite.DB) domain.Profile {
	t.Helper()
	p, ok, err := db.ProfileByID(context.Background(), 1)
	if err != nil || !ok {
		t.Fatalf("profile 1: ok=%v err=%v", ok, err)
	}
	return p
}

func TestActiveContractsForProfile(t *testing.T) {
	svc, db := setupService(t)

	contracts, err := svc.ActiveContractsForProfile(context.Background(), clientProfile(t, db))
	if err != nil {
		t.Fatalf("ActiveContractsForProfile() error: %v", err)
	}
	if len(contracts) != 1 || contracts[0].ID != 10 {
		t.Errorf("active contracts = %+v, want only contract 10", contracts)
	}
}

func TestNonTerminatedContractsForProfile(t *testing.T) {
	svc, db := setupService(t)

	contracts, err := svc.NonTerminatedContractsForProfile(context.Background(), clientProfile(t, db))
	if err != nil {
		t.Fatalf("NonTerminatedContractsForProfile() error: %v", err)
	}
	if len(contracts) != 2 {
		t.Fatalf("got %d contracts, want 2 (in_progress + new)", len(contracts))
	}
	for _, c := range contracts {
		if c.Status == domain.ContractTerminated {
			t.Errorf("terminated contract %d must not be listed", c.ID)
		}
	}
}

func TestUnpaidJobsForContracts_EmptyShortCircuit(t *testing.T) {
	svc, _ := setupService(t)

	jobs, err := svc.UnpaidJobsForContracts(context.Background(), nil)
	if err != nil {
		t.Fatalf("UnpaidJobsForContracts(nil) error: %v", err)
	}
	if jobs != nil {
		t.Errorf("empty input must short-circuit to empty output, got %+v", jobs)
	}
}

func TestUnpaidTotalForProfile(t *testing.T) {
	svc, db := setupService(t)

	// Only contract 10 is active; its unpaid job is 100 (20100 cents) —
	// the paid job 101 and the new-contract job 102 do not count.
	total, err := svc.UnpaidTotalForProfile(context.Background(), clientProfile(t, db))
	if err != nil {
		t.Fatalf("UnpaidTotalForProfile() error: %v", err)
	}
	if total != 20100 {
		t.Errorf("total = %d, want 20100", total)
	}
}

func TestJobWithContract_NotFoundIsExplicit(t *testing.T) {
	svc, _ := setupService(t)

	_, ok, err := svc.JobWithContract(context.Background(), 999)
	if err != nil {
		t.Fatalf("JobWithContract() error: %v", err)
	}
	if ok {
		t.Error("absent job must report ok=false, not an error")
	}
}
