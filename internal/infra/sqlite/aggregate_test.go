package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// seedPaidJobs builds a ledger with paid jobs spread across a window:
// contractor 5 (musician) paid 100+300, contractor 6 (programmer) paid 200;
// clients 1 and 2 on the paying side.
func seedPaidJobs(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	profiles := []domain.Profile{
		{ID: 1, Type: domain.ProfileClient, FirstName: "Harry", LastName: "Potter"},
		{ID: 2, Type: domain.ProfileClient, FirstName: "Ash", LastName: "Ketchum"},
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
		{ID: 11, ClientID: 2, ContractorID: 5, Status: domain.ContractInProgress},
		{ID: 12, ClientID: 2, ContractorID: 6, Status: domain.ContractInProgress},
	}
	for _, c := range contracts {
		if err := db.InsertContract(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	inWindow := time.Date(2020, 8, 15, 12, 0, 0, 0, time.UTC)
	paidAt := time.Date(2020, 8, 20, 12, 0, 0, 0, time.UTC)
	jobs := []domain.Job{
		{ID: 100, ContractID: 10, PriceCents: 100, Paid: true, PaymentDate: &paidAt, CreatedAt: inWindow},
		{ID: 101, ContractID: 11, PriceCents: 300, Paid: true, PaymentDate: &paidAt, CreatedAt: inWindow},
		{ID: 102, ContractID: 12, PriceCents: 200, Paid: true, PaymentDate: &paidAt, CreatedAt: inWindow},
		// Unpaid: never aggregated.
		{ID: 103, ContractID: 10, PriceCents: 5000, CreatedAt: inWindow},
		// Paid but outside the window.
		{ID: 104, ContractID: 10, PriceCents: 7000, Paid: true, PaymentDate: &paidAt, CreatedAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, j := range jobs {
		if err := db.InsertJob(ctx, j); err != nil {
			t.Fatal(err)
		}
	}
}

var (
	windowStart = time.Date(2020, 8, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)
)

func TestGroupPaymentsByContractor(t *testing.T) {
	db := newTestDB(t)
	seedPaidJobs(t, db)

	got, err := db.GroupPaymentsByContractor(context.Background(), windowStart, windowEnd)
	if err != nil {
		t.Fatalf("GroupPaymentsByContractor() error: %v", err)
	}

	want := []domain.ContractorPayment{
		{ContractorID: 5, TotalCents: 400},
		{ContractorID: 6, TotalCents: 200},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGroupPaymentsByContractor_ExclusiveBounds(t *testing.T) {
	db := newTestDB(t)
	seedPaidJobs(t, db)

	// Start exactly at the jobs' created_at: strict > excludes them all.
	edge := time.Date(2020, 8, 15, 12, 0, 0, 0, time.UTC)
	got, err := db.GroupPaymentsByContractor(context.Background(), edge, windowEnd)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("boundary-equal created_at must be excluded, got %d rows", len(got))
	}
}

func TestGroupPaymentsByContractor_EmptyWindow(t *testing.T) {
	db := newTestDB(t)
	seedPaidJobs(t, db)

	got, err := db.GroupPaymentsByContractor(context.Background(),
		time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("empty window should yield no rows, got %d", len(got))
	}
}

func TestGroupPaymentsByClient_SortedDescending(t *testing.T) {
	db := newTestDB(t)
	seedPaidJobs(t, db)

	got, err := db.GroupPaymentsByClient(context.Background(), windowStart, windowEnd)
	if err != nil {
		t.Fatalf("GroupPaymentsByClient() error: %v", err)
	}

	// Client 2 paid 300+200=500, client 1 paid 100.
	want := []domain.ClientPayment{
		{ClientID: 2, TotalCents: 500},
		{ClientID: 1, TotalCents: 100},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ClientID != want[i].ClientID || got[i].TotalCents != want[i].TotalCents {
			t.Errorf("row[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
