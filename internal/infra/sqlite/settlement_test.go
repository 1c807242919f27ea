package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fairlane-hq/fairlane/internal/domain"
)

// ─── SettleJob Tests ────────────────────────────────────────────────────────

func balanceOf(t *testing.T, db *DB, id int64) int64 {
	t.Helper()
	p, ok, err := db.ProfileByID(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("profile %d: ok=%v err=%v", id, ok, err)
	}
	return p.BalanceCents
}

func TestSettleJob_MovesMoneyAtomically(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db)
	ctx := context.Background()

	clientBefore := balanceOf(t, db, 1)
	contractorBefore := balanceOf(t, db, 5)
	now := time.Date(2020, 8, 16, 10, 0, 0, 0, time.UTC)

	s, err := db.SettleJob(ctx, 100, 1, now)
	if err != nil {
		t.Fatalf("SettleJob() error: %v", err)
	}

	if s.AmountCents != 20100 {
		t.Errorf("AmountCents = %d, want 20100", s.AmountCents)
	}
	if s.ContractorID != 5 {
		t.Errorf("ContractorID = %d, want 5", s.ContractorID)
	}
	if s.ID == "" {
		t.Error("settlement id should be set")
	}

	clientAfter := balanceOf(t, db, 1)
	contractorAfter := balanceOf(t, db, 5)

	if clientAfter != clientBefore-20100 {
		t.Errorf("client balance = %d, want %d", clientAfter, clientBefore-20100)
	}
	if contractorAfter != contractorBefore+20100 {
		t.Errorf("contractor balance = %d, want %d", contractorAfter, contractorBefore+20100)
	}
	// Conservation: the pair's total is invariant across the settlement.
	if clientBefore+contractorBefore != clientAfter+contractorAfter {
		t.Error("settlement must conserve the combined balance")
	}

	jc, ok, err := db.JobWithContract(ctx, 100)
	if err != nil || !ok {
		t.Fatalf("JobWithContract: ok=%v err=%v", ok, err)
	}
	if !jc.Job.Paid {
		t.Error("job should be marked paid")
	}
	if jc.Job.PaymentDate == nil || !jc.Job.PaymentDate.Equal(now) {
		t.Errorf("PaymentDate = %v, want %v", jc.Job.PaymentDate, now)
	}
}

func TestSettleJob_WritesAuditRow(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db)
	ctx := context.Background()

	s, err := db.SettleJob(ctx, 100, 1, time.Now())
	if err != nil {
		t.Fatalf("SettleJob() error: %v", err)
	}

	audit, err := db.RecentSettlements(ctx, 10)
	if err != nil {
		t.Fatalf("RecentSettlements() error: %v", err)
	}
	if len(audit) != 1 {
		t.Fatalf("got %d audit rows, want 1", len(audit))
	}
	if audit[0].ID != s.ID || audit[0].JobID != 100 || audit[0].AmountCents != 20100 {
		t.Errorf("audit row = %+v, want settlement %s for job 100", audit[0], s.ID)
	}
}

func TestSettleJob_SecondAttemptFails(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db)
	ctx := context.Background()

	if _, err := db.SettleJob(ctx, 100, 1, time.Now()); err != nil {
		t.Fatalf("first SettleJob() error: %v", err)
	}

	clientBefore := balanceOf(t, db, 1)
	contractorBefore := balanceOf(t, db, 5)

	_, err := db.SettleJob(ctx, 100, 1, time.Now())
	if !errors.Is(err, ErrJobAlreadyPaid) {
		t.Fatalf("second SettleJob() error = %v, want ErrJobAlreadyPaid", err)
	}

	// No double mutation.
	if balanceOf(t, db, 1) != clientBefore || balanceOf(t, db, 5) != contractorBefore {
		t.Error("failed settlement must not move money")
	}
}

func TestSettleJob_InsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db)
	ctx := context.Background()

	// Client 2 only has a terminated contract; give them an active one
	// with a job they cannot afford.
	if err := db.InsertContract(ctx, domain.Contract{ID: 13, ClientID: 2, ContractorID: 5, Status: domain.ContractInProgress}); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertJob(ctx, domain.Job{ID: 104, ContractID: 13, PriceCents: 99999999, CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	clientBefore := balanceOf(t, db, 2)

	_, err := db.SettleJob(ctx, 104, 2, time.Now())
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("SettleJob() error = %v, want ErrInsufficientBalance", err)
	}

	if balanceOf(t, db, 2) != clientBefore {
		t.Error("balances must be unchanged after a failed settlement")
	}
	jc, _, _ := db.JobWithContract(ctx, 104)
	if jc.Job.Paid {
		t.Error("job must remain unpaid after a failed settlement")
	}
}

func TestSettleJob_TerminatedContract(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db)
	ctx := context.Background()

	_, err := db.SettleJob(ctx, 103, 2, time.Now())
	if !errors.Is(err, ErrContractNotActive) {
		t.Fatalf("SettleJob() error = %v, want ErrContractNotActive", err)
	}
	jc, _, _ := db.JobWithContract(ctx, 103)
	if jc.Job.Paid {
		t.Error("job on terminated contract must remain unpaid")
	}
}

func TestSettleJob_WrongClient(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db)

	_, err := db.SettleJob(context.Background(), 100, 2, time.Now())
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("SettleJob() for non-owning client = %v, want ErrJobNotFound", err)
	}
}

// ─── Deposit Tests ──────────────────────────────────────────────────────────

func TestDeposit(t *testing.T) {
	db := newTestDB(t)
	seedLedger(t, db)
	ctx := context.Background()

	before := balanceOf(t, db, 1)
	if err := db.Deposit(ctx, 1, 5000); err != nil {
		t.Fatalf("Deposit() error: %v", err)
	}
	if got := balanceOf(t, db, 1); got != before+5000 {
		t.Errorf("balance = %d, want %d", got, before+5000)
	}
}

func TestDeposit_MissingProfile(t *testing.T) {
	db := newTestDB(t)

	err := db.Deposit(context.Background(), 999, 5000)
	if !errors.Is(err, domain.ErrProfileMissing) {
		t.Fatalf("Deposit() error = %v, want ErrProfileMissing", err)
	}
}
