package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/fairlane-hq/fairlane/internal/daemon"
	"github.com/fairlane-hq/fairlane/internal/domain"
	"github.com/fairlane-hq/fairlane/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("data-dir", "", "Ledger database directory (overrides config)")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the ledger with demo data",
	Long:  `Insert a demo marketplace into the ledger: clients, contractors, contracts, and jobs in various states. Intended for local development against a fresh database.`,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load()
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Store.Dir = dir
	}

	db, err := sqlite.Open(cfg.Store.Dir)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := seedLedger(ctx, db); err != nil {
		return fmt.Errorf("seed ledger: %w", err)
	}

	log.Printf("[seed] demo ledger written to %s", cfg.Store.Dir)
	return nil
}

// seedLedger inserts the demo marketplace. IDs are fixed so the demo data is
// predictable across runs against a fresh database.
func seedLedger(ctx context.Context, db *sqlite.DB) error {
	profiles := []domain.Profile{
		{ID: 1, Type: domain.ProfileClient, FirstName: "Harry", LastName: "Potter", Profession: "wizard", BalanceCents: 115000},
		{ID: 2, Type: domain.ProfileClient, FirstName: "Mr", LastName: "Robot", Profession: "hacker", BalanceCents: 23111},
		{ID: 3, Type: domain.ProfileClient, FirstName: "John", LastName: "Snow", Profession: "knows nothing", BalanceCents: 45130},
		{ID: 4, Type: domain.ProfileClient, FirstName: "Ash", LastName: "Ketchum", Profession: "pokemon master", BalanceCents: 130},
		{ID: 5, Type: domain.ProfileContractor, FirstName: "John", LastName: "Lenon", Profession: "musician", BalanceCents: 6400},
		{ID: 6, Type: domain.ProfileContractor, FirstName: "Linus", LastName: "Torvalds", Profession: "programmer", BalanceCents: 121400},
		{ID: 7, Type: domain.ProfileContractor, FirstName: "Alan", LastName: "Turing", Profession: "programmer", BalanceCents: 2200},
		{ID: 8, Type: domain.ProfileContractor, FirstName: "Aleksandr", LastName: "Solzhenitsyn", Profession: "writer", BalanceCents: 31400},
	}
	for _, p := range profiles {
		if err := db.InsertProfile(ctx, p); err != nil {
			return err
		}
	}

	contracts := []domain.Contract{
		{ID: 1, ClientID: 1, ContractorID: 5, Terms: "bla bla bla", Status: domain.ContractTerminated},
		{ID: 2, ClientID: 1, ContractorID: 6, Terms: "bla bla bla", Status: domain.ContractInProgress},
		{ID: 3, ClientID: 2, ContractorID: 6, Terms: "bla bla bla", Status: domain.ContractInProgress},
		{ID: 4, ClientID: 2, ContractorID: 7, Terms: "bla bla bla", Status: domain.ContractInProgress},
		{ID: 5, ClientID: 3, ContractorID: 8, Terms: "bla bla bla", Status: domain.ContractNew},
		{ID: 6, ClientID: 3, ContractorID: 7, Terms: "bla bla bla", Status: domain.ContractInProgress},
		{ID: 7, ClientID: 4, ContractorID: 7, Terms: "bla bla bla", Status: domain.ContractInProgress},
		{ID: 8, ClientID: 4, ContractorID: 6, Terms: "bla bla bla", Status: domain.ContractInProgress},
		{ID: 9, ClientID: 4, ContractorID: 8, Terms: "bla bla bla", Status: domain.ContractInProgress},
	}
	for _, c := range contracts {
		if err := db.InsertContract(ctx, c); err != nil {
			return err
		}
	}

	created := time.Date(2020, 8, 9, 0, 0, 0, 0, time.UTC)
	paidDates := []time.Time{
		time.Date(2020, 8, 15, 19, 11, 26, 0, time.UTC),
		time.Date(2020, 8, 15, 19, 11, 26, 0, time.UTC),
		time.Date(2020, 8, 16, 19, 11, 26, 0, time.UTC),
		time.Date(2020, 8, 17, 19, 11, 26, 0, time.UTC),
		time.Date(2020, 8, 14, 23, 11, 26, 0, time.UTC),
		time.Date(2020, 8, 15, 19, 11, 26, 0, time.UTC),
		time.Date(2020, 8, 14, 23, 11, 26, 0, time.UTC),
	}

	jobs := []domain.Job{
		{ID: 1, ContractID: 1, Description: "work", PriceCents: 20000},
		{ID: 2, ContractID: 2, Description: "work", PriceCents: 20100},
		{ID: 3, ContractID: 3, Description: "work", PriceCents: 20200},
		{ID: 4, ContractID: 4, Description: "work", PriceCents: 20000},
		{ID: 5, ContractID: 7, Description: "work", PriceCents: 20000},
		{ID: 6, ContractID: 7, Description: "work", PriceCents: 2100, Paid: true, PaymentDate: &paidDates[0]},
		{ID: 7, ContractID: 2, Description: "work", PriceCents: 2100, Paid: true, PaymentDate: &paidDates[1]},
		{ID: 8, ContractID: 3, Description: "work", PriceCents: 2100, Paid: true, PaymentDate: &paidDates[2]},
		{ID: 9, ContractID: 1, Description: "work", PriceCents: 20000, Paid: true, PaymentDate: &paidDates[3]},
		{ID: 10, ContractID: 5, Description: "work", PriceCents: 20000, Paid: true, PaymentDate: &paidDates[4]},
		{ID: 11, ContractID: 1, Description: "work", PriceCents: 2100, Paid: true, PaymentDate: &paidDates[5]},
		{ID: 12, ContractID: 2, Description: "work", PriceCents: 20000, Paid: true, PaymentDate: &paidDates[6]},
		{ID: 13, ContractID: 8, Description: "work", PriceCents: 12100},
		{ID: 14, ContractID: 9, Description: "work", PriceCents: 12100},
	}
	for i := range jobs {
		jobs[i].CreatedAt = created
		if err := db.InsertJob(ctx, jobs[i]); err != nil {
			return err
		}
	}

	return nil
}
