package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fairlane-hq/fairlane/internal/api"
	"github.com/fairlane-hq/fairlane/internal/app/aggregate"
	"github.com/fairlane-hq/fairlane/internal/app/query"
	"github.com/fairlane-hq/fairlane/internal/app/settlement"
	"github.com/fairlane-hq/fairlane/internal/daemon"
	"github.com/fairlane-hq/fairlane/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "Bind address (overrides config)")
	serveCmd.Flags().Int("port", 0, "Bind port (overrides config)")
	serveCmd.Flags().String("data-dir", "", "Ledger database directory (overrides config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ledger API server",
	Long:  `Start the HTTP API over the ledger database. The server runs until interrupted.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load()
	if err != nil {
		return err
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.API.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.API.Port = port
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Store.Dir = dir
	}

	db, err := sqlite.Open(cfg.Store.Dir)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer db.Close()

	queries := query.New(db)
	reports := aggregate.New(db, aggregate.Config{
		LookupBatchSize:   cfg.Aggregation.LookupBatchSize,
		LookupConcurrency: cfg.Aggregation.LookupConcurrency,
	})

	srv := api.NewServer(db, queries, settlement.New(db, queries), reports)
	if cfg.Metrics.Enabled {
		srv.EnableMetrics()
	}

	httpSrv := &http.Server{
		Addr:         cfg.API.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] listening on %s (store %s)", cfg.API.Addr(), cfg.Store.Dir)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[daemon] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
