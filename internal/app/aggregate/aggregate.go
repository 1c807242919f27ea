// Package aggregate implements the Aggregation Engine: windowed sums of
// paid jobs grouped by contractor or client, and the derived
// best-profession / best-clients admin reports. It runs against the full
// ledger, unscoped by caller profile.
package aggregate

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fairlane-hq/fairlane/internal/domain"
	"github.com/fairlane-hq/fairlane/internal/infra/observability"
	"github.com/fairlane-hq/fairlane/internal/infra/sqlite"
)

// DefaultBestClientsLimit is used when the caller supplies no limit.
const DefaultBestClientsLimit = 2

// Config bounds the profile-enrichment fan-out.
type Config struct {
	LookupBatchSize   int // profile ids per IN query (default: 5)
	LookupConcurrency int // simultaneous batch queries (default: 10)
}

// DefaultConfig returns the enrichment defaults.
func DefaultConfig() Config {
	return Config{
		LookupBatchSize:   5,
		LookupConcurrency: 10,
	}
}

// Engine computes the admin payment reports.
type Engine struct {
	db  *sqlite.DB
	cfg Config
}

// New creates an Aggregation Engine.
func New(db *sqlite.DB, cfg Config) *Engine {
	if cfg.LookupBatchSize <= 0 {
		cfg.LookupBatchSize = 5
	}
	if cfg.LookupConcurrency <= 0 {
		cfg.LookupConcurrency = 10
	}
	return &Engine{db: db, cfg: cfg}
}

// ─── Grouping ───────────────────────────────────────────────────────────────

// GroupPaymentsByContractor sums paid jobs created strictly inside
// (start, end), grouped by contractor, ascending by contractor id.
func (e *Engine) GroupPaymentsByContractor(ctx context.Context, start, end time.Time) ([]domain.ContractorPayment, error) {
	return e.db.GroupPaymentsByContractor(ctx, start, end)
}

// GroupPaymentsByClient sums paid jobs created strictly inside
// (start, end), grouped by client, sorted by total paid descending.
func (e *Engine) GroupPaymentsByClient(ctx context.Context, start, end time.Time) ([]domain.ClientPayment, error) {
	return e.db.GroupPaymentsByClient(ctx, start, end)
}

// GroupPaymentsByProfession resolves each contractor's profession and
// re-sums the contractor totals into profession totals. Empty input yields
// an empty map. A contractor id with no profile row is ledger corruption
// and returns an explicit error.
func (e *Engine) GroupPaymentsByProfession(ctx context.Context, payments []domain.ContractorPayment) (map[string]int64, error) {
	result := make(map[string]int64)
	if len(payments) == 0 {
		return result, nil
	}

	ids := make([]int64, len(payments))
	for i, p := range payments {
		ids[i] = p.ContractorID
	}

	professions, err := e.lookupProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, p := range payments {
		profile, ok := professions[p.ContractorID]
		if !ok {
			return nil, fmt.Errorf("contractor %d: %w", p.ContractorID, domain.ErrProfileMissing)
		}
		result[profile.Profession] += p.TotalCents
	}
	return result, nil
}

// lookupProfiles fetches profiles for the given ids in batches of
// LookupBatchSize, at most LookupConcurrency batches in flight. The bound
// protects the store from unbounded simultaneous queries; it is a resource
// policy, not a correctness requirement.
func (e *Engine) lookupProfiles(ctx context.Context, ids []int64) (map[int64]domain.Profile, error) {
	var (
		mu    sync.Mutex
		found = make(map[int64]domain.Profile, len(ids))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.LookupConcurrency)

	for start := 0; start < len(ids); start += e.cfg.LookupBatchSize {
		chunk := ids[start:min(start+e.cfg.LookupBatchSize, len(ids))]
		g.Go(func() error {
			observability.EnrichmentBatches.Inc()
			profiles, err := e.db.ProfilesByIDs(ctx, chunk)
			if err != nil {
				return fmt.Errorf("profile batch: %w", err)
			}
			mu.Lock()
			for _, p := range profiles {
				found[p.ID] = p
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

// ─── Best Profession ────────────────────────────────────────────────────────

// BestProfession returns the profession that earned the most inside the
// window. Ties break to the lexicographically smaller profession name so
// the report is deterministic.
func (e *Engine) BestProfession(ctx context.Context, start, end time.Time) (string, error) {
	observability.AggregationQueries.WithLabelValues("best_profession").Inc()

	byContractor, err := e.GroupPaymentsByContractor(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("group by contractor: %w", err)
	}
	if len(byContractor) == 0 {
		return "", domain.NotFound("No jobs found for the given time range")
	}

	byProfession, err := e.GroupPaymentsByProfession(ctx, byContractor)
	if err != nil {
		return "", fmt.Errorf("group by profession: %w", err)
	}

	professions := make([]string, 0, len(byProfession))
	for name := range byProfession {
		professions = append(professions, name)
	}
	sort.Slice(professions, func(i, j int) bool {
		if byProfession[professions[i]] != byProfession[professions[j]] {
			return byProfession[professions[i]] > byProfession[professions[j]]
		}
		return professions[i] < professions[j]
	})

	return professions[0], nil
}

// ─── Best Clients ───────────────────────────────────────────────────────────

// BestClients returns the top clients by total paid inside the window,
// enriched with full names. The store pre-sorts descending; this truncates
// to limit without re-sorting, and fewer rows than limit returns all.
func (e *Engine) BestClients(ctx context.Context, start, end time.Time, limit int) ([]domain.ClientPayment, error) {
	observability.AggregationQueries.WithLabelValues("best_clients").Inc()

	if limit <= 0 {
		limit = DefaultBestClientsLimit
	}

	byClient, err := e.GroupPaymentsByClient(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("group by client: %w", err)
	}
	if len(byClient) == 0 {
		return nil, domain.NotFound("No jobs found for the given time range")
	}

	if limit < len(byClient) {
		byClient = byClient[:limit]
	}

	ids := make([]int64, len(byClient))
	for i, p := range byClient {
		ids[i] = p.ClientID
	}
	clients, err := e.lookupProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range byClient {
		profile, ok := clients[byClient[i].ClientID]
		if !ok {
			return nil, fmt.Errorf("client %d: %w", byClient[i].ClientID, domain.ErrProfileMissing)
		}
		byClient[i].FullName = profile.FullName()
	}
	return byClient, nil
}
