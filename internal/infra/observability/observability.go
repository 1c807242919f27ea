// Package observability exposes Prometheus metrics for the payments ledger:
// settlement outcomes, deposit outcomes, moved amounts, and aggregation
// query activity. Metrics are package vars registered via promauto and
// served on /metrics when enabled in config.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Settlement Metrics ─────────────────────────────────────────────────────

// SettlementsTotal counts pay-for-job attempts by outcome.
// Outcomes: ok, unauthorized, not_found, bad_request, error.
var SettlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fairlane",
	Subsystem: "settlement",
	Name:      "attempts_total",
	Help:      "Total pay-for-job attempts by outcome.",
}, []string{"outcome"})

// SettledAmountCents sums the cents moved by successful settlements.
var SettledAmountCents = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fairlane",
	Subsystem: "settlement",
	Name:      "amount_cents_total",
	Help:      "Total cents transferred from clients to contractors.",
})

// ─── Deposit Metrics ────────────────────────────────────────────────────────

// DepositsTotal counts deposit attempts by outcome.
var DepositsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fairlane",
	Subsystem: "deposit",
	Name:      "attempts_total",
	Help:      "Total deposit attempts by outcome.",
}, []string{"outcome"})

// DepositedAmountCents sums the cents credited by successful deposits.
var DepositedAmountCents = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fairlane",
	Subsystem: "deposit",
	Name:      "amount_cents_total",
	Help:      "Total cents credited to client balances.",
})

// ─── Aggregation Metrics ────────────────────────────────────────────────────

// AggregationQueries counts admin aggregation runs by report.
// Reports: best_profession, best_clients.
var AggregationQueries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fairlane",
	Subsystem: "aggregation",
	Name:      "queries_total",
	Help:      "Total admin aggregation queries by report.",
}, []string{"report"})

// EnrichmentBatches counts batched profile-lookup fan-outs.
var EnrichmentBatches = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fairlane",
	Subsystem: "aggregation",
	Name:      "enrichment_batches_total",
	Help:      "Total profile-lookup batches issued during enrichment.",
})

// ─── Store Metrics ──────────────────────────────────────────────────────────

// StoreErrors counts unexpected ledger store failures surfaced as 500s.
var StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fairlane",
	Subsystem: "store",
	Name:      "errors_total",
	Help:      "Total unexpected ledger store errors.",
})
