// Package observability exposes the engine's Prometheus metrics.
// Everything here is fire-and-forget instrumentation; engine logic never
// reads a metric back.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Evaluator Metrics ──────────────────────────────────────────────────────

// Verdicts counts evaluator outputs by verdict.
var Verdicts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ghostrider",
	Subsystem: "evaluator",
	Name:      "verdicts_total",
	Help:      "Total offer evaluations by verdict.",
}, []string{"verdict"})

// ─── Ledger Metrics ─────────────────────────────────────────────────────────

// CallsRecorded counts call decisions by outcome.
var CallsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ghostrider",
	Subsystem: "ledger",
	Name:      "calls_recorded_total",
	Help:      "Total call decisions recorded, by accepted/rejected.",
}, []string{"decision"})

// ExpensesRecorded counts expense entries by category.
var ExpensesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ghostrider",
	Subsystem: "ledger",
	Name:      "expenses_recorded_total",
	Help:      "Total expense entries recorded, by category.",
}, []string{"category"})

// ─── Timer Metrics ──────────────────────────────────────────────────────────

// TimerRunning tracks whether each platform's timer is running.
var TimerRunning = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "ghostrider",
	Subsystem: "timer",
	Name:      "running",
	Help:      "Whether a platform timer is running (1) or idle (0).",
}, []string{"platform"})

// FatigueEvents counts fatigue notifications by kind and platform.
var FatigueEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ghostrider",
	Subsystem: "timer",
	Name:      "fatigue_events_total",
	Help:      "Total fatigue threshold events, by kind and platform.",
}, []string{"kind", "platform"})

// ─── Persistence Metrics ────────────────────────────────────────────────────

// PersistFailures counts store writes that failed.
var PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ghostrider",
	Subsystem: "store",
	Name:      "persist_failures_total",
	Help:      "Total failed state writes to the persistent store.",
})

// StoreDegraded reports whether the engine has fallen back to
// in-memory-only operation for the session.
var StoreDegraded = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ghostrider",
	Subsystem: "store",
	Name:      "degraded",
	Help:      "1 when the engine is running without durable persistence.",
})

// ─── Loyalty Metrics ────────────────────────────────────────────────────────

// LoyaltyRiskChanges counts same-day risk classification transitions.
var LoyaltyRiskChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ghostrider",
	Subsystem: "loyalty",
	Name:      "risk_changes_total",
	Help:      "Total same-day loyalty risk transitions, by new class.",
}, []string{"risk"})
