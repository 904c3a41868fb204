package engine

import (
	"time"

	"github.com/ghostrider-app/ghostrider/internal/app/ledger"
	"github.com/ghostrider-app/ghostrider/internal/app/stats"
	"github.com/ghostrider-app/ghostrider/internal/app/tracker"
	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// ─── Bulk Export / Import ───────────────────────────────────────────────────
// The snapshot is the engine's only wire format: one document holding
// every ledger, the settings, the timers and the rider profile. It must
// round-trip through ImportAll without loss.

// Snapshot is the full-state export document.
type Snapshot struct {
	Calls      []domain.CallRecord                    `json:"calls"`
	Memos      []domain.MemoRecord                    `json:"memos"`
	Expenses   []domain.ExpenseRecord                 `json:"expenses"`
	Settings   domain.Thresholds                      `json:"settings"`
	Timers     map[domain.Platform]domain.TimerState  `json:"timers"`
	Profile    domain.Profile                         `json:"profile"`
	ExportedAt time.Time                              `json:"export_date"`
}

// SerializeAll assembles the full engine state into one document.
func (e *Engine) SerializeAll() Snapshot {
	return Snapshot{
		Calls:      e.calls.All(),
		Memos:      e.memos.All(),
		Expenses:   e.expenses.All(),
		Settings:   e.thresholds,
		Timers:     e.timers.States(),
		Profile:    e.profile,
		ExportedAt: e.clock.Now(),
	}
}

// ImportAll replaces the engine state wholesale with a snapshot and
// persists every key. Timer states are restored verbatim — no resume
// correction — so an export/import cycle reproduces identical state.
func (e *Engine) ImportAll(snap Snapshot) error {
	if err := snap.Settings.Validate(); err != nil {
		return err
	}

	e.calls = ledger.CallsFrom(snap.Calls)
	e.expenses = ledger.ExpensesFrom(snap.Expenses)
	e.memos = ledger.MemosFrom(snap.Memos)
	e.thresholds = snap.Settings
	e.timers = tracker.FromStates(snap.Timers)
	if snap.Profile.ID != "" {
		e.profile = snap.Profile
	}

	e.persistAll()
	e.syncTimerGauges()

	rate, total := stats.DayAcceptance(e.calls.All(), e.clock.TodayKey())
	e.lastRisk = domain.ClassifyLoyalty(rate, total)
	return nil
}

// ClearAll wipes ledgers and timers. Settings and the rider profile
// survive a reset.
func (e *Engine) ClearAll() {
	e.calls = ledger.NewCalls()
	e.expenses = ledger.NewExpenses()
	e.memos = ledger.NewMemos()
	e.timers = tracker.New()

	e.persistAll()
	e.syncTimerGauges()
	e.lastRisk = domain.RiskInsufficientData
}

func (e *Engine) persistAll() {
	e.persist(keyCalls, e.calls.All())
	e.persist(keyExpenses, e.expenses.All())
	e.persist(keyMemos, e.memos.All())
	e.persist(keySettings, e.thresholds)
	e.persist(keyTimers, e.timers.States())
	e.persist(keyProfile, e.profile)
}
