// Package engine assembles the decision and fatigue-tracking core behind a
// single instance: thresholds, ledgers, timers, stats, persistence and
// event emission. All mutations run synchronously on the caller's
// goroutine in response to discrete triggers (user action or the 1 Hz
// tick), so the engine itself needs no locking.
//
// The mutation discipline is validate → mutate in memory → persist the
// affected key. A failed validation prevents the mutation entirely; a
// failed persist degrades the engine to in-memory-only operation for the
// rest of the session without losing anything already computed.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ghostrider-app/ghostrider/internal/app/ledger"
	"github.com/ghostrider-app/ghostrider/internal/app/stats"
	"github.com/ghostrider-app/ghostrider/internal/app/tracker"
	"github.com/ghostrider-app/ghostrider/internal/domain"
	"github.com/ghostrider-app/ghostrider/internal/infra/observability"
	"github.com/ghostrider-app/ghostrider/internal/infra/store"
)

// ─── State Keys ─────────────────────────────────────────────────────────────

const (
	keyCalls    = "calls"
	keyExpenses = "expenses"
	keyMemos    = "memos"
	keySettings = "settings"
	keyTimers   = "timers"
	keyProfile  = "profile"
)

// Engine owns all engine sub-state and the store handle.
type Engine struct {
	clock domain.Clock
	store store.Store
	log   zerolog.Logger
	hub   *Hub

	thresholds domain.Thresholds
	calls      *ledger.Calls
	expenses   *ledger.Expenses
	memos      *ledger.Memos
	timers     *tracker.Tracker
	profile    domain.Profile

	degraded bool
	lastRisk domain.LoyaltyRisk
}

// New loads persisted state from st, folds any running timer's wall-clock
// gap (the one-time resume correction), and returns a ready engine.
// A store that fails on load yields a working in-memory engine with a
// degraded-mode warning rather than an error.
func New(st store.Store, clock domain.Clock, log zerolog.Logger) *Engine {
	e := &Engine{
		clock:      clock,
		store:      st,
		log:        log,
		hub:        NewHub(),
		thresholds: domain.DefaultThresholds(),
		calls:      ledger.NewCalls(),
		expenses:   ledger.NewExpenses(),
		memos:      ledger.NewMemos(),
		timers:     tracker.New(),
	}
	e.load()

	// Wall-clock catch-up for timers left running across a restart,
	// applied exactly once at construction.
	e.timers.ResumeFromPersisted(clock.Now())
	e.persist(keyTimers, e.timers.States())
	e.syncTimerGauges()

	if e.profile.ID == "" {
		e.profile = NewProfile()
		e.persist(keyProfile, e.profile)
	}

	rate, total := stats.DayAcceptance(e.calls.All(), e.clock.TodayKey())
	e.lastRisk = domain.ClassifyLoyalty(rate, total)
	return e
}

// Events returns the engine's event hub for shell subscription.
func (e *Engine) Events() *Hub { return e.hub }

// Degraded reports whether durable persistence has been lost this session.
func (e *Engine) Degraded() bool { return e.degraded }

// Profile returns the rider's persisted identity.
func (e *Engine) Profile() domain.Profile { return e.profile }

// ─── Loading & Persistence ──────────────────────────────────────────────────

func (e *Engine) load() {
	var calls []domain.CallRecord
	if e.loadKey(keyCalls, &calls) {
		e.calls = ledger.CallsFrom(calls)
	}
	var expenses []domain.ExpenseRecord
	if e.loadKey(keyExpenses, &expenses) {
		e.expenses = ledger.ExpensesFrom(expenses)
	}
	var memos []domain.MemoRecord
	if e.loadKey(keyMemos, &memos) {
		e.memos = ledger.MemosFrom(memos)
	}
	var th domain.Thresholds
	if e.loadKey(keySettings, &th) && th.Validate() == nil {
		e.thresholds = th
	}
	var timers map[domain.Platform]domain.TimerState
	if e.loadKey(keyTimers, &timers) {
		e.timers = tracker.FromStates(timers)
	}
	e.loadKey(keyProfile, &e.profile)
}

// loadKey reads and decodes one state key. Missing keys and decode
// failures leave the default in place; a store read error degrades.
func (e *Engine) loadKey(key string, dst any) bool {
	raw, ok, err := e.store.Get(key)
	if err != nil {
		e.degrade(fmt.Errorf("load %s: %w", key, err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("discarding corrupt state entry")
		return false
	}
	return true
}

// persist writes one state key. Every mutating operation calls this after
// the in-memory mutation has succeeded, on every exit path.
func (e *Engine) persist(key string, v any) {
	if e.degraded {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		// Engine state is always marshalable; treat failure as a bug.
		e.log.Error().Err(err).Str("key", key).Msg("marshal state")
		return
	}
	if err := e.store.Set(key, raw); err != nil {
		e.degrade(fmt.Errorf("persist %s: %w", key, err))
	}
}

// degrade switches the engine to in-memory-only operation for the rest of
// the session. Non-fatal: computed state is kept, only durability is lost.
func (e *Engine) degrade(cause error) {
	if e.degraded {
		return
	}
	e.degraded = true
	observability.PersistFailures.Inc()
	observability.StoreDegraded.Set(1)
	e.log.Warn().Err(cause).Msg("store unavailable — continuing in memory only")
	e.hub.Publish(Event{
		Type:    EventStoreDegraded,
		Message: "Persistence lost — data will not survive this session.",
		At:      e.clock.Now(),
	})
}

// ─── Thresholds & Evaluation ────────────────────────────────────────────────

// Thresholds returns the current cutoff configuration.
func (e *Engine) Thresholds() domain.Thresholds { return e.thresholds }

// SetThresholds updates the cutoffs after validation.
func (e *Engine) SetThresholds(th domain.Thresholds) error {
	if err := th.Validate(); err != nil {
		return err
	}
	e.thresholds = th
	e.persist(keySettings, e.thresholds)
	return nil
}

// EvaluateOffer runs the pure evaluator against the current thresholds.
func (e *Engine) EvaluateOffer(offer domain.Offer) (domain.Recommendation, error) {
	if offer.DistanceKm < 0 {
		return domain.Recommendation{}, domain.ErrNegativeDistance
	}
	rec := domain.Evaluate(offer, e.thresholds)
	observability.Verdicts.WithLabelValues(string(rec.Verdict)).Inc()
	return rec, nil
}

// ─── Call Ledger Operations ─────────────────────────────────────────────────

// RecordCall appends an accept/reject decision and refreshes the same-day
// loyalty signal.
func (e *Engine) RecordCall(offer domain.Offer, storeLabel string, accepted bool) (domain.CallRecord, error) {
	rec, err := e.calls.Append(offer, storeLabel, accepted, e.clock.Now())
	if err != nil {
		return domain.CallRecord{}, err
	}
	e.persist(keyCalls, e.calls.All())

	decision := "rejected"
	if accepted {
		decision = "accepted"
	}
	observability.CallsRecorded.WithLabelValues(decision).Inc()
	e.refreshLoyalty()
	return rec, nil
}

// DeleteCall removes a decision by id. Unknown ids are a no-op signalled
// with ErrNotFound.
func (e *Engine) DeleteCall(id int64) error {
	if err := e.calls.Remove(id); err != nil {
		return err
	}
	e.persist(keyCalls, e.calls.All())
	e.refreshLoyalty()
	return nil
}

// CallsForPeriod returns the period's decisions, newest first.
func (e *Engine) CallsForPeriod(p domain.Period) []domain.CallRecord {
	return e.calls.SinceDateKey(p.StartKey(e.clock))
}

// ─── Expense Ledger Operations ──────────────────────────────────────────────

// AddExpense appends a cost entry.
func (e *Engine) AddExpense(category domain.ExpenseCategory, amount int64, note string) (domain.ExpenseRecord, error) {
	rec, err := e.expenses.Append(category, amount, note, e.clock.Now())
	if err != nil {
		return domain.ExpenseRecord{}, err
	}
	e.persist(keyExpenses, e.expenses.All())
	observability.ExpensesRecorded.WithLabelValues(string(category)).Inc()
	return rec, nil
}

// DeleteExpense removes a cost entry by id.
func (e *Engine) DeleteExpense(id int64) error {
	if err := e.expenses.Remove(id); err != nil {
		return err
	}
	e.persist(keyExpenses, e.expenses.All())
	return nil
}

// ExpensesForPeriod returns the period's expenses, newest first.
func (e *Engine) ExpensesForPeriod(p domain.Period) []domain.ExpenseRecord {
	return e.expenses.SinceDateKey(p.StartKey(e.clock))
}

// ─── Memo Operations ────────────────────────────────────────────────────────

// AddMemo stores a field note.
func (e *Engine) AddMemo(place, content string, kind domain.MemoKind) (domain.MemoRecord, error) {
	rec, err := e.memos.Append(place, content, kind, e.clock.Now())
	if err != nil {
		return domain.MemoRecord{}, err
	}
	e.persist(keyMemos, e.memos.All())
	return rec, nil
}

// DeleteMemo removes a field note by id.
func (e *Engine) DeleteMemo(id int64) error {
	if err := e.memos.Remove(id); err != nil {
		return err
	}
	e.persist(keyMemos, e.memos.All())
	return nil
}

// SearchMemos returns memos matching the query, newest first.
func (e *Engine) SearchMemos(query string) []domain.MemoRecord {
	return e.memos.Search(query)
}

// ─── Timer Operations ───────────────────────────────────────────────────────

// StartTimer starts tracking one platform, stopping any other.
func (e *Engine) StartTimer(p domain.Platform) error {
	if err := e.timers.Start(p, e.clock.Now()); err != nil {
		return err
	}
	e.persist(keyTimers, e.timers.States())
	e.syncTimerGauges()
	return nil
}

// StopTimer stops tracking one platform.
func (e *Engine) StopTimer(p domain.Platform) error {
	if err := e.timers.Stop(p, e.clock.Now()); err != nil {
		return err
	}
	e.persist(keyTimers, e.timers.States())
	e.syncTimerGauges()
	return nil
}

// StopAllTimers stops every platform — the rider is taking a rest.
func (e *Engine) StopAllTimers() {
	e.timers.StopAll(e.clock.Now())
	e.persist(keyTimers, e.timers.States())
	e.syncTimerGauges()
}

// Tick advances the fatigue check. Called once per second by the daemon;
// idempotent per instant, and the projection it reads never mutates
// stored timer state. Returns the fatigue events raised at this tick.
func (e *Engine) Tick() []tracker.Event {
	events := e.timers.Tick(e.clock.Now())
	for _, ev := range events {
		observability.FatigueEvents.WithLabelValues(string(ev.Kind), string(ev.Platform)).Inc()
		evType := EventFatigueCrossed
		msg := fmt.Sprintf("%s in continuous use for 2 hours — switch apps or rest", ev.Platform)
		if ev.Kind == tracker.EventFatigueRepeat {
			evType = EventFatigueRepeat
			msg = fmt.Sprintf("%s still in use at %s — the algorithm may read this as fatigue",
				ev.Platform, domain.FormatSeconds(ev.LiveSeconds))
		}
		e.hub.Publish(Event{
			Type:        evType,
			Platform:    ev.Platform,
			LiveSeconds: ev.LiveSeconds,
			Message:     msg,
			At:          e.clock.Now(),
		})
	}
	return events
}

// TimerStatus is the live view of one platform's timer.
type TimerStatus struct {
	Platform    domain.Platform `json:"platform"`
	Running     bool            `json:"running"`
	LiveSeconds int64           `json:"live_seconds"`
}

// TimerStatuses projects every platform's live seconds plus the
// engine-wide total.
func (e *Engine) TimerStatuses() ([]TimerStatus, int64) {
	now := e.clock.Now()
	out := make([]TimerStatus, 0, len(domain.Platforms()))
	for _, p := range domain.Platforms() {
		s := e.timers.State(p)
		out = append(out, TimerStatus{
			Platform:    p,
			Running:     s.Running,
			LiveSeconds: s.LiveSeconds(now),
		})
	}
	return out, e.timers.TotalSeconds(now)
}

func (e *Engine) syncTimerGauges() {
	for _, p := range domain.Platforms() {
		v := 0.0
		if e.timers.State(p).Running {
			v = 1
		}
		observability.TimerRunning.WithLabelValues(string(p)).Set(v)
	}
}

// ─── Stats & Dashboard ──────────────────────────────────────────────────────

// Stats aggregates the selected period.
func (e *Engine) Stats(p domain.Period) (stats.Metrics, error) {
	if !p.Valid() {
		return stats.Metrics{}, fmt.Errorf("unknown period %q", p)
	}
	return stats.Aggregate(e.calls.All(), e.expenses.All(), p.StartKey(e.clock)), nil
}

// Dashboard is the at-a-glance view for the main screen.
type Dashboard struct {
	AvgPrice       int64 `json:"avg_price"`
	AcceptRate     int   `json:"accept_rate"`
	TodayEarnings  int64 `json:"today_earnings"`
	UsageSeconds   int64 `json:"usage_seconds"`
	LoyaltyWarning bool  `json:"loyalty_warning"`
}

// TodayDashboard derives today's headline numbers.
func (e *Engine) TodayDashboard() Dashboard {
	m := stats.Aggregate(e.calls.All(), nil, e.clock.TodayKey())
	rate, total := stats.DayAcceptance(e.calls.All(), e.clock.TodayKey())
	return Dashboard{
		AvgPrice:       m.AvgPrice,
		AcceptRate:     m.AcceptRate,
		TodayEarnings:  m.TotalEarnings,
		UsageSeconds:   e.timers.TotalSeconds(e.clock.Now()),
		LoyaltyWarning: domain.LoyaltyWarning(rate, total),
	}
}

// LoyaltyWarningActive reports the same-day high-acceptance warning.
func (e *Engine) LoyaltyWarningActive() bool {
	rate, total := stats.DayAcceptance(e.calls.All(), e.clock.TodayKey())
	return domain.LoyaltyWarning(rate, total)
}

// refreshLoyalty recomputes the same-day classification after a call
// mutation and emits an event when the class transitions.
func (e *Engine) refreshLoyalty() {
	rate, total := stats.DayAcceptance(e.calls.All(), e.clock.TodayKey())
	risk := domain.ClassifyLoyalty(rate, total)
	if risk == e.lastRisk {
		return
	}
	e.lastRisk = risk
	observability.LoyaltyRiskChanges.WithLabelValues(string(risk)).Inc()
	e.hub.Publish(Event{
		Type:    EventLoyaltyRiskChanged,
		Risk:    risk,
		Message: risk.Advice(),
		At:      e.clock.Now(),
	})
}

// CurrentRisk returns the last computed same-day classification.
func (e *Engine) CurrentRisk() domain.LoyaltyRisk { return e.lastRisk }
