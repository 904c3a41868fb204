// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of the engine — it depends on nothing.
package domain

import (
	"fmt"
	"time"
)

// ─── Platform Types ─────────────────────────────────────────────────────────

// Platform identifies one of the delivery apps the rider works across.
type Platform string

const (
	PlatformBaemin  Platform = "baemin"
	PlatformCoupang Platform = "coupang"
	PlatformYogiyo  Platform = "yogiyo"
)

// Platforms returns the fixed platform set in display order.
func Platforms() []Platform {
	return []Platform{PlatformBaemin, PlatformCoupang, PlatformYogiyo}
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformBaemin, PlatformCoupang, PlatformYogiyo:
		return true
	}
	return false
}

// ─── Offer & Thresholds ─────────────────────────────────────────────────────

// Thresholds is the rider's mutable cutoff configuration.
// Both values are currency in won and must be non-negative.
type Thresholds struct {
	MinPrice      int64 `json:"min_price"`
	MinPricePerKm int64 `json:"min_price_per_km"`
}

// Validate checks the non-negativity invariant.
func (t Thresholds) Validate() error {
	if t.MinPrice < 0 || t.MinPricePerKm < 0 {
		return ErrInvalidThresholds
	}
	return nil
}

// DefaultThresholds returns the starting cutoffs (3,000원 / 2,500원 per km).
func DefaultThresholds() Thresholds {
	return Thresholds{MinPrice: 3000, MinPricePerKm: 2500}
}

// Offer is a raw delivery offer as shown by a platform.
// Transient — consumed immediately by Evaluate, never persisted on its own.
type Offer struct {
	Price      int64   `json:"price"`
	DistanceKm float64 `json:"distance_km"`
}

// ─── Ledger Records ─────────────────────────────────────────────────────────

// CallRecord is one accept/reject decision. Immutable once created except
// for deletion; DateKey is derived once at creation and never recomputed,
// so records keep their original-day bucketing.
type CallRecord struct {
	ID         int64     `json:"id"`
	Price      int64     `json:"price"`
	DistanceKm float64   `json:"distance_km"`
	Store      string    `json:"store,omitempty"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`
	DateKey    string    `json:"date"`
}

// PricePerKm returns the record's rounded per-km rate, 0 if no distance.
func (c CallRecord) PricePerKm() int64 {
	if c.DistanceKm <= 0 {
		return 0
	}
	return roundHalfUp(float64(c.Price) / c.DistanceKm)
}

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	ExpenseFood  ExpenseCategory = "food"
	ExpenseFuel  ExpenseCategory = "fuel"
	ExpenseOther ExpenseCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseFood, ExpenseFuel, ExpenseOther:
		return true
	}
	return false
}

// ExpenseRecord is one cost entry. Amount must be positive at creation.
type ExpenseRecord struct {
	ID        int64           `json:"id"`
	Category  ExpenseCategory `json:"category"`
	Amount    int64           `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	DateKey   string          `json:"date"`
}

// MemoKind tags a field memo.
type MemoKind string

const (
	MemoStore       MemoKind = "store"
	MemoDestination MemoKind = "destination"
	MemoBlacklist   MemoKind = "blacklist"
	MemoTip         MemoKind = "tip"
)

// Valid reports whether the memo kind is known.
func (k MemoKind) Valid() bool {
	switch k {
	case MemoStore, MemoDestination, MemoBlacklist, MemoTip:
		return true
	}
	return false
}

// MemoRecord is a tagged field note (store gate codes, blacklisted
// buildings, tips). No derived logic hangs off memos.
type MemoRecord struct {
	ID        int64     `json:"id"`
	Place     string    `json:"place"`
	Content   string    `json:"content"`
	Kind      MemoKind  `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// ─── Timer State ────────────────────────────────────────────────────────────

// TimerState is the persisted per-platform usage timer.
// Invariant: at most one platform is Running at a time, and
// AccumulatedSeconds only ever increases.
type TimerState struct {
	Running            bool       `json:"running"`
	AccumulatedSeconds int64      `json:"seconds"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
}

// LiveSeconds projects elapsed time as of now without mutating state.
func (s TimerState) LiveSeconds(now time.Time) int64 {
	if !s.Running || s.StartedAt == nil {
		return s.AccumulatedSeconds
	}
	elapsed := int64(now.Sub(*s.StartedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	return s.AccumulatedSeconds + elapsed
}

// ─── Rider Profile ──────────────────────────────────────────────────────────

// Profile is the rider's anonymous identity, generated once and persisted.
type Profile struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// ─── Utilities ──────────────────────────────────────────────────────────────

// FormatSeconds renders a usage duration as "2h 05m" or "45m".
func FormatSeconds(seconds int64) string {
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatPrice renders a won amount with thousands separators.
func FormatPrice(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s + "원"
}
