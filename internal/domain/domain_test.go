package domain

import (
	"testing"
	"time"
)

// ─── Clock Tests ────────────────────────────────────────────────────────────

func TestDateKey(t *testing.T) {
	ts := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	if got := DateKey(ts); got != "2025-03-09" {
		t.Errorf("DateKey = %q, want 2025-03-09", got)
	}
}

func TestWeekStart_Monday(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2025-03-03", "2025-03-03"}, // Monday maps to itself
		{"2025-03-05", "2025-03-03"}, // Wednesday
		{"2025-03-09", "2025-03-03"}, // Sunday belongs to the preceding Monday
		{"2025-03-10", "2025-03-10"}, // next Monday
	}
	for _, tt := range tests {
		ts, err := time.Parse(DateKeyLayout, tt.day)
		if err != nil {
			t.Fatal(err)
		}
		if got := DateKey(WeekStart(ts)); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestMonthStart(t *testing.T) {
	ts := time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC)
	if got := DateKey(MonthStart(ts)); got != "2025-12-01" {
		t.Errorf("MonthStart = %q, want 2025-12-01", got)
	}
}

func TestFixedClock(t *testing.T) {
	clock := &FixedClock{Current: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	if clock.TodayKey() != "2025-06-15" {
		t.Errorf("TodayKey = %q", clock.TodayKey())
	}
	clock.Advance(24 * time.Hour)
	if clock.TodayKey() != "2025-06-16" {
		t.Errorf("TodayKey after advance = %q", clock.TodayKey())
	}
}

func TestPeriod_StartKey(t *testing.T) {
	clock := &FixedClock{Current: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)} // Wednesday
	tests := []struct {
		period Period
		want   string
	}{
		{PeriodToday, "2025-03-05"},
		{PeriodWeek, "2025-03-03"},
		{PeriodMonth, "2025-03-01"},
	}
	for _, tt := range tests {
		if got := tt.period.StartKey(clock); got != tt.want {
			t.Errorf("%s.StartKey = %q, want %q", tt.period, got, tt.want)
		}
	}
}

// ─── Timer State Tests ──────────────────────────────────────────────────────

func TestTimerState_LiveSeconds(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	started := now.Add(-90 * time.Second)

	idle := TimerState{AccumulatedSeconds: 100}
	if got := idle.LiveSeconds(now); got != 100 {
		t.Errorf("idle LiveSeconds = %d, want 100", got)
	}

	running := TimerState{Running: true, AccumulatedSeconds: 100, StartedAt: &started}
	if got := running.LiveSeconds(now); got != 190 {
		t.Errorf("running LiveSeconds = %d, want 190", got)
	}
}

// ─── Validation Tests ───────────────────────────────────────────────────────

func TestThresholds_Validate(t *testing.T) {
	if err := (Thresholds{MinPrice: 3000, MinPricePerKm: 2500}).Validate(); err != nil {
		t.Errorf("valid thresholds rejected: %v", err)
	}
	if err := (Thresholds{MinPrice: -1}).Validate(); err == nil {
		t.Error("negative MinPrice accepted")
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(ErrZeroPrice) {
		t.Error("ErrZeroPrice should be a validation error")
	}
	if IsValidation(ErrNotFound) {
		t.Error("ErrNotFound is not a validation error")
	}
	if IsValidation(ErrStoreUnavailable) {
		t.Error("ErrStoreUnavailable is not a validation error")
	}
}

// ─── Formatting Tests ───────────────────────────────────────────────────────

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0m"},
		{59, "0m"},
		{60, "1m"},
		{3599, "59m"},
		{3600, "1h 00m"},
		{7500, "2h 05m"},
	}
	for _, tt := range tests {
		if got := FormatSeconds(tt.in); got != tt.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0원"},
		{950, "950원"},
		{3000, "3,000원"},
		{1234567, "1,234,567원"},
		{-4500, "-4,500원"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCallRecord_PricePerKm(t *testing.T) {
	c := CallRecord{Price: 4500, DistanceKm: 3}
	if got := c.PricePerKm(); got != 1500 {
		t.Errorf("PricePerKm = %d, want 1500", got)
	}
	c = CallRecord{Price: 4500}
	if got := c.PricePerKm(); got != 0 {
		t.Errorf("no-distance PricePerKm = %d, want 0", got)
	}
}
