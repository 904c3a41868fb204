package domain

import "time"

// ─── Clock Collaborator ─────────────────────────────────────────────────────
// The engine never reads the wall clock directly; it asks a Clock. This
// keeps date bucketing and timer arithmetic deterministic in tests.

// DateKeyLayout is the calendar-day bucket format for ledger records.
const DateKeyLayout = "2006-01-02"

// Clock supplies the current time and calendar boundaries.
type Clock interface {
	Now() time.Time
	TodayKey() string
	WeekStartKey() string  // week starts Monday
	MonthStartKey() string // month starts on the 1st
}

// DateKey buckets a timestamp into its calendar day.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// WeekStart returns the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset)
}

// MonthStart returns the 1st of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (c SystemClock) TodayKey() string     { return DateKey(c.Now()) }
func (c SystemClock) WeekStartKey() string { return DateKey(WeekStart(c.Now())) }
func (c SystemClock) MonthStartKey() string {
	return DateKey(MonthStart(c.Now()))
}

// FixedClock is a Clock pinned to a settable instant, for tests.
type FixedClock struct {
	Current time.Time
}

func (f *FixedClock) Now() time.Time         { return f.Current }
func (f *FixedClock) TodayKey() string       { return DateKey(f.Current) }
func (f *FixedClock) WeekStartKey() string   { return DateKey(WeekStart(f.Current)) }
func (f *FixedClock) MonthStartKey() string  { return DateKey(MonthStart(f.Current)) }

// Advance moves the fixed clock forward.
func (f *FixedClock) Advance(d time.Duration) { f.Current = f.Current.Add(d) }

// ─── Stats Period ───────────────────────────────────────────────────────────

// Period selects the stats window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Valid reports whether the period is known.
func (p Period) Valid() bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// StartKey resolves the period to its inclusive starting date key.
func (p Period) StartKey(clock Clock) string {
	switch p {
	case PeriodWeek:
		return clock.WeekStartKey()
	case PeriodMonth:
		return clock.MonthStartKey()
	default:
		return clock.TodayKey()
	}
}
