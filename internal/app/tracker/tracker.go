// Package tracker implements the per-platform usage timer state machine.
// Prolonged single-platform usage is what the platforms' own assignment
// algorithms appear to key on, so the tracker raises fatigue events when a
// platform has been running too long.
package tracker

import (
	"time"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// ─── Fatigue Thresholds ─────────────────────────────────────────────────────

const (
	// FatigueThresholdSeconds is the continuous-use point (2 hours) at
	// which the first warning fires.
	FatigueThresholdSeconds = 7200
	// FatigueRepeatSeconds is the re-warning interval (30 minutes) past
	// the threshold.
	FatigueRepeatSeconds = 1800
)

// EventKind labels a fatigue event.
type EventKind string

const (
	EventFatigueCrossed EventKind = "fatigue_crossed"
	EventFatigueRepeat  EventKind = "fatigue_repeat"
)

// Event is an edge-triggered fatigue notification raised by Tick.
type Event struct {
	Kind        EventKind       `json:"kind"`
	Platform    domain.Platform `json:"platform"`
	LiveSeconds int64           `json:"live_seconds"`
}

// ─── Tracker ────────────────────────────────────────────────────────────────

// Tracker holds the timer state machine for the fixed platform set.
// States: Idle, Running. At most one platform runs at a time; starting one
// stops all others. AccumulatedSeconds only increases.
type Tracker struct {
	states map[domain.Platform]domain.TimerState
}

// New returns a tracker with every platform idle at zero.
func New() *Tracker {
	states := make(map[domain.Platform]domain.TimerState, len(domain.Platforms()))
	for _, p := range domain.Platforms() {
		states[p] = domain.TimerState{}
	}
	return &Tracker{states: states}
}

// FromStates restores a tracker from persisted state. Unknown platforms in
// the snapshot are dropped; missing ones start idle at zero.
func FromStates(states map[domain.Platform]domain.TimerState) *Tracker {
	t := New()
	for _, p := range domain.Platforms() {
		if s, ok := states[p]; ok {
			t.states[p] = s
		}
	}
	return t
}

// Start transitions the platform to Running at now. Every other platform
// currently running is stopped first — only one app is tracked at a time.
func (t *Tracker) Start(platform domain.Platform, now time.Time) error {
	if !platform.Valid() {
		return domain.ErrUnknownPlatform
	}
	for p := range t.states {
		if p != platform {
			t.stop(p, now)
		}
	}
	s := t.states[platform]
	if s.Running {
		return nil
	}
	started := now
	s.Running = true
	s.StartedAt = &started
	t.states[platform] = s
	return nil
}

// Stop folds elapsed time into AccumulatedSeconds and transitions the
// platform to Idle. No-op if already idle.
func (t *Tracker) Stop(platform domain.Platform, now time.Time) error {
	if !platform.Valid() {
		return domain.ErrUnknownPlatform
	}
	t.stop(platform, now)
	return nil
}

func (t *Tracker) stop(platform domain.Platform, now time.Time) {
	s := t.states[platform]
	if !s.Running {
		return
	}
	s.AccumulatedSeconds = s.LiveSeconds(now)
	s.Running = false
	s.StartedAt = nil
	t.states[platform] = s
}

// StopAll stops every platform. Signals that a rest period has begun.
func (t *Tracker) StopAll(now time.Time) {
	for p := range t.states {
		t.stop(p, now)
	}
}

// ResumeFromPersisted folds the wall-clock gap since StartedAt into
// AccumulatedSeconds for any platform loaded as running, and resets
// StartedAt to now. Invoked once at engine construction so time elapsed
// across a restart is neither lost nor double-counted.
func (t *Tracker) ResumeFromPersisted(now time.Time) {
	for p, s := range t.states {
		if !s.Running || s.StartedAt == nil {
			continue
		}
		started := now
		s.AccumulatedSeconds = s.LiveSeconds(now)
		s.StartedAt = &started
		t.states[p] = s
	}
}

// Tick projects live seconds for the running platform and returns the
// fatigue events crossed at this instant. Read-only: stored state is not
// mutated. Edge-triggered — the crossing fires only on the tick where
// live seconds equals the threshold exactly, and repeats only on ticks
// where the 30-minute modulus lands on zero, so the caller must tick at
// 1-second cadence to observe every event.
func (t *Tracker) Tick(now time.Time) []Event {
	var events []Event
	for p, s := range t.states {
		if !s.Running {
			continue
		}
		live := s.LiveSeconds(now)
		if live == FatigueThresholdSeconds {
			events = append(events, Event{Kind: EventFatigueCrossed, Platform: p, LiveSeconds: live})
		} else if live > FatigueThresholdSeconds && live%FatigueRepeatSeconds == 0 {
			events = append(events, Event{Kind: EventFatigueRepeat, Platform: p, LiveSeconds: live})
		}
	}
	return events
}

// State returns the stored state for one platform.
func (t *Tracker) State(platform domain.Platform) domain.TimerState {
	return t.states[platform]
}

// States returns a copy of all stored timer states.
func (t *Tracker) States() map[domain.Platform]domain.TimerState {
	out := make(map[domain.Platform]domain.TimerState, len(t.states))
	for p, s := range t.states {
		out[p] = s
	}
	return out
}

// Running returns the currently running platform, if any.
func (t *Tracker) Running() (domain.Platform, bool) {
	for p, s := range t.states {
		if s.Running {
			return p, true
		}
	}
	return "", false
}

// LiveSeconds projects one platform's elapsed time as of now.
func (t *Tracker) LiveSeconds(platform domain.Platform, now time.Time) int64 {
	return t.states[platform].LiveSeconds(now)
}

// TotalSeconds is the engine-wide elapsed time: the sum of every
// platform's accumulated seconds with the running platform's live
// projection included. Informational only, never persisted separately.
func (t *Tracker) TotalSeconds(now time.Time) int64 {
	var total int64
	for _, s := range t.states {
		total += s.LiveSeconds(now)
	}
	return total
}
