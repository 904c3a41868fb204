package tracker

import (
	"testing"
	"time"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

func at(sec int64) time.Time {
	return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

// ─── Start / Stop ───────────────────────────────────────────────────────────

func TestStart_ExclusiveAcrossPlatforms(t *testing.T) {
	tr := New()
	if err := tr.Start(domain.PlatformBaemin, at(0)); err != nil {
		t.Fatal(err)
	}

	// Starting B while A runs stops A and freezes its accumulated time.
	if err := tr.Start(domain.PlatformCoupang, at(100)); err != nil {
		t.Fatal(err)
	}

	a := tr.State(domain.PlatformBaemin)
	if a.Running {
		t.Error("baemin still running after coupang started")
	}
	if a.AccumulatedSeconds != 100 {
		t.Errorf("baemin accumulated = %d, want 100 (frozen at stop instant)", a.AccumulatedSeconds)
	}
	if a.StartedAt != nil {
		t.Error("baemin StartedAt not cleared")
	}

	b := tr.State(domain.PlatformCoupang)
	if !b.Running || b.StartedAt == nil {
		t.Error("coupang should be running with StartedAt set")
	}

	if p, ok := tr.Running(); !ok || p != domain.PlatformCoupang {
		t.Errorf("Running() = %v,%v, want coupang,true", p, ok)
	}
}

func TestStart_AlreadyRunningIsNoop(t *testing.T) {
	tr := New()
	tr.Start(domain.PlatformYogiyo, at(0))
	tr.Start(domain.PlatformYogiyo, at(50))

	// StartedAt must not reset: live time keeps counting from the first start.
	if got := tr.LiveSeconds(domain.PlatformYogiyo, at(60)); got != 60 {
		t.Errorf("live = %d, want 60", got)
	}
}

func TestStop_FoldsElapsed(t *testing.T) {
	tr := New()
	tr.Start(domain.PlatformBaemin, at(0))
	tr.Stop(domain.PlatformBaemin, at(42))

	s := tr.State(domain.PlatformBaemin)
	if s.Running {
		t.Error("still running after stop")
	}
	if s.AccumulatedSeconds != 42 {
		t.Errorf("accumulated = %d, want 42", s.AccumulatedSeconds)
	}

	// Stop when idle is a no-op.
	tr.Stop(domain.PlatformBaemin, at(100))
	if s := tr.State(domain.PlatformBaemin); s.AccumulatedSeconds != 42 {
		t.Errorf("idle stop changed accumulated to %d", s.AccumulatedSeconds)
	}
}

func TestStopAll(t *testing.T) {
	tr := New()
	tr.Start(domain.PlatformCoupang, at(0))
	tr.StopAll(at(30))

	for _, p := range domain.Platforms() {
		if tr.State(p).Running {
			t.Errorf("%s still running after StopAll", p)
		}
	}
	if tr.State(domain.PlatformCoupang).AccumulatedSeconds != 30 {
		t.Error("StopAll did not fold elapsed time")
	}
}

func TestStart_UnknownPlatform(t *testing.T) {
	tr := New()
	if err := tr.Start("doordash", at(0)); err != domain.ErrUnknownPlatform {
		t.Errorf("err = %v, want ErrUnknownPlatform", err)
	}
	if err := tr.Stop("doordash", at(0)); err != domain.ErrUnknownPlatform {
		t.Errorf("err = %v, want ErrUnknownPlatform", err)
	}
}

// ─── Resume ─────────────────────────────────────────────────────────────────

func TestResumeFromPersisted_FoldsGap(t *testing.T) {
	// Persisted: running since 600s before "now", with 1000s accumulated.
	started := at(0)
	tr := FromStates(map[domain.Platform]domain.TimerState{
		domain.PlatformBaemin: {Running: true, AccumulatedSeconds: 1000, StartedAt: &started},
	})

	now := at(600)
	tr.ResumeFromPersisted(now)

	s := tr.State(domain.PlatformBaemin)
	if !s.Running {
		t.Error("resume must preserve the running state")
	}
	if s.AccumulatedSeconds != 1600 {
		t.Errorf("accumulated = %d, want 1600 (gap folded in)", s.AccumulatedSeconds)
	}
	if s.StartedAt == nil || !s.StartedAt.Equal(now) {
		t.Errorf("StartedAt = %v, want reset to now", s.StartedAt)
	}

	// No double-counting: live time right after resume equals accumulated.
	if got := tr.LiveSeconds(domain.PlatformBaemin, now); got != 1600 {
		t.Errorf("live after resume = %d, want 1600", got)
	}
}

func TestResumeFromPersisted_IdleUntouched(t *testing.T) {
	tr := FromStates(map[domain.Platform]domain.TimerState{
		domain.PlatformYogiyo: {AccumulatedSeconds: 500},
	})
	tr.ResumeFromPersisted(at(100))
	if s := tr.State(domain.PlatformYogiyo); s.AccumulatedSeconds != 500 || s.Running {
		t.Errorf("idle state changed by resume: %+v", s)
	}
}

// ─── Tick / Fatigue ─────────────────────────────────────────────────────────

func TestTick_ReadOnlyProjection(t *testing.T) {
	tr := New()
	tr.Start(domain.PlatformBaemin, at(0))
	tr.Tick(at(500))

	if s := tr.State(domain.PlatformBaemin); s.AccumulatedSeconds != 0 {
		t.Errorf("Tick mutated stored state: accumulated = %d", s.AccumulatedSeconds)
	}
	if got := tr.LiveSeconds(domain.PlatformBaemin, at(500)); got != 500 {
		t.Errorf("live = %d, want 500", got)
	}
}

func TestTick_FatigueCrossedExactlyOnce(t *testing.T) {
	tr := New()
	tr.Start(domain.PlatformBaemin, at(0))

	// Just below the threshold: nothing.
	if ev := tr.Tick(at(7199)); len(ev) != 0 {
		t.Errorf("events at 7199 = %v, want none", ev)
	}

	// Exactly 7200: the crossing fires.
	ev := tr.Tick(at(7200))
	if len(ev) != 1 || ev[0].Kind != EventFatigueCrossed {
		t.Fatalf("events at 7200 = %v, want one fatigue_crossed", ev)
	}
	if ev[0].Platform != domain.PlatformBaemin || ev[0].LiveSeconds != 7200 {
		t.Errorf("event = %+v", ev[0])
	}

	// One past: nothing (edge-triggered, not level-triggered).
	if ev := tr.Tick(at(7201)); len(ev) != 0 {
		t.Errorf("events at 7201 = %v, want none", ev)
	}
}

func TestTick_FatigueRepeatEvery30Min(t *testing.T) {
	tr := New()
	tr.Start(domain.PlatformCoupang, at(0))

	ev := tr.Tick(at(9000)) // 7200 + 1800
	if len(ev) != 1 || ev[0].Kind != EventFatigueRepeat {
		t.Fatalf("events at 9000 = %v, want one fatigue_repeat", ev)
	}

	if ev := tr.Tick(at(9001)); len(ev) != 0 {
		t.Errorf("events at 9001 = %v, want none", ev)
	}

	ev = tr.Tick(at(10800)) // 7200 + 2*1800
	if len(ev) != 1 || ev[0].Kind != EventFatigueRepeat {
		t.Errorf("events at 10800 = %v, want one fatigue_repeat", ev)
	}
}

func TestTick_CarriedAccumulation(t *testing.T) {
	// A platform stopped with 7100s banked crosses 100s after restart.
	tr := New()
	tr.Start(domain.PlatformBaemin, at(0))
	tr.Stop(domain.PlatformBaemin, at(7100))
	tr.Start(domain.PlatformBaemin, at(10000))

	ev := tr.Tick(at(10100))
	if len(ev) != 1 || ev[0].Kind != EventFatigueCrossed {
		t.Errorf("events = %v, want fatigue_crossed at live 7200", ev)
	}
}

// ─── Totals ─────────────────────────────────────────────────────────────────

func TestTotalSeconds_IncludesLiveProjection(t *testing.T) {
	tr := New()
	tr.Start(domain.PlatformBaemin, at(0))
	tr.Stop(domain.PlatformBaemin, at(100))
	tr.Start(domain.PlatformYogiyo, at(200))

	if got := tr.TotalSeconds(at(260)); got != 160 {
		t.Errorf("TotalSeconds = %d, want 160 (100 banked + 60 live)", got)
	}
}
