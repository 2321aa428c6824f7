package sim

import (
	"errors"
	"testing"
	"time"
)

func TestSchedulerEmitsOncePerInterval(t *testing.T) {
	s, err := NewScheduler(34 * time.Millisecond)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	frames := []struct {
		elapsed time.Duration
		tick    bool
	}{
		{16 * time.Millisecond, false},
		{16 * time.Millisecond, false},
		{16 * time.Millisecond, true},
		{16 * time.Millisecond, false},
		{20 * time.Millisecond, true},
		{time.Second, true},
		{0, false},
	}

	for i, f := range frames {
		tick, ok := s.Advance(f.elapsed)
		if ok != f.tick {
			t.Fatalf("frame %d: expected tick=%v, got %v", i, f.tick, ok)
		}
		if ok && (tick.Forced || tick.Dt != 1.0/34) {
			t.Errorf("frame %d: unexpected tick %+v", i, tick)
		}
	}
}

func TestSchedulerResetsToZero(t *testing.T) {
	s, _ := NewScheduler(34 * time.Millisecond)

	if _, ok := s.Advance(60 * time.Millisecond); !ok {
		t.Fatal("expected tick")
	}
	if s.Pending() != 0 {
		t.Errorf("overshoot must be discarded, pending %v", s.Pending())
	}
	if _, ok := s.Advance(30 * time.Millisecond); ok {
		t.Error("tick emitted from carried remainder")
	}
}

func TestSchedulerIgnoresNegativeElapsed(t *testing.T) {
	s, _ := NewScheduler(10 * time.Millisecond)
	s.Advance(5 * time.Millisecond)
	s.Advance(-time.Second)
	if s.Pending() != 5*time.Millisecond {
		t.Errorf("expected 5ms pending, got %v", s.Pending())
	}
}

func TestSchedulerForce(t *testing.T) {
	s, _ := NewScheduler(34 * time.Millisecond)
	s.Advance(20 * time.Millisecond)

	tick := s.Force()
	if !tick.Forced || tick.Dt != 1.0/34 {
		t.Errorf("unexpected forced tick %+v", tick)
	}
	if s.Pending() != 20*time.Millisecond {
		t.Errorf("force must not touch the accumulator, pending %v", s.Pending())
	}
}

func TestSchedulerSetInterval(t *testing.T) {
	s, _ := NewScheduler(34 * time.Millisecond)
	s.Advance(20 * time.Millisecond)

	if err := s.SetInterval(10 * time.Millisecond); err != nil {
		t.Fatalf("set interval: %v", err)
	}
	if s.Pending() != 0 || s.Step() != 0.1 {
		t.Errorf("unexpected state after SetInterval: pending %v step %v", s.Pending(), s.Step())
	}
	if err := s.SetInterval(0); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
	if s.Interval() != 10*time.Millisecond {
		t.Errorf("rejected interval was applied: %v", s.Interval())
	}
	if _, err := NewScheduler(-time.Millisecond); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestActivation(t *testing.T) {
	a := NewActivation(false)
	scheduled, forced := Tick{Dt: 1}, Tick{Dt: 1, Forced: true}

	if a.Admit(scheduled) {
		t.Error("paused activation admitted a scheduled tick")
	}
	if !a.Admit(forced) {
		t.Error("forced tick must always pass")
	}
	if !a.Toggle() || !a.Active() {
		t.Error("toggle should activate")
	}
	if !a.Admit(scheduled) {
		t.Error("active activation dropped a scheduled tick")
	}
	if a.Toggle() {
		t.Error("second toggle should pause")
	}
}
