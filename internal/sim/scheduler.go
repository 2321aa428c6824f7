package sim

import "time"

// Scheduler accumulates frame time against a fixed interval. When the
// interval is reached it emits one tick and drops the accumulator to zero;
// the overshoot is discarded rather than carried into the next interval.
type Scheduler struct {
	interval time.Duration
	elapsed  time.Duration
}

func NewScheduler(interval time.Duration) (*Scheduler, error) {
	if err := validateInterval(interval); err != nil {
		return nil, err
	}
	return &Scheduler{interval: interval}, nil
}

func (s *Scheduler) Interval() time.Duration { return s.interval }

// Pending is the time accumulated towards the next tick.
func (s *Scheduler) Pending() time.Duration { return s.elapsed }

// Step is the nominal dt carried by emitted ticks.
func (s *Scheduler) Step() float64 { return StepSize(s.interval) }

// SetInterval changes the interval and restarts accumulation.
func (s *Scheduler) SetInterval(interval time.Duration) error {
	if err := validateInterval(interval); err != nil {
		return err
	}
	s.interval = interval
	s.elapsed = 0
	return nil
}

// Advance adds elapsed time and reports whether a tick is due. At most one
// tick is emitted per call. Negative durations are ignored.
func (s *Scheduler) Advance(elapsed time.Duration) (Tick, bool) {
	if elapsed > 0 {
		s.elapsed += elapsed
	}
	if s.elapsed < s.interval {
		return Tick{}, false
	}
	s.elapsed = 0
	return Tick{Dt: s.Step()}, true
}

// Force emits a tick immediately without touching the accumulator.
func (s *Scheduler) Force() Tick {
	return Tick{Dt: s.Step(), Forced: true}
}
