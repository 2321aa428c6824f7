package metrics

import (
	"math"

	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/sim"
)

// Metric is a sim observer that reduces the run to one number.
type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

var (
	_ Metric = (*EnergyDrift)(nil)
	_ Metric = (*TickCounter)(nil)
	_ Metric = (*EnergySeries)(nil)
)

// EnergyDrift records the largest relative change in total energy against
// the first observed tick.
type EnergyDrift struct {
	name     string
	g        float64
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(g float64) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", g: g}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnTick(_ sim.Tick, bodies celestial.Snapshot) {
	e.Observe(bodies)
}

func (e *EnergyDrift) Observe(bodies celestial.Snapshot) {
	energy := Energy(bodies, e.g)
	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Initial() float64 { return e.initial }

func (e *EnergyDrift) Current() float64 { return e.current }

func (e *EnergyDrift) Samples() int { return e.samples }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.current = 0
	e.maxDrift = 0
	e.samples = 0
}

// TickCounter counts applied ticks, split by origin.
type TickCounter struct {
	Scheduled int
	Forced    int
}

func NewTickCounter() *TickCounter { return &TickCounter{} }

func (c *TickCounter) Name() string { return "ticks" }

func (c *TickCounter) OnTick(tick sim.Tick, _ celestial.Snapshot) {
	if tick.Forced {
		c.Forced++
		return
	}
	c.Scheduled++
}

func (c *TickCounter) Value() float64 { return float64(c.Scheduled + c.Forced) }

func (c *TickCounter) Reset() {
	c.Scheduled = 0
	c.Forced = 0
}

// EnergySeries keeps the total energy of the most recent ticks.
type EnergySeries struct {
	g      float64
	limit  int
	values []float64
}

func NewEnergySeries(g float64, limit int) *EnergySeries {
	if limit < 1 {
		limit = 1
	}
	return &EnergySeries{g: g, limit: limit, values: make([]float64, 0, limit)}
}

func (s *EnergySeries) Name() string { return "energy" }

func (s *EnergySeries) OnTick(_ sim.Tick, bodies celestial.Snapshot) {
	s.Observe(bodies)
}

func (s *EnergySeries) Observe(bodies celestial.Snapshot) {
	if len(s.values) == s.limit {
		copy(s.values, s.values[1:])
		s.values = s.values[:s.limit-1]
	}
	s.values = append(s.values, Energy(bodies, s.g))
}

// Value is the latest energy, or 0 before the first tick.
func (s *EnergySeries) Value() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

// Values returns a copy of the recorded history, oldest first.
func (s *EnergySeries) Values() []float64 {
	return append([]float64(nil), s.values...)
}

func (s *EnergySeries) Len() int { return len(s.values) }

func (s *EnergySeries) Reset() { s.values = s.values[:0] }
