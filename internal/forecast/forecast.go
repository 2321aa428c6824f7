// Package forecast projects future trajectories by simulating a private
// copy of a snapshot. The live store is never touched.
package forecast

import (
	"errors"
	"fmt"

	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/integrators"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrNegativeSteps = errors.New("forecast: steps must not be negative")

// Trajectory is the predicted path of one body, one position per step.
type Trajectory struct {
	ID        celestial.ID
	Name      string
	Positions []r3.Vec
}

// Result holds one trajectory per body, in snapshot order.
type Result struct {
	Steps        int
	Dt           float64
	Trajectories []Trajectory
}

func (r *Result) Trajectory(id celestial.ID) (Trajectory, bool) {
	for _, tr := range r.Trajectories {
		if tr.ID == id {
			return tr, true
		}
	}
	return Trajectory{}, false
}

// Points is the total number of predicted positions.
func (r *Result) Points() int {
	n := 0
	for _, tr := range r.Trajectories {
		n += len(tr.Positions)
	}
	return n
}

// Forecaster is NOT thread-safe: it shares the kernel's scratch space.
type Forecaster struct {
	kernel integrators.Kernel
	pool   *BufferPool
}

func New(kernel integrators.Kernel) *Forecaster {
	return &Forecaster{kernel: kernel, pool: NewBufferPool()}
}

// Run advances a copy of snap steps times with the given step size and
// records every body's position after each step.
func (f *Forecaster) Run(snap celestial.Snapshot, steps int, g, dt float64) (*Result, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSteps, steps)
	}

	work := f.pool.GetAndCopy(snap)
	defer f.pool.Put(work)

	res := &Result{
		Steps:        steps,
		Dt:           dt,
		Trajectories: make([]Trajectory, len(work)),
	}
	for i, b := range work {
		res.Trajectories[i] = Trajectory{
			ID:        b.ID,
			Name:      b.Name,
			Positions: make([]r3.Vec, 0, steps),
		}
	}

	for n := 0; n < steps; n++ {
		f.kernel.Step(work, g, dt)
		for i := range work {
			res.Trajectories[i].Positions = append(res.Trajectories[i].Positions, work[i].Position)
		}
	}

	return res, nil
}
