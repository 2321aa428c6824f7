package integrators

import (
	"github.com/san-kum/celestial/internal/celestial"
	"gonum.org/v1/gonum/spatial/r3"
)

// CoincidenceEpsilon is the squared distance at or below which two bodies
// are treated as coincident and exert no force on each other.
const CoincidenceEpsilon = 1e-12

// Kernel computes one integration step.
type Kernel interface {
	// Velocities returns the post-step velocity of every body keyed by id,
	// computed from the given pre-step state. bodies is not modified.
	Velocities(bodies []celestial.Body, g, dt float64) map[celestial.ID]r3.Vec
	// Step advances bodies in place.
	Step(bodies []celestial.Body, g, dt float64)
}

// SemiImplicitEuler is NOT safe for concurrent use; Step reuses a scratch
// buffer.
type SemiImplicitEuler struct {
	scratch []r3.Vec
}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Velocities(bodies []celestial.Body, g, dt float64) map[celestial.ID]r3.Vec {
	next := make([]r3.Vec, len(bodies))
	accumulate(bodies, g, dt, next)

	out := make(map[celestial.ID]r3.Vec, len(bodies))
	for i, b := range bodies {
		out[b.ID] = next[i]
	}
	return out
}

func (e *SemiImplicitEuler) Step(bodies []celestial.Body, g, dt float64) {
	if cap(e.scratch) < len(bodies) {
		e.scratch = make([]r3.Vec, len(bodies))
	}
	next := e.scratch[:len(bodies)]
	accumulate(bodies, g, dt, next)
	for i := range bodies {
		bodies[i].Advance(next[i], dt)
	}
}

// Acceleration is the pull exerted on a body at from by a mass at to.
func Acceleration(from, to r3.Vec, mass, g float64) r3.Vec {
	d := r3.Sub(to, from)
	d2 := r3.Norm2(d)
	if d2 <= CoincidenceEpsilon {
		return r3.Vec{}
	}
	return r3.Scale(g*mass/d2, r3.Unit(d))
}

// accumulate writes the new velocities into next. Positions are only read,
// so every body sees the same pre-step state.
func accumulate(bodies []celestial.Body, g, dt float64, next []r3.Vec) {
	for i := range bodies {
		v := bodies[i].Velocity
		for j := range bodies {
			if i == j {
				continue
			}
			a := Acceleration(bodies[i].Position, bodies[j].Position, bodies[j].Mass, g)
			v = r3.Add(v, r3.Scale(dt, a))
		}
		next[i] = v
	}
}
