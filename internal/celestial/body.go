package celestial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ID identifies a body within a Store.
type ID uint64

// Body is a massive point.
type Body struct {
	ID       ID
	Name     string
	Mass     float64
	Position r3.Vec
	Velocity r3.Vec
}

// Validate checks the mass and finiteness invariants.
func (b Body) Validate() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return fmt.Errorf("%w: body %q has mass %g", ErrInvalidMass, b.Name, b.Mass)
	}
	if !b.IsValid() {
		return fmt.Errorf("%w: body %q", ErrNonFinite, b.Name)
	}
	return nil
}

// IsValid reports whether position and velocity are finite.
func (b Body) IsValid() bool {
	return finite(b.Position) && finite(b.Velocity)
}

// Advance replaces the velocity and moves the body along it for dt.
// The position update uses the new velocity (semi-implicit Euler).
func (b *Body) Advance(velocity r3.Vec, dt float64) {
	b.Velocity = velocity
	b.Position = r3.Add(b.Position, r3.Scale(dt, velocity))
}

func (b Body) String() string {
	return fmt.Sprintf("%d:%s m=%g p=(%.4g, %.4g, %.4g) v=(%.4g, %.4g, %.4g)",
		b.ID, b.Name, b.Mass,
		b.Position.X, b.Position.Y, b.Position.Z,
		b.Velocity.X, b.Velocity.Y, b.Velocity.Z)
}

func finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Snapshot is a copy of all bodies in store order. Modifying it never
// affects the store it was taken from.
type Snapshot []Body

func (s Snapshot) Clone() Snapshot {
	c := make(Snapshot, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every body is finite.
func (s Snapshot) IsValid() bool {
	for _, b := range s {
		if !b.IsValid() {
			return false
		}
	}
	return true
}

// Find returns the body with the given id.
func (s Snapshot) Find(id ID) (Body, bool) {
	for _, b := range s {
		if b.ID == id {
			return b, true
		}
	}
	return Body{}, false
}

func (s Snapshot) IDs() []ID {
	ids := make([]ID, len(s))
	for i, b := range s {
		ids[i] = b.ID
	}
	return ids
}
