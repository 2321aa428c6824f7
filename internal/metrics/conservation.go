package metrics

import (
	"math"

	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/integrators"
	"gonum.org/v1/gonum/spatial/r3"
)

func KineticEnergy(bodies celestial.Snapshot) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * r3.Norm2(b.Velocity)
	}
	return ke
}

// PotentialEnergy sums -G*mi*mj/r over pairs. Coincident pairs are skipped
// the same way the force kernel skips them.
func PotentialEnergy(bodies celestial.Snapshot, g float64) float64 {
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			d2 := r3.Norm2(r3.Sub(bodies[j].Position, bodies[i].Position))
			if d2 <= integrators.CoincidenceEpsilon {
				continue
			}
			pe -= g * bodies[i].Mass * bodies[j].Mass / math.Sqrt(d2)
		}
	}
	return pe
}

func Energy(bodies celestial.Snapshot, g float64) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, g)
}

func Momentum(bodies celestial.Snapshot) r3.Vec {
	var p r3.Vec
	for _, b := range bodies {
		p = r3.Add(p, r3.Scale(b.Mass, b.Velocity))
	}
	return p
}

func AngularMomentum(bodies celestial.Snapshot) r3.Vec {
	var l r3.Vec
	for _, b := range bodies {
		l = r3.Add(l, r3.Scale(b.Mass, r3.Cross(b.Position, b.Velocity)))
	}
	return l
}

// CenterOfMass returns the mass-weighted mean position, or the zero vector
// for an empty set.
func CenterOfMass(bodies celestial.Snapshot) r3.Vec {
	var sum r3.Vec
	total := 0.0
	for _, b := range bodies {
		sum = r3.Add(sum, r3.Scale(b.Mass, b.Position))
		total += b.Mass
	}
	if total == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/total, sum)
}
