package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/celestial/internal/celestial"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	testG  = 0.05
	testDt = 1.0 / 34
)

func twoBodies() []celestial.Body {
	return []celestial.Body{
		{ID: 1, Name: "a", Mass: 100},
		{ID: 2, Name: "b", Mass: 1, Position: r3.Vec{X: 10}, Velocity: r3.Vec{Z: 100}},
	}
}

func TestTwoBodyStep(t *testing.T) {
	bodies := twoBodies()
	v := NewSemiImplicitEuler().Velocities(bodies, testG, testDt)

	wantA := testG * 1 / 100 * testDt
	if math.Abs(v[1].X-wantA) > 1e-15 {
		t.Errorf("body a: expected vx %.6e, got %.6e", wantA, v[1].X)
	}
	if v[1].X <= 0 {
		t.Error("body a must accelerate towards b (+x)")
	}
	if v[1].Y != 0 || v[1].Z != 0 {
		t.Errorf("body a: unexpected off-axis velocity %v", v[1])
	}

	wantB := -testG * 100 / 100 * testDt
	if math.Abs(v[2].X-wantB) > 1e-15 {
		t.Errorf("body b: expected vx %.6e, got %.6e", wantB, v[2].X)
	}
	if v[2].Z != 100 {
		t.Errorf("body b must keep its initial velocity, got vz %f", v[2].Z)
	}

	if math.Abs(wantA-1.47e-5) > 1e-7 || math.Abs(wantB+1.47e-3) > 1e-5 {
		t.Errorf("reference magnitudes off: %.4e %.4e", wantA, wantB)
	}
}

func TestStepUsesNewVelocity(t *testing.T) {
	bodies := twoBodies()
	v := NewSemiImplicitEuler().Velocities(bodies, testG, testDt)

	NewSemiImplicitEuler().Step(bodies, testG, testDt)

	for _, b := range bodies {
		if b.Velocity != v[b.ID] {
			t.Errorf("body %d: step velocity %v differs from kernel %v", b.ID, b.Velocity, v[b.ID])
		}
	}
	want := r3.Vec{X: 10 + v[2].X*testDt, Z: 100 * testDt}
	if r3.Norm(r3.Sub(bodies[1].Position, want)) > 1e-12 {
		t.Errorf("expected position %v, got %v", want, bodies[1].Position)
	}
}

func TestVelocitiesDoNotMutateInput(t *testing.T) {
	bodies := twoBodies()
	before := append([]celestial.Body(nil), bodies...)

	NewSemiImplicitEuler().Velocities(bodies, testG, testDt)

	for i := range bodies {
		if bodies[i] != before[i] {
			t.Errorf("body %d modified: %v -> %v", i, before[i], bodies[i])
		}
	}
}

func TestSingleBodyIsStable(t *testing.T) {
	bodies := []celestial.Body{{ID: 1, Mass: 5, Position: r3.Vec{X: 1, Y: 2, Z: 3}}}
	integ := NewSemiImplicitEuler()

	for i := 0; i < 10; i++ {
		integ.Step(bodies, testG, testDt)
	}

	if bodies[0].Velocity != (r3.Vec{}) {
		t.Errorf("lone body gained velocity %v", bodies[0].Velocity)
	}
	if bodies[0].Position != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("lone body moved to %v", bodies[0].Position)
	}
}

func TestDeterminism(t *testing.T) {
	bodies := []celestial.Body{
		{ID: 1, Mass: 100},
		{ID: 2, Mass: 1, Position: r3.Vec{X: 10, Y: 0.1}, Velocity: r3.Vec{Z: 100}},
		{ID: 3, Mass: 1, Position: r3.Vec{Y: 0.3, Z: -10}, Velocity: r3.Vec{X: 100}},
	}
	integ := NewSemiImplicitEuler()

	first := integ.Velocities(bodies, testG, testDt)
	for run := 0; run < 5; run++ {
		again := integ.Velocities(bodies, testG, testDt)
		for id, v := range first {
			if again[id] != v {
				t.Fatalf("run %d: body %d velocity %v != %v", run, id, again[id], v)
			}
		}
	}
}

func TestSimultaneousUpdate(t *testing.T) {
	bodies := []celestial.Body{
		{ID: 1, Mass: 3, Position: r3.Vec{X: -1}},
		{ID: 2, Mass: 7, Position: r3.Vec{X: 2, Y: 1}},
		{ID: 3, Mass: 2, Position: r3.Vec{Z: 4}},
	}
	reversed := []celestial.Body{bodies[2], bodies[1], bodies[0]}

	integ := NewSemiImplicitEuler()
	integ.Step(bodies, testG, testDt)
	integ.Step(reversed, testG, testDt)

	for _, b := range bodies {
		for _, r := range reversed {
			if b.ID == r.ID && r3.Norm(r3.Sub(b.Position, r.Position)) > 1e-12 {
				t.Errorf("body %d depends on evaluation order: %v vs %v", b.ID, b.Position, r.Position)
			}
		}
	}
}

func TestCoincidentBodiesStayFinite(t *testing.T) {
	tests := []struct {
		name   string
		offset r3.Vec
	}{
		{"exact", r3.Vec{}},
		{"subnormal", r3.Vec{X: 1e-160}},
		{"tiny", r3.Vec{Y: 1e-7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := []celestial.Body{
				{ID: 1, Mass: 1},
				{ID: 2, Mass: 1, Position: tt.offset},
				{ID: 3, Mass: 1, Position: r3.Vec{X: 5}},
			}
			integ := NewSemiImplicitEuler()
			for i := 0; i < 3; i++ {
				integ.Step(bodies, testG, testDt)
			}
			if !celestial.Snapshot(bodies).IsValid() {
				t.Errorf("non-finite state: %v", bodies)
			}
		})
	}
}

func TestAcceleration(t *testing.T) {
	a := Acceleration(r3.Vec{}, r3.Vec{Y: 2}, 8, 0.5)
	if math.Abs(a.Y-1) > 1e-15 || a.X != 0 || a.Z != 0 {
		t.Errorf("expected (0,1,0), got %v", a)
	}
	if z := Acceleration(r3.Vec{X: 3}, r3.Vec{X: 3}, 8, 0.5); z != (r3.Vec{}) {
		t.Errorf("coincident pair must not accelerate, got %v", z)
	}
}
