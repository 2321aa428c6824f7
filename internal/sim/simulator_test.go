package sim_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/integrators"
	"github.com/san-kum/celestial/internal/sim"
)

func startup() []celestial.Body {
	return []celestial.Body{
		{Name: "Left", Mass: 100},
		{Name: "Right", Mass: 1, Position: r3.Vec{X: 10, Y: 0.1}, Velocity: r3.Vec{Z: 100}},
		{Name: "Far", Mass: 1, Position: r3.Vec{Y: 0.3, Z: -10}, Velocity: r3.Vec{X: 100}},
	}
}

type recorder struct {
	ticks  []sim.Tick
	resets int
}

func (r *recorder) OnTick(t sim.Tick, _ celestial.Snapshot) { r.ticks = append(r.ticks, t) }
func (r *recorder) Reset()                                   { r.resets++ }

// countingKernel wraps the real kernel and counts invocations.
type countingKernel struct {
	integrators.Kernel
	velocities int
	steps      int
}

func (k *countingKernel) Velocities(b []celestial.Body, g, dt float64) map[celestial.ID]r3.Vec {
	k.velocities++
	return k.Kernel.Velocities(b, g, dt)
}

func (k *countingKernel) Step(b []celestial.Body, g, dt float64) {
	k.steps++
	k.Kernel.Step(b, g, dt)
}

type staleKernel struct{ integrators.Kernel }

func (staleKernel) Velocities(b []celestial.Body, _, _ float64) map[celestial.ID]r3.Vec {
	out := map[celestial.ID]r3.Vec{}
	for _, body := range b {
		out[body.ID+100] = body.Velocity
	}
	return out
}

var _ = Describe("Simulator", func() {
	var (
		s   *sim.Simulator
		rec *recorder
		k   *countingKernel
	)

	BeforeEach(func() {
		var err error
		rec = &recorder{}
		k = &countingKernel{Kernel: integrators.NewSemiImplicitEuler()}
		s, err = sim.New(sim.DefaultConfig(), startup(), sim.WithObserver(rec), sim.WithKernel(k))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("loads the startup set with sequential ids", func() {
			bodies := s.Bodies()
			Expect(bodies).To(HaveLen(3))
			Expect(bodies.IDs()).To(Equal([]celestial.ID{1, 2, 3}))
			Expect(bodies[0].Name).To(Equal("Left"))
			Expect(s.Active()).To(BeFalse())
		})

		It("rejects invalid configuration", func() {
			cfg := sim.DefaultConfig()
			cfg.GravitationalConstant = 0
			_, err := sim.New(cfg, startup())
			Expect(err).To(MatchError(sim.ErrInvalidGravity))

			cfg = sim.DefaultConfig()
			cfg.TickInterval = 0
			_, err = sim.New(cfg, startup())
			Expect(err).To(MatchError(sim.ErrInvalidInterval))
		})

		It("rejects a startup body with non-positive mass", func() {
			bad := append(startup(), celestial.Body{Name: "ghost", Mass: -2})
			_, err := sim.New(sim.DefaultConfig(), bad)
			Expect(errors.Is(err, celestial.ErrInvalidMass)).To(BeTrue())
		})

		It("does not share the startup slice with the caller", func() {
			set := startup()
			s2, err := sim.New(sim.DefaultConfig(), set)
			Expect(err).NotTo(HaveOccurred())
			set[0].Mass = 1e9
			Expect(s2.Reset()).To(Succeed())
			Expect(s2.Bodies()[0].Mass).To(Equal(100.0))
		})
	})

	Describe("activation gating", func() {
		It("drops scheduled ticks while paused", func() {
			before := s.Bodies()
			Expect(s.Update(time.Second)).To(BeFalse())
			Expect(s.Bodies()).To(Equal(before))
			Expect(s.Ticks()).To(BeZero())
			Expect(rec.ticks).To(BeEmpty())
		})

		It("applies a forced tick exactly once per call while paused", func() {
			before := s.Bodies()
			s.ForceTick()
			once := s.Bodies()
			Expect(once).NotTo(Equal(before))
			Expect(s.Ticks()).To(Equal(uint64(1)))

			s.ForceTick()
			Expect(s.Bodies()).NotTo(Equal(once))
			Expect(s.Ticks()).To(Equal(uint64(2)))
			Expect(rec.ticks).To(HaveLen(2))
			Expect(rec.ticks[0].Forced).To(BeTrue())
		})

		It("applies scheduled ticks once active", func() {
			Expect(s.Toggle()).To(BeTrue())
			Expect(s.Update(10 * time.Millisecond)).To(BeFalse())
			Expect(s.Update(30 * time.Millisecond)).To(BeTrue())
			Expect(rec.ticks).To(ConsistOf(sim.Tick{Dt: 1.0 / 34}))
		})

		It("applies at most one scheduled tick per cycle", func() {
			s.Toggle()
			Expect(s.Update(10 * time.Second)).To(BeTrue())
			Expect(s.Ticks()).To(Equal(uint64(1)))
		})

		It("allows a forced tick in the same cycle as a scheduled one", func() {
			s.Toggle()
			s.Update(time.Second)
			s.ForceTick()
			Expect(s.Ticks()).To(Equal(uint64(2)))
		})

		It("keeps the accumulator running while paused", func() {
			s.Update(30 * time.Millisecond)
			s.Toggle()
			Expect(s.Update(5 * time.Millisecond)).To(BeTrue())
		})
	})

	Describe("integration", func() {
		It("matches the two-body reference step", func() {
			s2, err := sim.New(sim.DefaultConfig(), []celestial.Body{
				{Name: "A", Mass: 100},
				{Name: "B", Mass: 1, Position: r3.Vec{X: 10}, Velocity: r3.Vec{Z: 100}},
			})
			Expect(err).NotTo(HaveOccurred())

			s2.ForceTick()
			a, _ := s2.Body(1)
			b, _ := s2.Body(2)
			Expect(a.Velocity.X).To(BeNumerically("~", 0.05*1/100.0/34, 1e-15))
			Expect(b.Velocity.X).To(BeNumerically("~", -0.05*100/100.0/34, 1e-15))
			Expect(b.Velocity.Z).To(Equal(100.0))
		})

		It("leaves a lone body untouched", func() {
			s2, err := sim.New(sim.DefaultConfig(), []celestial.Body{
				{Name: "solo", Mass: 3, Position: r3.Vec{X: 1, Y: 2, Z: 3}},
			})
			Expect(err).NotTo(HaveOccurred())
			before := s2.Bodies()
			for i := 0; i < 5; i++ {
				s2.ForceTick()
			}
			Expect(s2.Bodies()).To(Equal(before))
		})

		It("panics when the kernel returns velocities for unknown bodies", func() {
			s2, err := sim.New(sim.DefaultConfig(), startup(), sim.WithKernel(staleKernel{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(func() { s2.ForceTick() }).To(PanicWith(BeAssignableToTypeOf(&celestial.InvariantError{})))
		})
	})

	Describe("forecasting", func() {
		It("does not modify the live bodies", func() {
			s.ForceTick()
			before := s.Bodies()
			res, err := s.Forecast(500)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Bodies()).To(Equal(before))
			Expect(s.Ticks()).To(Equal(uint64(1)))
			Expect(rec.ticks).To(HaveLen(1))
			Expect(res.Points()).To(Equal(1500))
		})

		It("returns one sequence per body of the requested length", func() {
			res, err := s.Forecast(42)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Trajectories).To(HaveLen(3))
			for _, tr := range res.Trajectories {
				Expect(tr.Positions).To(HaveLen(42))
			}
			Expect(res.Dt).To(Equal(1.0 / 34))
		})

		It("uses the configured depth on request", func() {
			Expect(s.SetForecastSteps(7)).To(Succeed())
			res, err := s.RequestForecast()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(Equal(7))
			Expect(k.steps).To(Equal(7))
			Expect(k.velocities).To(BeZero())
		})

		It("predicts the positions live ticks later reach", func() {
			res, err := s.Forecast(3)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 3; i++ {
				s.ForceTick()
			}
			for _, b := range s.Bodies() {
				tr, ok := res.Trajectory(b.ID)
				Expect(ok).To(BeTrue())
				Expect(tr.Positions[2]).To(Equal(b.Position))
			}
		})

		It("rejects negative depth", func() {
			_, err := s.Forecast(-3)
			Expect(err).To(MatchError(sim.ErrInvalidForecastSteps))
		})
	})

	Describe("reset", func() {
		It("is idempotent and restores the startup set", func() {
			s.Toggle()
			s.ForceTick()
			s.ForceTick()
			_, err := s.Spawn(celestial.Body{Name: "extra", Mass: 5})
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Reset()).To(Succeed())
			first := s.Bodies()
			Expect(s.Reset()).To(Succeed())
			second := s.Bodies()

			Expect(second).To(Equal(first))
			Expect(first).To(HaveLen(3))
			for i, b := range startup() {
				Expect(first[i].ID).To(Equal(celestial.ID(i + 1)))
				Expect(first[i].Mass).To(Equal(b.Mass))
				Expect(first[i].Position).To(Equal(b.Position))
				Expect(first[i].Velocity).To(Equal(b.Velocity))
			}
		})

		It("keeps the running flag and resets observers", func() {
			s.Toggle()
			Expect(s.Reset()).To(Succeed())
			Expect(s.Active()).To(BeTrue())
			Expect(s.Ticks()).To(BeZero())
			Expect(rec.resets).To(Equal(1))
		})
	})

	Describe("body commands", func() {
		It("despawns and removes bodies", func() {
			Expect(s.Remove(2)).To(Succeed())
			Expect(s.Bodies()).To(HaveLen(2))
			Expect(s.Remove(2)).To(MatchError(celestial.ErrUnknownBody))

			s.DespawnAll()
			Expect(s.Bodies()).To(BeEmpty())
			s.ForceTick()
			Expect(s.Bodies()).To(BeEmpty())
		})

		It("validates spawned bodies", func() {
			_, err := s.Spawn(celestial.Body{Name: "bad", Mass: 0})
			Expect(err).To(MatchError(celestial.ErrInvalidMass))

			id, err := s.Spawn(celestial.Body{Name: "moon", Mass: 0.5, Position: r3.Vec{X: 12}})
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(celestial.ID(4)))
		})
	})

	Describe("configuration commands", func() {
		It("validates and applies new values", func() {
			Expect(s.SetGravitationalConstant(-1)).To(MatchError(sim.ErrInvalidGravity))
			Expect(s.SetTickInterval(0)).To(MatchError(sim.ErrInvalidInterval))
			Expect(s.SetForecastSteps(-1)).To(MatchError(sim.ErrInvalidForecastSteps))
			Expect(s.Config()).To(Equal(sim.DefaultConfig()))

			Expect(s.SetGravitationalConstant(1)).To(Succeed())
			Expect(s.SetTickInterval(10 * time.Millisecond)).To(Succeed())
			s.Toggle()
			cfg := s.Config()
			Expect(cfg.GravitationalConstant).To(Equal(1.0))
			Expect(cfg.StepSize()).To(Equal(0.1))
			Expect(cfg.Active).To(BeTrue())

			s.ForceTick()
			Expect(rec.ticks[0].Dt).To(Equal(0.1))
		})
	})

	Describe("dispatch", func() {
		It("routes every command", func() {
			_, err := s.Dispatch(sim.CmdToggle)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Active()).To(BeTrue())

			_, err = s.Dispatch(sim.CmdForceTick)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Ticks()).To(Equal(uint64(1)))

			Expect(s.SetForecastSteps(5)).To(Succeed())
			res, err := s.Dispatch(sim.CmdForecast)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(Equal(5))

			res, err = s.Dispatch(sim.CmdClearForecast)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeNil())

			_, err = s.Dispatch(sim.CmdReset)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Ticks()).To(BeZero())

			_, err = s.Dispatch(sim.CmdDespawnAll)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Bodies()).To(BeEmpty())

			_, err = s.Dispatch(sim.Command(42))
			Expect(err).To(MatchError(sim.ErrUnknownCommand))
		})
	})
})
