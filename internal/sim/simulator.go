package sim

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/forecast"
	"github.com/san-kum/celestial/internal/integrators"
)

// Simulator is the simulation context and the only writer of its store.
type Simulator struct {
	cfg        Config
	store      *celestial.Store
	startup    celestial.Snapshot
	scheduler  *Scheduler
	activation *Activation
	kernel     integrators.Kernel
	forecaster *forecast.Forecaster
	observers  []Observer
	logger     *slog.Logger
	ticks      uint64
}

type Option func(*Simulator)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithKernel replaces the semi-implicit Euler kernel.
func WithKernel(k integrators.Kernel) Option {
	return func(s *Simulator) { s.kernel = k }
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

// New validates cfg and the startup bodies and populates the store with
// the startup set.
func New(cfg Config, startup []celestial.Body, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scheduler, err := NewScheduler(cfg.TickInterval)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:        cfg,
		store:      celestial.NewStore(),
		startup:    celestial.Snapshot(startup).Clone(),
		scheduler:  scheduler,
		activation: NewActivation(cfg.Active),
		kernel:     integrators.NewSemiImplicitEuler(),
		observers:  make([]Observer, 0),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.forecaster = forecast.New(s.kernel)

	if err := s.store.Load(s.startup); err != nil {
		return nil, fmt.Errorf("startup bodies: %w", err)
	}
	return s, nil
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Config returns the current configuration, including the running flag.
func (s *Simulator) Config() Config {
	cfg := s.cfg
	cfg.Active = s.activation.Active()
	return cfg
}

func (s *Simulator) Active() bool { return s.activation.Active() }

// Ticks is the number of ticks applied since creation or the last reset.
func (s *Simulator) Ticks() uint64 { return s.ticks }

// Bodies returns a snapshot of the live bodies.
func (s *Simulator) Bodies() celestial.Snapshot { return s.store.Snapshot() }

func (s *Simulator) Body(id celestial.ID) (celestial.Body, bool) { return s.store.Get(id) }

// Update runs one cycle of the scheduled path and reports whether a tick
// was applied.
func (s *Simulator) Update(elapsed time.Duration) bool {
	tick, ok := s.scheduler.Advance(elapsed)
	if !ok {
		return false
	}
	return s.dispatch(tick)
}

// ForceTick applies exactly one tick regardless of the running flag.
func (s *Simulator) ForceTick() {
	s.dispatch(s.scheduler.Force())
}

func (s *Simulator) Toggle() bool {
	active := s.activation.Toggle()
	s.logger.Info("activation toggled", "active", active)
	return active
}

// Reset clears the store and recreates the startup set. The running flag is
// left as it is.
func (s *Simulator) Reset() error {
	if err := s.store.Load(s.startup); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.ticks = 0
	for _, o := range s.observers {
		if r, ok := o.(Resetter); ok {
			r.Reset()
		}
	}
	s.logger.Info("simulation reset", "bodies", s.store.Len())
	return nil
}

// DespawnAll removes every body without recreating the startup set.
func (s *Simulator) DespawnAll() {
	n := s.store.Len()
	s.store.Clear()
	s.logger.Info("bodies despawned", "count", n)
}

func (s *Simulator) Remove(id celestial.ID) error {
	return s.store.Remove(id)
}

// Spawn validates b and adds it to the live store.
func (s *Simulator) Spawn(b celestial.Body) (celestial.ID, error) {
	id, err := s.store.Add(b)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("body spawned", "id", id, "name", b.Name, "mass", b.Mass)
	return id, nil
}

// Forecast simulates steps ticks ahead on a copy of the live bodies.
// The cost grows with steps times the square of the body count.
func (s *Simulator) Forecast(steps int) (*forecast.Result, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidForecastSteps, steps)
	}
	start := time.Now()
	res, err := s.forecaster.Run(s.store.Snapshot(), steps, s.cfg.GravitationalConstant, s.scheduler.Step())
	if err != nil {
		return nil, err
	}
	s.logger.Debug("forecast computed",
		"steps", steps,
		"bodies", len(res.Trajectories),
		"elapsed", time.Since(start))
	return res, nil
}

// RequestForecast forecasts with the configured depth.
func (s *Simulator) RequestForecast() (*forecast.Result, error) {
	return s.Forecast(s.cfg.ForecastSteps)
}

func (s *Simulator) SetGravitationalConstant(g float64) error {
	if err := validateGravity(g); err != nil {
		return err
	}
	s.cfg.GravitationalConstant = g
	return nil
}

func (s *Simulator) SetTickInterval(d time.Duration) error {
	if err := s.scheduler.SetInterval(d); err != nil {
		return err
	}
	s.cfg.TickInterval = d
	return nil
}

func (s *Simulator) SetForecastSteps(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidForecastSteps, n)
	}
	s.cfg.ForecastSteps = n
	return nil
}

// Dispatch executes an operator command. Only CmdForecast returns a result.
// CmdClearForecast is a no-op for the core: forecasts are not retained.
func (s *Simulator) Dispatch(cmd Command) (*forecast.Result, error) {
	switch cmd {
	case CmdToggle:
		s.Toggle()
	case CmdForceTick:
		s.ForceTick()
	case CmdReset:
		return nil, s.Reset()
	case CmdForecast:
		return s.RequestForecast()
	case CmdClearForecast:
	case CmdDespawnAll:
		s.DespawnAll()
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCommand, cmd)
	}
	return nil, nil
}

func (s *Simulator) dispatch(tick Tick) bool {
	if !s.activation.Admit(tick) {
		return false
	}
	s.apply(tick)
	return true
}

func (s *Simulator) apply(tick Tick) {
	snap := s.store.Snapshot()
	velocities := s.kernel.Velocities(snap, s.cfg.GravitationalConstant, tick.Dt)
	s.store.Apply(velocities, tick.Dt)
	s.ticks++

	if len(s.observers) == 0 {
		return
	}
	bodies := s.store.Snapshot()
	for _, o := range s.observers {
		o.OnTick(tick, bodies)
	}
}
