// Package automation replays scripted command sequences against a
// simulator and sweeps the gravitational constant.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/config"
	"github.com/san-kum/celestial/internal/forecast"
	"github.com/san-kum/celestial/internal/metrics"
	"github.com/san-kum/celestial/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted operator session.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep either dispatches one command (Do) or runs Cycles update
// cycles of Frame elapsed time each.
type ScenarioStep struct {
	Do     string          `yaml:"do,omitempty"`
	Cycles int             `yaml:"cycles,omitempty"`
	Frame  config.Duration `yaml:"frame,omitempty"`
}

// Report summarises a scenario run.
type Report struct {
	Commands  int
	Cycles    int
	Applied   int
	Forecasts []*forecast.Result
}

const defaultFrame = time.Second / 60

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (sc *Scenario) Validate() error {
	for i, step := range sc.Steps {
		switch {
		case step.Do != "" && step.Cycles != 0:
			return fmt.Errorf("step %d: do and cycles are exclusive", i+1)
		case step.Do != "":
			if _, err := sim.ParseCommand(step.Do); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		case step.Cycles < 0:
			return fmt.Errorf("step %d: cycles must not be negative", i+1)
		case step.Frame < 0:
			return fmt.Errorf("step %d: frame must not be negative", i+1)
		}
	}
	return nil
}

// RunScenario executes all steps in order. It stops at the first failing
// command or when ctx is done.
func RunScenario(ctx context.Context, s *sim.Simulator, sc *Scenario, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	report := &Report{}

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if step.Do != "" {
			cmd, err := sim.ParseCommand(step.Do)
			if err != nil {
				return report, fmt.Errorf("step %d: %w", i+1, err)
			}
			res, err := s.Dispatch(cmd)
			if err != nil {
				return report, fmt.Errorf("step %d: %w", i+1, err)
			}
			report.Commands++
			if res != nil {
				report.Forecasts = append(report.Forecasts, res)
			}
			logger.Debug("scenario command", "step", i+1, "command", cmd)
			continue
		}

		frame := time.Duration(step.Frame)
		if frame == 0 {
			frame = defaultFrame
		}
		for n := 0; n < step.Cycles; n++ {
			if n%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return report, err
				}
			}
			if s.Update(frame) {
				report.Applied++
			}
			report.Cycles++
		}
		logger.Debug("scenario cycles", "step", i+1, "cycles", step.Cycles, "frame", frame)
	}

	return report, nil
}

// Sweep runs the same body set once per gravitational constant in
// [Min, Max] and records how well energy is conserved.
type Sweep struct {
	Min, Max float64
	NumSteps int
	// Ticks forced per run.
	Ticks int
}

// SweepResult holds results from a single sweep run.
type SweepResult struct {
	GravitationalConstant float64
	MaxDrift              float64
	MinEnergy             float64
	MaxEnergy             float64
	Final                 celestial.Snapshot
}

func (sw Sweep) Validate() error {
	if sw.NumSteps < 1 {
		return fmt.Errorf("sweep needs at least one step, got %d", sw.NumSteps)
	}
	if sw.NumSteps > 1 && !(sw.Max > sw.Min) {
		return fmt.Errorf("sweep range is empty: [%g, %g]", sw.Min, sw.Max)
	}
	if sw.Ticks < 0 {
		return fmt.Errorf("sweep ticks must not be negative, got %d", sw.Ticks)
	}
	return nil
}

// RunSweep executes a sweep with base as the template configuration.
func RunSweep(ctx context.Context, sw Sweep, base sim.Config, bodies []celestial.Body) ([]SweepResult, error) {
	if err := sw.Validate(); err != nil {
		return nil, err
	}

	step := 0.0
	if sw.NumSteps > 1 {
		step = (sw.Max - sw.Min) / float64(sw.NumSteps-1)
	}

	results := make([]SweepResult, 0, sw.NumSteps)
	for i := 0; i < sw.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg := base
		cfg.GravitationalConstant = sw.Min + float64(i)*step

		drift := metrics.NewEnergyDrift(cfg.GravitationalConstant)
		series := metrics.NewEnergySeries(cfg.GravitationalConstant, sw.Ticks+1)
		s, err := sim.New(cfg, bodies, sim.WithObserver(drift), sim.WithObserver(series))
		if err != nil {
			return results, fmt.Errorf("g=%g: %w", cfg.GravitationalConstant, err)
		}
		drift.Observe(s.Bodies())
		series.Observe(s.Bodies())

		for n := 0; n < sw.Ticks; n++ {
			s.ForceTick()
		}

		values := series.Values()
		minE, maxE := values[0], values[0]
		for _, e := range values {
			minE = min(minE, e)
			maxE = max(maxE, e)
		}

		results = append(results, SweepResult{
			GravitationalConstant: cfg.GravitationalConstant,
			MaxDrift:              drift.Value(),
			MinEnergy:             minE,
			MaxEnergy:             maxE,
			Final:                 s.Bodies(),
		})
	}

	return results, nil
}
