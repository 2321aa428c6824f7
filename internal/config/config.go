package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	GravitationalConstant float64      `yaml:"gravitational_constant"`
	TickInterval          Duration     `yaml:"tick_interval"`
	ForecastSteps         int          `yaml:"forecast_steps"`
	Active                bool         `yaml:"active"`
	Bodies                []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string     `yaml:"name"`
	Mass     float64    `yaml:"mass"`
	Position [3]float64 `yaml:"position,flow"`
	Velocity [3]float64 `yaml:"velocity,flow"`
}

// Duration is a time.Duration written as a Go duration string ("34ms").
type Duration time.Duration

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", value.Line, value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultBodies is the startup set: a heavy body at the origin and two
// light bodies launched past it.
func DefaultBodies() []BodyConfig {
	return []BodyConfig{
		{Name: "Left", Mass: 100},
		{Name: "Right", Mass: 1, Position: [3]float64{10, 0.1, 0}, Velocity: [3]float64{0, 0, 100}},
		{Name: "Far", Mass: 1, Position: [3]float64{0, 0.3, -10}, Velocity: [3]float64{100, 0, 0}},
	}
}

func DefaultConfig() *Config {
	d := sim.DefaultConfig()
	return &Config{
		GravitationalConstant: d.GravitationalConstant,
		TickInterval:          Duration(d.TickInterval),
		ForecastSteps:         d.ForecastSteps,
		Active:                d.Active,
		Bodies:                DefaultBodies(),
	}
}

// Load reads a YAML file over the defaults and validates the result.
// A bodies list in the file replaces the default startup set.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Simulation().Validate(); err != nil {
		return err
	}
	for i, b := range c.StartupBodies() {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("bodies[%d]: %w", i, err)
		}
	}
	return nil
}

func (c *Config) Simulation() sim.Config {
	return sim.Config{
		GravitationalConstant: c.GravitationalConstant,
		TickInterval:          time.Duration(c.TickInterval),
		ForecastSteps:         c.ForecastSteps,
		Active:                c.Active,
	}
}

func (c *Config) StartupBodies() []celestial.Body {
	bodies := make([]celestial.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = celestial.Body{
			Name:     b.Name,
			Mass:     b.Mass,
			Position: r3.Vec{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]},
			Velocity: r3.Vec{X: b.Velocity[0], Y: b.Velocity[1], Z: b.Velocity[2]},
		}
	}
	return bodies
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &cp
}
