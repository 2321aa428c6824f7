package sim

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/san-kum/celestial/internal/celestial"
)

const (
	DefaultGravitationalConstant = 0.05
	DefaultTickInterval          = 34 * time.Millisecond
	DefaultForecastSteps         = 1000
)

// Config is read-only while a tick is applied. It changes only through the
// Simulator's validated setters.
type Config struct {
	GravitationalConstant float64
	TickInterval          time.Duration
	ForecastSteps         int
	Active                bool
}

func DefaultConfig() Config {
	return Config{
		GravitationalConstant: DefaultGravitationalConstant,
		TickInterval:          DefaultTickInterval,
		ForecastSteps:         DefaultForecastSteps,
		Active:                false,
	}
}

func (c Config) Validate() error {
	if err := validateGravity(c.GravitationalConstant); err != nil {
		return err
	}
	if err := validateInterval(c.TickInterval); err != nil {
		return err
	}
	if c.ForecastSteps < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidForecastSteps, c.ForecastSteps)
	}
	return nil
}

// StepSize is the nominal simulation step carried by every tick: the
// reciprocal of the interval in milliseconds, so 34ms gives 1/34.
func (c Config) StepSize() float64 {
	return StepSize(c.TickInterval)
}

func StepSize(interval time.Duration) float64 {
	return float64(time.Millisecond) / float64(interval)
}

func validateGravity(g float64) error {
	if !(g > 0) || math.IsInf(g, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidGravity, g)
	}
	return nil
}

func validateInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidInterval, d)
	}
	return nil
}

// Tick is one fixed-size simulation step.
type Tick struct {
	Dt     float64
	Forced bool
}

// Observer is notified after every applied tick with the updated bodies.
type Observer interface {
	OnTick(tick Tick, bodies celestial.Snapshot)
}

// Resetter is implemented by observers that clear their state when the
// simulation is reset.
type Resetter interface {
	Reset()
}

// Command is an operator request issued by the presentation layer.
type Command int

const (
	CmdToggle Command = iota
	CmdForceTick
	CmdReset
	CmdForecast
	CmdClearForecast
	CmdDespawnAll
)

var commandNames = map[Command]string{
	CmdToggle:        "toggle-active",
	CmdForceTick:     "force-tick",
	CmdReset:         "reset",
	CmdForecast:      "request-forecast",
	CmdClearForecast: "clear-forecast",
	CmdDespawnAll:    "despawn-all",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand maps a command name such as "force-tick" to its Command.
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// CommandNames lists every command name in declaration order.
func CommandNames() []string {
	names := make([]string, 0, len(commandNames))
	for c := CmdToggle; c <= CmdDespawnAll; c++ {
		names = append(names, commandNames[c])
	}
	return names
}
