package sim

import "errors"

// Configuration errors. They are returned before a value reaches the kernel.
var (
	// ErrInvalidGravity indicates a gravitational constant that is not positive.
	ErrInvalidGravity = errors.New("sim: gravitational constant must be positive and finite")

	// ErrInvalidInterval indicates a tick interval that is not positive.
	ErrInvalidInterval = errors.New("sim: tick interval must be positive")

	// ErrInvalidForecastSteps indicates a negative forecast depth.
	ErrInvalidForecastSteps = errors.New("sim: forecast steps must not be negative")

	// ErrUnknownCommand indicates a command name or value with no handler.
	ErrUnknownCommand = errors.New("sim: unknown command")
)
