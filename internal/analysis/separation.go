package analysis

import (
	"errors"
	"fmt"

	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/forecast"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrTooShort = errors.New("analysis: series too short")
	ErrNoSignal = errors.New("analysis: series has no oscillation")
)

// Separation returns |a - b| for every step of the forecast.
func Separation(res *forecast.Result, a, b celestial.ID) ([]float64, error) {
	ta, ok := res.Trajectory(a)
	if !ok {
		return nil, fmt.Errorf("%w: %d", celestial.ErrUnknownBody, a)
	}
	tb, ok := res.Trajectory(b)
	if !ok {
		return nil, fmt.Errorf("%w: %d", celestial.ErrUnknownBody, b)
	}

	out := make([]float64, len(ta.Positions))
	for i := range out {
		out[i] = r3.Norm(r3.Sub(ta.Positions[i], tb.Positions[i]))
	}
	return out, nil
}

// ClosestApproach returns the smallest separation of a and b and the
// zero-based step at which it happens.
func ClosestApproach(res *forecast.Result, a, b celestial.ID) (float64, int, error) {
	sep, err := Separation(res, a, b)
	if err != nil {
		return 0, 0, err
	}
	if len(sep) == 0 {
		return 0, 0, ErrTooShort
	}

	best, at := sep[0], 0
	for i, d := range sep {
		if d < best {
			best, at = d, i
		}
	}
	return best, at, nil
}
