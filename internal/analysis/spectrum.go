package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const minSeries = 4

// PowerSpectrum removes the mean, applies a Hann window and zero-pads to the
// next power of two. It returns the magnitudes of bins 0..N/2.
func PowerSpectrum(series []float64) []float64 {
	n := nextPow2(len(series))
	data := make([]float64, n)
	copy(data, series)

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	if len(series) > 0 {
		mean /= float64(len(series))
	}
	for i := range series {
		data[i] -= mean
	}
	if len(series) > 1 {
		window.Apply(data[:len(series)], window.Hann)
	}

	spec := fft.FFTReal(data)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantPeriod returns the period, in the units of dt, of the strongest
// non-constant component of series.
func DominantPeriod(series []float64, dt float64) (float64, error) {
	if len(series) < minSeries {
		return 0, fmt.Errorf("%w: %d samples", ErrTooShort, len(series))
	}

	ps := PowerSpectrum(series)
	n := nextPow2(len(series))

	peak, bin := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peak {
			peak, bin = ps[k], k
		}
	}
	if bin == 0 || peak <= 1e-12*float64(n) {
		return 0, ErrNoSignal
	}

	return float64(n) * dt / float64(bin), nil
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
