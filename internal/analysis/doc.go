// Package analysis inspects forecast results.
//
//   - [Separation]: distance between two bodies at every forecast step
//   - [ClosestApproach]: smallest separation and the step it occurs at
//   - [PowerSpectrum]: windowed magnitude spectrum of a series
//   - [DominantPeriod]: period of the strongest oscillation in a series
//
// # Orbital Period
//
// The separation of a bound pair oscillates once per orbit:
//
//	sep, _ := analysis.Separation(res, sun, planet)
//	period, err := analysis.DominantPeriod(sep, res.Dt)
package analysis
