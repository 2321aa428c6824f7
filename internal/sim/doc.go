// Package sim drives the N-body simulation.
//
// A [Simulator] is the explicit simulation context. It owns the live
// [celestial.Store] and wires together:
//
//   - [Scheduler]: turns elapsed wall-clock time into fixed-size [Tick]s
//   - [Activation]: the running flag that gates scheduled ticks
//   - [integrators.Kernel]: computes new velocities and positions
//   - [forecast.Forecaster]: previews trajectories on a private copy
//
// # Update cycle
//
// The driver calls [Simulator.Update] once per frame with the measured
// frame time. At most one scheduled tick is applied per call. A forced tick
// ([Simulator.ForceTick]) is a separate event and bypasses the gate.
//
//	s, _ := sim.New(sim.DefaultConfig(), startup)
//	for frame := range frames {
//	    s.Update(frame.Elapsed)
//	}
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Everything runs synchronously on
// the caller's goroutine; forecasts copy the store instead of locking it.
package sim
