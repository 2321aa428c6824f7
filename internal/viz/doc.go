// Package viz is the terminal front end: a Bubble Tea program that drives a
// sim.Simulator from its frame loop and draws bodies and forecast markers on
// a braille canvas.
//
//   - [Model]: the bubbletea model; [Run] starts it in the alternate screen
//   - [Canvas]: braille pixel canvas with per-cell color
//   - [Camera]: rotating perspective camera, top-down by default
//   - [Markers]: forecast markers reconciled against each new forecast
//
// # Key Bindings
//
//	U     - Start/stop the simulation
//	T     - Force a single tick
//	R     - Reset to the startup bodies
//	D     - Forecast trajectories
//	C     - Clear forecast markers
//	X/Y/Z - Rotate the camera (shift reverses)
//	+/-   - Zoom
//	?     - Show help overlay
package viz
