// Package celestial holds the simulation data model: massive point bodies,
// the snapshots taken of them and the authoritative [Store] that owns them.
//
//   - [Body]: id, name, mass, position and velocity
//   - [Snapshot]: an independent copy of every body at one instant
//   - [Store]: single-writer owner of the live bodies
//
// Vectors are [r3.Vec] values from gonum, so a Body carries no references
// and copying a slice of bodies copies all of their state.
//
// # Thread Safety
//
// Store is NOT thread-safe. It has exactly one writer, the simulator that
// applies integration results; every reader works on a Snapshot.
package celestial
