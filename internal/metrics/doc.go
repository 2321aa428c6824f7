// Package metrics measures conserved quantities of a body set and tracks
// them across ticks through sim observers.
package metrics
