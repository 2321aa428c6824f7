// Package export writes forecasts and body snapshots as JSON, CSV or SVG.
// Every function writes to an io.Writer; nothing is persisted here.
package export
