package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/forecast"
	"gonum.org/v1/gonum/spatial/r3"
)

// Marker is one predicted position, drawn in its body's color.
type Marker struct {
	Owner    celestial.ID
	Step     int
	Position r3.Vec
	Color    lipgloss.Color
}

// Reconciliation reports how a forecast changed the marker set.
type Reconciliation struct {
	Reused  int
	Created int
	Dropped int
}

// Markers holds the forecast markers. It is owned by the presentation layer
// and never read by the simulation.
type Markers struct {
	slots []Marker
}

func (m *Markers) Len() int { return len(m.slots) }

func (m *Markers) All() []Marker { return m.slots }

// Reconcile lays the forecast out as a flat list (trajectory order, then
// step order) and matches it against the existing slots by index: the
// overlapping slots are rewritten in place, extra points get new slots and
// leftover slots are dropped.
func (m *Markers) Reconcile(res *forecast.Result, color func(celestial.ID) lipgloss.Color) Reconciliation {
	want := res.Points()
	var rec Reconciliation

	if want < len(m.slots) {
		rec.Dropped = len(m.slots) - want
		clear(m.slots[want:])
		m.slots = m.slots[:want]
	}
	rec.Reused = len(m.slots)
	rec.Created = want - rec.Reused

	i := 0
	for _, tr := range res.Trajectories {
		c := color(tr.ID)
		for step, p := range tr.Positions {
			mk := Marker{Owner: tr.ID, Step: step, Position: p, Color: c}
			if i < len(m.slots) {
				m.slots[i] = mk
			} else {
				m.slots = append(m.slots, mk)
			}
			i++
		}
	}
	return rec
}

// Clear removes every marker and returns how many there were.
func (m *Markers) Clear() int {
	n := len(m.slots)
	m.slots = nil
	return n
}
