package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestModel(t *testing.T) (Model, *sim.Simulator) {
	t.Helper()
	startup := []celestial.Body{
		{Name: "Left", Mass: 100},
		{Name: "Right", Mass: 1, Position: r3.Vec{X: 10, Y: 0.1}, Velocity: r3.Vec{Z: 100}},
	}
	cfg := sim.DefaultConfig()
	cfg.ForecastSteps = 10
	s, err := sim.New(cfg, startup)
	if err != nil {
		t.Fatalf("failed to create simulator: %v", err)
	}
	return NewModel(s, Options{Width: 20, Height: 10}), s
}

func key(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelKeys(t *testing.T) {
	m, s := newTestModel(t)

	m = update(m, key("t"))
	if s.Ticks() != 1 {
		t.Errorf("t must force one tick, got %d", s.Ticks())
	}

	m = update(m, key("u"))
	if !s.Active() {
		t.Error("u must start the simulation")
	}

	m = update(m, key("d"))
	if m.markers.Len() != 20 {
		t.Errorf("expected 20 markers, got %d", m.markers.Len())
	}

	m = update(m, key("c"))
	if m.markers.Len() != 0 {
		t.Error("c must clear markers")
	}

	m = update(m, key("r"))
	if s.Ticks() != 0 || !s.Active() {
		t.Error("r must reset bodies and keep the running flag")
	}
	if m.energy.Len() != 0 {
		t.Error("reset must clear the energy history")
	}
}

func TestModelFrames(t *testing.T) {
	m, s := newTestModel(t)
	start := time.Unix(0, 0)

	m = update(m, frameMsg(start))
	m = update(m, frameMsg(start.Add(40*time.Millisecond)))
	if s.Ticks() != 0 {
		t.Error("paused simulation must not tick")
	}

	m = update(m, key("u"))
	m = update(m, frameMsg(start.Add(60*time.Millisecond)))
	if s.Ticks() != 0 {
		t.Error("20ms frame must not reach the 34ms interval")
	}
	m = update(m, frameMsg(start.Add(100*time.Millisecond)))
	if s.Ticks() != 1 {
		t.Errorf("expected one tick, got %d", s.Ticks())
	}
	if m.energy.Len() != 1 {
		t.Errorf("expected one energy sample, got %d", m.energy.Len())
	}
}

func TestModelFrameSchedulesNext(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Init() == nil {
		t.Error("Init must schedule the first frame")
	}
	if _, cmd := m.Update(frameMsg(time.Now())); cmd == nil {
		t.Error("every frame must schedule the next")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q must return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q must quit")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 30})
	if m.canvas.Width != 120-sidebarWidth-5 || m.canvas.Height != 29 {
		t.Errorf("unexpected canvas size %dx%d", m.canvas.Width, m.canvas.Height)
	}

	m = update(m, key("t"))
	view := m.View()
	for _, want := range []string{"CELESTIAL", "PAUSED", "Left", "Right"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = update(m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("? must show help")
	}
}

func TestModelDrawsBodies(t *testing.T) {
	m, _ := newTestModel(t)
	m.draw()

	w, h := m.canvas.PixelWidth(), m.canvas.PixelHeight()
	if !m.canvas.IsSet(w/2, h/2) {
		t.Error("the body at the origin must be drawn at the centre")
	}
}

func TestBodyRadius(t *testing.T) {
	tests := []struct {
		mass float64
		want int
	}{{0.5, 1}, {1, 1}, {10, 2}, {100, 3}, {1e6, 3}}
	for _, tt := range tests {
		if got := bodyRadius(tt.mass); got != tt.want {
			t.Errorf("bodyRadius(%g): expected %d, got %d", tt.mass, tt.want, got)
		}
	}
}
