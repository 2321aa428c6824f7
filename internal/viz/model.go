package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/metrics"
	"github.com/san-kum/celestial/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	frameInterval  = time.Second / 60
	defaultWidth   = 60
	defaultHeight  = 24
	defaultHistory = 300
	maxListed      = 8
)

// keyCommands maps keys to simulation commands.
var keyCommands = map[string]sim.Command{
	"u": sim.CmdToggle,
	"t": sim.CmdForceTick,
	"r": sim.CmdReset,
	"d": sim.CmdForecast,
	"c": sim.CmdClearForecast,
}

type frameMsg time.Time

type Options struct {
	Theme string
	// History is the number of energy samples kept for the chart.
	History int
	// Width and Height are the initial canvas size in cells, used until
	// the terminal reports its size.
	Width, Height int
}

// Model drives a Simulator from the bubbletea frame loop and draws it.
type Model struct {
	sim      *sim.Simulator
	camera   *Camera
	canvas   *Canvas
	markers  *Markers
	energy   *metrics.EnergySeries
	drift    *metrics.EnergyDrift
	theme    Theme
	styles   styles
	last     time.Time
	showHelp bool
	status   string
}

// NewModel registers the energy observers on s.
func NewModel(s *sim.Simulator, opts Options) Model {
	if opts.History <= 0 {
		opts.History = defaultHistory
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}

	g := s.Config().GravitationalConstant
	energy := metrics.NewEnergySeries(g, opts.History)
	drift := metrics.NewEnergyDrift(g)
	s.AddObserver(energy)
	s.AddObserver(drift)

	theme := GetTheme(opts.Theme)
	return Model{
		sim:     s,
		camera:  NewCamera(),
		canvas:  NewCanvas(opts.Width, opts.Height),
		markers: &Markers{},
		energy:  energy,
		drift:   drift,
		theme:   theme,
		styles:  newStyles(theme),
	}
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return nextFrame()
}

// Update feeds measured frame time to the simulator and handles input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if cmd, ok := keyCommands[key]; ok {
			m.command(cmd)
			return m, nil
		}
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case tea.WindowSizeMsg:
		w := msg.Width - sidebarWidth - 5
		h := msg.Height - 1
		m.canvas = NewCanvas(w, h)
	case frameMsg:
		now := time.Time(msg)
		var elapsed time.Duration
		if !m.last.IsZero() {
			elapsed = now.Sub(m.last)
		}
		m.last = now
		m.sim.Update(elapsed)
		return m, nextFrame()
	}
	return m, nil
}

func (m *Model) command(cmd sim.Command) {
	res, err := m.sim.Dispatch(cmd)
	if err != nil {
		m.status = fmt.Sprintf("%s: %v", cmd, err)
		return
	}

	switch cmd {
	case sim.CmdToggle:
		if m.sim.Active() {
			m.status = "simulation running"
		} else {
			m.status = "simulation paused"
		}
	case sim.CmdForceTick:
		m.status = fmt.Sprintf("tick %d", m.sim.Ticks())
	case sim.CmdReset:
		m.status = "reset"
	case sim.CmdForecast:
		rec := m.markers.Reconcile(res, m.theme.BodyColor)
		m.status = fmt.Sprintf("forecast: %d markers (%d new, %d dropped)",
			m.markers.Len(), rec.Created, rec.Dropped)
	case sim.CmdClearForecast:
		m.status = fmt.Sprintf("cleared %d markers", m.markers.Clear())
	}
}

type projected struct {
	x, y   int
	depth  float64
	radius int
	color  lipgloss.Color
}

func (m *Model) draw() {
	c := m.canvas
	c.Clear()
	w, h := c.PixelWidth(), c.PixelHeight()

	for _, mk := range m.markers.All() {
		if x, y, _, ok := m.camera.Project(mk.Position, w, h); ok {
			c.Set(x, y, mk.Color)
		}
	}

	bodies := m.sim.Bodies()
	points := make([]projected, 0, len(bodies))
	for _, b := range bodies {
		x, y, depth, ok := m.camera.Project(b.Position, w, h)
		if !ok {
			continue
		}
		points = append(points, projected{x, y, depth, bodyRadius(b.Mass), m.theme.BodyColor(b.ID)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].depth < points[j].depth })
	for _, p := range points {
		c.Disc(p.x, p.y, p.radius, p.color)
	}
}

// bodyRadius grows with the order of magnitude of the mass.
func bodyRadius(mass float64) int {
	r := 1 + int(math.Log10(math.Max(mass, 1)))
	return min(r, 3)
}

// View renders the canvas and the sidebar.
func (m Model) View() string {
	m.draw()
	st := m.styles
	cfg := m.sim.Config()

	var s strings.Builder
	s.WriteString(st.header.Render("CELESTIAL") + "  ")
	if m.sim.Active() {
		s.WriteString(st.running.Render("RUNNING"))
	} else {
		s.WriteString(st.paused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	s.WriteString(st.row("Ticks", fmt.Sprintf("%d", m.sim.Ticks())))
	s.WriteString(st.row("G", fmt.Sprintf("%g", cfg.GravitationalConstant)))
	s.WriteString(st.row("Interval", fmt.Sprintf("%v (dt %.4f)", cfg.TickInterval, cfg.StepSize())))
	s.WriteString(st.row("Forecast", fmt.Sprintf("%d steps", cfg.ForecastSteps)))
	s.WriteString(st.row("Markers", fmt.Sprintf("%d", m.markers.Len())))
	s.WriteString(st.row("Energy", fmt.Sprintf("%.4f", m.energy.Value())))
	s.WriteString(st.row("Drift", fmt.Sprintf("%.3f%%", m.drift.Value()*100)))

	if values := m.energy.Values(); len(values) > 1 {
		chart := asciigraph.Plot(values, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + st.Separator(sidebarWidth-2) + "\n")
	s.WriteString(m.bodyList())
	s.WriteString(st.Separator(sidebarWidth-2) + "\n")
	if m.status != "" {
		s.WriteString(st.value.Render(m.status) + "\n")
	}
	s.WriteString(st.hint.Render("U:Run T:Tick R:Reset D:Forecast C:Clear\nXYZ:Rotate +/-:Zoom ?:Help Q:Quit"))

	canvasView := st.canvas.Render(m.canvas.Render())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.sidebar.Render(s.String()))
	if m.showHelp {
		return st.help.Render(helpText) + "\n" + mainView
	}
	return mainView
}

func (m Model) bodyList() string {
	bodies := m.sim.Bodies()
	if len(bodies) == 0 {
		return m.styles.subtle.Render("(no bodies)") + "\n"
	}

	var s strings.Builder
	for i, b := range bodies {
		if i == maxListed {
			s.WriteString(m.styles.subtle.Render(fmt.Sprintf("... %d more", len(bodies)-maxListed)) + "\n")
			break
		}
		dot := lipgloss.NewStyle().Foreground(m.theme.BodyColor(b.ID)).Render("●")
		s.WriteString(fmt.Sprintf("%s %-8s %s\n", dot, truncate(b.Name, 8), m.styles.value.Render(formatBody(b))))
	}
	return s.String()
}

func formatBody(b celestial.Body) string {
	p := b.Position
	return fmt.Sprintf("(%6.1f %5.1f %6.1f) v=%.1f", p.X, p.Y, p.Z, r3.Norm(b.Velocity))
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

const helpText = `KEYBOARD SHORTCUTS

U      Start / stop the simulation
T      Advance exactly one tick
R      Reset to the startup bodies
D      Forecast trajectories
C      Clear forecast markers
X/Y/Z  Rotate the camera (shift reverses)
+/-    Zoom
?      Toggle this help
Q      Quit`

// Run starts the live view in the alternate screen and blocks until the user
// quits.
func Run(s *sim.Simulator, opts Options) error {
	_, err := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen()).Run()
	return err
}
