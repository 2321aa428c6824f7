package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 44

type styles struct {
	canvas  lipgloss.Style
	sidebar lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	graph   lipgloss.Style
	hint    lipgloss.Style
	subtle  lipgloss.Style
	help    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(0, 1),
		sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 1).
			Width(sidebarWidth),
		header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		running: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Accent),
		hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		help: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Foreground(t.Text).
			Padding(1, 2),
	}
}

// Separator is a decorative rule of the given width.
func (s styles) Separator(width int) string {
	if width < 8 {
		return s.subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.subtle.Render(left + " ◆ " + right)
}

func (s styles) row(label, value string) string {
	return s.label.Render(label) + s.value.Render(value) + "\n"
}
