package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/celestial/internal/celestial"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	// Bodies colors bodies and their forecast markers, by id.
	Bodies []lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:    "night",
		Primary: lipgloss.Color("#89b4fa"),
		Accent:  lipgloss.Color("#f9e2af"),
		Text:    lipgloss.Color("#cdd6f4"),
		Muted:   lipgloss.Color("#6c7086"),
		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#fab387"),
		Bodies: []lipgloss.Color{
			"#f9e2af", "#89b4fa", "#a6e3a1", "#f38ba8", "#cba6f7", "#94e2d5",
		},
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Bodies: []lipgloss.Color{
			"#00ff00", "#88ff88", "#00cc00", "#ccffcc",
		},
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Bodies: []lipgloss.Color{
			"#ffffff", "#0088ff", "#ffaa00",
		},
	}

	Themes = []Theme{ThemeNight, ThemeRetroGreen, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// BodyColor is stable for the life of a body: it depends only on the id.
func (t Theme) BodyColor(id celestial.ID) lipgloss.Color {
	if len(t.Bodies) == 0 || id == 0 {
		return t.Text
	}
	return t.Bodies[int((id-1)%celestial.ID(len(t.Bodies)))]
}
