package config

import (
	"math"
	"sort"

	"github.com/san-kum/celestial/internal/sim"
)

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"binary": {
		GravitationalConstant: 0.05, TickInterval: Duration(sim.DefaultTickInterval), ForecastSteps: 2000,
		Bodies: []BodyConfig{
			{Name: "Primary", Mass: 100},
			{Name: "Companion", Mass: 1, Position: [3]float64{10, 0, 0}, Velocity: [3]float64{0, 0, math.Sqrt(0.05 * 100 / 10)}},
		},
	},
	"single": {
		GravitationalConstant: 0.05, TickInterval: Duration(sim.DefaultTickInterval), ForecastSteps: 100,
		Bodies: []BodyConfig{
			{Name: "Lonely", Mass: 10, Velocity: [3]float64{1, 0, 0}},
		},
	},
	"triangle": {
		GravitationalConstant: 1, TickInterval: Duration(sim.DefaultTickInterval), ForecastSteps: 3000,
		Bodies: triangle(3, 1, 10, 5),
	},
}

// triangle places n equal masses on a circle of radius r in the x-z plane,
// each moving tangentially at the speed that balances the others' pull.
func triangle(n int, g, mass, r float64) []BodyConfig {
	// net inward pull on one vertex of a regular n-gon, in units of G*m/r^2
	pull := 0.0
	for k := 1; k < n; k++ {
		pull += 1 / (4 * math.Sin(math.Pi*float64(k)/float64(n)))
	}
	speed := math.Sqrt(g * mass * pull / r)

	bodies := make([]BodyConfig, n)
	names := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"}
	for i := range bodies {
		angle := float64(i) * 2 * math.Pi / float64(n)
		bodies[i] = BodyConfig{
			Name:     names[i%len(names)],
			Mass:     mass,
			Position: [3]float64{r * math.Cos(angle), 0, r * math.Sin(angle)},
			Velocity: [3]float64{-speed * math.Sin(angle), 0, speed * math.Cos(angle)},
		}
	}
	return bodies
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
