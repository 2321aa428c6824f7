package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/celestial/internal/forecast"
	"gonum.org/v1/gonum/spatial/r3"
)

var palette = []string{"#f9e2af", "#89b4fa", "#a6e3a1", "#f38ba8", "#cba6f7", "#94e2d5"}

// ForecastSVG draws every trajectory seen from above (x to the right, z
// down). A dot marks each body's first predicted position.
func ForecastSVG(w io.Writer, res *forecast.Result, width, height int) error {
	bounds, ok := extent(res)
	if !ok {
		_, err := fmt.Fprintf(w, svgHeader+"</svg>\n", width, height, width, height)
		return err
	}

	size := bounds.Size()
	rangeX, rangeZ := size.X, size.Z
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeZ == 0 {
		rangeZ = 1
	}
	minX := bounds.Min.X - rangeX*0.1
	minZ := bounds.Min.Z - rangeZ*0.1
	rangeX *= 1.2
	rangeZ *= 1.2

	project := func(p r3.Vec) (float64, float64) {
		return (p.X - minX) / rangeX * float64(width), (p.Z - minZ) / rangeZ * float64(height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height))

	for i, tr := range res.Trajectories {
		if len(tr.Positions) == 0 {
			continue
		}
		color := palette[i%len(palette)]

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, p := range tr.Positions {
			x, y := project(p)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		x, y := project(tr.Positions[0])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>`+"\n",
			x, y, color, tr.Name))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`

// extent is the bounding box of all predicted positions. Box.Union treats
// flat boxes as empty, so the bounds are grown by hand.
func extent(res *forecast.Result) (r3.Box, bool) {
	var box r3.Box
	found := false
	for _, tr := range res.Trajectories {
		for _, p := range tr.Positions {
			if !found {
				box = r3.Box{Min: p, Max: p}
				found = true
				continue
			}
			box.Min = r3.Vec{X: math.Min(box.Min.X, p.X), Y: math.Min(box.Min.Y, p.Y), Z: math.Min(box.Min.Z, p.Z)}
			box.Max = r3.Vec{X: math.Max(box.Max.X, p.X), Y: math.Max(box.Max.Y, p.Y), Z: math.Max(box.Max.Z, p.Z)}
		}
	}
	return box, found
}
