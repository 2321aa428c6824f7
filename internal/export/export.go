package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/forecast"
	"gonum.org/v1/gonum/spatial/r3"
)

type ForecastData struct {
	Steps        int              `json:"steps"`
	Dt           float64          `json:"dt"`
	Trajectories []TrajectoryData `json:"trajectories"`
}

type TrajectoryData struct {
	ID        uint64       `json:"id"`
	Name      string       `json:"name"`
	Positions [][3]float64 `json:"positions"`
}

type BodyData struct {
	ID       uint64     `json:"id"`
	Name     string     `json:"name"`
	Mass     float64    `json:"mass"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}

func vec(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func NewForecastData(res *forecast.Result) ForecastData {
	data := ForecastData{
		Steps:        res.Steps,
		Dt:           res.Dt,
		Trajectories: make([]TrajectoryData, len(res.Trajectories)),
	}
	for i, tr := range res.Trajectories {
		td := TrajectoryData{
			ID:        uint64(tr.ID),
			Name:      tr.Name,
			Positions: make([][3]float64, len(tr.Positions)),
		}
		for j, p := range tr.Positions {
			td.Positions[j] = vec(p)
		}
		data.Trajectories[i] = td
	}
	return data
}

func ForecastJSON(w io.Writer, res *forecast.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewForecastData(res))
}

// ForecastCSV writes one row per body per step, steps counted from 1.
func ForecastCSV(w io.Writer, res *forecast.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "id", "name", "x", "y", "z"}); err != nil {
		return err
	}
	for step := 0; step < res.Steps; step++ {
		for _, tr := range res.Trajectories {
			if step >= len(tr.Positions) {
				continue
			}
			p := tr.Positions[step]
			row := []string{
				strconv.Itoa(step + 1),
				strconv.FormatUint(uint64(tr.ID), 10),
				tr.Name,
				formatFloat(p.X),
				formatFloat(p.Y),
				formatFloat(p.Z),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func BodiesJSON(w io.Writer, bodies celestial.Snapshot) error {
	data := make([]BodyData, len(bodies))
	for i, b := range bodies {
		data[i] = BodyData{
			ID:       uint64(b.ID),
			Name:     b.Name,
			Mass:     b.Mass,
			Position: vec(b.Position),
			Velocity: vec(b.Velocity),
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func BodiesCSV(w io.Writer, bodies celestial.Snapshot) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "name", "mass", "x", "y", "z", "vx", "vy", "vz"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, b := range bodies {
		row := []string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.Name,
			formatFloat(b.Mass),
			formatFloat(b.Position.X),
			formatFloat(b.Position.Y),
			formatFloat(b.Position.Z),
			formatFloat(b.Velocity.X),
			formatFloat(b.Velocity.Y),
			formatFloat(b.Velocity.Z),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
