package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/celestial/internal/analysis"
	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/export"
	"github.com/san-kum/celestial/internal/forecast"
	"github.com/spf13/cobra"
)

var (
	forecastFormat string
	plotPair       string
	periodPair     string
)

func newForecastCmd() *cobra.Command {
	forecastCmd := &cobra.Command{
		Use:   "forecast",
		Short: "predict trajectories from the startup bodies",
		Long: `Forecast runs the configured number of ticks on a copy of the startup
bodies and prints the predicted trajectories. Bodies in --plot and --period
are given as "a,b" by name or id.`,
		Args: cobra.NoArgs,
		RunE: runForecast,
	}
	forecastCmd.Flags().StringVar(&forecastFormat, "format", "text", "output format: text, json, csv, svg")
	forecastCmd.Flags().StringVar(&plotPair, "plot", "", "plot the separation of two bodies")
	forecastCmd.Flags().StringVar(&periodPair, "period", "", "estimate the orbital period of two bodies")
	return forecastCmd
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := newSimulator(cfg, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := s.RequestForecast()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	switch forecastFormat {
	case "json":
		return export.ForecastJSON(out, res)
	case "csv":
		return export.ForecastCSV(out, res)
	case "svg":
		return export.ForecastSVG(out, res, 800, 800)
	case "text":
	default:
		return fmt.Errorf("unknown format: %s", forecastFormat)
	}

	bodies := s.Bodies()
	fmt.Fprintf(out, "forecast: %d steps of %.5f for %d bodies (%d points) in %v\n\n",
		res.Steps, res.Dt, len(res.Trajectories), res.Points(), elapsed)
	if err := printEndpoints(out, res); err != nil {
		return err
	}

	if plotPair != "" {
		a, b, err := resolvePair(bodies, plotPair)
		if err != nil {
			return err
		}
		sep, err := analysis.Separation(res, a, b)
		if err != nil {
			return err
		}
		if len(sep) > 1 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, asciigraph.Plot(sep,
				asciigraph.Height(12),
				asciigraph.Width(70),
				asciigraph.Caption(fmt.Sprintf("separation %s", plotPair)),
			))
		}
		d, at, err := analysis.ClosestApproach(res, a, b)
		if err == nil {
			fmt.Fprintf(out, "\nclosest approach: %.4f at step %d\n", d, at+1)
		}
	}

	if periodPair != "" {
		a, b, err := resolvePair(bodies, periodPair)
		if err != nil {
			return err
		}
		sep, err := analysis.Separation(res, a, b)
		if err != nil {
			return err
		}
		period, err := analysis.DominantPeriod(sep, res.Dt)
		if err != nil {
			return fmt.Errorf("period %s: %w", periodPair, err)
		}
		ticks := period / res.Dt
		wall := time.Duration(ticks * float64(cfg.TickInterval))
		fmt.Fprintf(out, "\nperiod %s: %.4f (%.0f ticks, %v at %v per tick)\n",
			periodPair, period, ticks, wall.Round(time.Millisecond), time.Duration(cfg.TickInterval))
	}
	return nil
}

func printEndpoints(out io.Writer, res *forecast.Result) error {
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tFIRST\tLAST")
	for _, tr := range res.Trajectories {
		if len(tr.Positions) == 0 {
			fmt.Fprintf(w, "%d\t%s\t-\t-\n", tr.ID, tr.Name)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", tr.ID, tr.Name,
			formatVec(tr.Positions[0]), formatVec(tr.Positions[len(tr.Positions)-1]))
	}
	return w.Flush()
}

// resolvePair parses "a,b" where each side is a body name or id.
func resolvePair(bodies celestial.Snapshot, pair string) (celestial.ID, celestial.ID, error) {
	parts := strings.Split(pair, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two bodies as a,b: %q", pair)
	}
	a, err := resolveBody(bodies, parts[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := resolveBody(bodies, parts[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func resolveBody(bodies celestial.Snapshot, token string) (celestial.ID, error) {
	token = strings.TrimSpace(token)
	for _, b := range bodies {
		if strings.EqualFold(b.Name, token) {
			return b.ID, nil
		}
	}
	if n, err := strconv.ParseUint(token, 10, 64); err == nil {
		if _, ok := bodies.Find(celestial.ID(n)); ok {
			return celestial.ID(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", celestial.ErrUnknownBody, token)
}
