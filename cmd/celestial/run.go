package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/celestial/internal/automation"
	"github.com/san-kum/celestial/internal/celestial"
	"github.com/san-kum/celestial/internal/export"
	"github.com/san-kum/celestial/internal/metrics"
	"github.com/san-kum/celestial/internal/sim"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	cycles    int
	frame     time.Duration
	active    bool
	commands  []string
	plot      bool
	runFormat string
	scenario  string
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation headless for a number of update cycles",
		Long: `Run drives the simulation the way the live view does, one update per
cycle with a fixed frame time, and prints the final bodies and energy drift.
Commands given with --do are dispatched in order before the first cycle.
With --scenario the cycles come from a yaml script instead of --cycles.`,
		Args: cobra.NoArgs,
		RunE: runHeadless,
	}
	runCmd.Flags().IntVar(&cycles, "cycles", 600, "update cycles")
	runCmd.Flags().DurationVar(&frame, "frame", time.Second/60, "elapsed time fed to each cycle")
	runCmd.Flags().BoolVar(&active, "active", false, "start with the simulation running")
	runCmd.Flags().StringSliceVar(&commands, "do", nil, "commands to dispatch first: "+fmt.Sprint(sim.CommandNames()))
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot total energy")
	runCmd.Flags().StringVar(&runFormat, "format", "text", "output format: text, json, csv")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "scenario file (yaml) to replay")
	return runCmd
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("active") {
		cfg.Active = active
	}
	if cycles < 0 {
		return fmt.Errorf("cycles must not be negative: %d", cycles)
	}

	var sc *automation.Scenario
	if scenario != "" {
		if sc, err = automation.LoadScenario(scenario); err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
	}

	queued := make([]sim.Command, len(commands))
	for i, name := range commands {
		c, err := sim.ParseCommand(name)
		if err != nil {
			return err
		}
		queued[i] = c
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

	g := cfg.GravitationalConstant
	drift := metrics.NewEnergyDrift(g)
	counter := metrics.NewTickCounter()
	series := metrics.NewEnergySeries(g, max(cycles, 1))
	s.AddObserver(drift)
	s.AddObserver(counter)
	s.AddObserver(series)

	initial := s.Bodies()
	drift.Observe(initial)

	for _, c := range queued {
		if _, err := s.Dispatch(c); err != nil {
			return err
		}
	}

	start := time.Now()
	ran, applied := 0, 0
	if sc != nil {
		report, err := automation.RunScenario(cmd.Context(), s, sc, logger)
		if err != nil {
			return err
		}
		ran, applied = report.Cycles, report.Applied
		logger.Info("scenario finished", "name", sc.Name, "commands", report.Commands, "forecasts", len(report.Forecasts))
	} else {
		for ; ran < cycles; ran++ {
			if s.Update(frame) {
				applied++
			}
		}
	}
	logger.Debug("run finished", "cycles", ran, "applied", applied, "elapsed", time.Since(start))

	out := cmd.OutOrStdout()
	final := s.Bodies()
	switch runFormat {
	case "json":
		return export.BodiesJSON(out, final)
	case "csv":
		return export.BodiesCSV(out, final)
	case "text":
	default:
		return fmt.Errorf("unknown format: %s", runFormat)
	}

	fmt.Fprintf(out, "%d cycles, %d scheduled ticks applied\n", ran, applied)
	fmt.Fprintf(out, "ticks: %d scheduled, %d forced, running: %v\n\n", counter.Scheduled, counter.Forced, s.Active())

	if err := printBodies(out, final); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nmetrics:")
	fmt.Fprintf(out, "  energy:     %.6f -> %.6f\n", drift.Initial(), metrics.Energy(final, g))
	fmt.Fprintf(out, "  max drift:  %.6f%%\n", drift.Value()*100)
	p0, p1 := metrics.Momentum(initial), metrics.Momentum(final)
	fmt.Fprintf(out, "  momentum:   %s -> %s\n", formatVec(p0), formatVec(p1))
	fmt.Fprintf(out, "  centre:     %s\n", formatVec(metrics.CenterOfMass(final)))

	if plot && series.Len() > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(series.Values(),
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("total energy per tick"),
		))
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printBodies(out io.Writer, bodies celestial.Snapshot) error {
	if len(bodies) == 0 {
		fmt.Fprintln(out, "no bodies")
		return nil
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tMASS\tPOSITION\tVELOCITY")
	for _, b := range bodies {
		fmt.Fprintf(w, "%d\t%s\t%g\t%s\t%s\n", b.ID, b.Name, b.Mass, formatVec(b.Position), formatVec(b.Velocity))
	}
	return w.Flush()
}

func formatVec(v r3.Vec) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
