package main

import (
	"fmt"

	"github.com/san-kum/celestial/internal/automation"
	"github.com/spf13/cobra"
)

var sweep automation.Sweep

func newSweepCmd() *cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the startup bodies across a range of gravitational constants",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweep.Min, "min", 0.01, "smallest gravitational constant")
	sweepCmd.Flags().Float64Var(&sweep.Max, "max", 0.1, "largest gravitational constant")
	sweepCmd.Flags().IntVar(&sweep.NumSteps, "n", 10, "number of runs")
	sweepCmd.Flags().IntVar(&sweep.Ticks, "ticks", 1000, "ticks per run")
	return sweepCmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), sweep, cfg.Simulation(), cfg.StartupBodies())
	if err != nil {
		return err
	}

	w := newTable(cmd.OutOrStdout())
	fmt.Fprintln(w, "G\tMIN ENERGY\tMAX ENERGY\tMAX DRIFT")
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f%%\n", r.GravitationalConstant, r.MinEnergy, r.MaxEnergy, r.MaxDrift*100)
	}
	return w.Flush()
}
