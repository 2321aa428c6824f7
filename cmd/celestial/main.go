package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/san-kum/celestial/internal/config"
	"github.com/san-kum/celestial/internal/sim"
	"github.com/san-kum/celestial/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string
	// Overrides applied on top of the preset and config file.
	gravity  float64
	interval time.Duration
	steps    int
	// Live view
	theme string
)

// main registers the commands and runs the live view when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "celestial",
		Short:         "n-body gravity simulator with trajectory forecasting",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a preset (see 'celestial presets')")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.Float64Var(&gravity, "g", sim.DefaultGravitationalConstant, "gravitational constant")
	pf.DurationVar(&interval, "interval", sim.DefaultTickInterval, "tick interval")
	pf.IntVar(&steps, "steps", sim.DefaultForecastSteps, "forecast depth in ticks")
	rootCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	rootCmd.AddCommand(liveCmd, newRunCmd(), newForecastCmd(), newSweepCmd(), presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: defaults, then the preset, then
// the config file, then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("g") {
		cfg.GravitationalConstant = gravity
	}
	if cmd.Flags().Changed("interval") {
		cfg.TickInterval = config.Duration(interval)
	}
	if cmd.Flags().Changed("steps") {
		cfg.ForecastSteps = steps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a text logger at the configured level. When --log-file
// is set it wins over w.
func newLogger(w io.Writer) (*slog.Logger, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	closer := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f.Close
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}

func newSimulator(cfg *config.Config, logger *slog.Logger) (*sim.Simulator, error) {
	return sim.New(cfg.Simulation(), cfg.StartupBodies(), sim.WithLogger(logger))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// stderr belongs to the terminal UI
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := newSimulator(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("live view starting", "bodies", len(cfg.Bodies), "g", cfg.GravitationalConstant)
	return viz.Run(s, viz.Options{Theme: theme})
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := newTable(cmd.OutOrStdout())
	fmt.Fprintln(w, "NAME\tBODIES\tG\tINTERVAL\tSTEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%v\t%d\n",
			name,
			len(p.Bodies),
			p.GravitationalConstant,
			time.Duration(p.TickInterval),
			p.ForecastSteps,
		)
	}
	return w.Flush()
}
