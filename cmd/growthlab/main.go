package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/growthlab/internal/config"
	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/logging"
	"github.com/san-kum/growthlab/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	theme      string
	// Parameter overrides
	paramN     float64
	paramS     float64
	paramD     float64
	paramAlpha float64
	paramG     float64
	// Simulation
	k0      float64
	steps   int
	plot    bool
	csvPath string
	jsonOut string
	svgPath string
	saveCfg string
	// Output format for steady, compare, sweep and golden
	format string
	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Phase line
	kMin   float64
	kMax   float64
	points int
	// Ensemble
	k0s []float64
	// Golden rule grid
	gridPoints int
	objective  string
	// Server
	addr string

	logger = logging.NewNop()
)

// paramFlags maps each parameter flag to its key and destination.
var paramFlags = []struct {
	key string
	dst *float64
}{
	{growth.KeyN, &paramN},
	{growth.KeyS, &paramS},
	{growth.KeyD, &paramD},
	{growth.KeyAlpha, &paramAlpha},
	{growth.KeyG, &paramG},
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "growthlab",
		Short:        "solow growth model lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = logging.New(level)
			slog.SetDefault(logger)
			return viz.SetTheme(theme)
		},
		RunE: runTune,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&theme, "theme", viz.ThemeClassic.Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	pf.Float64Var(&paramN, "n", 0, "population growth rate")
	pf.Float64Var(&paramS, "s", 0, "savings rate")
	pf.Float64Var(&paramD, "d", 0, "depreciation rate")
	pf.Float64Var(&paramAlpha, "alpha", 0, "capital share")
	pf.Float64Var(&paramG, "g", 0, "technology growth rate")

	steadyCmd := &cobra.Command{
		Use:   "steady",
		Short: "show the steady state",
		Args:  cobra.NoArgs,
		RunE:  runSteady,
	}
	steadyCmd.Flags().StringVar(&format, "format", "text", "output format (text, json, yaml)")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "simulate the capital path",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	addSimulationFlags(simulateCmd)
	simulateCmd.Flags().BoolVar(&plot, "plot", false, "plot the path")
	simulateCmd.Flags().StringVar(&csvPath, "csv", "", "write the path as CSV (- for stdout)")
	simulateCmd.Flags().StringVar(&jsonOut, "json", "", "write the run as JSON (- for stdout)")
	simulateCmd.Flags().StringVar(&svgPath, "svg", "", "write the path as an SVG chart")
	simulateCmd.Flags().StringVar(&saveCfg, "save-config", "", "write the resolved configuration as yaml")

	compareCmd := &cobra.Command{
		Use:   "compare [key=value ...]",
		Short: "compare steady states before and after a parameter change",
		Long: "compare replaces the model parameters with the config's compare block,\n" +
			"or with the current parameters updated by key=value arguments.",
		RunE: runCompare,
	}
	compareCmd.Flags().StringVar(&format, "format", "text", "output format (text, json, yaml)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "steady state over a parameter range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", growth.KeyS, "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "range start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.5, "range end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", config.DefaultSweepSteps, "number of points")
	sweepCmd.Flags().StringVar(&format, "format", "text", "output format (text, json, yaml)")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "phase line of the equation of motion",
		Args:  cobra.NoArgs,
		RunE:  runPhase,
	}
	phaseCmd.Flags().Float64Var(&kMin, "kmin", 0.1, "smallest capital level")
	phaseCmd.Flags().Float64Var(&kMax, "kmax", 0, "largest capital level (default 2 k*)")
	phaseCmd.Flags().IntVar(&points, "points", 61, "number of samples")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "simulate paths from several initial capital levels",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSimulationFlags(ensembleCmd)
	ensembleCmd.Flags().Float64SliceVar(&k0s, "k0s", nil, "initial capital levels (default k0/4, k0, 4 k0)")

	goldenCmd := &cobra.Command{
		Use:   "golden",
		Short: "golden-rule savings rate",
		Args:  cobra.NoArgs,
		RunE:  runGolden,
	}
	goldenCmd.Flags().StringVar(&format, "format", "text", "output format (text, json, yaml)")
	goldenCmd.Flags().IntVar(&gridPoints, "grid", 0, "also search over this many savings rates")
	goldenCmd.Flags().StringVar(&objective, "objective", "consumption", "grid search objective (consumption, output)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, name := range config.ListPresets() {
				p, err := config.GetPreset(name).ModelParams()
				if err != nil {
					return fmt.Errorf("preset %s: %w", name, err)
				}
				fmt.Fprintf(out, "  %-14s %s\n", name, p)
			}
			return nil
		},
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "interactive parameter tuner",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addSimulationFlags(tuneCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the model over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	rootCmd.AddCommand(steadyCmd, simulateCmd, ensembleCmd, compareCmd, sweepCmd, phaseCmd, goldenCmd, presetsCmd, tuneCmd, serveCmd)
	return rootCmd
}

func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&k0, "k0", config.DefaultInitialCapital, "initial capital")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of path elements")
}

// loadConfig layers the preset, the config file and the command line, in
// increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		logger.Debug("preset applied", "preset", preset)
	}

	if configFile != "" {
		var loaded *config.Config
		var err error
		if preset == "" {
			loaded, err = config.Load(configFile)
		} else {
			loaded, err = config.LoadOver(cfg, configFile)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Info("config loaded", "path", configFile)
	}

	flags := cmd.Flags()
	for _, f := range paramFlags {
		if flags.Changed(f.key) {
			cfg.Override(f.key, *f.dst)
		}
	}
	if flags.Changed("k0") {
		cfg.Simulation.InitialCapital = k0
	}
	if flags.Changed("steps") {
		switch cmd.Name() {
		case "sweep":
			cfg.Sweep.Steps = sweepSteps
		default:
			cfg.Simulation.Steps = steps
		}
	}
	if cmd.Name() == "sweep" {
		if flags.Changed("param") {
			cfg.Sweep.Param = sweepParam
		}
		if flags.Changed("min") {
			cfg.Sweep.Min = sweepMin
		}
		if flags.Changed("max") {
			cfg.Sweep.Max = sweepMax
		}
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	return cfg, nil
}

func loadModel(cmd *cobra.Command) (*config.Config, *growth.Model, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	p, err := cfg.ModelParams()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("model parameters", "params", p.String())
	return cfg, growth.New(p), nil
}
