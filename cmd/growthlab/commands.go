package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/growthlab/internal/analysis"
	"github.com/san-kum/growthlab/internal/config"
	"github.com/san-kum/growthlab/internal/export"
	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/metrics"
	"github.com/san-kum/growthlab/internal/optim"
	"github.com/san-kum/growthlab/internal/server"
	"github.com/san-kum/growthlab/internal/tui"
	"github.com/san-kum/growthlab/internal/viz"
)

func runSteady(cmd *cobra.Command, args []string) error {
	_, model, err := loadModel(cmd)
	if err != nil {
		return err
	}
	ss, err := model.SteadyState()
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), ss, func() string {
		return viz.RenderSteadyState(model.Params(), ss)
	})
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, model, err := loadModel(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	run := &export.Run{
		Params:         model.Params(),
		InitialCapital: cfg.Simulation.InitialCapital,
		Steps:          cfg.Simulation.Steps,
	}

	// Metrics need k*; a degenerate steady state still allows a path.
	var ms []metrics.Metric
	if ss, err := model.SteadyState(); err == nil {
		run.SteadyState = &ss
		ms = metrics.Default(ss.Capital)
	} else {
		logger.Warn("steady state unavailable, skipping metrics", "error", err)
	}

	if saveCfg != "" {
		if err := config.Save(saveCfg, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		logger.Info("config saved", "path", saveCfg)
	}

	d, err := model.SimulateDeltas(run.InitialCapital, run.Steps, metrics.Observers(ms)...)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	run.Diagnostics = d
	if len(ms) > 0 {
		run.Metrics = metrics.Collect(ms)
	}
	logger.Info("simulation complete", "steps", run.Steps, "k_final", d.Path.Last())

	wrote := false
	if csvPath != "" {
		if err := writeTo(out, csvPath, func(w io.Writer) error { return export.WriteCSV(w, d) }); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
		wrote = true
	}
	if jsonOut != "" {
		if err := writeTo(out, jsonOut, func(w io.Writer) error { return export.WriteJSON(w, run) }); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		wrote = true
	}
	if svgPath != "" {
		opts := export.DefaultSVGOptions()
		if run.SteadyState != nil {
			opts.SteadyState = run.SteadyState.Capital
		}
		if err := export.SaveSVG(svgPath, d.Path, opts); err != nil {
			return fmt.Errorf("svg: %w", err)
		}
		logger.Info("wrote file", "path", svgPath)
		wrote = true
	}
	if wrote && !plot {
		return nil
	}

	if plot {
		kStar := 0.0
		if run.SteadyState != nil {
			kStar = run.SteadyState.Capital
		}
		fmt.Fprintln(out, viz.PlotPath(d.Path, kStar))
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.PlotDiagnostics(d))
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "t\tk\tk_change\tk_growth")
		for i, k := range d.Path {
			fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.6f\n", i, k, d.Change[i], d.Growth[i])
		}
		w.Flush()
	}
	if len(run.Metrics) > 0 {
		fmt.Fprintln(out, viz.RenderMetrics(run.Metrics))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, model, err := loadModel(cmd)
	if err != nil {
		return err
	}
	starts := k0s
	if len(starts) == 0 {
		k := cfg.Simulation.InitialCapital
		starts = []float64{k / 4, k, 4 * k}
	}

	paths, err := analysis.Ensemble(cmd.Context(), model, starts, cfg.Simulation.Steps)
	if err != nil {
		return err
	}
	kStar, err := model.SteadyStateCapital()
	if err != nil {
		logger.Warn("steady state unavailable", "error", err)
		kStar = 0
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.PlotEnsemble(paths, kStar))
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "k0\tk_final\tgap to k*")
	for i, path := range paths {
		gap := "-"
		if kStar > 0 {
			gap = fmt.Sprintf("%+.4f", path.Last()-kStar)
		}
		fmt.Fprintf(w, "%.4f\t%.6f\t%s\n", starts[i], path.Last(), gap)
	}
	return w.Flush()
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, model, err := loadModel(cmd)
	if err != nil {
		return err
	}

	next, ok, err := cfg.CompareParams()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		base := model.Params()
		if ok {
			base = next
		}
		next, err = applyAssignments(base, args)
		if err != nil {
			return err
		}
	} else if !ok {
		return fmt.Errorf("nothing to compare: pass key=value arguments or a config with a compare block")
	}

	report, err := model.ReplaceParameters(next)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}
	logger.Info("parameters replaced", "old", report.OldParams.String(), "new", report.NewParams.String())
	return render(cmd.OutOrStdout(), report, func() string {
		return viz.RenderReport(report)
	})
}

// applyAssignments parses key=value arguments over p. The d/delta alias
// rules apply as for any parameter set.
func applyAssignments(p growth.Params, args []string) (growth.Params, error) {
	set := growth.ParameterSet{}
	for _, arg := range args {
		key, raw, found := strings.Cut(arg, "=")
		if !found {
			return growth.Params{}, fmt.Errorf("invalid assignment %q (want key=value)", arg)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return growth.Params{}, fmt.Errorf("invalid value for %s: %q", key, raw)
		}
		if _, err := p.Get(key); err != nil {
			return growth.Params{}, err
		}
		set[key] = v
	}
	if _, hasD := set[growth.KeyD]; !hasD {
		if _, hasDelta := set[growth.KeyDelta]; !hasDelta {
			set[growth.KeyD] = p.D
		}
	}
	for _, key := range []string{growth.KeyN, growth.KeyS, growth.KeyAlpha, growth.KeyG} {
		if _, ok := set[key]; !ok {
			v, _ := p.Get(key)
			set[key] = v
		}
	}
	return growth.Decode(set)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, model, err := loadModel(cmd)
	if err != nil {
		return err
	}
	sc := cfg.Sweep
	pts, err := analysis.Sweep(model.Params(), sc.Param, sc.Min, sc.Max, sc.Steps)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format != "text" {
		f, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		return export.Encode(out, pts, f)
	}

	if len(pts) > 1 {
		fmt.Fprintln(out, viz.PlotSweep(pts, sc.Param))
		fmt.Fprintln(out)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tk*\ty*\tc*\tdk*\n", sc.Param)
	for _, pt := range pts {
		ss := pt.SteadyState
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\t%.6f\t%+.2f%%\n", pt.Value, ss.Capital, ss.Output, ss.Consumption, pt.CapitalChange*100)
	}
	return w.Flush()
}

func runPhase(cmd *cobra.Command, args []string) error {
	_, model, err := loadModel(cmd)
	if err != nil {
		return err
	}
	hi := kMax
	if !cmd.Flags().Changed("kmax") {
		ss, err := model.SteadyStateCapital()
		if err != nil {
			return fmt.Errorf("default range needs k*: %w", err)
		}
		hi = 2 * ss
	}
	phase, err := analysis.PhaseLine(model, kMin, hi, points)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.PlotPhase(phase))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.RenderPhase(phase))
	return nil
}

var objectives = map[string]struct {
	label string
	fn    optim.Objective
}{
	"consumption": {"c*", optim.SteadyStateConsumption},
	"output":      {"y*", optim.SteadyStateOutput},
}

func runGolden(cmd *cobra.Command, args []string) error {
	_, model, err := loadModel(cmd)
	if err != nil {
		return err
	}
	p := model.Params()
	obj, ok := objectives[objective]
	if !ok {
		return fmt.Errorf("unknown objective: %s (consumption, output)", objective)
	}
	gr, err := analysis.GoldenRuleSavings(p)
	if gridPoints <= 0 {
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), gr, func() string {
			return viz.RenderGoldenRule(p, gr)
		})
	}

	// The grid also covers alpha = 1, where the closed form does not apply.
	var analytic *analysis.GoldenRule
	if err == nil {
		analytic = &gr
	} else {
		logger.Warn("closed-form golden rule unavailable", "error", err)
	}
	names := []string{growth.KeyS}
	search, err := optim.NewGridSearch(names, [][]float64{optim.Linspace(0.01, 0.99, gridPoints)})
	if err != nil {
		return err
	}
	best, err := search.Search(cmd.Context(), p, obj.fn)
	if err != nil {
		return fmt.Errorf("golden rule search: %w", err)
	}

	result := struct {
		Analytic *analysis.GoldenRule `json:"analytic,omitempty" yaml:"analytic,omitempty"`
		Grid     optim.Result         `json:"grid" yaml:"grid"`
	}{analytic, best}
	return render(cmd.OutOrStdout(), result, func() string {
		grid := viz.RenderSearch("GRID SEARCH (max "+obj.label+")", names, best)
		if analytic == nil {
			return grid
		}
		return viz.RenderGoldenRule(p, *analytic) + "\n" + grid
	})
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, model, err := loadModel(cmd)
	if err != nil {
		return err
	}
	return tui.Run(model, cfg.Simulation.InitialCapital, cfg.Simulation.Steps)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, model, err := loadModel(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(model, logger)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

// render writes v in the --format encoding, or text() for "text".
func render(out io.Writer, v any, text func() string) error {
	if format == "" || format == "text" {
		fmt.Fprintln(out, text())
		return nil
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Encode(out, v, f)
}

// writeTo runs write against stdout for "-" or a created file otherwise.
func writeTo(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	logger.Info("wrote file", "path", path)
	return f.Close()
}
