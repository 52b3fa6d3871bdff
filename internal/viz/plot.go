package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/growthlab/internal/analysis"
	"github.com/san-kum/growthlab/internal/growth"
)

const (
	plotWidth  = 70
	plotHeight = 12
)

// PlotPath draws the capital path with the steady state as a flat
// reference line. kStar <= 0 omits the reference.
func PlotPath(path growth.Path, kStar float64) string {
	if len(path) < 2 {
		return ""
	}
	series := [][]float64{path}
	if kStar > 0 {
		ref := make([]float64, len(path))
		for i := range ref {
			ref[i] = kStar
		}
		series = append(series, ref)
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Yellow),
		asciigraph.Caption(fmt.Sprintf("capital k over %d steps (k* = %.4f)", len(path), kStar)),
	)
}

// PlotDiagnostics draws the per-step change and growth rate, skipping the
// zero sentinel at t=0.
func PlotDiagnostics(d growth.Diagnostics) string {
	if len(d.Change) < 3 || len(d.Growth) < 3 {
		return ""
	}
	change := asciigraph.Plot(d.Change[1:],
		asciigraph.Height(plotHeight/2),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(4),
		asciigraph.Caption("k[t] - k[t-1]"),
	)
	rate := asciigraph.Plot(d.Growth[1:],
		asciigraph.Height(plotHeight/2),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(4),
		asciigraph.Caption("growth rate (k[t] - k[t-1]) / k[t]"),
	)
	return change + "\n\n" + rate
}

// PlotSweep draws k* and c* across a sweep of param.
func PlotSweep(points []analysis.SweepPoint, param string) string {
	if len(points) < 2 {
		return ""
	}
	k := asciigraph.Plot(analysis.Capitals(points),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("k* vs %s [%g, %g]", param, points[0].Value, points[len(points)-1].Value)),
	)
	c := asciigraph.Plot(analysis.Consumptions(points),
		asciigraph.Height(plotHeight/2),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("c* vs %s", param)),
	)
	return k + "\n\n" + c
}

// PlotPhase draws k_dot over the sampled capital grid.
func PlotPhase(phase *analysis.Phase) string {
	if phase == nil || len(phase.Points) < 2 {
		return ""
	}
	first, last := phase.Points[0].K, phase.Points[len(phase.Points)-1].K
	return asciigraph.Plot(phase.KDots(),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("k_dot for k in [%g, %g]", first, last)),
	)
}

var ensembleColors = []asciigraph.AnsiColor{
	asciigraph.Cyan, asciigraph.Green, asciigraph.Magenta, asciigraph.Red, asciigraph.Blue,
}

// PlotEnsemble overlays capital paths from several starting levels with the
// steady state as a reference line. kStar <= 0 omits the reference.
func PlotEnsemble(paths []growth.Path, kStar float64) string {
	var series [][]float64
	colors := []asciigraph.AnsiColor{}
	for i, p := range paths {
		if len(p) < 2 {
			continue
		}
		series = append(series, p)
		colors = append(colors, ensembleColors[i%len(ensembleColors)])
	}
	if len(series) == 0 {
		return ""
	}
	if kStar > 0 {
		ref := make([]float64, len(series[0]))
		for i := range ref {
			ref[i] = kStar
		}
		series = append(series, ref)
		colors = append(colors, asciigraph.Yellow)
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("%d capital paths (k* = %.4f)", len(paths), kStar)),
	)
}
