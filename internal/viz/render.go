package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/growthlab/internal/analysis"
	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/optim"
)

func RenderParams(p growth.Params) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("PARAMETERS") + "\n")
	sb.WriteString(row("n  population", fmt.Sprintf("%.4f", p.N)))
	sb.WriteString(row("s  savings", fmt.Sprintf("%.4f", p.S)))
	sb.WriteString(row("d  depreciation", fmt.Sprintf("%.4f", p.D)))
	sb.WriteString(row("α  capital share", fmt.Sprintf("%.4f", p.Alpha)))
	sb.WriteString(row("g  technology", fmt.Sprintf("%.4f", p.G)))
	return sb.String()
}

func RenderSteadyState(p growth.Params, ss growth.SteadyState) string {
	var sb strings.Builder
	sb.WriteString(RenderParams(p))
	sb.WriteString("\n" + HeaderStyle.Render("STEADY STATE") + "\n")
	form := "Cobb-Douglas"
	if p.Alpha == 1 {
		form = "linear (alpha = 1)"
	}
	sb.WriteString(row("production", form))
	sb.WriteString(row("k*  capital", fmt.Sprintf("%.6f", ss.Capital)))
	sb.WriteString(row("y*  output", fmt.Sprintf("%.6f", ss.Output)))
	sb.WriteString(row("c*  consumption", fmt.Sprintf("%.6f", ss.Consumption)))
	return Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func RenderReport(r growth.ComparativeReport) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("COMPARATIVE STATICS") + "\n")
	sb.WriteString(Subtle.Render("old  "+r.OldParams.String()) + "\n")
	sb.WriteString(Subtle.Render("new  "+r.NewParams.String()) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-6s %12s %12s %10s\n", "", "old", "new", "ratio"))
	lines := []struct {
		name     string
		old, new float64
		ratio    float64
	}{
		{"k*", r.Old.Capital, r.New.Capital, r.CapitalRatio},
		{"y*", r.Old.Output, r.New.Output, r.OutputRatio},
		{"c*", r.Old.Consumption, r.New.Consumption, r.ConsumptionRatio},
	}
	for _, l := range lines {
		ratio := fmt.Sprintf("%10.4f", l.ratio)
		sb.WriteString(fmt.Sprintf("%-6s %12.6f %12.6f %s\n", l.name, l.old, l.new, Signed(l.ratio-1, ratio)))
	}

	pct := fmt.Sprintf("%+.2f%%", r.CapitalChangePct*100)
	sb.WriteString("\n" + LabelStyle.Render("change in k*") + Signed(r.CapitalChangePct, pct))
	return Panel.Render(sb.String())
}

// RenderMetrics lists metric values sorted by name.
func RenderMetrics(values map[string]float64) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("METRICS") + "\n")
	for _, name := range names {
		sb.WriteString(row(name, fmt.Sprintf("%.6f", values[name])))
	}
	return sb.String()
}

func RenderPhase(phase *analysis.Phase) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("PHASE LINE") + "\n")
	sb.WriteString(phase.Arrows() + "\n")
	if phase.HasCrossing {
		sb.WriteString(row("k_dot = 0 in", fmt.Sprintf("[%.4f, %.4f]", phase.CrossLow, phase.CrossHigh)))
	} else {
		sb.WriteString(row("k_dot = 0", "not in range"))
	}
	return sb.String()
}

func RenderGoldenRule(p growth.Params, gr analysis.GoldenRule) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("GOLDEN RULE") + "\n")
	sb.WriteString(row("current s", fmt.Sprintf("%.4f", p.S)))
	sb.WriteString(row("golden-rule s", fmt.Sprintf("%.4f", gr.Savings)))
	sb.WriteString(row("k*", fmt.Sprintf("%.6f", gr.SteadyState.Capital)))
	sb.WriteString(row("c*", fmt.Sprintf("%.6f", gr.SteadyState.Consumption)))
	return Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

// RenderSearch shows the best grid point for the named parameters.
func RenderSearch(title string, names []string, res optim.Result) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(title) + "\n")
	for _, name := range names {
		v, _ := res.Params.Get(name)
		sb.WriteString(row("best "+name, fmt.Sprintf("%.4f", v)))
	}
	sb.WriteString(row("score", fmt.Sprintf("%.6f", res.Score)))
	sb.WriteString(row("points", fmt.Sprintf("%d (%d failed)", res.Evaluated, res.Failed)))
	return Panel.Render(strings.TrimRight(sb.String(), "\n"))
}
