package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/viz"
)

// sidePanel follows the current viz theme.
func sidePanel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(viz.CurrentTheme.Border).
		Padding(0, 2).
		Width(44)
}

var increments = map[string]float64{
	growth.KeyN:     0.005,
	growth.KeyS:     0.01,
	growth.KeyD:     0.005,
	growth.KeyAlpha: 0.01,
	growth.KeyG:     0.005,
}

// Shares stay inside the open unit interval so consumption never hits zero.
var limits = map[string][2]float64{
	growth.KeyS:     {0.01, 0.99},
	growth.KeyAlpha: {0.01, 1},
	growth.KeyD:     {0, 1},
}

// Tuner is a Bubble Tea model for adjusting parameters and watching the
// steady state and simulated path respond.
type Tuner struct {
	model    *growth.Model
	initial  growth.Params
	k0       float64
	steps    int
	selected int

	ss     growth.SteadyState
	path   growth.Path
	rates  growth.Path
	report *growth.ComparativeReport
	err    error
}

func NewTuner(m *growth.Model, k0 float64, steps int) Tuner {
	t := Tuner{
		model:   m,
		initial: m.Params(),
		k0:      k0,
		steps:   steps,
	}
	t.refresh()
	return t
}

func (t Tuner) Init() tea.Cmd {
	return nil
}

func (t Tuner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return t, tea.Quit
	case "up", "k":
		t.selected = (t.selected + len(growth.Names) - 1) % len(growth.Names)
	case "down", "j", "tab":
		t.selected = (t.selected + 1) % len(growth.Names)
	case "right", "l", "+":
		t.adjust(1)
	case "left", "h", "-":
		t.adjust(-1)
	case "r":
		t.replace(t.initial)
		t.report = nil
	}
	return t, nil
}

// Selected returns the name of the highlighted parameter.
func (t Tuner) Selected() string {
	return growth.Names[t.selected]
}

func (t Tuner) Report() *growth.ComparativeReport {
	return t.report
}

func (t Tuner) Err() error {
	return t.err
}

func (t *Tuner) adjust(dir float64) {
	key := t.Selected()
	p := t.model.Params()
	v, _ := p.Get(key)

	v = math.Round((v+dir*increments[key])*1e6) / 1e6
	if lim, ok := limits[key]; ok {
		v = math.Max(lim[0], math.Min(lim[1], v))
	}
	next, err := p.With(key, v)
	if err != nil {
		t.err = err
		return
	}
	t.replace(next)
}

func (t *Tuner) replace(p growth.Params) {
	report, err := t.model.ReplaceParameters(p)
	if err != nil {
		t.err = err
		return
	}
	t.report = &report
	t.refresh()
}

func (t *Tuner) refresh() {
	t.err = nil
	ss, err := t.model.SteadyState()
	if err != nil {
		t.err = err
		return
	}
	d, err := t.model.SimulateDeltas(t.k0, t.steps)
	if err != nil {
		t.err = err
		return
	}
	t.ss, t.path, t.rates = ss, d.Path, d.Growth
}

func (t Tuner) View() string {
	p := t.model.Params()

	var params strings.Builder
	params.WriteString(viz.TitleStyle.Render("PARAMETERS") + "\n\n")
	for i, key := range growth.Names {
		v, _ := p.Get(key)
		line := fmt.Sprintf("%-6s %8.4f", key, v)
		if i == t.selected {
			params.WriteString(viz.ActiveStyle.Render("> "+line) + "\n")
		} else {
			params.WriteString("  " + viz.Subtle.Render(line) + "\n")
		}
	}

	params.WriteString("\n" + viz.TitleStyle.Render("STEADY STATE") + "\n\n")
	params.WriteString(fmt.Sprintf("k*  %10.4f\ny*  %10.4f\nc*  %10.4f\n", t.ss.Capital, t.ss.Output, t.ss.Consumption))

	if t.report != nil {
		pct := fmt.Sprintf("%+.2f%%", t.report.CapitalChangePct*100)
		params.WriteString("\nlast change  " + viz.Signed(t.report.CapitalChangePct, pct) + "\n")
	}
	if len(t.rates) > 1 {
		params.WriteString("\ngrowth " + viz.Sparkline(t.rates[1:], 30) + "\n")
	}
	if t.err != nil {
		params.WriteString("\n" + viz.FallStyle.Render(t.err.Error()) + "\n")
	}
	params.WriteString(viz.Subtle.Render("\n↑↓ select  ←→ adjust  r reset  q quit"))

	plot := viz.PlotPath(t.path, t.ss.Capital)
	return lipgloss.JoinHorizontal(lipgloss.Top, plot, sidePanel().Render(params.String()))
}

// Run starts the tuner on m until the user quits.
func Run(m *growth.Model, k0 float64, steps int) error {
	_, err := tea.NewProgram(NewTuner(m, k0, steps)).Run()
	return err
}
