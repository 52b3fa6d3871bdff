package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by the renderers. ApplyTheme rebuilds them.
var (
	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style
	Panel       lipgloss.Style
	LabelStyle  lipgloss.Style
	ValueStyle  lipgloss.Style
	ActiveStyle lipgloss.Style
	Subtle      lipgloss.Style
	RiseStyle   lipgloss.Style
	FallStyle   lipgloss.Style
	FlatStyle   lipgloss.Style
)

func init() {
	ApplyTheme(ThemeClassic)
}

// ApplyTheme rebuilds every style from t and makes it current.
func ApplyTheme(t Theme) {
	CurrentTheme = t

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2)

	LabelStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Width(18)

	ValueStyle = lipgloss.NewStyle().
		Foreground(t.Secondary).
		Bold(true)

	ActiveStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	Subtle = lipgloss.NewStyle().Foreground(t.Muted)

	RiseStyle = lipgloss.NewStyle().Foreground(t.Rise)
	FallStyle = lipgloss.NewStyle().Foreground(t.Fall)
	FlatStyle = lipgloss.NewStyle().Foreground(t.Flat)
}

// Sparkline renders values as a row of block characters sampled to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var sb strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// Signed colours a number by its sign.
func Signed(v float64, text string) string {
	switch {
	case v > 0:
		return RiseStyle.Render(text)
	case v < 0:
		return FallStyle.Render(text)
	}
	return FlatStyle.Render(text)
}

func row(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value) + "\n"
}
