package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour scheme for tables, panels and the tuner.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Rise      lipgloss.Color
	Fall      lipgloss.Color
	Flat      lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:      "classic",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#00ccff"),
		Accent:    lipgloss.Color("205"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888899"),
		Border:    lipgloss.Color("#444466"),
		Rise:      lipgloss.Color("#00ff88"),
		Fall:      lipgloss.Color("#ff4444"),
		Flat:      lipgloss.Color("#ffcc00"),
	}

	ThemeLedger = Theme{
		Name:      "ledger",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#88ff88"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#007700"),
		Border:    lipgloss.Color("#005500"),
		Rise:      lipgloss.Color("#88ff88"),
		Fall:      lipgloss.Color("#ff0000"),
		Flat:      lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Border:    lipgloss.Color("#555555"),
		Rise:      lipgloss.Color("#00ff00"),
		Fall:      lipgloss.Color("#ff0000"),
		Flat:      lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Border:    lipgloss.Color("#224466"),
		Rise:      lipgloss.Color("#00ff88"),
		Fall:      lipgloss.Color("#ff4444"),
		Flat:      lipgloss.Color("#ffcc00"),
	}

	CurrentTheme = ThemeClassic

	Themes = []Theme{
		ThemeClassic,
		ThemeLedger,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns the theme called name.
func GetTheme(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("unknown theme: %s (available: %v)", name, ThemeNames())
}

// SetTheme applies the theme called name.
func SetTheme(name string) error {
	t, err := GetTheme(name)
	if err != nil {
		return err
	}
	ApplyTheme(t)
	return nil
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
