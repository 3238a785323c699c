package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the terminal color scheme matching a scene palette.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeIce = Theme{
		Name:    "ice",
		Primary: lipgloss.Color("#6edcff"),
		Accent:  lipgloss.Color("#c8f0ff"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeEmber = Theme{
		Name:    "ember",
		Primary: lipgloss.Color("#ffaa5a"),
		Accent:  lipgloss.Color("#ffe1b4"),
		Text:    lipgloss.Color("#fff5f0"),
		Muted:   lipgloss.Color("#8b6b5c"),
		Warning: lipgloss.Color("#ff4757"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#cccccc"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{ThemeIce, ThemeEmber, ThemeMono}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeIce
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
