package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the cloth canvas and the stats panel.
type Theme struct {
	Name   string
	Cloth  lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Alert  lipgloss.Color
}

var (
	ThemeLinen = Theme{
		Name:   "linen",
		Cloth:  lipgloss.Color("#f0e6d2"),
		Accent: lipgloss.Color("#00ccff"),
		Muted:  lipgloss.Color("#888899"),
		Alert:  lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Cloth:  lipgloss.Color("#00ff00"), // green phosphor
		Accent: lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
		Alert:  lipgloss.Color("#ffff00"),
	}

	ThemeNeon = Theme{
		Name:   "neon",
		Cloth:  lipgloss.Color("#ff00ff"),
		Accent: lipgloss.Color("#00ffff"),
		Muted:  lipgloss.Color("#666666"),
		Alert:  lipgloss.Color("#ff8800"),
	}

	Themes = []Theme{ThemeLinen, ThemePhosphor, ThemeNeon}
)

// GetTheme returns a theme by name, falling back to linen.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLinen
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
