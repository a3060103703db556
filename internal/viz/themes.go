package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the wave panels and sidebar.
type Theme struct {
	Name       string
	Incident   lipgloss.Color
	Reflected  lipgloss.Color
	Combined   lipgloss.Color
	Trace      lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Incident:   lipgloss.Color("#00ffff"),
		Reflected:  lipgloss.Color("#ff00ff"),
		Combined:   lipgloss.Color("#ff0033"),
		Trace:      lipgloss.Color("#00ff66"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Accent:     lipgloss.Color("#ffff00"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Incident:   lipgloss.Color("#00cc00"),
		Reflected:  lipgloss.Color("#00cc00"),
		Combined:   lipgloss.Color("#88ff88"),
		Trace:      lipgloss.Color("#005500"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Accent:     lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Incident:   lipgloss.Color("#cccccc"),
		Reflected:  lipgloss.Color("#cccccc"),
		Combined:   lipgloss.Color("#ff0000"),
		Trace:      lipgloss.Color("#00aa00"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Accent:     lipgloss.Color("#0088ff"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Incident:   lipgloss.Color("#00a8cc"),
		Reflected:  lipgloss.Color("#0077be"),
		Combined:   lipgloss.Color("#ff4444"),
		Trace:      lipgloss.Color("#00ff88"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Accent:     lipgloss.Color("#ffd700"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Incident:   lipgloss.Color("#feca57"),
		Reflected:  lipgloss.Color("#ff9ff3"),
		Combined:   lipgloss.Color("#ff4757"),
		Trace:      lipgloss.Color("#5fd068"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Accent:     lipgloss.Color("#ff6b6b"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
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
