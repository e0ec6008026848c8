// Package ui holds the color themes shared by the CLI presenter, the usage
// text of the config package and the error handler.
package ui

import (
	"os"
	"sort"
	"sync"
)

// Theme defines a color scheme for terminal output. Each field is an ANSI
// escape sequence, empty when colors are disabled.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the accent color for headings and flag names.
	Primary string
	// Secondary is used for labels, defaults and other low-emphasis text.
	Secondary string
	// Success marks verified results.
	Success string
	// Warning marks caution messages.
	Warning string
	// Error marks failures.
	Error string
	// Info marks informational values such as durations.
	Info string
	// Positive colors non-negative coefficients.
	Positive string
	// Negative colors negative coefficients.
	Negative string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Positive:  "\033[38;5;114m",
		Negative:  "\033[38;5;209m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Positive:  "\033[38;5;22m",
		Negative:  "\033[38;5;88m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output (NO_COLOR or -no-color).
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeByName looks a theme up by name.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists the known theme names in alphabetical order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name. Unknown names select the dark theme.
func SetTheme(name string) {
	t, ok := ThemeByName(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme picks the theme at startup. Colors are disabled when noColor is
// set or the NO_COLOR environment variable exists (https://no-color.org/).
// Otherwise POLYROOTS_THEME may name a theme; the default is dark.
func InitTheme(noColor bool) {
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv("POLYROOTS_THEME"))
}
