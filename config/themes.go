package config

import "strings"

// DefaultTheme is used when no theme is configured
const DefaultTheme = "raven-blue"

// ThemeOption describes a built-in theme
type ThemeOption struct {
	Name    string
	Label   string
	Aliases []string
}

// ThemeOptions lists the built-in themes
func ThemeOptions() []ThemeOption {
	return []ThemeOption{
		{Name: "raven-blue", Label: "Raven Blue"},
		{Name: "crow-black", Label: "Crow Black"},
		{Name: "catppuccin-mocha", Label: "Catppuccin Mocha", Aliases: []string{"catppuccin"}},
	}
}

// CanonicalTheme maps a theme name or alias to its canonical name. Empty
// selects the default.
func CanonicalTheme(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultTheme, true
	}
	for _, opt := range ThemeOptions() {
		if opt.Name == name {
			return opt.Name, true
		}
		for _, alias := range opt.Aliases {
			if alias == name {
				return opt.Name, true
			}
		}
	}
	return name, false
}

// ThemeLabel returns the display label for a theme name
func ThemeLabel(name string) string {
	canonical, ok := CanonicalTheme(name)
	if !ok {
		return name
	}
	for _, opt := range ThemeOptions() {
		if opt.Name == canonical {
			return opt.Label
		}
	}
	return name
}
