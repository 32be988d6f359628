package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Tab bar edges
const (
	EdgeTop    = "top"
	EdgeBottom = "bottom"
)

// Tab bar styles. Only "hidden" changes layout; the rest are drawing styles.
const (
	StyleHidden    = "hidden"
	StyleFade      = "fade"
	StyleSeparator = "separator"
	StylePowerline = "powerline"
)

// TabBarConfig holds tab bar layout settings
type TabBarConfig struct {
	Style string `toml:"style"`
	Edge  string `toml:"edge"`
	// MinTabs is the number of tabs needed before the bar is shown
	MinTabs int `toml:"min_tabs"`
	// Margins are in points
	MarginOuter float64 `toml:"margin_outer"`
	MarginInner float64 `toml:"margin_inner"`
}

// WindowConfig holds the initial OS window settings
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// ShellConfig holds shell-specific settings
type ShellConfig struct {
	// Path to shell binary (empty = system default)
	Path string `toml:"path"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	Path  string `toml:"path"`
}

// Config holds the configuration
type Config struct {
	FontSize          float64      `toml:"font_size"`
	BackgroundOpacity float32      `toml:"background_opacity"`
	Theme             string       `toml:"theme"`
	TabBar            TabBarConfig `toml:"tab_bar"`
	Window            WindowConfig `toml:"window"`
	Shell             ShellConfig  `toml:"shell"`
	Log               LogConfig    `toml:"log"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		FontSize:          11.0,
		BackgroundOpacity: 1.0,
		Theme:             "raven-blue",
		TabBar: TabBarConfig{
			Style:       StyleFade,
			Edge:        EdgeBottom,
			MinTabs:     2,
			MarginOuter: 0,
			MarginInner: 0,
		},
		Window: WindowConfig{
			Width:  900,
			Height: 600,
			Title:  "Raven",
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(os.TempDir(), "ravenstate.log"),
		},
	}
}

// TabBarHidden reports whether the tab bar never takes space
func (c *Config) TabBarHidden() bool {
	return c.TabBar.Style == StyleHidden
}

// TabBarOnTop reports whether the tab bar sits above the panes
func (c *Config) TabBarOnTop() bool {
	return c.TabBar.Edge == EdgeTop
}

// Validate checks values that would break layout
func (c *Config) Validate() error {
	switch c.TabBar.Edge {
	case EdgeTop, EdgeBottom:
	default:
		return fmt.Errorf("tab_bar.edge: must be %q or %q, got %q", EdgeTop, EdgeBottom, c.TabBar.Edge)
	}
	if c.TabBar.MinTabs < 1 {
		return fmt.Errorf("tab_bar.min_tabs: must be at least 1, got %d", c.TabBar.MinTabs)
	}
	if c.TabBar.MarginOuter < 0 || c.TabBar.MarginInner < 0 {
		return fmt.Errorf("tab_bar margins must not be negative")
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size: must be positive, got %g", c.FontSize)
	}
	if c.BackgroundOpacity < 0 || c.BackgroundOpacity > 1 {
		return fmt.Errorf("background_opacity: must be within [0, 1], got %g", c.BackgroundOpacity)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, ok := CanonicalTheme(c.Theme); !ok {
		return fmt.Errorf("theme: unknown theme %q", c.Theme)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// GetConfigDir returns the config directory path
func GetConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ravenstate")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".config/ravenstate"
	}
	return filepath.Join(homeDir, ".config", "ravenstate")
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.toml")
}

// Load loads the configuration from the default location
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads the configuration at path, writing the defaults there first
// if the file does not exist
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves the configuration to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
