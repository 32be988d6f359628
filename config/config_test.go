package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFrom_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.TabBar.Edge != EdgeBottom || cfg.TabBar.MinTabs != 2 {
		t.Errorf("unexpected defaults: %+v", cfg.TabBar)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config was not written: %v", err)
	}

	again, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *again != *cfg {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", again, cfg)
	}
}

func TestLoadFrom_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
font_size = 14.0

[tab_bar]
style = "hidden"
edge = "top"
margin_outer = 2.5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.FontSize != 14 {
		t.Errorf("FontSize = %g, want 14", cfg.FontSize)
	}
	if !cfg.TabBarHidden() || !cfg.TabBarOnTop() {
		t.Errorf("tab bar = %+v", cfg.TabBar)
	}
	if cfg.TabBar.MarginOuter != 2.5 {
		t.Errorf("MarginOuter = %g", cfg.TabBar.MarginOuter)
	}
	// untouched keys keep their defaults
	if cfg.TabBar.MinTabs != 2 || cfg.Window.Width != 900 {
		t.Errorf("defaults lost: %+v %+v", cfg.TabBar, cfg.Window)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"bad toml", "font_size = = 3", "failed to parse"},
		{"bad edge", "[tab_bar]\nedge = \"left\"", "tab_bar.edge"},
		{"bad opacity", "background_opacity = 1.5", "background_opacity"},
		{"bad font size", "font_size = 0.0", "font_size"},
		{"bad log level", "[log]\nlevel = \"loud\"", "log.level"},
		{"bad theme", "theme = \"neon\"", "theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got := GetConfigDir(); got != filepath.Join(dir, "ravenstate") {
		t.Errorf("GetConfigDir = %q", got)
	}
	if got := GetConfigPath(); got != filepath.Join(dir, "ravenstate", "config.toml") {
		t.Errorf("GetConfigPath = %q", got)
	}
}

func TestThemeLabel(t *testing.T) {
	if ThemeLabel("crow-black") != "Crow Black" {
		t.Error("known theme label")
	}
	if ThemeLabel("") != "Raven Blue" {
		t.Error("empty theme label")
	}
	if ThemeLabel("Catppuccin") != "Catppuccin Mocha" {
		t.Error("alias theme label")
	}
	if ThemeLabel("custom") != "custom" {
		t.Error("unknown theme label")
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, _, err := Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := DefaultConfig()
	cfg.FontSize = 18
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-updates:
			if got.FontSize == 18 {
				return
			}
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}
