package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javanhut/ravenstate/logger"
)

var (
	debugMode             bool
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "ravenstate",
	Short: "GPU terminal window manager with tabs, panes and detachable panes",
	Long: `ravenstate opens OS windows that hold tabs of terminal panes. Panes can be
moved between tabs and between windows without losing their content.

Without a subcommand it runs the interactive GLFW front end.`,
	RunE:          runGUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.toml (default: $XDG_CONFIG_HOME/ravenstate/config.toml)")
}

func initLogging() {
	if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("ravenstate %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("ravenstate %s\n", version)
}
