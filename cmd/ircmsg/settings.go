package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ircmsg/internal/config"
)

// settings is the configuration of the running command: ircmsg.toml,
// .env and IRCMSG_* variables, then explicitly set flags.
var settings config.Config

var cleanupFuncs []func()

// setupRun loads the configuration and starts tracing before any
// subcommand runs.
func setupRun(cmd *cobra.Command, _ []string) error {
	root := cmd.Root().PersistentFlags()
	path, err := root.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(config.LoadOptions{Path: path})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if root.Changed("color") {
		cfg.Color, _ = root.GetString("color")
	}
	if root.Changed("max-diagnostics") {
		cfg.MaxDiagnostics, _ = root.GetInt("max-diagnostics")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	settings = cfg

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanupFuncs = append(cleanupFuncs, cleanup)

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanupFuncs = append(cleanupFuncs, stopProfiling)
	return nil
}

// cleanupRun runs registered cleanups once, newest first.
func cleanupRun() {
	for i := len(cleanupFuncs) - 1; i >= 0; i-- {
		cleanupFuncs[i]()
	}
	cleanupFuncs = nil
}

// useColor resolves the color mode for output written to f.
func useColor(f *os.File) bool {
	switch settings.Color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

func showTimings(cmd *cobra.Command) bool {
	t, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return t
}

// stringSetting returns the flag value when the flag was set on the
// command line and fallback otherwise.
func stringSetting(cmd *cobra.Command, name, fallback string) (string, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}

func intSetting(cmd *cobra.Command, name string, fallback int) (int, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}
