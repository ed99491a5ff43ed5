package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/arbiter/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View arbiter configuration",
	Long: `View arbiter configuration.

Without arguments, displays the current configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/arbiter/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "match:")
	fmt.Fprintf(out, "  idle_time: %s\n", cfg.Match.IdleTime)
	fmt.Fprintf(out, "  check_interval: %s\n", cfg.Match.CheckInterval)
	fmt.Fprintf(out, "  alert_interval: %s\n", cfg.Match.AlertInterval)
	fmt.Fprintf(out, "  activity: %s\n", cfg.Match.Activity)

	fmt.Fprintln(out, "simulation:")
	fmt.Fprintf(out, "  tick: %s\n", cfg.Simulation.Tick)
	fmt.Fprintf(out, "  max_duration: %s\n", cfg.Simulation.MaxDuration)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", orDash(cfg.Logging.Dir))

	fmt.Fprintln(out, "ledger:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Ledger.Enabled)
	fmt.Fprintf(out, "  path: %s\n", cfg.Ledger.LedgerPath())

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  color: %v\n", cfg.TUI.Color)

	return nil
}

const defaultConfigContent = `# Arbiter Configuration

# End-of-match arbitration
match:
  # How long a team may go without building a unit, building a base
  # structure, researching, or attacking before it is eliminated
  idle_time: 5m
  # How often teams are checked for elimination
  check_interval: 3s
  # How often the passive-play warning is evaluated
  alert_interval: 10s
  # Idle enforcement: auto (multiplayer matches that are not challenges), on, off
  activity: auto

# Scenario simulator
simulation:
  # Simulation step
  tick: 100ms
  # Cap for scenarios that set no duration
  max_duration: 60m

logging:
  enabled: true
  # debug, info, warn, error
  level: info
  # Directory for arbiter.log; empty logs to stderr
  dir: ""

# Outcome ledger (SQLite)
ledger:
  # Record every simulated outcome
  enabled: false
  # Empty means ledger.db in the config directory
  path: ""

tui:
  # default or mono
  theme: default
  color: true
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: ARBITER_* (e.g., ARBITER_MATCH_IDLE_TIME)")

	return nil
}
