package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete arbiter configuration
type Config struct {
	Match      MatchConfig      `mapstructure:"match"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	TUI        TUIConfig        `mapstructure:"tui"`
}

// MatchConfig controls end-of-match arbitration. Values are read once when a
// match starts.
type MatchConfig struct {
	// IdleTime is how long a team may go without a qualifying action before it
	// is eliminated (when activity is enforced)
	IdleTime time.Duration `mapstructure:"idle_time"`
	// CheckInterval is how often viability is re-checked
	CheckInterval time.Duration `mapstructure:"check_interval"`
	// AlertInterval is how often the passive-play warning is evaluated
	AlertInterval time.Duration `mapstructure:"alert_interval"`
	// Activity selects idle enforcement: "auto" enforces it in multiplayer
	// matches that are not challenges, "on" and "off" force it
	Activity string `mapstructure:"activity"`
}

// SimulationConfig controls the scenario simulator
type SimulationConfig struct {
	// Tick is the simulation step
	Tick time.Duration `mapstructure:"tick"`
	// MaxDuration caps scenarios that do not set their own duration
	MaxDuration time.Duration `mapstructure:"max_duration"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level sets the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for arbiter.log; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// LedgerConfig controls the match outcome ledger
type LedgerConfig struct {
	// Enabled records simulated match outcomes
	Enabled bool `mapstructure:"enabled"`
	// Path is the SQLite database file; empty means ledger.db in the config directory
	Path string `mapstructure:"path"`
}

// TUIConfig controls terminal output
type TUIConfig struct {
	// Theme is the notice color theme. Options: "default", "mono"
	Theme string `mapstructure:"theme"`
	// Color enables styled output when writing to a terminal
	Color bool `mapstructure:"color"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Match: MatchConfig{
			IdleTime:      5 * time.Minute,
			CheckInterval: 3 * time.Second,
			AlertInterval: 10 * time.Second,
			Activity:      "auto",
		},
		Simulation: SimulationConfig{
			Tick:        100 * time.Millisecond,
			MaxDuration: 60 * time.Minute,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
		Ledger: LedgerConfig{
			Enabled: false,
			Path:    "", // Empty means use default: <config dir>/ledger.db
		},
		TUI: TUIConfig{
			Theme: "default",
			Color: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Match defaults
	viper.SetDefault("match.idle_time", defaults.Match.IdleTime)
	viper.SetDefault("match.check_interval", defaults.Match.CheckInterval)
	viper.SetDefault("match.alert_interval", defaults.Match.AlertInterval)
	viper.SetDefault("match.activity", defaults.Match.Activity)

	// Simulation defaults
	viper.SetDefault("simulation.tick", defaults.Simulation.Tick)
	viper.SetDefault("simulation.max_duration", defaults.Simulation.MaxDuration)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Ledger defaults
	viper.SetDefault("ledger.enabled", defaults.Ledger.Enabled)
	viper.SetDefault("ledger.path", defaults.Ledger.Path)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.color", defaults.TUI.Color)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "arbiter")
	}
	// Fall back to ~/.config/arbiter
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arbiter"
	}
	return filepath.Join(home, ".config", "arbiter")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LedgerPath returns the ledger database path, resolving the default location
func (c *LedgerConfig) LedgerPath() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(ConfigDir(), "ledger.db")
}
