package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("Default config should be valid, got %d errors: %v", len(errs), errs)
	}
}

// hasField reports whether errs contains an error for field.
func hasField(errs []ValidationError, field string) bool {
	for _, err := range errs {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestConfig_Validate_Match(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(c *Config)
		field    string
		hasError bool
	}{
		{"default idle time", func(c *Config) {}, "match.idle_time", false},
		{"short idle time", func(c *Config) { c.Match.IdleTime = 10 * time.Second }, "match.idle_time", true},
		{"zero check interval", func(c *Config) { c.Match.CheckInterval = 0 }, "match.check_interval", true},
		{"negative alert interval", func(c *Config) { c.Match.AlertInterval = -time.Second }, "match.alert_interval", true},
		{"alert interval past half window", func(c *Config) { c.Match.AlertInterval = 3 * time.Minute }, "match.alert_interval", true},
		{"alert interval at half window", func(c *Config) { c.Match.AlertInterval = 150 * time.Second }, "match.alert_interval", false},
		{"activity on", func(c *Config) { c.Match.Activity = "on" }, "match.activity", false},
		{"activity off", func(c *Config) { c.Match.Activity = "off" }, "match.activity", false},
		{"empty activity", func(c *Config) { c.Match.Activity = "" }, "match.activity", false},
		{"invalid activity", func(c *Config) { c.Match.Activity = "sometimes" }, "match.activity", true},
		{"case sensitive activity", func(c *Config) { c.Match.Activity = "ON" }, "match.activity", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			if got := hasField(errs, tt.field); got != tt.hasError {
				t.Errorf("Validate() error on %s = %v, want %v (errs: %v)", tt.field, got, tt.hasError, errs)
			}
		})
	}
}

func TestConfig_Validate_Simulation(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(c *Config)
		field    string
		hasError bool
	}{
		{"default tick", func(c *Config) {}, "simulation.tick", false},
		{"zero tick", func(c *Config) { c.Simulation.Tick = 0 }, "simulation.tick", true},
		{"tick equal to check interval", func(c *Config) { c.Simulation.Tick = 3 * time.Second }, "simulation.tick", false},
		{"tick coarser than check interval", func(c *Config) { c.Simulation.Tick = 5 * time.Second }, "simulation.tick", true},
		{"zero max duration", func(c *Config) { c.Simulation.MaxDuration = 0 }, "simulation.max_duration", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			if got := hasField(errs, tt.field); got != tt.hasError {
				t.Errorf("Validate() error on %s = %v, want %v (errs: %v)", tt.field, got, tt.hasError, errs)
			}
		})
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	tests := []struct {
		level    string
		hasError bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"", false},
		{"trace", true},
		{"INFO", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Default()
			cfg.Logging.Level = tt.level
			if got := hasField(cfg.Validate(), "logging.level"); got != tt.hasError {
				t.Errorf("Validate() for level=%q: hasError=%v, want %v", tt.level, got, tt.hasError)
			}
		})
	}
}

func TestConfig_Validate_TUI(t *testing.T) {
	tests := []struct {
		theme    string
		hasError bool
	}{
		{"default", false},
		{"mono", false},
		{"", false},
		{"dracula", true},
	}

	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			cfg := Default()
			cfg.TUI.Theme = tt.theme
			if got := hasField(cfg.Validate(), "tui.theme"); got != tt.hasError {
				t.Errorf("Validate() for theme=%q: hasError=%v, want %v", tt.theme, got, tt.hasError)
			}
		})
	}
}

func TestValidLogLevels(t *testing.T) {
	levels := ValidLogLevels()
	expected := []string{"debug", "info", "warn", "error"}
	if len(levels) != len(expected) {
		t.Fatalf("ValidLogLevels() returned %d levels, want %d", len(levels), len(expected))
	}
	for i, level := range expected {
		if levels[i] != level {
			t.Errorf("ValidLogLevels()[%d] = %q, want %q", i, levels[i], level)
		}
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := Default()
	// Set multiple invalid values
	cfg.Match.IdleTime = time.Second
	cfg.Match.Activity = "maybe"
	cfg.Logging.Level = "invalid"
	cfg.TUI.Theme = "neon"

	errs := cfg.Validate()
	if len(errs) < 4 {
		t.Errorf("expected at least 4 errors, got %d: %v", len(errs), errs)
	}
}
