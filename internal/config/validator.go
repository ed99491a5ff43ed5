package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "match.idle_time")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidActivityModes returns the list of valid match.activity values
func ValidActivityModes() []string {
	return []string{"auto", "on", "off"}
}

// ValidThemes returns the list of valid tui.theme values
func ValidThemes() []string {
	return []string{"default", "mono"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateMatch()...)
	errors = append(errors, c.validateSimulation()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)

	return errors
}

// validateMatch validates the MatchConfig
func (c *Config) validateMatch() []ValidationError {
	var errors []ValidationError

	const minIdleTime = 30 * time.Second
	if c.Match.IdleTime < minIdleTime {
		errors = append(errors, ValidationError{
			Field:   "match.idle_time",
			Value:   c.Match.IdleTime,
			Message: fmt.Sprintf("must be at least %s", minIdleTime),
		})
	}

	if c.Match.CheckInterval <= 0 {
		errors = append(errors, ValidationError{
			Field:   "match.check_interval",
			Value:   c.Match.CheckInterval,
			Message: "must be positive",
		})
	}

	if c.Match.AlertInterval <= 0 {
		errors = append(errors, ValidationError{
			Field:   "match.alert_interval",
			Value:   c.Match.AlertInterval,
			Message: "must be positive",
		})
	}

	// The warning starts at half the idle window; an alert interval past that
	// would never show it before elimination.
	if c.Match.AlertInterval > c.Match.IdleTime/2 && c.Match.IdleTime >= minIdleTime {
		errors = append(errors, ValidationError{
			Field:   "match.alert_interval",
			Value:   c.Match.AlertInterval,
			Message: "must not exceed half of match.idle_time",
		})
	}

	if c.Match.Activity != "" && !slices.Contains(ValidActivityModes(), c.Match.Activity) {
		errors = append(errors, ValidationError{
			Field:   "match.activity",
			Value:   c.Match.Activity,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidActivityModes(), ", ")),
		})
	}

	return errors
}

// validateSimulation validates the SimulationConfig
func (c *Config) validateSimulation() []ValidationError {
	var errors []ValidationError

	const minTick = time.Millisecond
	if c.Simulation.Tick < minTick {
		errors = append(errors, ValidationError{
			Field:   "simulation.tick",
			Value:   c.Simulation.Tick,
			Message: fmt.Sprintf("must be at least %s", minTick),
		})
	}

	// Ticks coarser than the viability interval would skip checks.
	if c.Match.CheckInterval > 0 && c.Simulation.Tick > c.Match.CheckInterval {
		errors = append(errors, ValidationError{
			Field:   "simulation.tick",
			Value:   c.Simulation.Tick,
			Message: "must not exceed match.check_interval",
		})
	}

	if c.Simulation.MaxDuration <= 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.max_duration",
			Value:   c.Simulation.MaxDuration,
			Message: "must be positive",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	return errors
}
