package conditions

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/arbiter/internal/event"
	"github.com/Iron-Ham/arbiter/internal/logging"
	"github.com/Iron-Ham/arbiter/internal/notify"
	"github.com/Iron-Ham/arbiter/internal/team"
	"github.com/Iron-Ham/arbiter/internal/world"
)

// Timer names armed on the scheduler.
const (
	TimerCheckEndConditions = "checkEndConditions"
	TimerActivityAlert      = "activityAlert"
)

// Default intervals.
const (
	DefaultCheckInterval = 3 * time.Second
	DefaultAlertInterval = 10 * time.Second
)

// ActivityMode selects how idle elimination is decided for a match.
type ActivityMode string

const (
	// ActivityAuto enforces activity in live multiplayer matches that are not challenges.
	ActivityAuto ActivityMode = "auto"
	// ActivityOn always enforces activity.
	ActivityOn ActivityMode = "on"
	// ActivityOff never enforces activity.
	ActivityOff ActivityMode = "off"
)

// ParseActivityMode parses an activity mode name. The empty string is auto.
func ParseActivityMode(s string) (ActivityMode, error) {
	switch ActivityMode(strings.ToLower(strings.TrimSpace(s))) {
	case ActivityAuto, "":
		return ActivityAuto, nil
	case ActivityOn:
		return ActivityOn, nil
	case ActivityOff:
		return ActivityOff, nil
	default:
		return "", fmt.Errorf("invalid activity mode %q (valid: auto, on, off)", s)
	}
}

// Enforced decides whether idle elimination applies to a match.
func (m ActivityMode) Enforced(info world.MatchInfo) bool {
	switch m {
	case ActivityOn:
		return true
	case ActivityOff:
		return false
	default:
		return info.Multiplayer && !info.Challenge
	}
}

// Config holds the timing settings of an Engine. Zero values take the defaults.
type Config struct {
	IdleTime      time.Duration
	CheckInterval time.Duration
	AlertInterval time.Duration
	Activity      ActivityMode
}

// DefaultConfig returns the default engine settings.
func DefaultConfig() Config {
	return Config{
		IdleTime:      team.DefaultIdleTime,
		CheckInterval: DefaultCheckInterval,
		AlertInterval: DefaultAlertInterval,
		Activity:      ActivityAuto,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.IdleTime <= 0 {
		c.IdleTime = d.IdleTime
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = d.CheckInterval
	}
	if c.AlertInterval <= 0 {
		c.AlertInterval = d.AlertInterval
	}
	if c.Activity == "" {
		c.Activity = d.Activity
	}
	return c
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the engine timings.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg.withDefaults()
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPresenter sets the presentation collaborator.
func WithPresenter(p notify.Presenter) Option {
	return func(e *Engine) {
		if p != nil {
			e.presenter = p
		}
	}
}

// WithBus sets the bus that receives team.state_changed and match.ended events.
func WithBus(b *event.Bus) Option {
	return func(e *Engine) {
		e.bus = b
	}
}
