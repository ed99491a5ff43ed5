package cmd

import (
	"io"

	"github.com/Iron-Ham/arbiter/internal/conditions"
	"github.com/Iron-Ham/arbiter/internal/config"
	"github.com/Iron-Ham/arbiter/internal/logging"
	"github.com/Iron-Ham/arbiter/internal/notify"
	"github.com/Iron-Ham/arbiter/internal/scenario"
)

// engineConfig maps the match section onto engine settings.
func engineConfig(cfg *config.Config) (conditions.Config, error) {
	mode, err := conditions.ParseActivityMode(cfg.Match.Activity)
	if err != nil {
		return conditions.Config{}, err
	}
	return conditions.Config{
		IdleTime:      cfg.Match.IdleTime,
		CheckInterval: cfg.Match.CheckInterval,
		AlertInterval: cfg.Match.AlertInterval,
		Activity:      mode,
	}, nil
}

// newLogger builds the command logger. With no log directory, records go to
// stderr so they never interleave with notices on stdout.
func newLogger(cfg *config.Config, stderr io.Writer) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	if cfg.Logging.Dir == "" {
		return logging.NewWriterLogger(stderr, cfg.Logging.Level), nil
	}
	return logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
}

func newPresenter(cfg *config.Config, out io.Writer) *notify.Console {
	if cfg.TUI.Theme == "mono" {
		return notify.NewConsoleWithStyles(out, notify.PlainStyles())
	}
	return notify.NewConsole(out, cfg.TUI.Color)
}

// runOptions assembles simulator options from the loaded configuration.
func runOptions(cfg *config.Config, logger *logging.Logger, presenter notify.Presenter) (scenario.Options, error) {
	engine, err := engineConfig(cfg)
	if err != nil {
		return scenario.Options{}, err
	}
	return scenario.Options{
		Engine:      engine,
		Tick:        cfg.Simulation.Tick,
		MaxDuration: cfg.Simulation.MaxDuration,
		Logger:      logger,
		Presenter:   presenter,
	}, nil
}
