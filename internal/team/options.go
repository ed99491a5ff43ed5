package team

import (
	"github.com/Iron-Ham/arbiter/internal/logging"
	"github.com/Iron-Ham/arbiter/internal/notify"
)

// Transition describes one state assignment.
type Transition struct {
	Team *Team
	From State
	To   State
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithPresenter sets the presenter receiving victory and defeat notices.
func WithPresenter(p notify.Presenter) RegistryOption {
	return func(r *Registry) {
		if p != nil {
			r.presenter = p
		}
	}
}

// WithTransitionHook registers a function called after every state assignment.
func WithTransitionHook(fn func(Transition)) RegistryOption {
	return func(r *Registry) {
		if fn != nil {
			r.hooks = append(r.hooks, fn)
		}
	}
}
