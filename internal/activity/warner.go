package activity

import (
	"time"

	"github.com/Iron-Ham/arbiter/internal/logging"
	"github.com/Iron-Ham/arbiter/internal/notify"
	"github.com/Iron-Ham/arbiter/internal/team"
	"github.com/Iron-Ham/arbiter/internal/world"
)

// Warner shows the passive-play warning and countdown for the local viewer's team.
type Warner struct {
	registry  *team.Registry
	world     world.World
	presenter notify.Presenter
	idle      time.Duration
	logger    *logging.Logger

	armed   bool
	stopped bool
}

// NewWarner creates a Warner for the world's viewer slot.
func NewWarner(registry *team.Registry, w world.World, presenter notify.Presenter, logger *logging.Logger) *Warner {
	if presenter == nil {
		presenter = notify.Nop{}
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Warner{
		registry:  registry,
		world:     w,
		presenter: presenter,
		idle:      registry.Policy().IdleTime,
		logger:    logger.WithComponent("activity"),
	}
}

// Stopped reports whether the warner has stopped for good.
func (w *Warner) Stopped() bool {
	return w.stopped
}

// Check runs one warning pass and returns false once the viewer's team has left
// contention; the caller should then stop calling it.
func (w *Warner) Check() bool {
	if w.stopped {
		return false
	}

	viewer := w.world.ViewerSlot()
	tm, err := w.registry.TeamOf(viewer)
	if err != nil || !tm.IsContender() {
		w.presenter.ClearCountdown()
		w.armed = false
		w.stopped = true
		w.logger.Debug("passive play warning stopped", "slot", int(viewer))
		return false
	}

	now := w.world.Now()
	half := tm.LastActivity() + w.idle/2
	switch {
	case half < now:
		w.presenter.PassiveWarning(notify.PassivePlayWarning)
		if !w.armed {
			w.presenter.SetCountdown(Remaining(tm.LastActivity(), w.idle, now))
			w.armed = true
		}
	case half > now:
		if w.armed {
			w.presenter.ClearCountdown()
			w.armed = false
		}
	}
	return true
}

// Remaining returns the whole seconds left before a team idle since
// lastActivity is eliminated, never below zero.
func Remaining(lastActivity, idle, now time.Duration) int {
	left := lastActivity + idle - now
	if left <= 0 {
		return 0
	}
	return int(left / time.Second)
}
