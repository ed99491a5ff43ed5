// Package conditions drives end-of-match arbitration: it builds the team
// registry when a match starts or loads, forwards world events to the activity
// tracker, and re-checks viability on a fixed interval until one team is left.
//
// An Engine is driven from the simulation goroutine. It is not safe for
// concurrent use.
package conditions

import (
	"time"

	"github.com/Iron-Ham/arbiter/internal/activity"
	"github.com/Iron-Ham/arbiter/internal/errors"
	"github.com/Iron-Ham/arbiter/internal/event"
	"github.com/Iron-Ham/arbiter/internal/logging"
	"github.com/Iron-Ham/arbiter/internal/notify"
	"github.com/Iron-Ham/arbiter/internal/scheduler"
	"github.com/Iron-Ham/arbiter/internal/team"
	"github.com/Iron-Ham/arbiter/internal/world"
)

// Outcome is the decided result of a match.
type Outcome struct {
	Draw        bool          // No contender was left to win
	Winner      int           // Winning team index; -1 on a draw
	WinnerSlots []world.Slot  // Members of the winning team
	At          time.Duration // Simulation time the outcome was decided
	Teams       []team.Status // Final team snapshots
}

// Engine arbitrates one match at a time.
type Engine struct {
	world     world.World
	sched     *scheduler.Scheduler
	cfg       Config
	logger    *logging.Logger
	presenter notify.Presenter
	bus       *event.Bus

	registry *team.Registry
	tracker  *activity.Tracker
	warner   *activity.Warner
	enforce  bool
	started  bool
	outcome  *Outcome
	subs     []string
}

// New creates an Engine over a world and the scheduler that fires its checks.
func New(w world.World, sched *scheduler.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		world:     w,
		sched:     sched,
		cfg:       DefaultConfig(),
		logger:    logging.NopLogger(),
		presenter: notify.Nop{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start handles match start: it builds the teams and arms the periodic checks.
func (e *Engine) Start() {
	e.setup("match started")
}

// Load handles a loaded match: teams are rebuilt from the current world and the
// periodic checks re-armed.
func (e *Engine) Load() {
	e.setup("match loaded")
}

func (e *Engine) setup(msg string) {
	e.disarm()
	e.outcome = nil
	e.enforce = e.cfg.Activity.Enforced(e.world.Match())

	e.registry = team.NewRegistry(e.world,
		team.Policy{IdleTime: e.cfg.IdleTime, EnforceActivity: e.enforce},
		team.WithLogger(e.logger.WithComponent("team")),
		team.WithPresenter(e.presenter),
		team.WithTransitionHook(e.publishTransition),
	)
	e.registry.CreateTeams()
	e.tracker = activity.NewTracker(e.registry, e.world, e.enforce, e.logger)
	e.warner = activity.NewWarner(e.registry, e.world, e.presenter, e.logger)
	e.started = true

	if e.enforce {
		e.sched.SetTimer(TimerActivityAlert, e.cfg.AlertInterval, func(time.Duration) { e.ActivityAlert() })
	}
	e.sched.SetTimer(TimerCheckEndConditions, e.cfg.CheckInterval, func(time.Duration) { e.CheckEndConditions() })

	e.logger.Info(msg,
		"teams", len(e.registry.Teams()),
		"contenders", len(e.registry.Contenders()),
		"enforce_activity", e.enforce,
		"idle_time", e.cfg.IdleTime.String(),
	)
}

// Stop disarms the periodic checks and detaches from the bus. The registry is
// kept for inspection.
func (e *Engine) Stop() {
	e.disarm()
	e.Detach()
	e.started = false
}

func (e *Engine) disarm() {
	e.sched.RemoveTimer(TimerCheckEndConditions)
	e.sched.RemoveTimer(TimerActivityAlert)
}

// Started reports whether a match is running.
func (e *Engine) Started() bool {
	return e.started
}

// EnforcesActivity reports whether idle elimination applies to the current match.
func (e *Engine) EnforcesActivity() bool {
	return e.enforce
}

// Registry returns the current team registry, or nil before Start.
func (e *Engine) Registry() *team.Registry {
	return e.registry
}

// Outcome returns the decided outcome, or nil while the match is undecided.
func (e *Engine) Outcome() *Outcome {
	return e.outcome
}

// CheckEndConditions runs one viability pass. Once the outcome is decided the
// periodic checks are disarmed and later calls do nothing.
func (e *Engine) CheckEndConditions() (team.Pass, error) {
	if !e.started {
		return team.Pass{}, errors.ErrMatchNotStarted
	}
	if e.outcome != nil {
		return team.Pass{}, nil
	}

	pass := e.registry.CheckEndConditions()
	switch {
	case pass.Winner != nil:
		e.finish(false, pass.Winner)
	case pass.Contenders == 0:
		e.finish(true, nil)
	}
	return pass, nil
}

func (e *Engine) finish(draw bool, winner *team.Team) {
	now := e.world.Now()
	out := &Outcome{
		Draw:   draw,
		Winner: -1,
		At:     now,
		Teams:  e.registry.Statuses(),
	}
	if winner != nil {
		out.Winner = winner.Index()
		out.WinnerSlots = winner.Slots()
	}
	e.outcome = out
	e.disarm()
	if e.enforce {
		e.presenter.ClearCountdown()
	}

	if draw {
		e.logger.Info("match ended in a draw", "game_time_ms", now.Milliseconds())
	} else {
		e.logger.Info("match ended", "winner", out.Winner, "slots", slotInts(out.WinnerSlots), "game_time_ms", now.Milliseconds())
	}
	if e.bus != nil {
		e.bus.Publish(event.NewMatchEndedEvent(now, draw, out.Winner, slotInts(out.WinnerSlots)))
	}
}

// ActivityAlert runs one passive-play warning pass and removes its own timer
// once the viewer's team has left contention.
func (e *Engine) ActivityAlert() {
	if !e.started {
		return
	}
	if !e.warner.Check() {
		e.sched.RemoveTimer(TimerActivityAlert)
	}
}

// OnUnitBuilt handles a completed unit.
func (e *Engine) OnUnitBuilt(owner world.Slot) {
	if e.ready(activity.EventUnitBuilt) {
		e.tracker.UnitBuilt(owner)
	}
}

// OnStructureBuilt handles a completed structure.
func (e *Engine) OnStructureBuilt(owner world.Slot, kind world.StructureKind) {
	if e.ready(activity.EventStructureBuilt) {
		e.tracker.StructureBuilt(owner, kind)
	}
}

// OnResearched handles completed research.
func (e *Engine) OnResearched(slot world.Slot) {
	if e.ready(activity.EventResearched) {
		e.tracker.Researched(slot)
	}
}

// OnAttacked handles damage dealt to victim by attacker.
func (e *Engine) OnAttacked(victim, attacker world.Slot) {
	if e.ready(activity.EventAttacked) {
		e.tracker.Attacked(attacker)
	}
}

func (e *Engine) ready(evt string) bool {
	if !e.started {
		e.logger.Debug("event before match start", "event", evt)
		return false
	}
	return true
}

// Attach subscribes the event hooks to bus and publishes match events on it.
func (e *Engine) Attach(bus *event.Bus) {
	e.Detach()
	e.bus = bus
	e.subs = []string{
		bus.Subscribe(event.TypeUnitBuilt, func(ev event.Event) {
			if u, ok := ev.(event.UnitBuiltEvent); ok {
				e.OnUnitBuilt(world.Slot(u.Player))
			}
		}),
		bus.Subscribe(event.TypeStructureBuilt, func(ev event.Event) {
			if s, ok := ev.(event.StructureBuiltEvent); ok {
				e.OnStructureBuilt(world.Slot(s.Player), world.StructureKind(s.Kind))
			}
		}),
		bus.Subscribe(event.TypeResearchCompleted, func(ev event.Event) {
			if r, ok := ev.(event.ResearchCompletedEvent); ok {
				e.OnResearched(world.Slot(r.Player))
			}
		}),
		bus.Subscribe(event.TypeUnitAttacked, func(ev event.Event) {
			if a, ok := ev.(event.UnitAttackedEvent); ok {
				e.OnAttacked(world.Slot(a.Victim), world.Slot(a.Attacker))
			}
		}),
	}
}

// Detach removes the hooks subscribed by Attach.
func (e *Engine) Detach() {
	if e.bus == nil {
		return
	}
	for _, id := range e.subs {
		e.bus.Unsubscribe(id)
	}
	e.subs = nil
}

func (e *Engine) publishTransition(tr team.Transition) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(event.NewTeamStateChangedEvent(
		e.world.Now(),
		tr.Team.Index(),
		slotInts(tr.Team.Slots()),
		string(tr.From),
		string(tr.To),
	))
}

func slotInts(slots []world.Slot) []int {
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = int(s)
	}
	return out
}
