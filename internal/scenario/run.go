package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/Iron-Ham/arbiter/internal/conditions"
	"github.com/Iron-Ham/arbiter/internal/event"
	"github.com/Iron-Ham/arbiter/internal/logging"
	"github.com/Iron-Ham/arbiter/internal/notify"
	"github.com/Iron-Ham/arbiter/internal/scheduler"
	"github.com/Iron-Ham/arbiter/internal/team"
	"github.com/Iron-Ham/arbiter/internal/world"
)

// DefaultTick is the simulation step used when none is configured.
const DefaultTick = 100 * time.Millisecond

// DefaultMaxDuration bounds scenarios that set no duration.
const DefaultMaxDuration = 60 * time.Minute

// Options configures a run.
type Options struct {
	Engine      conditions.Config
	Tick        time.Duration
	MaxDuration time.Duration
	Logger      *logging.Logger
	Presenter   notify.Presenter
	// Bus receives every world and match event; a private bus is used if nil
	Bus *event.Bus
}

// Result is the end state of a run.
type Result struct {
	Scenario    string
	EndedAt     time.Duration
	Outcome     *conditions.Outcome // nil if undecided when the run stopped
	Teams       []team.Status
	Transitions []event.TeamStateChangedEvent
	Steps       int // Timeline steps applied
}

// Decided reports whether the match ended with a winner or a draw.
func (r *Result) Decided() bool {
	return r.Outcome != nil
}

// Check compares the result with an expectation. A nil expectation always passes.
func (r *Result) Check(exp *Expectation) error {
	if exp == nil {
		return nil
	}
	switch {
	case exp.Undecided:
		if r.Decided() {
			return fmt.Errorf("expected no outcome, got %s", r.describe())
		}
	case exp.Draw:
		if !r.Decided() || !r.Outcome.Draw {
			return fmt.Errorf("expected a draw, got %s", r.describe())
		}
	case exp.Winner != nil:
		if !r.Decided() || r.Outcome.Draw || r.Outcome.Winner != *exp.Winner {
			return fmt.Errorf("expected team %d to win, got %s", *exp.Winner, r.describe())
		}
	}
	return nil
}

func (r *Result) describe() string {
	switch {
	case !r.Decided():
		return "no outcome"
	case r.Outcome.Draw:
		return "a draw"
	default:
		return fmt.Sprintf("team %d winning", r.Outcome.Winner)
	}
}

// Run plays the scenario tick by tick until the outcome is decided, the
// duration ends, or ctx is cancelled.
func Run(ctx context.Context, s *Scenario, opts Options) (*Result, error) {
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	end := s.Duration
	if end <= 0 {
		end = opts.MaxDuration
		if end <= 0 {
			end = DefaultMaxDuration
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithMatch(s.Name)

	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus(event.WithLogger(logger))
	}

	m := s.NewWorld()
	sched := scheduler.New()
	eng := conditions.New(m, sched,
		conditions.WithConfig(opts.Engine),
		conditions.WithLogger(logger),
		conditions.WithPresenter(opts.Presenter),
	)

	res := &Result{Scenario: s.Name}
	subID := bus.Subscribe(event.TypeTeamStateChanged, func(e event.Event) {
		if tc, ok := e.(event.TeamStateChangedEvent); ok {
			res.Transitions = append(res.Transitions, tc)
		}
	})
	defer bus.Unsubscribe(subID)

	eng.Attach(bus)
	eng.Start()
	defer eng.Stop()

	next := 0
	// Steps at time zero happen before the first tick.
	for next < len(s.Timeline) && s.Timeline[next].At <= 0 {
		apply(m, bus, s.Timeline[next], 0)
		next++
	}
	for now := tick; ; now += tick {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if now > end {
			now = end
		}
		m.SetTime(now)
		for next < len(s.Timeline) && s.Timeline[next].At <= now {
			apply(m, bus, s.Timeline[next], now)
			next++
		}
		sched.Advance(now)

		if eng.Outcome() != nil || now >= end {
			res.EndedAt = now
			break
		}
	}

	res.Outcome = eng.Outcome()
	res.Teams = eng.Registry().Statuses()
	res.Steps = next
	logger.Info("scenario finished",
		"ended_at", res.EndedAt.String(),
		"decided", res.Decided(),
		"steps", res.Steps,
	)
	return res, nil
}

// apply performs one timeline step against the world and publishes the
// resulting world events.
func apply(m *world.Memory, bus *event.Bus, step Step, now time.Duration) {
	slot := world.Slot(step.Slot)
	switch step.Action {
	case ActionBuildDroid:
		d := m.AddDroid(world.Droid{Owner: slot, Kind: world.DroidKind(step.Kind), X: step.X, Y: step.Y})
		bus.Publish(event.NewUnitBuiltEvent(now, step.Slot, d.ID, step.Kind))

	case ActionKillDroid:
		kind := world.DroidKind(step.Kind)
		if kind == "" {
			kind = world.DroidAny
		}
		for i, d := range m.Droids(slot, kind) {
			if step.Count > 0 && i >= step.Count {
				break
			}
			m.RemoveDroid(d.ID)
		}

	case ActionBuildStructure:
		st := m.AddStructure(world.Structure{Owner: slot, Kind: world.StructureKind(step.Kind), Status: world.Built, X: step.X, Y: step.Y})
		bus.Publish(event.NewStructureBuiltEvent(now, step.Slot, st.ID, step.Kind))

	case ActionDestroyStructure:
		kinds := world.StructureKinds()
		if step.Kind != "" {
			kinds = []world.StructureKind{world.StructureKind(step.Kind)}
		}
		removed := 0
		for _, kind := range kinds {
			for _, st := range m.Structures(slot, kind) {
				if step.Count > 0 && removed >= step.Count {
					return
				}
				m.RemoveStructure(st.ID)
				removed++
			}
		}

	case ActionResearch:
		bus.Publish(event.NewResearchCompletedEvent(now, step.Slot, step.Topic))

	case ActionAttack:
		bus.Publish(event.NewUnitAttackedEvent(now, step.Target, step.Slot))

	case ActionMakeSpectator:
		m.MakeSpectator(slot)
	}
}
