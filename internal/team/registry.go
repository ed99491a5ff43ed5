package team

import (
	"time"

	"github.com/Iron-Ham/arbiter/internal/errors"
	"github.com/Iron-Ham/arbiter/internal/logging"
	"github.com/Iron-Ham/arbiter/internal/notify"
	"github.com/Iron-Ham/arbiter/internal/world"
)

// DefaultIdleTime is the activity window a team must act within.
const DefaultIdleTime = 5 * time.Minute

// Policy holds the match-wide viability settings. It is fixed for a match.
type Policy struct {
	IdleTime        time.Duration // Idle window; zero means DefaultIdleTime
	EnforceActivity bool          // Eliminate teams idle for longer than IdleTime
}

// Registry owns the teams of one match and the slot to team index.
type Registry struct {
	world     world.World
	policy    Policy
	logger    *logging.Logger
	presenter notify.Presenter
	hooks     []func(Transition)

	teams  []*Team
	bySlot map[world.Slot]*Team
}

// NewRegistry creates an empty Registry. Call CreateTeams to populate it.
func NewRegistry(w world.World, policy Policy, opts ...RegistryOption) *Registry {
	if policy.IdleTime <= 0 {
		policy.IdleTime = DefaultIdleTime
	}
	r := &Registry{
		world:     w,
		policy:    policy,
		logger:    logging.NopLogger(),
		presenter: notify.Nop{},
		bySlot:    make(map[world.Slot]*Team),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the registry's viability policy.
func (r *Registry) Policy() Policy {
	return r.policy
}

// InOneTeam reports whether two slots share victory under the roster's
// alliance mode. Team-sharing modes group by team identifier; in the other
// modes every slot is on its own, even when combat alliances exist.
func InOneTeam(roster world.Roster, a, b world.Slot) bool {
	mode := roster.AllianceMode()
	switch {
	case mode.SharesTeams():
		return roster.TeamID(a) == roster.TeamID(b)
	case mode == world.NoAlliances, mode == world.Alliances:
		return a == b
	default:
		return false
	}
}

// CreateTeams rebuilds every team from the current alliance configuration and
// classifies each one: contender if it can play, spectator otherwise.
// Membership is not updated afterwards if alliances change.
func (r *Registry) CreateTeams() {
	r.Reset()

	maxSlots := r.world.MaxSlots()
	assigned := make([]bool, maxSlots)
	// The scavenger is neutral and never forms or joins a team.
	if scav := int(r.world.ScavengerSlot()); scav >= 0 && scav < maxSlots {
		assigned[scav] = true
	}
	for slot := 0; slot < maxSlots; slot++ {
		if assigned[slot] {
			continue
		}
		assigned[slot] = true
		members := []world.Slot{world.Slot(slot)}
		for other := 0; other < maxSlots; other++ {
			if !assigned[other] && InOneTeam(r.world, world.Slot(slot), world.Slot(other)) {
				members = append(members, world.Slot(other))
				assigned[other] = true
			}
		}

		t := newTeam(len(r.teams), members, r.world)
		r.teams = append(r.teams, t)
		for _, s := range members {
			r.bySlot[s] = t
		}

		if r.CanPlay(t) {
			r.SetState(t, StateContender)
		} else {
			r.SetState(t, StateSpectator)
		}
	}

	r.logger.Info("teams created",
		"teams", len(r.teams),
		"alliance_mode", r.world.AllianceMode().String(),
		"enforce_activity", r.policy.EnforceActivity,
	)
}

// Reset tears down every team.
func (r *Registry) Reset() {
	r.teams = nil
	r.bySlot = make(map[world.Slot]*Team)
}

// Teams returns all teams in creation order.
func (r *Registry) Teams() []*Team {
	out := make([]*Team, len(r.teams))
	copy(out, r.teams)
	return out
}

// Statuses returns status snapshots for all teams in creation order.
func (r *Registry) Statuses() []Status {
	out := make([]Status, len(r.teams))
	for i, t := range r.teams {
		out[i] = t.Status()
	}
	return out
}

// TeamOf returns the team owning slot.
func (r *Registry) TeamOf(slot world.Slot) (*Team, error) {
	if t, ok := r.bySlot[slot]; ok {
		return t, nil
	}
	if slot < 0 || int(slot) >= r.world.MaxSlots() {
		return nil, errors.NewMatchError("team lookup", errors.ErrUnknownSlot).WithSlot(int(slot))
	}
	return nil, errors.NewMatchError("team lookup", errors.ErrNoTeam).WithSlot(int(slot))
}

// Contenders returns the teams still eligible to win, in creation order.
func (r *Registry) Contenders() []*Team {
	var out []*Team
	for _, t := range r.teams {
		if t.IsContender() {
			out = append(out, t)
		}
	}
	return out
}

// Winner returns the team holding the winner state, or nil.
func (r *Registry) Winner() *Team {
	for _, t := range r.teams {
		if t.state == StateWinner {
			return t
		}
	}
	return nil
}

// CanPlay reports whether the team keeps a means of continued play. A team
// cannot play when, in order: a member is a spectator; activity is enforced and
// the team idled past the window; it has neither a factory nor any unit; or it
// has no factory, only construction units and no reachable resource.
func (r *Registry) CanPlay(t *Team) bool {
	if t.HasSpectatorMember() {
		return false
	}
	if r.policy.EnforceActivity && !t.IsActive(r.policy.IdleTime) {
		return false
	}
	hasFactory := t.HasFactory()
	if !hasFactory && !t.HasAnyUnit() {
		return false
	}
	if !hasFactory && t.HasOnlyConstructionUnits() && !t.CanReachResource() {
		return false
	}
	return true
}

// SetState assigns a state to the team. Terminal states finalize every member
// slot. A team in a terminal state keeps it; SetState then returns false.
func (r *Registry) SetState(t *Team, s State) bool {
	prev := t.state
	if prev.IsTerminal() {
		r.logger.WithTeam(t.index).Warn("ignored transition out of terminal state",
			"from", prev.String(), "to", s.String())
		return false
	}

	t.state = s
	if s.IsTerminal() {
		r.finalize(t, s)
	}

	r.logger.WithTeam(t.index).Info("team state changed",
		"from", prev.String(),
		"to", s.String(),
		"slots", t.slotInts(),
		"game_time_ms", r.world.Now().Milliseconds(),
	)

	tr := Transition{Team: t, From: prev, To: s}
	for _, hook := range r.hooks {
		hook(tr)
	}
	return true
}

// finalize converts human members to spectators and shows the outcome notice
// to every member other than the local viewer.
func (r *Registry) finalize(t *Team, s State) {
	viewer := r.world.ViewerSlot()
	for _, slot := range t.Slots() {
		if !r.world.IsSpectator(slot) && r.world.IsHuman(slot) {
			r.world.MakeSpectator(slot)
		}
		if slot == viewer {
			continue
		}
		switch s {
		case StateLoser:
			r.presenter.GameOver(slot, false)
		case StateWinner:
			r.presenter.GameOver(slot, true)
		}
	}
}

// Pass summarizes one CheckEndConditions evaluation.
type Pass struct {
	Eliminated []*Team // Contenders moved to loser in this pass
	Winner     *Team   // Team declared winner in this pass, if any
	Contenders int     // Contenders remaining after the pass
}

// CheckEndConditions moves every contender that can no longer play to loser,
// then declares the winner if exactly one contender remains.
func (r *Registry) CheckEndConditions() Pass {
	var pass Pass

	var losing []*Team
	for _, t := range r.teams {
		if t.IsContender() && !r.CanPlay(t) {
			losing = append(losing, t)
		}
	}
	for _, t := range losing {
		r.SetState(t, StateLoser)
		pass.Eliminated = append(pass.Eliminated, t)
	}

	contenders := r.Contenders()
	if len(contenders) == 1 {
		r.SetState(contenders[0], StateWinner)
		pass.Winner = contenders[0]
		contenders = nil
	}
	pass.Contenders = len(contenders)
	return pass
}
