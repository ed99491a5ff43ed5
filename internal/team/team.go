package team

import (
	"slices"
	"time"

	"github.com/Iron-Ham/arbiter/internal/eligibility"
	"github.com/Iron-Ham/arbiter/internal/world"
)

// Team is a fixed set of player slots that win or lose together.
type Team struct {
	index        int
	players      []eligibility.Player
	lastActivity time.Duration
	state        State
	roster       world.Roster
	clock        world.Clock
}

// newTeam creates an unclassified team whose last activity is the current time.
func newTeam(index int, slots []world.Slot, w world.World) *Team {
	players := make([]eligibility.Player, len(slots))
	for i, slot := range slots {
		players[i] = eligibility.NewPlayer(slot, w)
	}
	return &Team{
		index:        index,
		players:      players,
		lastActivity: w.Now(),
		roster:       w,
		clock:        w,
	}
}

// Index returns the team's position in creation order.
func (t *Team) Index() int {
	return t.index
}

// Slots returns the member slots in index order.
func (t *Team) Slots() []world.Slot {
	out := make([]world.Slot, len(t.players))
	for i, p := range t.players {
		out[i] = p.Slot()
	}
	return out
}

// Has returns true if slot is a member of the team.
func (t *Team) Has(slot world.Slot) bool {
	return slices.ContainsFunc(t.players, func(p eligibility.Player) bool { return p.Slot() == slot })
}

// State returns the team's current state.
func (t *Team) State() State {
	return t.state
}

// IsContender returns true if the team is still eligible to win.
func (t *Team) IsContender() bool {
	return t.state == StateContender
}

// LastActivity returns the simulation time of the team's last qualifying action.
func (t *Team) LastActivity() time.Duration {
	return t.lastActivity
}

// Touch records qualifying activity at now. Last activity never moves
// backwards; Touch returns false when now is not after the recorded time.
func (t *Team) Touch(now time.Duration) bool {
	if now <= t.lastActivity {
		return false
	}
	t.lastActivity = now
	return true
}

// IsActive returns true if the team acted within the idle window.
func (t *Team) IsActive(idle time.Duration) bool {
	return t.lastActivity+idle >= t.clock.Now()
}

// HasFactory returns true if any member has a built production structure.
func (t *Team) HasFactory() bool {
	return t.any(eligibility.Player.HasFactory)
}

// HasAnyUnit returns true if any member owns a unit.
func (t *Team) HasAnyUnit() bool {
	return t.any(eligibility.Player.HasAnyUnit)
}

// HasOnlyConstructionUnits returns true if any member owns only construction units.
func (t *Team) HasOnlyConstructionUnits() bool {
	return t.any(eligibility.Player.HasOnlyConstructionUnits)
}

// CanReachResource returns true if any member can reach a resource site.
func (t *Team) CanReachResource() bool {
	return t.any(eligibility.Player.CanReachResource)
}

// HasSpectatorMember returns true if any member is currently a spectator.
func (t *Team) HasSpectatorMember() bool {
	return t.any(func(p eligibility.Player) bool { return t.roster.IsSpectator(p.Slot()) })
}

func (t *Team) any(pred func(eligibility.Player) bool) bool {
	return slices.ContainsFunc(t.players, pred)
}

// Status is a read-only snapshot of a team.
type Status struct {
	Index        int
	Slots        []world.Slot
	State        State
	LastActivity time.Duration
}

// Status returns a snapshot of the team's current state.
func (t *Team) Status() Status {
	return Status{
		Index:        t.index,
		Slots:        t.Slots(),
		State:        t.state,
		LastActivity: t.lastActivity,
	}
}

// slotInts returns the member slots as plain ints for event payloads.
func (t *Team) slotInts() []int {
	out := make([]int, len(t.players))
	for i, p := range t.players {
		out[i] = int(p.Slot())
	}
	return out
}
