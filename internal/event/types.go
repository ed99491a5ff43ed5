package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "unit.built", "team.state_changed").
	EventType() string

	// GameTime returns the simulation time at which the event occurred.
	GameTime() time.Duration
}

// Event type names.
const (
	TypeUnitBuilt         = "unit.built"
	TypeStructureBuilt    = "structure.built"
	TypeResearchCompleted = "research.completed"
	TypeUnitAttacked      = "unit.attacked"
	TypeTeamStateChanged  = "team.state_changed"
	TypeMatchEnded        = "match.ended"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	at        time.Duration
}

func (e baseEvent) EventType() string       { return e.eventType }
func (e baseEvent) GameTime() time.Duration { return e.at }

func newBaseEvent(eventType string, at time.Duration) baseEvent {
	return baseEvent{eventType: eventType, at: at}
}

// -----------------------------------------------------------------------------
// World Events
// -----------------------------------------------------------------------------

// UnitBuiltEvent is emitted when a unit finishes construction.
type UnitBuiltEvent struct {
	baseEvent
	Player  int    // Owning slot
	DroidID int    // Unit identifier
	Kind    string // Unit role
}

// NewUnitBuiltEvent creates a UnitBuiltEvent.
func NewUnitBuiltEvent(at time.Duration, player, droidID int, kind string) UnitBuiltEvent {
	return UnitBuiltEvent{
		baseEvent: newBaseEvent(TypeUnitBuilt, at),
		Player:    player,
		DroidID:   droidID,
		Kind:      kind,
	}
}

// StructureBuiltEvent is emitted when a structure finishes construction.
type StructureBuiltEvent struct {
	baseEvent
	Player      int    // Owning slot
	StructureID int    // Structure identifier
	Kind        string // Structure stat type
}

// NewStructureBuiltEvent creates a StructureBuiltEvent.
func NewStructureBuiltEvent(at time.Duration, player, structureID int, kind string) StructureBuiltEvent {
	return StructureBuiltEvent{
		baseEvent:   newBaseEvent(TypeStructureBuilt, at),
		Player:      player,
		StructureID: structureID,
		Kind:        kind,
	}
}

// ResearchCompletedEvent is emitted when a slot completes a research topic.
type ResearchCompletedEvent struct {
	baseEvent
	Player int
	Topic  string
}

// NewResearchCompletedEvent creates a ResearchCompletedEvent.
func NewResearchCompletedEvent(at time.Duration, player int, topic string) ResearchCompletedEvent {
	return ResearchCompletedEvent{
		baseEvent: newBaseEvent(TypeResearchCompleted, at),
		Player:    player,
		Topic:     topic,
	}
}

// UnitAttackedEvent is emitted when an attacker deals damage to a victim.
type UnitAttackedEvent struct {
	baseEvent
	Victim   int // Slot owning the damaged object
	Attacker int // Slot dealing the damage
}

// NewUnitAttackedEvent creates a UnitAttackedEvent.
func NewUnitAttackedEvent(at time.Duration, victim, attacker int) UnitAttackedEvent {
	return UnitAttackedEvent{
		baseEvent: newBaseEvent(TypeUnitAttacked, at),
		Victim:    victim,
		Attacker:  attacker,
	}
}

// -----------------------------------------------------------------------------
// Match Events
// -----------------------------------------------------------------------------

// TeamStateChangedEvent is emitted whenever a team is assigned a state.
type TeamStateChangedEvent struct {
	baseEvent
	Team    int    // Team index in creation order
	Players []int  // Member slots
	From    string // Previous state; empty before first classification
	To      string // New state
}

// NewTeamStateChangedEvent creates a TeamStateChangedEvent.
func NewTeamStateChangedEvent(at time.Duration, team int, players []int, from, to string) TeamStateChangedEvent {
	return TeamStateChangedEvent{
		baseEvent: newBaseEvent(TypeTeamStateChanged, at),
		Team:      team,
		Players:   players,
		From:      from,
		To:        to,
	}
}

// MatchEndedEvent is emitted once when the match outcome is decided.
type MatchEndedEvent struct {
	baseEvent
	Draw    bool  // No team remained to be declared winner
	Winner  int   // Winning team index; -1 on a draw
	Players []int // Winning slots; empty on a draw
}

// NewMatchEndedEvent creates a MatchEndedEvent.
func NewMatchEndedEvent(at time.Duration, draw bool, winner int, players []int) MatchEndedEvent {
	return MatchEndedEvent{
		baseEvent: newBaseEvent(TypeMatchEnded, at),
		Draw:      draw,
		Winner:    winner,
		Players:   players,
	}
}
