// Package event provides a synchronous pub-sub bus connecting the simulation,
// the arbitration engine and presentation.
//
// # Event Categories
//
// World events are published by the simulation and consumed by the activity
// tracker:
//   - [UnitBuiltEvent] (unit.built)
//   - [StructureBuiltEvent] (structure.built)
//   - [ResearchCompletedEvent] (research.completed)
//   - [UnitAttackedEvent] (unit.attacked)
//
// Match events are published by the arbitration engine:
//   - [TeamStateChangedEvent] (team.state_changed)
//   - [MatchEndedEvent] (match.ended)
//
// # Basic Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeMatchEnded, func(e event.Event) {
//	    ended := e.(event.MatchEndedEvent)
//	    fmt.Println("winner team", ended.Winner)
//	})
//	bus.Publish(event.NewUnitBuiltEvent(now, 0, 17, "weapon"))
//
// Handlers run synchronously on the publisher's goroutine. A panicking handler
// is logged and does not prevent delivery to the remaining handlers.
package event
