// Package team groups player slots into teams and decides which teams are
// still viable participants of a match.
//
// # Architecture
//
// The central type is [Registry], the match-scoped owner of every [Team] and of
// the reverse index from slot to team:
//
//   - [Registry.CreateTeams] partitions all slots in index order using the
//     match alliance mode (see [InOneTeam]) and classifies each team once.
//   - [Team] aggregates the per-slot predicates of package eligibility with OR
//     semantics and tracks the team's last qualifying activity.
//   - [Registry.CanPlay] evaluates viability; [Registry.CheckEndConditions]
//     drives contenders to loser or winner.
//   - [Registry.SetState] assigns a state and, for terminal states, applies the
//     finalization effect to every member slot.
//
// # State Machine
//
// A team starts as [StateContender] when it can play and as [StateSpectator]
// otherwise. Contenders move to [StateLoser] or [StateWinner]; terminal states
// never change again.
//
// # Concurrency
//
// A Registry is driven from the simulation tick and is not safe for concurrent
// use. Predicates read the world synchronously, so one CheckEndConditions pass
// observes a consistent world.
package team
