// Package activity records qualifying player actions against team activity
// timestamps and drives the passive-play warning shown to the local viewer.
package activity

import (
	"github.com/Iron-Ham/arbiter/internal/errors"
	"github.com/Iron-Ham/arbiter/internal/logging"
	"github.com/Iron-Ham/arbiter/internal/team"
	"github.com/Iron-Ham/arbiter/internal/world"
)

// Event names used in diagnostics.
const (
	EventUnitBuilt      = "unit_built"
	EventStructureBuilt = "structure_built"
	EventResearched     = "researched"
	EventAttacked       = "attacked"
)

// baseStructures are the structure kinds whose completion counts as activity.
var baseStructures = map[world.StructureKind]bool{
	world.Factory:           true,
	world.CyborgFactory:     true,
	world.VTOLFactory:       true,
	world.HQ:                true,
	world.ResourceExtractor: true,
	world.PowerGenerator:    true,
	world.ResearchLab:       true,
	world.FactoryModule:     true,
	world.PowerModule:       true,
	world.ResearchModule:    true,
}

// IsBaseStructure returns true if completing a structure of kind counts as activity.
func IsBaseStructure(kind world.StructureKind) bool {
	return baseStructures[kind]
}

// Tracker updates team last-activity timestamps from world events.
type Tracker struct {
	registry *team.Registry
	world    world.World
	enabled  bool
	logger   *logging.Logger
}

// NewTracker creates a Tracker. When enabled is false every event is ignored.
func NewTracker(registry *team.Registry, w world.World, enabled bool, logger *logging.Logger) *Tracker {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Tracker{
		registry: registry,
		world:    w,
		enabled:  enabled,
		logger:   logger.WithComponent("activity"),
	}
}

// Enabled reports whether activity is being recorded.
func (t *Tracker) Enabled() bool {
	return t.enabled
}

// UnitBuilt records a completed unit for its owner.
func (t *Tracker) UnitBuilt(owner world.Slot) bool {
	return t.record(owner, EventUnitBuilt, true)
}

// StructureBuilt records a completed structure for its owner. Only base
// structures count.
func (t *Tracker) StructureBuilt(owner world.Slot, kind world.StructureKind) bool {
	return t.record(owner, EventStructureBuilt, IsBaseStructure(kind))
}

// Researched records completed research for a slot.
func (t *Tracker) Researched(slot world.Slot) bool {
	return t.record(slot, EventResearched, true)
}

// Attacked records damage dealt by the attacker's slot.
func (t *Tracker) Attacked(attacker world.Slot) bool {
	return t.record(attacker, EventAttacked, true)
}

// record touches the slot's team and returns true if its last activity moved.
// A slot without a team is a registry consistency bug: it is logged and the
// event dropped.
func (t *Tracker) record(slot world.Slot, event string, qualifies bool) bool {
	if !t.enabled || slot == t.world.ScavengerSlot() {
		return false
	}
	tm, err := t.registry.TeamOf(slot)
	if err != nil {
		if errors.IsConsistencyBug(err) {
			t.logger.Debug("player has no team", "slot", int(slot), "event", event, "error", err.Error())
		} else {
			t.logger.Warn("activity for unknown slot", "slot", int(slot), "event", event, "error", err.Error())
		}
		return false
	}
	if !qualifies {
		return false
	}
	return tm.Touch(t.world.Now())
}
