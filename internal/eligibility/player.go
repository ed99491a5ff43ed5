// Package eligibility evaluates per-slot predicates that decide whether a
// player still has a way to keep playing. Every predicate is a side-effect free
// read of the world at call time; empty or unreachable sets yield false.
package eligibility

import "github.com/Iron-Ham/arbiter/internal/world"

// ProductionKinds are the structures in which a player can continue to play.
var ProductionKinds = []world.StructureKind{
	world.Factory,
	world.CyborgFactory,
	world.VTOLFactory,
}

// Player evaluates eligibility predicates for one slot.
type Player struct {
	slot  world.Slot
	query world.Query
}

// NewPlayer creates a Player for the slot backed by the given world query.
func NewPlayer(slot world.Slot, q world.Query) Player {
	return Player{slot: slot, query: q}
}

// Slot returns the player's slot.
func (p Player) Slot() world.Slot {
	return p.slot
}

// HasFactory returns true if the slot owns a fully built production structure.
func (p Player) HasFactory() bool {
	for _, kind := range ProductionKinds {
		for _, s := range p.query.Structures(p.slot, kind) {
			if s.IsBuilt() {
				return true
			}
		}
	}
	return false
}

// HasAnyUnit returns true if the slot owns at least one unit of any kind.
func (p Player) HasAnyUnit() bool {
	return p.query.CountDroids(p.slot, world.DroidAny) > 0
}

// HasOnlyConstructionUnits returns true if every unit the slot owns is a
// construction unit. A slot without units satisfies this vacuously.
func (p Player) HasOnlyConstructionUnits() bool {
	return p.query.CountDroids(p.slot, world.DroidAny)-p.query.CountDroids(p.slot, world.DroidConstruct) == 0
}

// CanReachResource returns true if the slot already owns a built resource
// extractor, or one of its construction units can path to an oil resource or to
// any extractor on the map. The scan stops at the first reachable pair.
func (p Player) CanReachResource() bool {
	for _, s := range p.query.Structures(p.slot, world.ResourceExtractor) {
		if s.IsBuilt() {
			return true
		}
	}

	trucks := p.query.Droids(p.slot, world.DroidConstruct)
	if len(trucks) == 0 {
		return false
	}

	sites := p.resourceSites()
	for _, truck := range trucks {
		for _, site := range sites {
			if p.query.CanReach(truck, site[0], site[1]) {
				return true
			}
		}
	}
	return false
}

// resourceSites lists candidate destinations: raw oil features plus every
// extractor of every slot, own and foreign.
func (p Player) resourceSites() [][2]int {
	oils := p.query.Features(world.OilResource)
	sites := make([][2]int, 0, len(oils))
	for _, f := range oils {
		sites = append(sites, [2]int{f.X, f.Y})
	}
	for slot := 0; slot < p.query.MaxSlots(); slot++ {
		for _, s := range p.query.Structures(world.Slot(slot), world.ResourceExtractor) {
			sites = append(sites, [2]int{s.X, s.Y})
		}
	}
	return sites
}
