package world

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Slot identifies one participant slot (human or AI) in a match.
type Slot int

// NoSlot is returned where a slot is required but none is configured.
const NoSlot Slot = -1

// AllianceMode determines how slots are grouped into teams for victory purposes.
type AllianceMode int

const (
	// NoAlliances makes every slot its own team.
	NoAlliances AllianceMode = iota
	// Alliances allows combat alliances, but victory stays per slot.
	Alliances
	// AlliancesTeams groups slots by their configured team identifier.
	AlliancesTeams
	// AlliancesUnshared groups slots by team identifier without shared vision/research.
	AlliancesUnshared
)

var allianceModeNames = map[AllianceMode]string{
	NoAlliances:       "no-alliances",
	Alliances:         "alliances",
	AlliancesTeams:    "alliances-teams",
	AlliancesUnshared: "alliances-unshared",
}

// String returns the string representation of the alliance mode.
func (m AllianceMode) String() string {
	if s, ok := allianceModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("alliance-mode(%d)", int(m))
}

// SharesTeams returns true if slots are grouped by their team identifier.
func (m AllianceMode) SharesTeams() bool {
	return m == AlliancesTeams || m == AlliancesUnshared
}

// ParseAllianceMode converts a mode name to an AllianceMode.
func ParseAllianceMode(s string) (AllianceMode, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for mode, name := range allianceModeNames {
		if name == want {
			return mode, nil
		}
	}
	return NoAlliances, fmt.Errorf("unknown alliance mode %q", s)
}

// StructureKind is the stat type of a structure.
type StructureKind string

const (
	Factory           StructureKind = "factory"
	CyborgFactory     StructureKind = "cyborg-factory"
	VTOLFactory       StructureKind = "vtol-factory"
	HQ                StructureKind = "hq"
	ResourceExtractor StructureKind = "resource-extractor"
	PowerGenerator    StructureKind = "power-generator"
	ResearchLab       StructureKind = "research-lab"
	FactoryModule     StructureKind = "factory-module"
	PowerModule       StructureKind = "power-module"
	ResearchModule    StructureKind = "research-module"
	Defense           StructureKind = "defense"
	Wall              StructureKind = "wall"
	RepairFacility    StructureKind = "repair-facility"
)

// StructureKinds returns every known structure kind.
func StructureKinds() []StructureKind {
	return []StructureKind{
		Factory, CyborgFactory, VTOLFactory, HQ, ResourceExtractor, PowerGenerator,
		ResearchLab, FactoryModule, PowerModule, ResearchModule, Defense, Wall, RepairFacility,
	}
}

// IsValid returns true if k is a known structure kind.
func (k StructureKind) IsValid() bool {
	return slices.Contains(StructureKinds(), k)
}

// BuildStatus reports how far a structure's construction has progressed.
type BuildStatus int

const (
	// BeingBuilt means construction has started but is not complete.
	BeingBuilt BuildStatus = iota
	// Built means the structure is fully built.
	Built
)

// String returns the string representation of the build status.
func (s BuildStatus) String() string {
	if s == Built {
		return "built"
	}
	return "being-built"
}

// Structure is a point-in-time view of one structure on the map.
type Structure struct {
	ID     int
	Owner  Slot
	Kind   StructureKind
	Status BuildStatus
	X, Y   int
}

// IsBuilt returns true if construction of the structure is complete.
func (s Structure) IsBuilt() bool {
	return s.Status == Built
}

// DroidKind is the role of a unit.
type DroidKind string

const (
	// DroidAny matches every unit when used as a filter.
	DroidAny       DroidKind = "any"
	DroidWeapon    DroidKind = "weapon"
	DroidConstruct DroidKind = "construct"
	DroidSensor    DroidKind = "sensor"
	DroidRepair    DroidKind = "repair"
)

// IsValid returns true if k is a concrete unit role.
func (k DroidKind) IsValid() bool {
	switch k {
	case DroidWeapon, DroidConstruct, DroidSensor, DroidRepair:
		return true
	}
	return false
}

// Matches reports whether a unit of kind k passes the filter f.
func (k DroidKind) Matches(f DroidKind) bool {
	return f == DroidAny || f == k
}

// Droid is a point-in-time view of one unit.
type Droid struct {
	ID    int
	Owner Slot
	Kind  DroidKind
	X, Y  int
}

// FeatureKind is the stat type of a map feature.
type FeatureKind string

const (
	OilResource FeatureKind = "oil-resource"
	Boulder     FeatureKind = "boulder"
	Tree        FeatureKind = "tree"
)

// IsValid returns true if k is a known feature kind.
func (k FeatureKind) IsValid() bool {
	return k == OilResource || k == Boulder || k == Tree
}

// Feature is a point-in-time view of one map feature.
type Feature struct {
	ID   int
	Kind FeatureKind
	X, Y int
}

// MatchInfo describes fixed properties of the match.
type MatchInfo struct {
	Multiplayer bool // live networked multiplayer match
	Challenge   bool // scripted challenge
}

// Query enumerates map objects. All reads are synchronous snapshots.
type Query interface {
	// MaxSlots returns the number of player slots in the match.
	MaxSlots() int
	// Structures returns every structure of the given kind owned by owner.
	Structures(owner Slot, kind StructureKind) []Structure
	// Droids returns every unit owned by owner matching the kind filter.
	Droids(owner Slot, kind DroidKind) []Droid
	// CountDroids returns the number of units owned by owner matching the kind filter.
	CountDroids(owner Slot, kind DroidKind) int
	// Features returns every map feature of the given kind.
	Features(kind FeatureKind) []Feature
	// CanReach reports whether the unit can path to the map coordinate.
	CanReach(d Droid, x, y int) bool
}

// Roster exposes per-slot match configuration and spectator control.
type Roster interface {
	MaxSlots() int
	AllianceMode() AllianceMode
	// TeamID returns the configured team identifier of a slot.
	TeamID(slot Slot) int
	IsHuman(slot Slot) bool
	IsSpectator(slot Slot) bool
	// MakeSpectator converts a slot to a spectator.
	MakeSpectator(slot Slot)
	// ViewerSlot returns the locally viewed slot.
	ViewerSlot() Slot
	// ScavengerSlot returns the environment's neutral/scavenger slot.
	ScavengerSlot() Slot
}

// Clock reports the current simulation time since match start.
type Clock interface {
	Now() time.Duration
}

// World is the full simulation collaborator consumed by the arbitration engine.
type World interface {
	Query
	Roster
	Clock
	Match() MatchInfo
}
