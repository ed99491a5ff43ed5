// Package scenario loads YAML match scenarios and plays them against an
// in-memory world with the arbitration engine attached.
package scenario

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/Iron-Ham/arbiter/internal/errors"
	"github.com/Iron-Ham/arbiter/internal/world"
	"gopkg.in/yaml.v3"
)

// Timeline actions.
const (
	ActionBuildDroid       = "build-droid"
	ActionKillDroid        = "kill-droid"
	ActionBuildStructure   = "build-structure"
	ActionDestroyStructure = "destroy-structure"
	ActionResearch         = "research"
	ActionAttack           = "attack"
	ActionMakeSpectator    = "make-spectator"
)

// Actions returns every timeline action name.
func Actions() []string {
	return []string{
		ActionBuildDroid, ActionKillDroid, ActionBuildStructure, ActionDestroyStructure,
		ActionResearch, ActionAttack, ActionMakeSpectator,
	}
}

// Scenario is a match definition loaded from YAML.
type Scenario struct {
	// Name identifies the scenario in output and the ledger
	Name string `yaml:"name"`
	// Description is free text (optional)
	Description string `yaml:"description,omitempty"`
	// Duration stops the run if no outcome is decided earlier (optional)
	Duration time.Duration `yaml:"duration,omitempty"`
	// Match holds the match flags that decide activity enforcement
	Match MatchFlags `yaml:"match"`
	// AllianceMode is one of no-alliances, alliances, alliances-teams, alliances-unshared
	AllianceMode string `yaml:"alliance_mode"`
	// Viewer is the local viewing slot
	Viewer int `yaml:"viewer"`
	// Scavenger is the neutral slot; nil means none
	Scavenger *int `yaml:"scavenger,omitempty"`
	// Grid is the passability map, '#' blocks (optional)
	Grid []string `yaml:"grid,omitempty"`

	Slots      []SlotSpec      `yaml:"slots"`
	Structures []StructureSpec `yaml:"structures,omitempty"`
	Droids     []DroidSpec     `yaml:"droids,omitempty"`
	Features   []FeatureSpec   `yaml:"features,omitempty"`
	Timeline   []Step          `yaml:"timeline,omitempty"`

	// Expect describes the expected outcome (optional)
	Expect *Expectation `yaml:"expect,omitempty"`

	path string
}

// MatchFlags describes the kind of match.
type MatchFlags struct {
	Multiplayer bool `yaml:"multiplayer"`
	Challenge   bool `yaml:"challenge"`
}

// SlotSpec declares one player slot.
type SlotSpec struct {
	Human     bool `yaml:"human"`
	Team      int  `yaml:"team"`
	Spectator bool `yaml:"spectator,omitempty"`
}

// StructureSpec places a structure before the match starts.
type StructureSpec struct {
	Owner int    `yaml:"owner"`
	Kind  string `yaml:"kind"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	// Unbuilt places the structure still under construction
	Unbuilt bool `yaml:"unbuilt,omitempty"`
}

// DroidSpec places a unit before the match starts.
type DroidSpec struct {
	Owner int    `yaml:"owner"`
	Kind  string `yaml:"kind"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	// Count places several identical units (default 1)
	Count int `yaml:"count,omitempty"`
}

// FeatureSpec places a map feature.
type FeatureSpec struct {
	Kind string `yaml:"kind"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Step is one timeline action.
type Step struct {
	// At is the simulation time of the step; zero runs before the first tick
	At     time.Duration `yaml:"at"`
	Action string        `yaml:"action"`
	// Slot is the acting slot (the attacker for attack)
	Slot int `yaml:"slot"`
	// Target is the victim slot for attack
	Target int    `yaml:"target,omitempty"`
	Kind   string `yaml:"kind,omitempty"`
	X      int    `yaml:"x,omitempty"`
	Y      int    `yaml:"y,omitempty"`
	// Count limits kill-droid and destroy-structure; zero means all matching
	Count int `yaml:"count,omitempty"`
	// Topic names the research for research steps
	Topic string `yaml:"topic,omitempty"`
}

// Expectation is the outcome a scenario is written to produce.
type Expectation struct {
	Winner *int `yaml:"winner,omitempty"`
	Draw   bool `yaml:"draw,omitempty"`
	// Undecided expects no outcome before the duration ends
	Undecided bool `yaml:"undecided,omitempty"`
}

// Path returns the file the scenario was loaded from, if any.
func (s *Scenario) Path() string {
	return s.path
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewScenarioError("reading scenario file", errors.Join(errors.ErrScenarioUnreadable, err)).WithPath(path)
	}
	s, err := Parse(data)
	if err != nil {
		var se *errors.ScenarioError
		if errors.As(err, &se) {
			return nil, se.WithPath(path)
		}
		return nil, err
	}
	s.path = path
	return s, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.NewScenarioError("parsing scenario", errors.Join(errors.ErrScenarioUnreadable, err))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func invalid(field, format string, args ...any) error {
	return errors.NewScenarioError(fmt.Sprintf(format, args...), errors.ErrScenarioInvalid).WithField(field)
}

// Validate checks that the scenario is well-formed.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return invalid("name", "scenario name is required")
	}
	if len(s.Slots) == 0 {
		return invalid("slots", "at least one slot is required")
	}
	if _, err := s.allianceMode(); err != nil {
		return invalid("alliance_mode", "%v", err)
	}
	if s.Duration < 0 {
		return invalid("duration", "must not be negative")
	}
	if !s.validSlot(s.Viewer) {
		return invalid("viewer", "slot %d out of range", s.Viewer)
	}
	if s.Scavenger != nil && *s.Scavenger < len(s.Slots) {
		return invalid("scavenger", "slot %d must not be a player slot (want >= %d)", *s.Scavenger, len(s.Slots))
	}
	if len(s.Grid) > 0 {
		if _, err := world.ParseGrid(s.Grid); err != nil {
			return invalid("grid", "%v", err)
		}
	}

	for i, st := range s.Structures {
		field := fmt.Sprintf("structures[%d]", i)
		if !s.validSlot(st.Owner) {
			return invalid(field+".owner", "slot %d out of range", st.Owner)
		}
		if !world.StructureKind(st.Kind).IsValid() {
			return invalid(field+".kind", "unknown structure kind %q", st.Kind)
		}
	}
	for i, d := range s.Droids {
		field := fmt.Sprintf("droids[%d]", i)
		if !s.validSlot(d.Owner) {
			return invalid(field+".owner", "slot %d out of range", d.Owner)
		}
		if !world.DroidKind(d.Kind).IsValid() {
			return invalid(field+".kind", "unknown droid kind %q", d.Kind)
		}
		if d.Count < 0 {
			return invalid(field+".count", "must not be negative")
		}
	}
	for i, f := range s.Features {
		if !world.FeatureKind(f.Kind).IsValid() {
			return invalid(fmt.Sprintf("features[%d].kind", i), "unknown feature kind %q", f.Kind)
		}
	}

	var last time.Duration
	for i, step := range s.Timeline {
		if err := s.validateStep(i, step, last); err != nil {
			return err
		}
		last = step.At
	}
	return nil
}

func (s *Scenario) validateStep(i int, step Step, last time.Duration) error {
	field := fmt.Sprintf("timeline[%d]", i)
	if step.At < last {
		return invalid(field+".at", "steps must be in time order (%s after %s)", step.At, last)
	}
	if !slices.Contains(Actions(), step.Action) {
		return invalid(field+".action", "unknown action %q", step.Action)
	}
	if !s.validSlot(step.Slot) && !s.isScavenger(step.Slot) {
		return invalid(field+".slot", "slot %d out of range", step.Slot)
	}
	if step.Count < 0 {
		return invalid(field+".count", "must not be negative")
	}

	switch step.Action {
	case ActionBuildDroid:
		if !world.DroidKind(step.Kind).IsValid() {
			return invalid(field+".kind", "unknown droid kind %q", step.Kind)
		}
	case ActionKillDroid:
		if step.Kind != "" && step.Kind != string(world.DroidAny) && !world.DroidKind(step.Kind).IsValid() {
			return invalid(field+".kind", "unknown droid kind %q", step.Kind)
		}
	case ActionBuildStructure:
		if !world.StructureKind(step.Kind).IsValid() {
			return invalid(field+".kind", "unknown structure kind %q", step.Kind)
		}
	case ActionDestroyStructure:
		if step.Kind != "" && !world.StructureKind(step.Kind).IsValid() {
			return invalid(field+".kind", "unknown structure kind %q", step.Kind)
		}
	case ActionAttack:
		if !s.validSlot(step.Target) {
			return invalid(field+".target", "slot %d out of range", step.Target)
		}
	}
	return nil
}

// allianceMode parses the alliance mode; empty means no alliances.
func (s *Scenario) allianceMode() (world.AllianceMode, error) {
	if s.AllianceMode == "" {
		return world.NoAlliances, nil
	}
	return world.ParseAllianceMode(s.AllianceMode)
}

func (s *Scenario) validSlot(slot int) bool {
	return slot >= 0 && slot < len(s.Slots)
}

// isScavenger reports whether slot is the neutral slot. Its actions are
// allowed on the timeline but never count as activity.
func (s *Scenario) isScavenger(slot int) bool {
	return s.Scavenger != nil && *s.Scavenger == slot
}

// NewWorld builds the in-memory world described by the scenario at time zero.
func (s *Scenario) NewWorld() *world.Memory {
	mode, _ := s.allianceMode()
	cfg := world.MemoryConfig{
		Mode:      mode,
		Viewer:    world.Slot(s.Viewer),
		Scavenger: world.NoSlot,
		Match:     world.MatchInfo{Multiplayer: s.Match.Multiplayer, Challenge: s.Match.Challenge},
	}
	if s.Scavenger != nil {
		cfg.Scavenger = world.Slot(*s.Scavenger)
	}
	for _, sl := range s.Slots {
		cfg.Slots = append(cfg.Slots, world.SlotConfig{Human: sl.Human, TeamID: sl.Team, Spectator: sl.Spectator})
	}
	if len(s.Grid) > 0 {
		cfg.Grid, _ = world.ParseGrid(s.Grid)
	}

	m := world.NewMemory(cfg)
	for _, st := range s.Structures {
		status := world.Built
		if st.Unbuilt {
			status = world.BeingBuilt
		}
		m.AddStructure(world.Structure{
			Owner: world.Slot(st.Owner), Kind: world.StructureKind(st.Kind), Status: status, X: st.X, Y: st.Y,
		})
	}
	for _, d := range s.Droids {
		n := max(d.Count, 1)
		for range n {
			m.AddDroid(world.Droid{Owner: world.Slot(d.Owner), Kind: world.DroidKind(d.Kind), X: d.X, Y: d.Y})
		}
	}
	for _, f := range s.Features {
		m.AddFeature(world.Feature{Kind: world.FeatureKind(f.Kind), X: f.X, Y: f.Y})
	}
	return m
}
