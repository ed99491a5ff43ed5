package world

import (
	"slices"
	"sync"
	"time"
)

// SlotConfig configures one player slot of an in-memory world.
type SlotConfig struct {
	Human     bool
	TeamID    int
	Spectator bool
}

// MemoryConfig configures an in-memory world.
type MemoryConfig struct {
	Slots     []SlotConfig
	Mode      AllianceMode
	Viewer    Slot
	Scavenger Slot
	Match     MatchInfo
	// Grid is the passability map. A nil grid makes every coordinate reachable.
	Grid *Grid
}

// Memory is an in-memory World used by the scenario simulator and tests.
// It is safe for concurrent use.
type Memory struct {
	mu         sync.RWMutex
	cfg        MemoryConfig
	spectator  []bool
	now        time.Duration
	nextID     int
	structures []Structure
	droids     []Droid
	features   []Feature
}

// NewMemory creates an in-memory world at simulation time zero.
func NewMemory(cfg MemoryConfig) *Memory {
	m := &Memory{
		cfg:       cfg,
		spectator: make([]bool, len(cfg.Slots)),
		nextID:    1,
	}
	for i, s := range cfg.Slots {
		m.spectator[i] = s.Spectator
	}
	return m
}

var _ World = (*Memory)(nil)

// Now returns the current simulation time.
func (m *Memory) Now() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves simulation time forward by d and returns the new time.
func (m *Memory) Advance(d time.Duration) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.now += d
	}
	return m.now
}

// SetTime moves simulation time to t. Time never moves backwards.
func (m *Memory) SetTime(t time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t > m.now {
		m.now = t
	}
}

// Match returns the configured match settings.
func (m *Memory) Match() MatchInfo { return m.cfg.Match }

// MaxSlots returns the number of configured player slots.
func (m *Memory) MaxSlots() int { return len(m.cfg.Slots) }

// AllianceMode returns the configured alliance mode.
func (m *Memory) AllianceMode() AllianceMode { return m.cfg.Mode }

// ViewerSlot returns the local player's slot.
func (m *Memory) ViewerSlot() Slot { return m.cfg.Viewer }

// ScavengerSlot returns the neutral slot, or NoSlot.
func (m *Memory) ScavengerSlot() Slot { return m.cfg.Scavenger }

func (m *Memory) validSlot(slot Slot) bool {
	return slot >= 0 && int(slot) < len(m.cfg.Slots)
}

// TeamID returns the lobby team of slot, or -1 for an unknown slot.
func (m *Memory) TeamID(slot Slot) int {
	if !m.validSlot(slot) {
		return -1
	}
	return m.cfg.Slots[slot].TeamID
}

// IsHuman reports whether slot is controlled by a human.
func (m *Memory) IsHuman(slot Slot) bool {
	return m.validSlot(slot) && m.cfg.Slots[slot].Human
}

// IsSpectator reports whether slot has been made a spectator.
func (m *Memory) IsSpectator(slot Slot) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.validSlot(slot) && m.spectator[slot]
}

// MakeSpectator converts slot to a spectator. Unknown slots are ignored.
func (m *Memory) MakeSpectator(slot Slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.validSlot(slot) {
		m.spectator[slot] = true
	}
}

// Structures returns the structures of kind owned by owner.
func (m *Memory) Structures(owner Slot, kind StructureKind) []Structure {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Structure
	for _, s := range m.structures {
		if s.Owner == owner && s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// Droids returns the units owned by owner that match kind.
func (m *Memory) Droids(owner Slot, kind DroidKind) []Droid {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Droid
	for _, d := range m.droids {
		if d.Owner == owner && d.Kind.Matches(kind) {
			out = append(out, d)
		}
	}
	return out
}

// CountDroids counts the units owned by owner that match kind.
func (m *Memory) CountDroids(owner Slot, kind DroidKind) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, d := range m.droids {
		if d.Owner == owner && d.Kind.Matches(kind) {
			n++
		}
	}
	return n
}

// Features returns the map features of kind.
func (m *Memory) Features(kind FeatureKind) []Feature {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Feature
	for _, f := range m.features {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// CanReach reports whether d can travel to (x, y). Without a grid everything is reachable.
func (m *Memory) CanReach(d Droid, x, y int) bool {
	if m.cfg.Grid == nil {
		return true
	}
	return m.cfg.Grid.Connected(d.X, d.Y, x, y)
}

// AddStructure places a structure and returns it with its assigned ID.
func (m *Memory) AddStructure(s Structure) Structure {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.allocID()
	m.structures = append(m.structures, s)
	return s
}

// CompleteStructure marks a structure as fully built. It returns the updated
// structure and false if no structure has the ID.
func (m *Memory) CompleteStructure(id int) (Structure, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.structures {
		if m.structures[i].ID == id {
			m.structures[i].Status = Built
			return m.structures[i], true
		}
	}
	return Structure{}, false
}

// RemoveStructure destroys a structure. Returns false if no structure has the ID.
func (m *Memory) RemoveStructure(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.structures)
	m.structures = slices.DeleteFunc(m.structures, func(s Structure) bool { return s.ID == id })
	return len(m.structures) != n
}

// RemoveStructures destroys every structure owned by owner and returns how many were removed.
func (m *Memory) RemoveStructures(owner Slot) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.structures)
	m.structures = slices.DeleteFunc(m.structures, func(s Structure) bool { return s.Owner == owner })
	return n - len(m.structures)
}

// AddDroid places a unit and returns it with its assigned ID.
func (m *Memory) AddDroid(d Droid) Droid {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.allocID()
	m.droids = append(m.droids, d)
	return d
}

// RemoveDroid destroys a unit. Returns false if no unit has the ID.
func (m *Memory) RemoveDroid(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.droids)
	m.droids = slices.DeleteFunc(m.droids, func(d Droid) bool { return d.ID == id })
	return len(m.droids) != n
}

// RemoveDroids destroys every unit owned by owner and returns how many were removed.
func (m *Memory) RemoveDroids(owner Slot) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.droids)
	m.droids = slices.DeleteFunc(m.droids, func(d Droid) bool { return d.Owner == owner })
	return n - len(m.droids)
}

// AddFeature places a map feature and returns it with its assigned ID.
func (m *Memory) AddFeature(f Feature) Feature {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = m.allocID()
	m.features = append(m.features, f)
	return f
}

// RemoveFeature deletes a map feature. Returns false if no feature has the ID.
func (m *Memory) RemoveFeature(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.features)
	m.features = slices.DeleteFunc(m.features, func(f Feature) bool { return f.ID == id })
	return len(m.features) != n
}

// allocID must be called with m.mu held.
func (m *Memory) allocID() int {
	id := m.nextID
	m.nextID++
	return id
}
