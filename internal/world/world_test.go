package world

import (
	"testing"
	"time"
)

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid([]string{
		"..#..",
		"..#..",
		"..#..",
	})
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}

	tests := []struct {
		name           string
		fx, fy, tx, ty int
		want           bool
	}{
		{"same side", 0, 0, 1, 2, true},
		{"across wall", 0, 0, 4, 0, false},
		{"right side", 3, 0, 4, 2, true},
		{"onto wall", 0, 0, 2, 1, false},
		{"out of bounds", 0, 0, 9, 9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Connected(tt.fx, tt.fy, tt.tx, tt.ty); got != tt.want {
				t.Errorf("Connected(%d,%d -> %d,%d) = %v, want %v", tt.fx, tt.fy, tt.tx, tt.ty, got, tt.want)
			}
		})
	}
}

func TestParseGrid_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"empty row", []string{""}},
		{"ragged", []string{"...", ".."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGrid(tt.rows); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOpenGrid(t *testing.T) {
	g := OpenGrid(4, 4)
	if !g.Connected(0, 0, 3, 3) {
		t.Error("open grid should connect opposite corners")
	}
	w, h := g.Size()
	if w != 4 || h != 4 {
		t.Errorf("Size = %dx%d, want 4x4", w, h)
	}
}

func TestParseAllianceMode(t *testing.T) {
	for mode, name := range allianceModeNames {
		got, err := ParseAllianceMode(name)
		if err != nil {
			t.Fatalf("ParseAllianceMode(%q): %v", name, err)
		}
		if got != mode {
			t.Errorf("ParseAllianceMode(%q) = %v, want %v", name, got, mode)
		}
	}
	if _, err := ParseAllianceMode("diplomacy"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestMemory_Enumeration(t *testing.T) {
	m := NewMemory(MemoryConfig{
		Slots: []SlotConfig{{Human: true}, {}},
	})

	m.AddDroid(Droid{Owner: 0, Kind: DroidConstruct})
	m.AddDroid(Droid{Owner: 0, Kind: DroidWeapon})
	m.AddDroid(Droid{Owner: 1, Kind: DroidConstruct})
	fac := m.AddStructure(Structure{Owner: 0, Kind: Factory})

	if got := m.CountDroids(0, DroidAny); got != 2 {
		t.Errorf("CountDroids(0, any) = %d, want 2", got)
	}
	if got := m.CountDroids(0, DroidConstruct); got != 1 {
		t.Errorf("CountDroids(0, construct) = %d, want 1", got)
	}
	if got := len(m.Droids(1, DroidAny)); got != 1 {
		t.Errorf("len(Droids(1, any)) = %d, want 1", got)
	}

	if s := m.Structures(0, Factory); len(s) != 1 || s[0].IsBuilt() {
		t.Fatalf("Structures(0, factory) = %+v, want one unbuilt factory", s)
	}
	if _, ok := m.CompleteStructure(fac.ID); !ok {
		t.Fatal("CompleteStructure returned false")
	}
	if s := m.Structures(0, Factory); !s[0].IsBuilt() {
		t.Error("factory should be built after CompleteStructure")
	}

	if got := m.RemoveDroids(0); got != 2 {
		t.Errorf("RemoveDroids(0) = %d, want 2", got)
	}
	if !m.RemoveStructure(fac.ID) {
		t.Error("RemoveStructure returned false")
	}
	if m.RemoveStructure(fac.ID) {
		t.Error("RemoveStructure of a removed structure should return false")
	}
}

func TestMemory_Spectators(t *testing.T) {
	m := NewMemory(MemoryConfig{
		Slots: []SlotConfig{{Human: true}, {Spectator: true}},
	})
	if m.IsSpectator(0) {
		t.Error("slot 0 should not start as spectator")
	}
	if !m.IsSpectator(1) {
		t.Error("slot 1 should start as spectator")
	}
	m.MakeSpectator(0)
	if !m.IsSpectator(0) {
		t.Error("slot 0 should be spectator after MakeSpectator")
	}
	m.MakeSpectator(7) // unknown slots are ignored
	if m.IsSpectator(7) {
		t.Error("unknown slot should never be spectator")
	}
}

func TestMemory_Time(t *testing.T) {
	m := NewMemory(MemoryConfig{})
	m.Advance(3 * time.Second)
	m.SetTime(time.Second) // never backwards
	if got := m.Now(); got != 3*time.Second {
		t.Errorf("Now = %v, want 3s", got)
	}
	m.SetTime(5 * time.Second)
	if got := m.Now(); got != 5*time.Second {
		t.Errorf("Now = %v, want 5s", got)
	}
}

func TestMemory_CanReachWithoutGrid(t *testing.T) {
	m := NewMemory(MemoryConfig{})
	if !m.CanReach(Droid{}, 100, 100) {
		t.Error("without a grid every coordinate should be reachable")
	}
}
