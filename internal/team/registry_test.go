package team

import (
	"testing"
	"time"

	"github.com/Iron-Ham/arbiter/internal/errors"
	"github.com/Iron-Ham/arbiter/internal/notify"
	"github.com/Iron-Ham/arbiter/internal/world"
)

// armSlot gives a slot a built factory and a tank so its team can play.
func armSlot(m *world.Memory, slot world.Slot) {
	m.AddStructure(world.Structure{Owner: slot, Kind: world.Factory, Status: world.Built})
	m.AddDroid(world.Droid{Owner: slot, Kind: world.DroidWeapon})
}

func newTestWorld(mode world.AllianceMode, slots ...world.SlotConfig) *world.Memory {
	return world.NewMemory(world.MemoryConfig{
		Slots:     slots,
		Mode:      mode,
		Viewer:    0,
		Scavenger: world.Slot(len(slots)),
	})
}

func newTestRegistry(t *testing.T, m *world.Memory, policy Policy, opts ...RegistryOption) *Registry {
	t.Helper()
	r := NewRegistry(m, policy, opts...)
	r.CreateTeams()
	return r
}

func TestInOneTeam(t *testing.T) {
	slots := []world.SlotConfig{{TeamID: 0}, {TeamID: 1}, {TeamID: 0}}
	tests := []struct {
		mode world.AllianceMode
		a, b world.Slot
		want bool
	}{
		{world.NoAlliances, 0, 0, true},
		{world.NoAlliances, 0, 2, false},
		{world.Alliances, 0, 2, false},
		{world.Alliances, 1, 1, true},
		{world.AlliancesTeams, 0, 2, true},
		{world.AlliancesTeams, 0, 1, false},
		{world.AlliancesUnshared, 0, 2, true},
		{world.AlliancesUnshared, 1, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			m := newTestWorld(tt.mode, slots...)
			if got := InOneTeam(m, tt.a, tt.b); got != tt.want {
				t.Errorf("InOneTeam(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCreateTeams_Partition(t *testing.T) {
	slots := []world.SlotConfig{
		{TeamID: 1}, {TeamID: 0}, {TeamID: 1}, {TeamID: 2}, {TeamID: 0}, {TeamID: 1},
	}
	modes := []world.AllianceMode{world.NoAlliances, world.Alliances, world.AlliancesTeams, world.AlliancesUnshared}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			m := newTestWorld(mode, slots...)
			r := newTestRegistry(t, m, Policy{})

			seen := make(map[world.Slot]int)
			for _, team := range r.Teams() {
				for _, slot := range team.Slots() {
					seen[slot]++
					owner, err := r.TeamOf(slot)
					if err != nil {
						t.Fatalf("TeamOf(%d): %v", slot, err)
					}
					if owner != team {
						t.Errorf("TeamOf(%d) = team %d, want team %d", slot, owner.Index(), team.Index())
					}
				}
			}
			for slot := range slots {
				if seen[world.Slot(slot)] != 1 {
					t.Errorf("slot %d appears in %d teams, want exactly 1", slot, seen[world.Slot(slot)])
				}
			}
		})
	}
}

func TestCreateTeams_Grouping(t *testing.T) {
	m := newTestWorld(world.AlliancesTeams,
		world.SlotConfig{TeamID: 1}, world.SlotConfig{TeamID: 0},
		world.SlotConfig{TeamID: 1}, world.SlotConfig{TeamID: 0},
	)
	r := newTestRegistry(t, m, Policy{})

	teams := r.Teams()
	if len(teams) != 2 {
		t.Fatalf("len(Teams) = %d, want 2", len(teams))
	}
	want := [][]world.Slot{{0, 2}, {1, 3}}
	for i, team := range teams {
		got := team.Slots()
		if len(got) != len(want[i]) || got[0] != want[i][0] || got[1] != want[i][1] {
			t.Errorf("team %d slots = %v, want %v", i, got, want[i])
		}
	}
}

func TestCreateTeams_SkipsScavenger(t *testing.T) {
	m := world.NewMemory(world.MemoryConfig{
		Slots:     []world.SlotConfig{{Human: true}, {}, {}},
		Mode:      world.NoAlliances,
		Viewer:    0,
		Scavenger: 2,
	})
	armSlot(m, 0)
	m.AddDroid(world.Droid{Owner: 2, Kind: world.DroidWeapon})
	r := newTestRegistry(t, m, Policy{})

	if n := len(r.Teams()); n != 2 {
		t.Fatalf("len(Teams) = %d, want 2", n)
	}
	if _, err := r.TeamOf(2); !errors.Is(err, errors.ErrNoTeam) {
		t.Errorf("TeamOf(scavenger) = %v, want ErrNoTeam", err)
	}
	// Slot 1 cannot play, so slot 0 is the only contender.
	if c := r.Contenders(); len(c) != 1 || c[0].Slots()[0] != 0 {
		t.Errorf("contenders = %v", c)
	}
}

func TestCreateTeams_InitialStates(t *testing.T) {
	m := newTestWorld(world.NoAlliances,
		world.SlotConfig{Human: true}, world.SlotConfig{Human: true}, world.SlotConfig{},
	)
	armSlot(m, 0)
	// slot 1 has nothing; slot 2 is an AI with nothing
	rec := notify.NewRecorder()
	r := newTestRegistry(t, m, Policy{}, WithPresenter(rec))

	wantStates := []State{StateContender, StateSpectator, StateSpectator}
	for i, team := range r.Teams() {
		if team.State() != wantStates[i] {
			t.Errorf("team %d state = %v, want %v", i, team.State(), wantStates[i])
		}
	}
	if !m.IsSpectator(1) {
		t.Error("human slot without means to play should be converted to spectator")
	}
	if m.IsSpectator(2) {
		t.Error("AI slots are never converted to spectator")
	}
	if n := len(rec.Notices()); n != 0 {
		t.Errorf("spectator classification should not show notices, got %d", n)
	}
}

func TestCanPlay(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		setup  func(m *world.Memory)
		want   bool
	}{
		{
			name:  "factory and units",
			setup: func(m *world.Memory) { armSlot(m, 0) },
			want:  true,
		},
		{
			name: "factory only",
			setup: func(m *world.Memory) {
				m.AddStructure(world.Structure{Owner: 0, Kind: world.Factory, Status: world.Built})
			},
			want: true,
		},
		{
			name:  "units only",
			setup: func(m *world.Memory) { m.AddDroid(world.Droid{Owner: 0, Kind: world.DroidWeapon}) },
			want:  true,
		},
		{
			name:  "nothing at all",
			setup: func(m *world.Memory) {},
			want:  false,
		},
		{
			name: "unbuilt factory and no units",
			setup: func(m *world.Memory) {
				m.AddStructure(world.Structure{Owner: 0, Kind: world.Factory, Status: world.BeingBuilt})
			},
			want: false,
		},
		{
			name: "trucks with reachable oil",
			setup: func(m *world.Memory) {
				m.AddDroid(world.Droid{Owner: 0, Kind: world.DroidConstruct})
				m.AddFeature(world.Feature{Kind: world.OilResource, X: 3, Y: 3})
			},
			want: true,
		},
		{
			name:  "trucks without any oil",
			setup: func(m *world.Memory) { m.AddDroid(world.Droid{Owner: 0, Kind: world.DroidConstruct}) },
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestWorld(world.NoAlliances, world.SlotConfig{}, world.SlotConfig{})
			r := NewRegistry(m, tt.policy)
			tt.setup(m)
			r.CreateTeams()
			team, err := r.TeamOf(0)
			if err != nil {
				t.Fatalf("TeamOf: %v", err)
			}
			if got := r.CanPlay(team); got != tt.want {
				t.Errorf("CanPlay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanPlay_SpectatorMember(t *testing.T) {
	m := newTestWorld(world.AlliancesTeams,
		world.SlotConfig{TeamID: 0}, world.SlotConfig{TeamID: 0}, world.SlotConfig{TeamID: 1},
	)
	armSlot(m, 0)
	armSlot(m, 1)
	armSlot(m, 2)
	r := newTestRegistry(t, m, Policy{})

	team, _ := r.TeamOf(0)
	if !r.CanPlay(team) {
		t.Fatal("fully armed team should be able to play")
	}

	m.MakeSpectator(1)
	if r.CanPlay(team) {
		t.Error("a team with a spectator member can never play")
	}
}

func TestCanPlay_Idle(t *testing.T) {
	m := newTestWorld(world.NoAlliances, world.SlotConfig{}, world.SlotConfig{})
	armSlot(m, 0)
	armSlot(m, 1)

	enforced := newTestRegistry(t, m, Policy{EnforceActivity: true})
	relaxed := newTestRegistry(t, m, Policy{EnforceActivity: false})

	m.Advance(DefaultIdleTime)
	team, _ := enforced.TeamOf(0)
	if !enforced.CanPlay(team) {
		t.Error("team is still active exactly at the end of the idle window")
	}

	m.Advance(time.Millisecond)
	if enforced.CanPlay(team) {
		t.Error("idle team should not be able to play with enforcement on")
	}
	relaxedTeam, _ := relaxed.TeamOf(0)
	if !relaxed.CanPlay(relaxedTeam) {
		t.Error("idle time must be ignored with enforcement off")
	}
}

func TestCheckEndConditions_TwoTeams(t *testing.T) {
	m := newTestWorld(world.NoAlliances, world.SlotConfig{Human: true}, world.SlotConfig{Human: true})
	armSlot(m, 0)
	armSlot(m, 1)
	rec := notify.NewRecorder()
	r := newTestRegistry(t, m, Policy{}, WithPresenter(rec))

	pass := r.CheckEndConditions()
	if len(pass.Eliminated) != 0 || pass.Winner != nil || pass.Contenders != 2 {
		t.Fatalf("first pass = %+v, want no change with 2 contenders", pass)
	}

	m.RemoveStructures(1)
	m.RemoveDroids(1)

	pass = r.CheckEndConditions()
	teams := r.Teams()
	if teams[1].State() != StateLoser {
		t.Errorf("team 2 state = %v, want loser", teams[1].State())
	}
	if teams[0].State() != StateWinner {
		t.Errorf("team 1 state = %v, want winner", teams[0].State())
	}
	if pass.Winner != teams[0] || len(pass.Eliminated) != 1 || pass.Contenders != 0 {
		t.Errorf("pass = %+v", pass)
	}

	// slot 0 is the viewer: only slot 1 gets a notice.
	notices := rec.Notices()
	if len(notices) != 1 || notices[0] != (notify.Notice{Slot: 1, Victory: false}) {
		t.Errorf("notices = %+v, want a single defeat notice for slot 1", notices)
	}
	if !m.IsSpectator(0) || !m.IsSpectator(1) {
		t.Error("human members of finalized teams should be spectators")
	}
}

func TestCheckEndConditions_SingleWinner(t *testing.T) {
	m := newTestWorld(world.NoAlliances,
		world.SlotConfig{}, world.SlotConfig{}, world.SlotConfig{}, world.SlotConfig{},
	)
	for slot := range 4 {
		armSlot(m, world.Slot(slot))
	}
	r := newTestRegistry(t, m, Policy{})

	for _, slot := range []world.Slot{3, 1, 2, 0} {
		m.RemoveStructures(slot)
		m.RemoveDroids(slot)
		r.CheckEndConditions()

		winners := 0
		for _, team := range r.Teams() {
			if team.State() == StateWinner {
				winners++
			}
		}
		if winners > 1 {
			t.Fatalf("%d winners after eliminating slot %d", winners, slot)
		}
	}

	if w := r.Winner(); w == nil || w.Index() != 0 {
		t.Errorf("Winner = %v, want team 0", w)
	}
}

func TestCheckEndConditions_SimultaneousElimination(t *testing.T) {
	m := newTestWorld(world.NoAlliances, world.SlotConfig{}, world.SlotConfig{})
	armSlot(m, 0)
	armSlot(m, 1)
	r := newTestRegistry(t, m, Policy{})

	m.RemoveStructures(0)
	m.RemoveDroids(0)
	m.RemoveStructures(1)
	m.RemoveDroids(1)

	pass := r.CheckEndConditions()
	if pass.Winner != nil {
		t.Errorf("no winner expected, got team %d", pass.Winner.Index())
	}
	if len(pass.Eliminated) != 2 || pass.Contenders != 0 {
		t.Errorf("pass = %+v, want both eliminated", pass)
	}
}

func TestCheckEndConditions_ConstructionOnly(t *testing.T) {
	// Two pockets separated by a wall; slot 0 has trucks on the left.
	grid, err := world.ParseGrid([]string{
		"...#....",
		"...#....",
	})
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}

	t.Run("no reachable resource", func(t *testing.T) {
		m := world.NewMemory(world.MemoryConfig{
			Slots: []world.SlotConfig{{}, {}},
			Grid:  grid,
		})
		m.AddDroid(world.Droid{Owner: 0, Kind: world.DroidConstruct, X: 0, Y: 0})
		m.AddFeature(world.Feature{Kind: world.OilResource, X: 6, Y: 1})
		armSlot(m, 1)
		r := NewRegistry(m, Policy{})
		r.CreateTeams()

		team, _ := r.TeamOf(0)
		if r.CanPlay(team) {
			t.Error("team with unreachable resources should not be able to play")
		}
		if team.State() != StateSpectator {
			t.Errorf("state = %v, want spectator", team.State())
		}
	})

	t.Run("foreign extractor reachable", func(t *testing.T) {
		m := world.NewMemory(world.MemoryConfig{
			Slots: []world.SlotConfig{{}, {}},
			Grid:  grid,
		})
		m.AddDroid(world.Droid{Owner: 0, Kind: world.DroidConstruct, X: 4, Y: 0})
		m.AddStructure(world.Structure{Owner: 1, Kind: world.ResourceExtractor, Status: world.Built, X: 7, Y: 1})
		armSlot(m, 1)
		r := NewRegistry(m, Policy{})
		r.CreateTeams()

		team, _ := r.TeamOf(0)
		if !r.CanPlay(team) {
			t.Error("team able to reach a foreign extractor should be able to play")
		}
	})
}

func TestSetState_TerminalIsFinal(t *testing.T) {
	m := newTestWorld(world.NoAlliances, world.SlotConfig{Human: true}, world.SlotConfig{})
	armSlot(m, 0)
	armSlot(m, 1)

	var transitions []Transition
	r := newTestRegistry(t, m, Policy{}, WithTransitionHook(func(tr Transition) {
		transitions = append(transitions, tr)
	}))
	if len(transitions) != 2 {
		t.Fatalf("expected 2 initial transitions, got %d", len(transitions))
	}

	team, _ := r.TeamOf(1)
	if !r.SetState(team, StateLoser) {
		t.Fatal("contender -> loser should be accepted")
	}
	if r.SetState(team, StateContender) {
		t.Error("loser -> contender must be rejected")
	}
	if team.State() != StateLoser {
		t.Errorf("state = %v, want loser", team.State())
	}
	last := transitions[len(transitions)-1]
	if last.From != StateContender || last.To != StateLoser {
		t.Errorf("last transition = %v -> %v", last.From, last.To)
	}
}

func TestTeamOf_Errors(t *testing.T) {
	m := newTestWorld(world.NoAlliances, world.SlotConfig{})
	r := NewRegistry(m, Policy{})

	if _, err := r.TeamOf(0); !errors.Is(err, errors.ErrNoTeam) {
		t.Errorf("TeamOf before CreateTeams = %v, want ErrNoTeam", err)
	}
	r.CreateTeams()
	if _, err := r.TeamOf(5); !errors.Is(err, errors.ErrUnknownSlot) {
		t.Errorf("TeamOf(5) = %v, want ErrUnknownSlot", err)
	}
}

func TestTeam_TouchMonotonic(t *testing.T) {
	m := newTestWorld(world.NoAlliances, world.SlotConfig{})
	m.Advance(time.Minute)
	r := newTestRegistry(t, m, Policy{})
	team, _ := r.TeamOf(0)

	if team.LastActivity() != time.Minute {
		t.Fatalf("LastActivity = %v, want creation time 1m", team.LastActivity())
	}
	steps := []struct {
		at   time.Duration
		want time.Duration
	}{
		{2 * time.Minute, 2 * time.Minute},
		{90 * time.Second, 2 * time.Minute},
		{2 * time.Minute, 2 * time.Minute},
		{3 * time.Minute, 3 * time.Minute},
	}
	for _, s := range steps {
		team.Touch(s.at)
		if team.LastActivity() != s.want {
			t.Errorf("after Touch(%v) LastActivity = %v, want %v", s.at, team.LastActivity(), s.want)
		}
	}
}

func TestState(t *testing.T) {
	tests := []struct {
		state    State
		terminal bool
	}{
		{StateNone, false},
		{StateContender, false},
		{StateWinner, true},
		{StateLoser, true},
		{StateSpectator, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.terminal {
			t.Errorf("%v.IsTerminal() = %v, want %v", tt.state, got, tt.terminal)
		}
		if !tt.state.IsValid() {
			t.Errorf("%v should be valid", tt.state)
		}
	}
	if State("draw").IsValid() {
		t.Error("unknown state should be invalid")
	}
}
