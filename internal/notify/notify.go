// Package notify defines the presentation collaborator that displays
// end-of-game notices and the passive-play warning.
package notify

import (
	"sync"

	"github.com/Iron-Ham/arbiter/internal/world"
)

// PassivePlayWarning is shown to the viewer once more than half of the idle
// window has elapsed without a qualifying action.
const PassivePlayWarning = "Playing passively will lead to defeat. Actions that are considered: " +
	"- unit building - research completion - construction of base structures " +
	"(factories, power plants, laboratories, modules and oil derricks) - dealing damage"

// Presenter displays terminal notices and the passive-play warning.
type Presenter interface {
	// GameOver shows a victory or defeat notice for a slot.
	GameOver(slot world.Slot, victory bool)
	// PassiveWarning shows a textual warning.
	PassiveWarning(text string)
	// SetCountdown shows a countdown of remaining seconds.
	SetCountdown(seconds int)
	// ClearCountdown removes the countdown widget.
	ClearCountdown()
}

// Nop discards every request.
type Nop struct{}

// GameOver does nothing.
func (Nop) GameOver(world.Slot, bool) {}

// PassiveWarning does nothing.
func (Nop) PassiveWarning(string) {}

// SetCountdown does nothing.
func (Nop) SetCountdown(int) {}

// ClearCountdown does nothing.
func (Nop) ClearCountdown() {}

// Notice is one recorded GameOver request.
type Notice struct {
	Slot    world.Slot
	Victory bool
}

// Recorder keeps every request in memory. It is safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	notices   []Notice
	warnings  []string
	countdown int
	active    bool
	clears    int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// GameOver records a notice.
func (r *Recorder) GameOver(slot world.Slot, victory bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Slot: slot, Victory: victory})
}

// PassiveWarning records text.
func (r *Recorder) PassiveWarning(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, text)
}

// SetCountdown arms the countdown at seconds.
func (r *Recorder) SetCountdown(seconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countdown = seconds
	r.active = true
}

// ClearCountdown disarms the countdown and counts the clear.
func (r *Recorder) ClearCountdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countdown = 0
	r.active = false
	r.clears++
}

// Notices returns a copy of the recorded GameOver requests.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Warnings returns a copy of the recorded warnings.
func (r *Recorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Countdown returns the countdown value and whether it is displayed.
func (r *Recorder) Countdown() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countdown, r.active
}

// Clears returns how many times the countdown was cleared.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}
