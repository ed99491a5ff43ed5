package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Iron-Ham/arbiter/internal/world"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles holds the lipgloss styles used by Console.
type Styles struct {
	Victory   lipgloss.Style
	Defeat    lipgloss.Style
	Warning   lipgloss.Style
	Countdown lipgloss.Style
	Muted     lipgloss.Style
}

// DefaultStyles returns the default console palette.
func DefaultStyles() Styles {
	return Styles{
		Victory:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		Defeat:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		Countdown: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Victory: plain, Defeat: plain, Warning: plain, Countdown: plain, Muted: plain}
}

// Console writes notices as styled lines. It is safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
}

// NewConsole creates a Console writing to out. Styling is enabled only when out
// is a terminal and color is true.
func NewConsole(out io.Writer, color bool) *Console {
	styles := PlainStyles()
	if color && isTerminal(out) {
		styles = DefaultStyles()
	}
	return &Console{out: out, styles: styles}
}

// NewConsoleWithStyles creates a Console with explicit styles.
func NewConsoleWithStyles(out io.Writer, styles Styles) *Console {
	return &Console{out: out, styles: styles}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// GameOver prints a VICTORY or DEFEAT line for slot.
func (c *Console) GameOver(slot world.Slot, victory bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if victory {
		fmt.Fprintf(c.out, "%s %s\n", c.styles.Victory.Render("VICTORY"), c.styles.Muted.Render(fmt.Sprintf("player %d", slot)))
		return
	}
	fmt.Fprintf(c.out, "%s %s\n", c.styles.Defeat.Render("DEFEAT"), c.styles.Muted.Render(fmt.Sprintf("player %d", slot)))
}

// PassiveWarning prints text. Every alert pass prints it again.
func (c *Console) PassiveWarning(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.styles.Warning.Render(text))
}

// SetCountdown prints the seconds left before the idle team is defeated.
func (c *Console) SetCountdown(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.styles.Countdown.Render(fmt.Sprintf("passive play: %ds until defeat", seconds)))
}

// ClearCountdown prints that the passive-play countdown was withdrawn.
func (c *Console) ClearCountdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.styles.Muted.Render("passive play: countdown cleared"))
}
