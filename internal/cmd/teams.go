package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/arbiter/internal/config"
	"github.com/Iron-Ham/arbiter/internal/scenario"
	"github.com/Iron-Ham/arbiter/internal/team"
	"github.com/Iron-Ham/arbiter/internal/util"
	"github.com/Iron-Ham/arbiter/internal/world"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var teamsCmd = &cobra.Command{
	Use:   "teams <scenario.yaml>",
	Short: "Show the victory teams of a scenario",
	Long: `Show how the players of a scenario are grouped into victory teams under
its alliance mode, and the state each team starts in.`,
	Args: cobra.ExactArgs(1),
	RunE: runTeams,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}

// maxSlotsWidth caps the member columns for very large teams.
const maxSlotsWidth = 32

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

func runTeams(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	engine, err := engineConfig(cfg)
	if err != nil {
		return err
	}

	m := s.NewWorld()
	reg := team.NewRegistry(m, team.Policy{
		IdleTime:        engine.IdleTime,
		EnforceActivity: engine.Activity.Enforced(m.Match()),
	})
	reg.CreateTeams()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scenario: %s (%s)\n", s.Name, m.AllianceMode())
	fmt.Fprintf(out, "Activity enforced: %v\n\n", reg.Policy().EnforceActivity)
	renderTeams(out, m, reg.Statuses(), cfg.TUI.Theme != "mono")
	return nil
}

// renderTeams writes one row per team: index, members, and initial state.
func renderTeams(out io.Writer, roster world.Roster, statuses []team.Status, styled bool) {
	rows := [][]string{{"TEAM", "SLOTS", "HUMANS", "STATE"}}
	for _, st := range statuses {
		var humans []string
		for _, slot := range st.Slots {
			if roster.IsHuman(slot) {
				humans = append(humans, fmt.Sprint(slot))
			}
		}
		rows = append(rows, []string{
			fmt.Sprint(st.Index),
			util.Truncate(util.JoinInts(st.Slots), maxSlotsWidth),
			orDash(util.Truncate(strings.Join(humans, ","), maxSlotsWidth)),
			st.State.String(),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle.Width(widths[i] + 2)
			if r == 0 && styled {
				style = style.Inherit(headerStyle)
			}
			cells[i] = style.Render(cell)
		}
		fmt.Fprintln(out, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
