package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/Iron-Ham/arbiter/internal/config"
	"github.com/Iron-Ham/arbiter/internal/ledger"
	"github.com/Iron-Ham/arbiter/internal/logging"
	"github.com/Iron-Ham/arbiter/internal/scenario"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Play a match scenario against the arbitration engine",
	Long: `Play a YAML match scenario tick by tick with the arbitration engine
attached, printing notices as they happen and the final team states.

The run stops as soon as the match is decided or the scenario duration ends.
A scenario with an "expect" block fails the command when the outcome differs.

Examples:
  # Run a scenario once
  arbiter simulate duel.yaml

  # Re-run whenever the file changes
  arbiter simulate duel.yaml --watch

  # Store the outcome in the ledger
  arbiter simulate duel.yaml --record`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

var (
	simulateWatch  bool
	simulateRecord bool
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().BoolVarP(&simulateWatch, "watch", "w", false, "Re-run the scenario when the file changes")
	simulateCmd.Flags().BoolVar(&simulateRecord, "record", false, "Record the outcome in the ledger (also enabled by ledger.enabled)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	var store *ledger.Store
	if simulateRecord || cfg.Ledger.Enabled {
		store, err = ledger.Open(cfg.Ledger.LedgerPath())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	ctx := cmd.Context()
	path := args[0]
	out := cmd.OutOrStdout()

	runErr := simulateOnce(ctx, out, cfg, logger, store, path)
	if !simulateWatch {
		return runErr
	}
	if runErr != nil {
		fmt.Fprintf(out, "error: %v\n", runErr)
	}
	return watchScenario(ctx, path, logger, func() {
		fmt.Fprintln(out)
		if err := simulateOnce(ctx, out, cfg, logger, store, path); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	})
}

// simulateOnce loads, runs, prints, and optionally records one scenario run.
func simulateOnce(ctx context.Context, out io.Writer, cfg *config.Config, logger *logging.Logger, store *ledger.Store, path string) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	opts, err := runOptions(cfg, logger, newPresenter(cfg, out))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Scenario: %s\n", s.Name)
	if s.Description != "" {
		fmt.Fprintf(out, "%s\n", s.Description)
	}
	fmt.Fprintln(out)

	res, err := scenario.Run(ctx, s, opts)
	if err != nil {
		return err
	}
	printResult(out, res)

	if store != nil {
		id, err := store.Record(ctx, ledger.NewRecord(s.Name, res.EndedAt, res.Outcome, res.Teams))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Recorded as #%d\n", id)
	}
	return res.Check(s.Expect)
}

func printResult(out io.Writer, res *scenario.Result) {
	if len(res.Transitions) > 0 {
		fmt.Fprintln(out, "Transitions:")
		for _, tr := range res.Transitions {
			fmt.Fprintf(out, "  %8s  team %d %v: %s -> %s\n",
				formatSimTime(tr.GameTime()), tr.Team, tr.Players, stateOrNone(tr.From), tr.To)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Teams:")
	for _, st := range res.Teams {
		fmt.Fprintf(out, "  team %d %v: %s (last activity %s)\n",
			st.Index, st.Slots, st.State, formatSimTime(st.LastActivity))
	}
	fmt.Fprintln(out)

	switch {
	case !res.Decided():
		fmt.Fprintf(out, "Outcome: undecided after %s\n", formatSimTime(res.EndedAt))
	case res.Outcome.Draw:
		fmt.Fprintf(out, "Outcome: draw at %s\n", formatSimTime(res.EndedAt))
	default:
		fmt.Fprintf(out, "Outcome: team %d wins at %s\n", res.Outcome.Winner, formatSimTime(res.EndedAt))
	}
}

// watchScenario calls rerun after each change to path until ctx is done. The
// parent directory is watched so editors that replace the file are seen.
func watchScenario(ctx context.Context, path string, logger *logging.Logger, rerun func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Info("watching scenario", "path", abs)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			pending = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err.Error())
		case <-pending:
			pending = nil
			rerun()
		}
	}
}

func stateOrNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// formatSimTime renders a simulation time as m:ss.
func formatSimTime(d time.Duration) string {
	d = d.Truncate(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}
