package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/Iron-Ham/arbiter/internal/config"
	"github.com/Iron-Ham/arbiter/internal/ledger"
	"github.com/Iron-Ham/arbiter/internal/util"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded match outcomes",
	Long: `List match outcomes recorded by "arbiter simulate --record", newest first.

The ledger location is ledger.path, or ledger.db in the config directory.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of records to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := ledger.Open(cfg.Ledger.LedgerPath())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	printHistory(cmd.OutOrStdout(), records)
	return nil
}

func printHistory(out io.Writer, records []ledger.Record) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No recorded outcomes.")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "#%d  %s  %s  %s at %s\n",
			rec.ID,
			rec.RecordedAt.Local().Format(time.DateTime),
			rec.Scenario,
			describeRecord(rec),
			formatSimTime(rec.EndedAt),
		)
		for _, t := range rec.Teams {
			fmt.Fprintf(out, "      team %d [%s]: %s\n", t.Index, util.JoinInts(t.Slots), t.State)
		}
	}
}

func describeRecord(rec ledger.Record) string {
	switch {
	case !rec.Decided:
		return "undecided"
	case rec.Draw:
		return "draw"
	default:
		return fmt.Sprintf("team %d won", rec.Winner)
	}
}
