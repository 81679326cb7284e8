// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/jpegify/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past conversion runs from the journal",
	Long: `History lists the runs recorded in the SQLite journal, newest first.
Use --run to list the files of a single run. Requires --journal (or the
journal config key).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "list the files of this run id")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString(keyJournal)
	if path == "" {
		return fmt.Errorf("no journal configured: pass --journal or set %q in the config file", keyJournal)
	}

	store, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetInt64("run")
	if runID > 0 {
		return printFiles(cmd.Context(), store, runID, cmd.OutOrStdout())
	}
	return printRuns(cmd.Context(), store, limit, cmd.OutOrStdout())
}

func printRuns(ctx context.Context, store *journal.Store, limit int, w io.Writer) error {
	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		finished := "interrupted"
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
		}
		fmt.Fprintf(w, "#%d  %s  %s  (%s)  converted=%d skipped=%d failed=%d delete-failed=%d\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Root, finished,
			r.Converted, r.Skipped, r.Failed, r.DeleteFailed)
	}
	return nil
}

func printFiles(ctx context.Context, store *journal.Store, runID int64, w io.Writer) error {
	files, err := store.Files(ctx, runID)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No files recorded for run %d.\n", runID)
		return nil
	}

	for _, f := range files {
		line := fmt.Sprintf("%-9s %s", f.Status, f.Source)
		if f.Output != "" {
			line += " -> " + f.Output
		}
		if f.Error != "" {
			line += fmt.Sprintf(" (%s)", f.Error)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
