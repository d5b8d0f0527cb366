package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlkit/smoke/internal/config"
	"github.com/mlkit/smoke/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// HistoryOutput holds the run listing for JSON output.
type HistoryOutput struct {
	Runs []journal.RunSummary `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	env := config.FromEnv()
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		Long: `List the runs recorded in the journal database, newest first.

Each line shows the run id, suite, start time and case counts. Use the
run id with the show command to inspect per-case outcomes.

Exit codes:
  0 - Listing printed
  2 - Command error (missing or unreadable database)

Examples:
  smoke history --db ./smoke.db
  smoke history --db ./smoke.db --limit 5
  smoke history --db ./smoke.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", env.DB, "path to the journal SQLite database")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0: no limit)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	jnl, err := openJournalForReading(opts.Database)
	if err != nil {
		return err
	}
	defer jnl.Close()

	runs, err := jnl.ListRuns(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		response := CLIResponse{
			Status: "ok",
			Data:   HistoryOutput{Runs: runs},
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}

	for _, r := range runs {
		mark := passMark()
		if r.Failed > 0 {
			mark = failMark()
		}
		fmt.Fprintf(w, "%s %s  %s  %s  %d cases, %d failed%s\n",
			mark, r.ID, r.StartedAt.Format(time.RFC3339), r.Suite,
			r.Total, r.Failed, runMarkers(r.DryRun, r.Interrupted))
	}
	fmt.Fprintf(w, "\n%d run(s)\n", len(runs))
	return nil
}

// openJournalForReading opens an existing journal database. Unlike the run
// command, reads never create the file: a missing path is an error instead
// of a fresh empty database.
func openJournalForReading(path string) (*journal.Journal, error) {
	if path == "" {
		return nil, NewExitError(ExitCommandError, "--db is required (or set SMOKE_DB)")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: journal database not found", ErrCodeNotFound), err)
	}
	jnl, err := journal.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	return jnl, nil
}
