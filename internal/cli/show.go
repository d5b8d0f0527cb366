package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlkit/smoke/internal/config"
	"github.com/mlkit/smoke/internal/journal"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	env := config.FromEnv()
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the per-case outcomes of a recorded run",
		Long: `Show the per-case outcomes of one recorded run.

Cases print in execution order with their exit status and duration.
Failed cases include the failure detail; --verbose adds the exact
command line each case invoked.

Exit codes:
  0 - Run printed
  2 - Command error (unknown run id, missing or unreadable database)

Examples:
  smoke show 0198c5b2-7f3a-7c41-94d0-3f6b6a1c9e2d --db ./smoke.db
  smoke show 0198c5b2-7f3a-7c41-94d0-3f6b6a1c9e2d --db ./smoke.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", env.DB, "path to the journal SQLite database")

	return cmd
}

func runShow(opts *ShowOptions, runID string, cmd *cobra.Command) error {
	ctx := context.Background()

	jnl, err := openJournalForReading(opts.Database)
	if err != nil {
		return err
	}
	defer jnl.Close()

	report, err := jnl.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: no recorded run with id %q", ErrCodeNotFound, runID))
		}
		return WrapExitError(ExitCommandError, "failed to load run", err)
	}

	if opts.Format == "json" {
		response := CLIResponse{
			Status: "ok",
			Data:   report,
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run: %s\n", report.RunID)
	fmt.Fprintf(w, "Suite: %s%s\n", report.Suite, runMarkers(report.DryRun, report.Interrupted))
	fmt.Fprintf(w, "Started: %s\n", report.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Finished: %s\n", report.FinishedAt.Format(time.RFC3339))
	fmt.Fprintln(w)

	for _, c := range report.Results {
		mark := passMark()
		if c.Failed() {
			mark = failMark()
		}
		fmt.Fprintf(w, "%s [%2d] %s (%dms)\n", mark, c.Seq+1, c.Label, c.DurationMS)
		if c.Failed() {
			detail := fmt.Sprintf("exit %d", c.ExitCode)
			if c.Error != "" {
				detail = fmt.Sprintf("exit %d: %s", c.ExitCode, c.Error)
			}
			fmt.Fprintf(w, "       %s\n", detail)
		}
		if opts.Verbose {
			fmt.Fprintf(w, "       %s\n", c.CommandLine())
		}
	}

	fmt.Fprintf(w, "\nSummary: %d cases, %d failed\n", report.Total(), report.FailedCount())
	return nil
}
