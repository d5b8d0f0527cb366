package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mlkit/smoke/internal/config"
	"github.com/mlkit/smoke/internal/execx"
	"github.com/mlkit/smoke/internal/journal"
	"github.com/mlkit/smoke/internal/runner"
	"github.com/mlkit/smoke/internal/suite"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	BinDir   string
	DataDir  string
	Filter   string
	DryRun   bool
	Strict   bool
	Database string

	// Exec allows overriding the process runner (for testing).
	// If nil, commands run on the host via execx.OSRunner.
	Exec execx.Runner

	// IDs allows overriding the run id generator (for testing).
	// If nil, defaults to runner.UUIDv7Generator.
	IDs runner.IDGenerator
}

// RunOutput aggregates the reports of one run invocation.
type RunOutput struct {
	Suites      int              `json:"suites"`
	TotalCases  int              `json:"total_cases"`
	FailedCases int              `json:"failed_cases"`
	Interrupted bool             `json:"interrupted,omitempty"`
	Runs        []*runner.Report `json:"runs"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

// newRunCommand wires the flag surface onto pre-built options, so tests
// can inject Exec and IDs before flags are parsed.
func newRunCommand(opts *RunOptions) *cobra.Command {
	env := config.FromEnv()

	cmd := &cobra.Command{
		Use:   "run [suite.yaml...]",
		Short: "Run smoke suites against the toolkit",
		Long: `Run smoke suites against the classification toolkit.

Without arguments the built-in toolkit suite runs: seventeen labeled
invocations covering classify, discretise and featureselect in fixed
order. Each label prints immediately before its command executes, and
the tool's own stdout/stderr stream through unmodified. A failing case
never halts or skips the cases after it.

With file arguments, each YAML suite runs in argument order instead of
the built-in suite.

Exit codes:
  0 - All cases ran (failures are visible in the output, not fatal)
  1 - One or more cases failed and --strict was set
  2 - Command error (unreadable suite, bad path, journal failure)

Examples:
  smoke run
  smoke run --bin-dir ./bin --data-dir ./data
  smoke run --filter "Decision Tree*"
  smoke run --dry-run
  smoke run --strict --db ./smoke.db
  smoke run extras.yaml nightly.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmoke(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.BinDir, "bin-dir", env.BinDir, "directory holding the toolkit binaries (empty: resolve via PATH)")
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", env.DataDir, "directory holding the dataset files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "run only cases whose label matches this glob")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print commands instead of executing them")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit 1 if any case fails")
	cmd.Flags().StringVar(&opts.Database, "db", env.DB, "journal runs to this SQLite database")

	return cmd
}

func runSmoke(opts *RunOptions, args []string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	sources, err := resolveSuites(args, suite.Paths{BinDir: opts.BinDir, DataDir: opts.DataDir})
	if err != nil {
		return err
	}
	sources, err = filterSuites(sources, opts.Filter)
	if err != nil {
		return err
	}

	var jnl *journal.Journal
	if opts.Database != "" {
		jnl, err = journal.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := jnl.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()
	}

	// Child output goes to stdout in text mode; in JSON mode it streams to
	// stderr so the response envelope on stdout stays parseable.
	childOut := cmd.OutOrStdout()
	if opts.Format == "json" {
		childOut = cmd.ErrOrStderr()
	}

	exec := opts.Exec
	if exec == nil {
		exec = execx.OSRunner{}
	}
	r := &runner.Runner{
		Exec:   exec,
		Out:    childOut,
		ErrOut: cmd.ErrOrStderr(),
		DryRun: opts.DryRun,
		IDs:    opts.IDs,
	}

	// Setup signal handling for graceful shutdown between cases
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, stopping after the current case", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	result := RunOutput{Runs: make([]*runner.Report, 0, len(sources))}
	for _, src := range sources {
		report, runErr := r.Run(ctx, src.Suite)
		result.Runs = append(result.Runs, report)
		result.TotalCases += report.Total()
		result.FailedCases += report.FailedCount()

		if jnl != nil {
			// Interrupted runs are journaled too; recording must survive
			// the cancellation that stopped the walk.
			if recErr := jnl.RecordRun(context.WithoutCancel(ctx), report); recErr != nil {
				return WrapExitError(ExitCommandError, "failed to record run", recErr)
			}
		}

		if runErr != nil {
			// Only cancellation stops the walk across suites.
			result.Interrupted = true
			break
		}
	}
	result.Suites = len(result.Runs)

	if opts.Format == "json" {
		return outputRunJSON(cmd, opts, result)
	}
	return outputRunText(cmd, opts, result)
}

// outputRunText prints the per-suite summaries and the overall outcome.
func outputRunText(cmd *cobra.Command, opts *RunOptions, result RunOutput) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	for _, rep := range result.Runs {
		mark := passMark()
		if rep.FailedCount() > 0 {
			mark = failMark()
		}
		fmt.Fprintf(w, "%s %s: %d cases, %d failed%s\n", mark, rep.Suite, rep.Total(), rep.FailedCount(), runMarkers(rep.DryRun, rep.Interrupted))
		if opts.Verbose {
			fmt.Fprintf(w, "  run id: %s\n", rep.RunID)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Smoke Summary: %d cases, %d failed, %d suite(s)\n", result.TotalCases, result.FailedCases, result.Suites)

	if result.FailedCases > 0 {
		fmt.Fprintf(w, "%s %d case(s) failed\n", failMark(), result.FailedCases)
		if opts.Strict {
			return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", result.FailedCases))
		}
		return nil
	}

	if result.Interrupted {
		// Stopping on a signal is not a failure; the partial counts above
		// already tell the story.
		fmt.Fprintln(w, "Run interrupted")
		return nil
	}

	if opts.DryRun {
		fmt.Fprintf(w, "%s Dry run complete\n", passMark())
		return nil
	}
	fmt.Fprintf(w, "%s All cases passed\n", passMark())
	return nil
}

// outputRunJSON emits the aggregated reports as a CLIResponse envelope.
func outputRunJSON(cmd *cobra.Command, opts *RunOptions, result RunOutput) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}
	if opts.Strict && result.FailedCases > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeCasesFailed,
			Message: fmt.Sprintf("%d case(s) failed", result.FailedCases),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if opts.Strict && result.FailedCases > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", result.FailedCases))
	}
	return nil
}
