package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mlkit/smoke/internal/execx"
	"github.com/mlkit/smoke/internal/suite"
)

// IDGenerator mints run identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run identifiers.
//
// UUIDv7 embeds a timestamp in the most significant bits, so journal rows
// listed by id come back in creation order. Uses github.com/google/uuid.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Runner executes suites. The zero value executes on the host with
// discarded output; callers set Out and ErrOut to stream.
type Runner struct {
	// Exec runs each command. Nil defaults to execx.OSRunner.
	Exec execx.Runner

	// Out receives labels, dry-run echo lines and child stdout.
	Out io.Writer

	// ErrOut receives child stderr and start-failure diagnostics.
	ErrOut io.Writer

	// DryRun echoes commands instead of executing them.
	DryRun bool

	// IDs mints run identifiers. Nil defaults to UUIDv7Generator.
	IDs IDGenerator
}

// Run executes every case of the suite in order and returns the report.
//
// Case failures never stop the walk. The context is consulted between
// cases only: cancellation stops the run before the next label prints and
// returns the partial report alongside the error.
func (r *Runner) Run(ctx context.Context, s suite.Suite) (*Report, error) {
	exec := r.Exec
	if exec == nil {
		exec = execx.OSRunner{}
	}
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	errOut := r.ErrOut
	if errOut == nil {
		errOut = io.Discard
	}
	ids := r.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}

	report := &Report{
		RunID:     ids.Generate(),
		Suite:     s.Name,
		DryRun:    r.DryRun,
		StartedAt: time.Now().UTC(),
		Results:   make([]CaseResult, 0, s.Len()),
	}
	slog.Info("run starting",
		"run_id", report.RunID,
		"suite", s.Name,
		"cases", s.Len(),
		"dry_run", r.DryRun)

	for i, c := range s.Cases {
		if err := ctx.Err(); err != nil {
			report.Interrupted = true
			report.FinishedAt = time.Now().UTC()
			slog.Info("run interrupted", "run_id", report.RunID, "completed", i)
			return report, fmt.Errorf("run interrupted after %d of %d cases: %w", i, s.Len(), err)
		}

		// The label must land before any child output.
		fmt.Fprintln(out, c.Label)

		if r.DryRun {
			fmt.Fprintf(out, "+ %s\n", c.CommandLine())
			report.Results = append(report.Results, CaseResult{
				Seq:     i,
				Label:   c.Label,
				Command: c.Command,
				Args:    c.Args,
			})
			continue
		}

		slog.Debug("case starting", "seq", i, "label", c.Label, "command", c.CommandLine())
		res := exec.Run(ctx, c.Command, c.Args, out, errOut)
		if res.Code == execx.CodeStartFailure {
			// The child never ran and printed nothing for this section;
			// surface the reason the way a shell would.
			fmt.Fprintf(errOut, "smoke: %v\n", res.Err)
		}

		result := CaseResult{
			Seq:        i,
			Label:      c.Label,
			Command:    c.Command,
			Args:       c.Args,
			ExitCode:   res.Code,
			DurationMS: res.Duration.Milliseconds(),
		}
		if res.Err != nil {
			result.Error = res.Err.Error()
		}
		report.Results = append(report.Results, result)
		slog.Debug("case finished",
			"seq", i,
			"label", c.Label,
			"exit_code", res.Code,
			"duration", res.Duration)
	}

	report.FinishedAt = time.Now().UTC()
	slog.Info("run finished",
		"run_id", report.RunID,
		"total", report.Total(),
		"failed", report.FailedCount())
	return report, nil
}
