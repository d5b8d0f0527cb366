package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mlkit/smoke/internal/runner"
)

// RecordRun persists a report: the run row plus one row per case result,
// atomically. Uses ON CONFLICT DO NOTHING throughout, so recording the
// same run id twice is a silent no-op.
func (j *Journal) RecordRun(ctx context.Context, report *runner.Report) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, suite, dry_run, interrupted, started_at, finished_at, total, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		report.RunID,
		report.Suite,
		report.DryRun,
		report.Interrupted,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.Total(),
		report.FailedCount(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	for _, c := range report.Results {
		argsJSON, err := json.Marshal(c.Args)
		if err != nil {
			return fmt.Errorf("record run: marshal args for %q: %w", c.Label, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO case_results
			(run_id, seq, label, command, args, exit_code, error, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id, seq) DO NOTHING
		`,
			report.RunID,
			c.Seq,
			c.Label,
			c.Command,
			string(argsJSON),
			c.ExitCode,
			c.Error,
			c.DurationMS,
		)
		if err != nil {
			return fmt.Errorf("record run: case %q: %w", c.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run: commit: %w", err)
	}
	return nil
}
