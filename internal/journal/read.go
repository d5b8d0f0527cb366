package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mlkit/smoke/internal/runner"
)

// ErrNotFound reports a run id with no journal row.
var ErrNotFound = errors.New("run not found")

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID          string    `json:"id"`
	Suite       string    `json:"suite"`
	DryRun      bool      `json:"dry_run,omitempty"`
	Interrupted bool      `json:"interrupted,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Total       int       `json:"total"`
	Failed      int       `json:"failed"`
}

// ListRuns returns run summaries, newest first. A limit <= 0 lists
// everything. Ordering is started_at DESC, id DESC so listings are
// deterministic even when clocks collide.
func (j *Journal) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, suite, dry_run, interrupted, started_at, finished_at, total, failed
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		summary, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	// Return empty slice instead of nil
	if runs == nil {
		runs = []RunSummary{}
	}

	return runs, nil
}

// GetRun reconstructs the full report for a run id, case results in
// execution order. Returns ErrNotFound if the id was never journaled.
func (j *Journal) GetRun(ctx context.Context, id string) (*runner.Report, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT id, suite, dry_run, interrupted, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id)

	var report runner.Report
	var startedAt, finishedAt string
	err := row.Scan(
		&report.RunID, &report.Suite, &report.DryRun, &report.Interrupted,
		&startedAt, &finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	if report.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, fmt.Errorf("run %q: started_at: %w", id, err)
	}
	if report.FinishedAt, err = parseTime(finishedAt); err != nil {
		return nil, fmt.Errorf("run %q: finished_at: %w", id, err)
	}

	results, err := j.readCaseResults(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Results = results

	return &report, nil
}

// readCaseResults returns a run's case rows in execution order.
func (j *Journal) readCaseResults(ctx context.Context, runID string) ([]runner.CaseResult, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, label, command, args, exit_code, error, duration_ms
		FROM case_results
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query case results: %w", err)
	}
	defer rows.Close()

	var results []runner.CaseResult
	for rows.Next() {
		var c runner.CaseResult
		var argsJSON string
		if err := rows.Scan(
			&c.Seq, &c.Label, &c.Command, &argsJSON,
			&c.ExitCode, &c.Error, &c.DurationMS,
		); err != nil {
			return nil, fmt.Errorf("scan case result: %w", err)
		}

		if err := json.Unmarshal([]byte(argsJSON), &c.Args); err != nil {
			return nil, fmt.Errorf("unmarshal args for %q: %w", c.Label, err)
		}
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case results: %w", err)
	}

	if results == nil {
		results = []runner.CaseResult{}
	}

	return results, nil
}

// scanRun scans a listing row into a RunSummary.
func scanRun(rows *sql.Rows) (RunSummary, error) {
	var s RunSummary
	var startedAt, finishedAt string

	if err := rows.Scan(
		&s.ID, &s.Suite, &s.DryRun, &s.Interrupted,
		&startedAt, &finishedAt, &s.Total, &s.Failed,
	); err != nil {
		return RunSummary{}, fmt.Errorf("scan run: %w", err)
	}

	var err error
	if s.StartedAt, err = parseTime(startedAt); err != nil {
		return RunSummary{}, fmt.Errorf("run %q: started_at: %w", s.ID, err)
	}
	if s.FinishedAt, err = parseTime(finishedAt); err != nil {
		return RunSummary{}, fmt.Errorf("run %q: finished_at: %w", s.ID, err)
	}

	return s, nil
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
