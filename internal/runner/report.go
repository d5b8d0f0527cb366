package runner

import (
	"strings"
	"time"
)

// CaseResult records the outcome of one case.
type CaseResult struct {
	// Seq is the zero-based position of the case in the suite.
	Seq int `json:"seq"`

	// Label and Command/Args identify what ran.
	Label   string   `json:"label"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`

	// ExitCode is the command's exit status. Dry-run cases record zero.
	// A case that never started records execx.CodeStartFailure.
	ExitCode int `json:"exit_code"`

	// Error is the run error text, empty on a zero exit.
	Error string `json:"error,omitempty"`

	// DurationMS is wall-clock child runtime in milliseconds.
	DurationMS int64 `json:"duration_ms"`
}

// Failed reports whether the case exited non-zero or never ran.
func (c CaseResult) Failed() bool { return c.ExitCode != 0 }

// CommandLine renders the recorded command as a single shell-style line.
func (c CaseResult) CommandLine() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// Report is the outcome of one suite run.
type Report struct {
	// RunID uniquely identifies this run in output and the journal.
	RunID string `json:"run_id"`

	// Suite is the name of the suite that ran.
	Suite string `json:"suite"`

	// DryRun marks a run that only echoed commands.
	DryRun bool `json:"dry_run,omitempty"`

	// Interrupted marks a run stopped early by context cancellation.
	// Results then holds only the cases that already ran.
	Interrupted bool `json:"interrupted,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Results holds one entry per executed case, in execution order.
	Results []CaseResult `json:"results"`
}

// Total returns the number of cases that ran.
func (r *Report) Total() int { return len(r.Results) }

// FailedCount returns the number of cases that exited non-zero.
func (r *Report) FailedCount() int {
	n := 0
	for _, c := range r.Results {
		if c.Failed() {
			n++
		}
	}
	return n
}

// Failures returns the failed cases in execution order.
func (r *Report) Failures() []CaseResult {
	var out []CaseResult
	for _, c := range r.Results {
		if c.Failed() {
			out = append(out, c)
		}
	}
	return out
}
