// Package runner executes a smoke suite sequentially and produces a report.
//
// The runner is the heart of smoke - it walks the suite's cases in
// declaration order, prints each label, hands the command to an
// execx.Runner, and records the outcome.
//
// EXECUTION CONTRACT:
//
// Sequential, Single Pass:
// Cases run one at a time, in suite order, each exactly once. There is no
// parallelism, no retry, and no per-case timeout.
//
// No Failure Propagation:
// A case that exits non-zero, or that cannot start at all, never halts the
// run and never skips the cases after it. A failure is visible in the
// streamed output and the final report, nothing more. Only context
// cancellation (Ctrl-C) stops the walk early, between cases.
//
// Output Discipline:
// The label is written to Out immediately before the command starts, so a
// reader watching the stream always knows which case produced what follows.
// Child stdout goes to Out and child stderr to ErrOut, both unmodified and
// unbuffered. The runner injects nothing between a label and its case's
// output except a start-failure diagnostic on ErrOut.
//
// Dry Run:
// With DryRun set, each case prints its label and a "+ command args" echo
// line instead of executing. The report is recorded with all exit codes
// zero and DryRun marked, so a journaled dry run is never mistaken for a
// real one.
package runner
