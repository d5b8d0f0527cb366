// Package journal provides SQLite-backed storage for smoke run history.
//
// The journal is an append-only record of suite runs:
//   - Runs: one row per run, keyed by a time-sortable UUIDv7
//   - Case Results: one row per executed case, keyed (run_id, seq)
//
// # Recording Rules
//
// Idempotent Writes
//   - INSERT ... ON CONFLICT DO NOTHING throughout
//   - Re-recording a run id is a silent no-op, never a duplicate
//
// Deterministic Reads
//   - Listings order by started_at DESC, id DESC (newest first)
//   - Case results order by seq ASC, reproducing execution order
//
// Dry runs and interrupted runs are journaled too, flagged as such, so the
// history never passes one off as a full run.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package journal
