package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mlkit/smoke/internal/execx"
)

// Call records one invocation a ScriptedRunner received.
type Call struct {
	Name string
	Args []string
}

// Outcome scripts the result of one invocation: what the fake child writes
// to each stream and how it exits. A zero Outcome is a silent success.
type Outcome struct {
	Code     int
	Stdout   string
	Stderr   string
	Err      error
	Duration time.Duration
}

// ScriptedRunner implements execx.Runner by playing back outcomes in call
// order. Calls beyond the script succeed silently. Every call is recorded
// for later inspection.
//
// OnRun, when set, fires at the moment of each invocation, before the
// outcome's output is written. Tests use it to snapshot what the harness
// had printed up to that point.
//
// Thread-safety: safe for concurrent use via internal mutex, though the
// harness itself only ever calls it sequentially.
type ScriptedRunner struct {
	OnRun func(Call)

	mu       sync.Mutex
	outcomes []Outcome
	calls    []Call
}

// NewScriptedRunner creates a runner that returns the given outcomes in
// call order.
func NewScriptedRunner(outcomes ...Outcome) *ScriptedRunner {
	return &ScriptedRunner{outcomes: outcomes}
}

// Run implements execx.Runner.
func (r *ScriptedRunner) Run(_ context.Context, name string, args []string, stdout, stderr io.Writer) execx.Result {
	r.mu.Lock()
	call := Call{Name: name, Args: append([]string(nil), args...)}
	var outcome Outcome
	if len(r.calls) < len(r.outcomes) {
		outcome = r.outcomes[len(r.calls)]
	}
	r.calls = append(r.calls, call)
	hook := r.OnRun
	r.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if outcome.Stdout != "" {
		fmt.Fprint(stdout, outcome.Stdout)
	}
	if outcome.Stderr != "" {
		fmt.Fprint(stderr, outcome.Stderr)
	}

	err := outcome.Err
	if err == nil && outcome.Code != 0 {
		err = fmt.Errorf("exit status %d", outcome.Code)
	}
	return execx.Result{Code: outcome.Code, Err: err, Duration: outcome.Duration}
}

// Calls returns a copy of the recorded invocations in order.
func (r *ScriptedRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}
