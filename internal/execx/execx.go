// Package execx runs external commands with streamed output and a
// normalized exit code.
package execx

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// Exit codes for invocations that never produced one of their own.
const (
	// CodeStartFailure reports a command that could not start at all,
	// typically a missing binary. Matches the shell's command-not-found
	// convention.
	CodeStartFailure = 127

	// CodeDeadline reports a command killed by its context deadline.
	// Matches timeout(1).
	CodeDeadline = 124
)

// Result captures one finished invocation.
type Result struct {
	// Code is the command's exit status, or CodeStartFailure /
	// CodeDeadline when no real status exists.
	Code int

	// Err is the error from running the command, nil on a zero exit.
	Err error

	// Duration is wall-clock time from start to exit.
	Duration time.Duration
}

// Failed reports whether the invocation exited non-zero or never ran.
func (r Result) Failed() bool { return r.Code != 0 }

// Runner executes one external command, streaming its output to the given
// writers as the child produces it. Implementations must not buffer.
type Runner interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) Result
}

// OSRunner runs commands on the host via os/exec. Children get no stdin;
// the tools under test are strictly non-interactive.
type OSRunner struct{}

func (OSRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) Result {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	code := 0
	if err != nil {
		var ee *exec.ExitError
		switch {
		// Deadline first: a killed child also surfaces as an ExitError,
		// and that one's -1 status is not the code we want.
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			code = CodeDeadline
		case errors.As(err, &ee):
			code = ee.ExitCode()
		default:
			code = CodeStartFailure
		}
	}
	return Result{Code: code, Err: err, Duration: elapsed}
}
