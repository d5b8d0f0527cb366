package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlkit/smoke/internal/execx"
	"github.com/mlkit/smoke/internal/suite"
	"github.com/mlkit/smoke/internal/testutil"
)

func threeCaseSuite() suite.Suite {
	return suite.Suite{
		Name: "mini",
		Cases: []suite.Case{
			{Label: "Zero R test", Command: "classify", Args: []string{"-f", "weather.csv"}},
			{Label: "Unsupervised Equal Width", Command: "discretise", Args: []string{"-a", "UEW", "-f", "weather.csv", "-A", "0,1,2", "-o", "4"}},
			{Label: "Forward Select", Command: "featureselect", Args: []string{"-a", "FS", "-f", "weather.csv", "-o", "1R,3,0.01"}},
		},
	}
}

func TestRunner_InvokesEveryCaseInOrder(t *testing.T) {
	exec := testutil.NewScriptedRunner()
	var out, errOut bytes.Buffer
	r := &Runner{Exec: exec, Out: &out, ErrOut: &errOut, IDs: testutil.NewFixedIDGenerator("run-1")}

	report, err := r.Run(context.Background(), threeCaseSuite())
	require.NoError(t, err)

	calls := exec.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "classify", calls[0].Name)
	assert.Equal(t, "discretise", calls[1].Name)
	assert.Equal(t, "featureselect", calls[2].Name)

	require.Len(t, report.Results, 3)
	for i, res := range report.Results {
		assert.Equal(t, i, res.Seq)
		assert.Equal(t, 0, res.ExitCode)
	}
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, "mini", report.Suite)
}

func TestRunner_FailureNeverHaltsTheWalk(t *testing.T) {
	exec := testutil.NewScriptedRunner(
		testutil.Outcome{Code: 1, Stderr: "bad data\n"},
		testutil.Outcome{Code: 2},
		testutil.Outcome{Code: 0, Stdout: "accuracy 0.92\n"},
	)
	var out, errOut bytes.Buffer
	r := &Runner{Exec: exec, Out: &out, ErrOut: &errOut}

	report, err := r.Run(context.Background(), threeCaseSuite())
	require.NoError(t, err)

	assert.Len(t, exec.Calls(), 3, "every case must be invoked exactly once")
	assert.Equal(t, 3, report.Total())
	assert.Equal(t, 2, report.FailedCount())
	assert.Equal(t, 1, report.Results[0].ExitCode)
	assert.Equal(t, 2, report.Results[1].ExitCode)
	assert.Equal(t, 0, report.Results[2].ExitCode)
	assert.Contains(t, report.Results[0].Error, "exit status 1")
}

func TestRunner_LabelPrintedImmediatelyBeforeInvocation(t *testing.T) {
	s := threeCaseSuite()
	exec := testutil.NewScriptedRunner(
		testutil.Outcome{Stdout: "out-0\n"},
		testutil.Outcome{Stdout: "out-1\n"},
		testutil.Outcome{Stdout: "out-2\n"},
	)

	var out bytes.Buffer
	var snapshots []string
	exec.OnRun = func(testutil.Call) { snapshots = append(snapshots, out.String()) }

	r := &Runner{Exec: exec, Out: &out, ErrOut: &out}
	_, err := r.Run(context.Background(), s)
	require.NoError(t, err)

	require.Len(t, snapshots, 3)
	for i, snap := range snapshots {
		assert.True(t, strings.HasSuffix(snap, s.Cases[i].Label+"\n"),
			"at invocation %d the last line written must be the label, got %q", i, snap)
	}

	// Full transcript: each label directly above its case's output.
	want := "Zero R test\nout-0\n" +
		"Unsupervised Equal Width\nout-1\n" +
		"Forward Select\nout-2\n"
	assert.Equal(t, want, out.String())
}

func TestRunner_StartFailureStillPrintsSubsequentLabels(t *testing.T) {
	s := threeCaseSuite()
	exec := testutil.NewScriptedRunner(
		testutil.Outcome{
			Code: execx.CodeStartFailure,
			Err:  errors.New(`exec: "classify": executable file not found in $PATH`),
		},
	)

	var out, errOut bytes.Buffer
	r := &Runner{Exec: exec, Out: &out, ErrOut: &errOut}

	report, err := r.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Len(t, exec.Calls(), 3)
	for _, c := range s.Cases {
		assert.Contains(t, out.String(), c.Label+"\n")
	}
	assert.Contains(t, errOut.String(), `smoke: exec: "classify": executable file not found in $PATH`)
	assert.Equal(t, execx.CodeStartFailure, report.Results[0].ExitCode)
	assert.Equal(t, 0, report.Results[1].ExitCode)
}

func TestRunner_DryRunEchoesWithoutExecuting(t *testing.T) {
	s := threeCaseSuite()
	exec := testutil.NewScriptedRunner()
	var out, errOut bytes.Buffer
	r := &Runner{Exec: exec, Out: &out, ErrOut: &errOut, DryRun: true}

	report, err := r.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Empty(t, exec.Calls(), "dry run must not execute anything")
	assert.True(t, report.DryRun)
	assert.Equal(t, 3, report.Total())
	assert.Equal(t, 0, report.FailedCount())

	want := "Zero R test\n" +
		"+ classify -f weather.csv\n" +
		"Unsupervised Equal Width\n" +
		"+ discretise -a UEW -f weather.csv -A 0,1,2 -o 4\n" +
		"Forward Select\n" +
		"+ featureselect -a FS -f weather.csv -o 1R,3,0.01\n"
	assert.Equal(t, want, out.String())
	assert.Empty(t, errOut.String())
}

func TestRunner_CancellationStopsBetweenCases(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	exec := testutil.NewScriptedRunner()
	exec.OnRun = func(testutil.Call) { cancel() }

	var out, errOut bytes.Buffer
	r := &Runner{Exec: exec, Out: &out, ErrOut: &errOut}

	report, err := r.Run(ctx, threeCaseSuite())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run interrupted after 1 of 3 cases")
	assert.ErrorIs(t, err, context.Canceled)

	assert.True(t, report.Interrupted)
	assert.Len(t, report.Results, 1, "only the case already running completes")
	assert.Len(t, exec.Calls(), 1)
	assert.NotContains(t, out.String(), "Unsupervised Equal Width")
	assert.False(t, report.FinishedAt.IsZero())
}

func TestRunner_BuiltinSuiteSectionCount(t *testing.T) {
	s := suite.Builtin(suite.Paths{})
	exec := testutil.NewScriptedRunner()
	var out bytes.Buffer
	r := &Runner{Exec: exec, Out: &out, ErrOut: &out}

	report, err := r.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 17, report.Total())
	assert.Len(t, exec.Calls(), 17)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 17, "one label line per case and nothing else")
	for i, c := range s.Cases {
		assert.Equal(t, c.Label, lines[i])
	}
}

func TestRunner_RepeatRunsProduceIdenticalSequences(t *testing.T) {
	s := suite.Builtin(suite.Paths{DataDir: "data"})

	runOnce := func() []testutil.Call {
		exec := testutil.NewScriptedRunner()
		r := &Runner{Exec: exec}
		_, err := r.Run(context.Background(), s)
		require.NoError(t, err)
		return exec.Calls()
	}

	first := runOnce()
	second := runOnce()
	assert.Equal(t, first, second)
}

func TestRunner_ChildStreamsKeptSeparate(t *testing.T) {
	exec := testutil.NewScriptedRunner(
		testutil.Outcome{Stdout: "stdout line\n", Stderr: "stderr line\n"},
	)
	var out, errOut bytes.Buffer
	r := &Runner{Exec: exec, Out: &out, ErrOut: &errOut}

	_, err := r.Run(context.Background(), suite.Suite{
		Name:  "one",
		Cases: []suite.Case{{Label: "only", Command: "classify"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "only\nstdout line\n", out.String())
	assert.Equal(t, "stderr line\n", errOut.String())
}

func TestUUIDv7Generator_Format(t *testing.T) {
	gen := UUIDv7Generator{}

	first := gen.Generate()
	second := gen.Generate()

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}
