package journal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetRun_RoundTrip(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	want := sampleReport("run-1", start)

	if err := j.RecordRun(ctx, want); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	got, err := j.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}

	if got.RunID != want.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, want.RunID)
	}
	if got.Suite != want.Suite {
		t.Errorf("Suite = %q, want %q", got.Suite, want.Suite)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
	}
	if !got.FinishedAt.Equal(want.FinishedAt) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, want.FinishedAt)
	}
	if len(got.Results) != len(want.Results) {
		t.Fatalf("Results len = %d, want %d", len(got.Results), len(want.Results))
	}

	for i := range want.Results {
		w, g := want.Results[i], got.Results[i]
		if g.Seq != w.Seq || g.Label != w.Label || g.Command != w.Command {
			t.Errorf("result %d: got %+v, want %+v", i, g, w)
		}
		if g.ExitCode != w.ExitCode || g.Error != w.Error || g.DurationMS != w.DurationMS {
			t.Errorf("result %d outcome: got %+v, want %+v", i, g, w)
		}
		if len(g.Args) != len(w.Args) {
			t.Fatalf("result %d args len = %d, want %d", i, len(g.Args), len(w.Args))
		}
		for k := range w.Args {
			if g.Args[k] != w.Args[k] {
				t.Errorf("result %d args[%d] = %q, want %q", i, k, g.Args[k], w.Args[k])
			}
		}
	}
}

func TestGetRun_CaseOrderBySeq(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	// Insert rows out of order; reads must come back by seq.
	report := sampleReport("run-1", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	report.Results[0], report.Results[1] = report.Results[1], report.Results[0]

	if err := j.RecordRun(ctx, report); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	got, err := j.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}

	for i, res := range got.Results {
		if res.Seq != i {
			t.Errorf("result %d has seq %d, want %d", i, res.Seq, i)
		}
	}
}

func TestGetRun_NotFound(t *testing.T) {
	j := openTestJournal(t)

	_, err := j.GetRun(context.Background(), "no-such-run")
	if err == nil {
		t.Fatal("expected error for missing run, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-old", "run-mid", "run-new"} {
		report := sampleReport(id, base.Add(time.Duration(i)*time.Minute))
		if err := j.RecordRun(ctx, report); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", id, err)
		}
	}

	runs, err := j.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("ListRuns() returned %d runs, want 3", len(runs))
	}
	wantOrder := []string{"run-new", "run-mid", "run-old"}
	for i, want := range wantOrder {
		if runs[i].ID != want {
			t.Errorf("runs[%d].ID = %q, want %q", i, runs[i].ID, want)
		}
	}
}

func TestListRuns_Limit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := j.RecordRun(ctx, sampleReport(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", id, err)
		}
	}

	runs, err := j.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("ListRuns(limit=2) returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-c" {
		t.Errorf("runs[0].ID = %q, want run-c", runs[0].ID)
	}
}

func TestListRuns_Empty(t *testing.T) {
	j := openTestJournal(t)

	runs, err := j.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if runs == nil {
		t.Error("ListRuns() returned nil, want empty slice")
	}
	if len(runs) != 0 {
		t.Errorf("ListRuns() returned %d runs, want 0", len(runs))
	}
}

func TestListRuns_SummaryFields(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := j.RecordRun(ctx, sampleReport("run-1", start)); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := j.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ListRuns() returned %d runs, want 1", len(runs))
	}

	s := runs[0]
	if s.Suite != "toolkit" {
		t.Errorf("Suite = %q, want toolkit", s.Suite)
	}
	if s.Total != 2 || s.Failed != 1 {
		t.Errorf("Total/Failed = %d/%d, want 2/1", s.Total, s.Failed)
	}
	if !s.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", s.StartedAt, start)
	}
	if s.DryRun || s.Interrupted {
		t.Errorf("flags = dry_run=%v interrupted=%v, want false/false", s.DryRun, s.Interrupted)
	}
}
