package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"weft/internal/batch"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func sampleResult(id string) *batch.Result {
	return &batch.Result{
		RunID:     id,
		Success:   false,
		Summary:   "3 total, 2 succeeded, 1 failed",
		Processed: []string{"/src/a.mkv", "/src/c.mkv"},
		Failed: []batch.Failure{
			{Source: "/src/b.mkv", Message: "permission denied"},
		},
		Started:  time.Now().UTC(),
		Duration: 125 * time.Millisecond,
	}
}

func TestRecordRunRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.RecordRun(ctx, sampleResult("run-1"), "/library", "skip"); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Runs(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	run := runs[0]
	if run.ID != "run-1" || run.Total != 3 || run.Succeeded != 2 || run.Failed != 1 {
		t.Fatalf("run counts: %+v", run)
	}
	if run.OutputDir != "/library" || run.Strategy != "skip" {
		t.Fatalf("run metadata: %+v", run)
	}
	if run.Duration != 125*time.Millisecond {
		t.Fatalf("duration: %v", run.Duration)
	}

	files, err := store.Files(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d file rows, want 3", len(files))
	}
	// Failures sort first.
	if files[0].Succeeded || files[0].Source != "/src/b.mkv" || files[0].Message != "permission denied" {
		t.Fatalf("failure row: %+v", files[0])
	}
	for _, outcome := range files[1:] {
		if !outcome.Succeeded || outcome.Message != "" {
			t.Fatalf("success row: %+v", outcome)
		}
	}
}

func TestRunsNewestFirstWithLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := sampleResult("run-old")
	older.Started = time.Now().UTC().Add(-time.Hour)
	if err := store.RecordRun(ctx, older, "/library", "skip"); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordRun(ctx, sampleResult("run-new"), "/library", "rename"); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Runs(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != "run-new" {
		t.Fatalf("limit/order wrong: %+v", runs)
	}
}

func TestRunsOrderStableWithinOneSecond(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// A whole-second timestamp and a fractional one in the same second;
	// ordering must follow actual time, not its rendering.
	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	whole := sampleResult("run-whole")
	whole.Started = base
	fractional := sampleResult("run-fractional")
	fractional.Started = base.Add(500 * time.Millisecond)

	if err := store.RecordRun(ctx, fractional, "/library", "skip"); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordRun(ctx, whole, "/library", "skip"); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Runs(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != "run-fractional" || runs[1].ID != "run-whole" {
		t.Fatalf("run order: %+v", runs)
	}
	if !runs[0].StartedAt.Equal(base.Add(500 * time.Millisecond)) {
		t.Fatalf("timestamp round trip: %v", runs[0].StartedAt)
	}
}

func TestOpenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.RecordRun(context.Background(), sampleResult("run-1"), "/library", "skip"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.Runs(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("rows lost across reopen: %d", len(runs))
	}
}
