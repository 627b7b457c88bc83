package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"weft/internal/linker"
)

func newTestOrchestrator() *Orchestrator {
	return New(linker.New(nil, 0), nil)
}

func writeSources(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("payload for "+name), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestRunLinksAllFiles(t *testing.T) {
	dir := t.TempDir()
	sources := writeSources(t, dir, "a.mkv", "b.mkv", "c.srt")
	out := filepath.Join(dir, "library")

	result, err := newTestOrchestrator().Run(context.Background(), Request{
		Sources:   sources,
		OutputDir: out,
		Strategy:  linker.StrategySkip,
		Workers:   2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success {
		t.Fatalf("batch failed: %+v", result.Failed)
	}
	if len(result.Processed)+len(result.Failed) != len(sources) {
		t.Fatalf("count invariant broken: %d + %d != %d",
			len(result.Processed), len(result.Failed), len(sources))
	}
	for _, name := range []string{"a.mkv", "b.mkv", "c.srt"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("%s not linked: %v", name, err)
		}
	}
	if result.RunID == "" {
		t.Fatal("run ID missing")
	}
}

func TestRunIsolatesSingleFailure(t *testing.T) {
	dir := t.TempDir()
	sources := writeSources(t, dir, "one.mkv", "two.mkv", "three.mkv")
	out := filepath.Join(dir, "library")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	// A regular file where file two's parent directory should go makes
	// directory creation fail for that file only.
	if err := os.WriteFile(filepath.Join(out, "blocked"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := newTestOrchestrator().Run(context.Background(), Request{
		Sources:   sources,
		OutputDir: out,
		RenameMap: map[string]string{
			sources[1]: "blocked/two.mkv",
		},
		Strategy: linker.StrategySkip,
		Workers:  3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Success {
		t.Fatal("expected a failed batch")
	}
	if len(result.Processed) != 2 || len(result.Failed) != 1 {
		t.Fatalf("got %d processed, %d failed", len(result.Processed), len(result.Failed))
	}
	if result.Failed[0].Source != sources[1] {
		t.Fatalf("wrong file failed: %s", result.Failed[0].Source)
	}
	if result.Failed[0].Message == "" {
		t.Fatal("failure message missing")
	}
	if !strings.Contains(result.Summary, "3 total, 2 succeeded, 1 failed") {
		t.Fatalf("summary: %q", result.Summary)
	}
}

func TestRunSanitizesOutputDir(t *testing.T) {
	dir := t.TempDir()
	sources := writeSources(t, dir, "a.mkv")

	result, err := newTestOrchestrator().Run(context.Background(), Request{
		Sources:   sources,
		OutputDir: filepath.Join(dir, "lib:rary"),
		Strategy:  linker.StrategySkip,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success {
		t.Fatalf("batch failed: %+v", result.Failed)
	}

	// The linked file, the lock file, and the directory itself all live in
	// the sanitized tree; the literal directory is never created.
	if _, err := os.Stat(filepath.Join(dir, "lib_rary", "a.mkv")); err != nil {
		t.Fatalf("file not linked into sanitized directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "lib_rary", lockFileName)); err != nil {
		t.Fatalf("lock file missing from sanitized directory: %v", err)
	}
	if _, err := os.Lstat(filepath.Join(dir, "lib:rary")); !os.IsNotExist(err) {
		t.Fatalf("literal output directory was created: %v", err)
	}
}

func TestRunSkipStrategyCountsExistingAsHandled(t *testing.T) {
	dir := t.TempDir()
	sources := writeSources(t, dir, "dup.mkv")
	out := filepath.Join(dir, "library")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(out, "dup.mkv"), []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := newTestOrchestrator().Run(context.Background(), Request{
		Sources:   sources,
		OutputDir: out,
		Strategy:  linker.StrategySkip,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success || len(result.Processed) != 1 {
		t.Fatalf("skip should count as handled: %+v", result)
	}
	got, err := os.ReadFile(filepath.Join(out, "dup.mkv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "original" {
		t.Fatalf("existing target overwritten: %q", got)
	}
}

func TestRunRefusesLockedLibrary(t *testing.T) {
	dir := t.TempDir()
	sources := writeSources(t, dir, "a.mkv")
	out := filepath.Join(dir, "library")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}

	held := flock.New(filepath.Join(out, lockFileName))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("could not pre-acquire lock: %v", err)
	}
	defer func() {
		_ = held.Unlock()
	}()

	_, err = newTestOrchestrator().Run(context.Background(), Request{
		Sources:   sources,
		OutputDir: out,
		Strategy:  linker.StrategySkip,
	})
	if err == nil || !strings.Contains(err.Error(), "another run") {
		t.Fatalf("expected lock refusal, got %v", err)
	}
}

func TestRunCancelledContextKeepsCountInvariant(t *testing.T) {
	dir := t.TempDir()
	sources := writeSources(t, dir, "a.mkv", "b.mkv", "c.mkv", "d.mkv")
	out := filepath.Join(dir, "library")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newTestOrchestrator().Run(ctx, Request{
		Sources:   sources,
		OutputDir: out,
		Strategy:  linker.StrategySkip,
		Workers:   1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Processed)+len(result.Failed) != len(sources) {
		t.Fatalf("count invariant broken: %d + %d != %d",
			len(result.Processed), len(result.Failed), len(sources))
	}
}

func TestRunEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	result, err := newTestOrchestrator().Run(context.Background(), Request{
		OutputDir: filepath.Join(dir, "library"),
		Strategy:  linker.StrategySkip,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success || result.Summary != "0 total, 0 succeeded, 0 failed" {
		t.Fatalf("empty batch result: %+v", result)
	}
}

func TestCheckCapabilitySameTree(t *testing.T) {
	dir := t.TempDir()
	capability := CheckCapability(dir, dir)
	if !capability.OK() {
		t.Fatalf("same tree should be capable: %s", capability)
	}
}
