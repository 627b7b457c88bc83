package linker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveMissingTargetLinksDirectly(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "movie.mkv")
	target := filepath.Join(dir, "library", "movie.mkv")

	final, err := New(nil, 0).Resolve(source, target, StrategySkip)
	if err != nil {
		t.Fatal(err)
	}
	if final != target {
		t.Fatalf("final path: got %q, want %q", final, target)
	}
	assertLinked(t, source, final)
}

func TestResolveSkipLeavesTargetAlone(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "movie.mkv")
	target := writeSource(t, dir, "existing.mkv")

	final, err := New(nil, 0).Resolve(source, target, StrategySkip)
	if err != nil {
		t.Fatal(err)
	}
	if final != "" {
		t.Fatalf("skip should return empty path, got %q", final)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload for existing.mkv" {
		t.Fatalf("existing target was modified: %q", got)
	}
}

func TestResolveOverwriteRelinks(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "movie.mkv")
	target := writeSource(t, dir, "existing.mkv")

	final, err := New(nil, 0).Resolve(source, target, StrategyOverwrite)
	if err != nil {
		t.Fatal(err)
	}
	if final != target {
		t.Fatalf("final path: got %q, want %q", final, target)
	}
	assertLinked(t, source, final)
}

func TestResolveRenameAppendsCounter(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "source.mkv")
	target := writeSource(t, dir, "movie.mkv")

	final, err := New(nil, 0).Resolve(source, target, StrategyRename)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "movie_1.mkv")
	if final != want {
		t.Fatalf("renamed path: got %q, want %q", final, want)
	}
	assertLinked(t, source, final)
}

func TestResolveRenameIncrementsPastOccupiedNames(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "source.mkv")
	target := writeSource(t, dir, "movie.mkv")
	writeSource(t, dir, "movie_1.mkv")
	writeSource(t, dir, "movie_2.mkv")

	final, err := New(nil, 0).Resolve(source, target, StrategyRename)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "movie_3.mkv")
	if final != want {
		t.Fatalf("renamed path: got %q, want %q", final, want)
	}
	assertLinked(t, source, final)
}

func TestResolveRenameWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "source.mkv")
	target := writeSource(t, dir, "README")

	final, err := New(nil, 0).Resolve(source, target, StrategyRename)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "README_1")
	if final != want {
		t.Fatalf("renamed path: got %q, want %q", final, want)
	}
	assertLinked(t, source, final)
}

func TestResolveRenameExhaustsCandidates(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "source.mkv")
	target := writeSource(t, dir, "movie.mkv")
	for i := 1; i <= maxRenameAttempts; i++ {
		writeSource(t, dir, fmt.Sprintf("movie_%d.mkv", i))
	}

	_, err := New(nil, 0).Resolve(source, target, StrategyRename)
	if !errors.Is(err, ErrNoUniqueName) {
		t.Fatalf("expected ErrNoUniqueName, got %v", err)
	}
}

func TestResolveUnknownStrategy(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "source.mkv")
	target := writeSource(t, dir, "movie.mkv")

	_, err := New(nil, 0).Resolve(source, target, "merge")
	if !errors.Is(err, ErrUnsupportedStrategy) {
		t.Fatalf("expected ErrUnsupportedStrategy, got %v", err)
	}
}
