package logging

import (
	"log/slog"
	"testing"
)

func TestRingCapturesRecords(t *testing.T) {
	ring := NewRing(10)
	logger := slog.New(slog.Handler(ring)).With(String(FieldComponent, "linker"))

	logger.Info("link created")
	logger.Warn("target existed")

	entries := ring.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "link created" || entries[0].Component != "linker" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Level != slog.LevelWarn {
		t.Fatalf("expected warn level, got %v", entries[1].Level)
	}
}

func TestRingEvictsOldestAtCapacity(t *testing.T) {
	ring := NewRing(3)
	logger := slog.New(slog.Handler(ring))

	for _, msg := range []string{"one", "two", "three", "four", "five"} {
		logger.Info(msg)
	}

	entries := ring.Snapshot()
	if len(entries) != 3 {
		t.Fatalf("expected capacity-bounded snapshot, got %d entries", len(entries))
	}
	want := []string{"three", "four", "five"}
	for i, entry := range entries {
		if entry.Message != want[i] {
			t.Fatalf("entry %d: got %q, want %q", i, entry.Message, want[i])
		}
	}
	if ring.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", ring.Len())
	}
}

func TestRingSharedAcrossWithAttrs(t *testing.T) {
	ring := NewRing(10)
	base := slog.New(slog.Handler(ring))
	child := base.With(String(FieldComponent, "batch"))

	base.Info("parent")
	child.Info("child")

	entries := ring.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("expected records from both loggers, got %d", len(entries))
	}
	if entries[1].Component != "batch" {
		t.Fatalf("child component not captured: %+v", entries[1])
	}
}
