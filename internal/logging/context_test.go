package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	runID, ok := RunIDFromContext(ctx)
	if !ok || runID != "run-123" {
		t.Fatalf("round trip: got %q, %v", runID, ok)
	}
}

func TestRunIDFromContextMissing(t *testing.T) {
	if _, ok := RunIDFromContext(context.Background()); ok {
		t.Fatal("bare context should carry no run ID")
	}
	ctx := WithRunID(context.Background(), "")
	if _, ok := RunIDFromContext(ctx); ok {
		t.Fatal("empty run ID should not be stored")
	}
}

func TestWithContextAttachesRunID(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, level, false))

	ctx := WithRunID(context.Background(), "run-123")
	WithContext(ctx, logger).Info("linking")

	out := buf.String()
	if !strings.Contains(out, `"run_id":"run-123"`) {
		t.Fatalf("run_id field missing from output: %q", out)
	}
}

func TestWithContextWithoutFields(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, level, false))

	WithContext(context.Background(), logger).Info("linking")

	if strings.Contains(buf.String(), "run_id") {
		t.Fatalf("unexpected run_id field: %q", buf.String())
	}
}
