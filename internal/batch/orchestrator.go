package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"weft/internal/linker"
	"weft/internal/logging"
	"weft/internal/sanitize"
)

// lockFileName guards a library root against concurrent batch runs.
const lockFileName = ".weft.lock"

// Orchestrator fans a batch of files out across a bounded worker pool and
// aggregates per-file outcomes. A single file's failure never aborts the
// rest of the batch.
type Orchestrator struct {
	engine *linker.Engine
	logger *slog.Logger
}

// New constructs an orchestrator around the given link engine. A nil logger
// disables logging.
func New(engine *linker.Engine, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		engine: engine,
		logger: logger.With(logging.String(logging.FieldComponent, "batch")),
	}
}

type outcome struct {
	source string
	err    error
}

// Run links every requested source into the output directory and returns the
// aggregated result. The only batch-fatal conditions are an unusable output
// directory and a lock held by another run; everything after that is recorded
// per file. Cancelling ctx stops dispatching new files; files cancelled
// before dispatch are reported as failures so every input appears in the
// result exactly once.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{RunID: uuid.NewString(), Started: time.Now()}
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, o.logger)

	// The engine sanitizes every full target path, so the directory we
	// create, lock, and probe has to be the sanitized one or the lock and
	// the links end up in different trees.
	req.OutputDir = sanitize.Path(req.OutputDir)

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", req.OutputDir, err)
	}

	lock := flock.New(filepath.Join(req.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run is already writing to %s", req.OutputDir)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if len(req.Sources) > 0 {
		capability := CheckCapability(filepath.Dir(req.Sources[0]), req.OutputDir)
		if !capability.SameFilesystem {
			logger.Warn(
				"source and library appear to be on different filesystems",
				logging.String("output_dir", req.OutputDir),
			)
		}
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if len(req.Sources) > 0 && workers > len(req.Sources) {
		workers = len(req.Sources)
	}

	logger.Info(
		"starting batch",
		logging.Int("files", len(req.Sources)),
		logging.Int("workers", workers),
		logging.String("output_dir", req.OutputDir),
	)

	jobs := make(chan string)
	outcomes := make(chan outcome, len(req.Sources))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for source := range jobs {
				outcomes <- outcome{source: source, err: o.linkOne(logger, source, req)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, source := range req.Sources {
			select {
			case <-ctx.Done():
				outcomes <- outcome{
					source: source,
					err:    fmt.Errorf("cancelled before dispatch: %w", ctx.Err()),
				}
			case jobs <- source:
			}
		}
	}()

	for range req.Sources {
		oc := <-outcomes
		if oc.err != nil {
			result.Failed = append(result.Failed, Failure{Source: oc.source, Message: oc.err.Error()})
			logger.Warn(
				"file failed",
				logging.String(logging.FieldSource, oc.source),
				logging.String("kind", linker.Kind(oc.err)),
				logging.Error(oc.err),
			)
			continue
		}
		result.Processed = append(result.Processed, oc.source)
	}
	wg.Wait()

	result.Duration = time.Since(result.Started)
	result.finalize(len(req.Sources))
	logger.Info(
		"batch finished",
		logging.String("summary", result.Summary),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

// linkOne resolves one source's destination and applies the conflict
// strategy. An empty final path means the skip strategy left an existing
// target in place, which still counts as handled.
func (o *Orchestrator) linkOne(logger *slog.Logger, source string, req Request) error {
	target := filepath.Join(req.OutputDir, planRelative(source, req))
	final, err := o.engine.Resolve(source, target, req.Strategy)
	if err != nil {
		return err
	}
	if final != "" {
		logger.Debug(
			"file linked",
			logging.String(logging.FieldSource, source),
			logging.String(logging.FieldTarget, final),
		)
	}
	return nil
}
