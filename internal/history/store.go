package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"weft/internal/batch"
)

// Store persists batch run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded batch run.
type Run struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	OutputDir string
	Strategy  string
	Total     int
	Succeeded int
	Failed    int
}

// FileOutcome is one file's recorded result within a run.
type FileOutcome struct {
	Source    string
	Succeeded bool
	Message   string
}

// Open initializes or connects to the history database at path and verifies
// the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun stores a finished batch result: one run row plus one row per
// input file.
func (s *Store) RecordRun(ctx context.Context, result *batch.Result, outputDir, strategy string) error {
	if result == nil {
		return fmt.Errorf("result is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	total := len(result.Processed) + len(result.Failed)
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, started_at, duration_ms, output_dir, strategy,
            total, succeeded, failed
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.Started.UnixNano(),
		result.Duration.Milliseconds(),
		outputDir,
		strategy,
		total,
		len(result.Processed),
		len(result.Failed),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, source := range result.Processed {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO run_files (run_id, source_path, succeeded, message) VALUES (?, ?, 1, NULL)`,
			result.RunID, source,
		); err != nil {
			return fmt.Errorf("insert processed file: %w", err)
		}
	}
	for _, failure := range result.Failed {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO run_files (run_id, source_path, succeeded, message) VALUES (?, ?, 0, ?)`,
			result.RunID, failure.Source, failure.Message,
		); err != nil {
			return fmt.Errorf("insert failed file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// Runs lists recorded runs, newest first, capped at limit (<=0 means all).
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, duration_ms, output_dir, strategy, total, succeeded, failed
        FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedNS int64
		var durationMS int64
		if err := rows.Scan(
			&run.ID, &startedNS, &durationMS, &run.OutputDir, &run.Strategy,
			&run.Total, &run.Succeeded, &run.Failed,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = time.Unix(0, startedNS).UTC()
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Files lists the per-file outcomes recorded for one run, failures first.
func (s *Store) Files(ctx context.Context, runID string) ([]FileOutcome, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT source_path, succeeded, message FROM run_files
            WHERE run_id = ? ORDER BY succeeded ASC, source_path ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var outcomes []FileOutcome
	for rows.Next() {
		var outcome FileOutcome
		var message sql.NullString
		if err := rows.Scan(&outcome.Source, &outcome.Succeeded, &message); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		outcome.Message = message.String
		outcomes = append(outcomes, outcome)
	}
	return outcomes, rows.Err()
}
