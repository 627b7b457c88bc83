package linker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"weft/internal/logging"
	"weft/internal/sanitize"
)

// Conflict strategy names accepted by Resolve.
const (
	StrategySkip      = "skip"
	StrategyOverwrite = "overwrite"
	StrategyRename    = "rename"
)

// maxRenameAttempts caps the rename probe so a pathological directory cannot
// spin forever.
const maxRenameAttempts = 100

// Resolve links source into target, applying strategy when the sanitized
// destination already exists. It returns the final destination path, or ""
// when the skip strategy left an existing target in place. Unknown strategy
// names fail with ErrUnsupportedStrategy; there is no silent default.
func (e *Engine) Resolve(source, target, strategy string) (string, error) {
	sanitized := sanitize.Path(target)

	if _, err := os.Lstat(sanitized); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return e.Link(source, sanitized)
		}
		return "", fmt.Errorf("stat target %s: %w", sanitized, err)
	}

	switch strategy {
	case StrategySkip:
		e.logger.Info(
			"skipping existing target",
			logging.String(logging.FieldSource, source),
			logging.String(logging.FieldTarget, sanitized),
		)
		return "", nil
	case StrategyOverwrite:
		if err := os.Remove(sanitized); err != nil {
			return "", fmt.Errorf("remove existing target %s: %w", sanitized, err)
		}
		e.logger.Info(
			"overwriting existing target",
			logging.String(logging.FieldTarget, sanitized),
		)
		return e.Link(source, sanitized)
	case StrategyRename:
		candidate, err := nextFreeName(sanitized)
		if err != nil {
			return "", err
		}
		e.logger.Info(
			"renaming to avoid collision",
			logging.String(logging.FieldTarget, sanitized),
			logging.String("renamed_to", filepath.Base(candidate)),
		)
		return e.Link(source, candidate)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStrategy, strategy)
	}
}

// nextFreeName probes name_1.ext, name_2.ext, ... until an unused candidate
// is found. Files without an extension probe name_1, name_2, ...
func nextFreeName(target string) (string, error) {
	ext := filepath.Ext(target)
	stem := target[:len(target)-len(ext)]

	for attempt := 1; attempt <= maxRenameAttempts; attempt++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, attempt, ext)
		if _, err := os.Lstat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return candidate, nil
			}
			return "", fmt.Errorf("stat rename candidate %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("%w: tried %d candidates for %s", ErrNoUniqueName, maxRenameAttempts, target)
}
