package linker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"weft/internal/fileutil"
	"weft/internal/fsprobe"
	"weft/internal/logging"
	"weft/internal/sanitize"
)

// Replaceable function pointers let tests simulate cross-device and
// unsupported-link conditions deterministically.
var (
	sameFilesystem = fsprobe.SameFilesystem
	linkFile       = os.Link
)

// Engine creates hardlinks into the library tree. Safe for concurrent use;
// it holds no mutable state beyond its logger.
type Engine struct {
	logger  *slog.Logger
	pathMax int
}

// New constructs a link engine. pathMax caps the full destination path
// length; non-positive values use the default budget.
func New(logger *slog.Logger, pathMax int) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	if pathMax <= 0 {
		pathMax = fsprobe.DefaultPathBudget
	}
	return &Engine{
		logger:  logger.With(logging.String(logging.FieldComponent, "linker")),
		pathMax: pathMax,
	}
}

// Link creates target as a hardlink of source and returns the final
// destination path, which can differ from target after sanitization or
// path shortening. The target is always sanitized, even when the caller
// supplies a literal path.
func (e *Engine) Link(source, target string) (string, error) {
	if _, err := os.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, source)
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("%w: stat %s", ErrPermissionDenied, source)
		}
		return "", fmt.Errorf("stat source %s: %w", source, err)
	}

	return e.link(source, sanitize.Path(target), false)
}

func (e *Engine) link(source, target string, shortened bool) (string, error) {
	if _, err := os.Lstat(target); err == nil {
		return "", fmt.Errorf("%w: %s", ErrTargetExists, target)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat target %s: %w", target, err)
	}

	// Concurrent tasks may share a new parent; MkdirAll treats an existing
	// directory as success, which is exactly the race semantics we need.
	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("%w: create directory %s", ErrPermissionDenied, parent)
		}
		return "", fmt.Errorf("create directory %s: %w", parent, err)
	}

	if !sameFilesystem(source, parent) {
		return "", fmt.Errorf("%w: %s -> %s", ErrDifferentFilesystems, source, target)
	}

	if err := fsprobe.Writable(parent); err != nil {
		return "", fmt.Errorf("%w: %s", ErrPermissionDenied, parent)
	}

	if fsprobe.ExceedsBudget(target, e.pathMax) {
		if shortened {
			return "", fmt.Errorf("%w: %d characters after shortening (budget %d)", ErrPathTooLong, len(target), e.pathMax)
		}
		short, ok := shortenFilename(target, e.pathMax)
		if !ok {
			return "", fmt.Errorf("%w: %d characters (budget %d)", ErrPathTooLong, len(target), e.pathMax)
		}
		e.logger.Warn(
			"target path over budget, retrying with shortened filename",
			logging.String(logging.FieldTarget, target),
			logging.Int("length", len(target)),
			logging.Int("budget", e.pathMax),
		)
		return e.link(source, short, true)
	}

	if err := linkFile(source, target); err != nil {
		return e.linkFallback(source, target, err)
	}

	e.logger.Info(
		"hardlink created",
		logging.String(logging.FieldSource, source),
		logging.String(logging.FieldTarget, target),
	)
	return target, nil
}

// linkFallback classifies a failed link syscall. Errors meaning the link
// itself is unsupported for this path shape degrade to a verified
// byte-for-byte copy; everything else maps to a specific failure kind.
func (e *Engine) linkFallback(source, target string, linkErr error) (string, error) {
	switch {
	case errors.Is(linkErr, syscall.EXDEV):
		return "", fmt.Errorf("%w: %s -> %s", ErrDifferentFilesystems, source, target)
	case errors.Is(linkErr, fs.ErrExist):
		return "", fmt.Errorf("%w: %s", ErrTargetExists, target)
	case errors.Is(linkErr, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	case errors.Is(linkErr, fs.ErrPermission):
		return "", fmt.Errorf("%w: link %s", ErrPermissionDenied, target)
	case errors.Is(linkErr, syscall.EINVAL):
		e.logger.Warn(
			"hardlink unsupported for this path, copying instead",
			logging.String(logging.FieldSource, source),
			logging.String(logging.FieldTarget, target),
			logging.Error(linkErr),
		)
		if err := fileutil.CopyFileVerified(source, target); err != nil {
			return "", fmt.Errorf("copy fallback: %w", err)
		}
		e.logger.Info(
			"copy fallback completed",
			logging.String(logging.FieldSource, source),
			logging.String(logging.FieldTarget, target),
		)
		return target, nil
	default:
		return "", fmt.Errorf("create hardlink: %w", linkErr)
	}
}

// shortenFilename keeps the parent directory and truncates the filename so
// the full path fits the budget, preserving the extension. Reports false
// when the parent alone leaves no room for a name.
func shortenFilename(target string, budget int) (string, bool) {
	parent := filepath.Dir(target)
	ext := filepath.Ext(target)
	base := filepath.Base(target)
	stem := base[:len(base)-len(ext)]

	allowed := budget - len(parent) - len(string(filepath.Separator)) - len(ext)
	if allowed <= 0 {
		return "", false
	}
	shortStem := sanitize.TruncateName(stem, allowed)
	short := filepath.Join(parent, shortStem+ext)
	if len(short) >= len(target) {
		return "", false
	}
	return short, true
}
