package linker

import "errors"

// One sentinel per terminal failure kind. Batch aggregation and the history
// store classify errors with errors.Is against these; a generic failure that
// matches none of them is an I/O error carrying its underlying cause.
var (
	ErrSourceNotFound       = errors.New("source file does not exist")
	ErrTargetExists         = errors.New("target file already exists")
	ErrDifferentFilesystems = errors.New("source and target are on different filesystems, cannot hardlink")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrPathTooLong          = errors.New("target path too long")
	ErrUnsupportedStrategy  = errors.New("unsupported conflict strategy")
	ErrNoUniqueName         = errors.New("no unique rename candidate available")
)

// Kind returns a stable identifier for the failure class of err, or "ok" for
// nil. Used for history rows and structured log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSourceNotFound):
		return "source_not_found"
	case errors.Is(err, ErrTargetExists):
		return "target_exists"
	case errors.Is(err, ErrDifferentFilesystems):
		return "different_filesystems"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrPathTooLong):
		return "path_too_long"
	case errors.Is(err, ErrUnsupportedStrategy):
		return "unsupported_strategy"
	case errors.Is(err, ErrNoUniqueName):
		return "no_unique_name"
	default:
		return "io_error"
	}
}
