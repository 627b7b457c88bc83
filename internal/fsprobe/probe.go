package fsprobe

// DefaultPathBudget matches the legacy Windows MAX_PATH limit. It applies on
// every platform so libraries stay portable across filesystems; raise it via
// configuration on long-path-aware systems.
const DefaultPathBudget = 260

// ExceedsBudget reports whether the full path string is longer than budget.
// A non-positive budget falls back to DefaultPathBudget.
func ExceedsBudget(path string, budget int) bool {
	if budget <= 0 {
		budget = DefaultPathBudget
	}
	return len(path) > budget
}

// SameFilesystem reports whether source and targetDir live on the same
// device, predicting whether a hardlink between them can succeed. When the
// answer cannot be determined the probe assumes they do.
func SameFilesystem(source, targetDir string) bool {
	return sameFilesystem(source, targetDir)
}

// Writable returns an error when dir exists and denies writes. A missing dir
// is fine: it will be created before linking.
func Writable(dir string) error {
	return writable(dir)
}
