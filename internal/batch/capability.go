package batch

import (
	"fmt"

	"weft/internal/fsprobe"
)

// Capability reports whether hardlinking from a source directory into the
// library root can be expected to succeed. It is a prediction; the link
// engine still verifies each file.
type Capability struct {
	SameFilesystem bool
	WritableErr    error
}

// OK reports whether no capability problem was detected.
func (c Capability) OK() bool {
	return c.SameFilesystem && c.WritableErr == nil
}

// String renders a short human-readable verdict.
func (c Capability) String() string {
	switch {
	case !c.SameFilesystem:
		return "source and library are on different filesystems; hardlinks will not work"
	case c.WritableErr != nil:
		return fmt.Sprintf("library is not writable: %v", c.WritableErr)
	default:
		return "hardlinks supported"
	}
}

// CheckCapability probes device identity and library writability between a
// source directory and the library root.
func CheckCapability(sourceDir, outputDir string) Capability {
	return Capability{
		SameFilesystem: fsprobe.SameFilesystem(sourceDir, outputDir),
		WritableErr:    fsprobe.Writable(outputDir),
	}
}
