//go:build windows

package fsprobe

import (
	"path/filepath"
	"strings"
)

// Drive letter equality is the closest practical device-identity check on
// Windows; mounted volumes on the same letter are indistinguishable here.
func sameFilesystem(source, targetDir string) bool {
	srcVol := filepath.VolumeName(source)
	dstVol := filepath.VolumeName(targetDir)
	if srcVol == "" || dstVol == "" {
		return true
	}
	return strings.EqualFold(srcVol, dstVol)
}

// Windows ACLs are not reflected in the mode bits, so writability cannot be
// verified cheaply; the link attempt reports the real answer.
func writable(dir string) error {
	return nil
}
