//go:build unix

package fsprobe

import (
	"errors"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

func sameFilesystem(source, targetDir string) bool {
	var src, dst unix.Stat_t
	if err := unix.Stat(source, &src); err != nil {
		return true
	}
	if err := unix.Stat(targetDir, &dst); err != nil {
		return true
	}
	return src.Dev == dst.Dev
}

func writable(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return &fs.PathError{Op: "access", Path: dir, Err: err}
	}
	return nil
}
