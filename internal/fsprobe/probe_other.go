//go:build !unix && !windows

package fsprobe

func sameFilesystem(source, targetDir string) bool {
	return true
}

func writable(dir string) error {
	return nil
}
