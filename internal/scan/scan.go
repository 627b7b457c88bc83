// Package scan walks a source tree collecting the media files a batch run
// can operate on.
package scan

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"weft/internal/logging"
)

// Kind classifies a scanned file.
type Kind string

const (
	KindVideo    Kind = "video"
	KindSubtitle Kind = "subtitle"
)

var videoExtensions = map[string]struct{}{
	".mkv": {},
	".mp4": {},
	".avi": {},
	".mov": {},
}

var subtitleExtensions = map[string]struct{}{
	".ass": {},
	".srt": {},
	".vtt": {},
}

// File describes one media file found under the scanned root.
type File struct {
	Path string
	Name string
	Size int64
	Kind Kind
}

// Directory walks root recursively and returns every video and subtitle
// file, sorted by path. Unreadable entries are logged and skipped; only a
// failure to read the root itself is an error.
func Directory(root string, logger *slog.Logger) ([]File, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldComponent, "scan"))

	var files []File
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logger.Warn("skipping unreadable entry",
				logging.String("path", path),
				logging.Error(walkErr),
			)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		kind, ok := classify(entry.Name())
		if !ok {
			return nil
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			logger.Warn("skipping unreadable entry",
				logging.String("path", path),
				logging.Error(infoErr),
			)
			return nil
		}
		files = append(files, File{
			Path: path,
			Name: entry.Name(),
			Size: info.Size(),
			Kind: kind,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func classify(name string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo, true
	}
	if _, ok := subtitleExtensions[ext]; ok {
		return KindSubtitle, true
	}
	return "", false
}

// Paths returns just the file paths, in scan order.
func Paths(files []File) []string {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.Path)
	}
	return paths
}
