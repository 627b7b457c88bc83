package batch

import (
	"path/filepath"
	"strings"

	"weft/internal/sanitize"
)

// Request describes one batch run: the files to link, where the library
// lives, and how destination names are derived.
type Request struct {
	// Sources lists absolute paths of the files to link into the library.
	Sources []string
	// OutputDir is the library root; it is created if absent.
	OutputDir string
	// RenameMap optionally maps a source path to its desired relative
	// target. Entries use forward slashes regardless of platform and may
	// carry nested structure such as "show/Season 2/episode.mkv".
	RenameMap map[string]string
	// SeasonFolders rebuilds multi-segment targets around a generated
	// season directory named from SeasonTemplate.
	SeasonFolders  bool
	SeasonTemplate string
	// Strategy is the conflict strategy name: skip, overwrite, or rename.
	Strategy string
	// Workers bounds the worker pool; zero or negative uses GOMAXPROCS.
	Workers int
}

// PlannedFile pairs a source with the absolute destination a run would use.
type PlannedFile struct {
	Source string
	Target string
}

// Preview computes the destination for every source without touching the
// filesystem. Sources do not need to exist. The output directory is
// sanitized the same way Run sanitizes it, so previewed paths match the
// paths a run would create.
func Preview(req Request) []PlannedFile {
	req.OutputDir = sanitize.Path(req.OutputDir)
	planned := make([]PlannedFile, 0, len(req.Sources))
	for _, source := range req.Sources {
		planned = append(planned, PlannedFile{
			Source: source,
			Target: filepath.Join(req.OutputDir, planRelative(source, req)),
		})
	}
	return planned
}

// planRelative derives the sanitized library-relative path for one source.
// A rename-map entry wins over the bare filename; season-folder mode then
// rewrites nested entries around a generated season directory.
func planRelative(source string, req Request) string {
	segments := targetSegments(source, req.RenameMap)

	if req.SeasonFolders && len(segments) >= 3 {
		show := segments[0]
		marker := segments[1]
		file := segments[len(segments)-1]
		season := sanitize.SeasonNumber(marker)
		segments = []string{show, sanitize.SeasonFolderName(req.SeasonTemplate, season), file}
	} else if req.SeasonFolders && len(segments) > 1 {
		segments = []string{segments[0], segments[len(segments)-1]}
	}

	return filepath.Join(segments...)
}

func targetSegments(source string, renames map[string]string) []string {
	entry, ok := renames[source]
	if !ok || strings.TrimSpace(entry) == "" {
		return []string{sanitize.FileName(filepath.Base(source))}
	}

	entry = strings.ReplaceAll(entry, `\`, "/")
	parts := strings.Split(entry, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, sanitize.FileName(part))
	}
	if len(segments) == 0 {
		return []string{sanitize.FileName(filepath.Base(source))}
	}
	return segments
}
