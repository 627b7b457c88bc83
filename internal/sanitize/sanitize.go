package sanitize

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxSegmentLength bounds a single file or directory name. Windows caps names
// at 255 characters; 200 leaves headroom for rename suffixes.
const maxSegmentLength = 200

// placeholderName replaces names that sanitize down to nothing.
const placeholderName = "unnamed_file"

// widthReplacer folds full-width punctuation to half-width before the illegal
// character pass, so folded characters that land on an illegal one (？ via ?)
// still end up replaced. Running the passes in this order keeps FileName
// idempotent.
var widthReplacer = strings.NewReplacer(
	"☆", "★",
	"～", "~",
	"＆", "&",
	"！", "!",
	"？", "?",
	"：", ":",
	"；", ";",
	"，", ",",
	"。", ".",
	"（", "(",
	"）", ")",
	"【", "[",
	"】", "]",
	"｛", "{",
	"｝", "}",
	"　", " ",
)

// illegalReplacer substitutes characters rejected by Windows filesystems.
var illegalReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// FileName rewrites a single name into a filesystem-safe equivalent. The
// result contains no illegal characters or control characters, carries no
// leading or trailing whitespace or dots, is never empty, and is at most 200
// characters.
func FileName(name string) string {
	name = widthReplacer.Replace(name)
	name = illegalReplacer.Replace(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	name = trimEdges(b.String())

	if name == "" {
		return placeholderName
	}
	return truncateSegment(name, maxSegmentLength)
}

// Path applies FileName to every segment of a path independently. The root
// or volume prefix passes through unchanged, as do "." and ".." segments.
// Empty segments (doubled separators) collapse.
func Path(path string) string {
	vol := filepath.VolumeName(path)
	rest := path[len(vol):]
	rooted := strings.HasPrefix(rest, string(filepath.Separator))

	parts := strings.Split(rest, string(filepath.Separator))
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if part == "." || part == ".." {
			segments = append(segments, part)
			continue
		}
		segments = append(segments, FileName(part))
	}

	joined := strings.Join(segments, string(filepath.Separator))
	if rooted {
		return vol + string(filepath.Separator) + joined
	}
	return vol + joined
}

// TruncateName cuts an already-sanitized name down to at most limit bytes
// without splitting a multi-byte rune. Used by the path-shortening pass when
// a full destination path exceeds its budget.
func TruncateName(name string, limit int) string {
	if limit <= 0 {
		return placeholderName
	}
	return truncateSegment(name, limit)
}

func trimEdges(name string) string {
	return strings.TrimFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '.'
	})
}

// truncateSegment cuts name to at most limit bytes without splitting a
// multi-byte rune, then re-trims so the shortened name stays a fixed point
// of FileName.
func truncateSegment(name string, limit int) string {
	for len(name) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = trimEdges(name[:cut])
	}
	if name == "" {
		return placeholderName
	}
	return name
}
