package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

// seasonPatterns are tried in order; the first capture wins. The bare S-prefix
// form sits after the spelled-out form so "Season 2" never matches as "S" + "eason".
var seasonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)season\s*(\d+)`),
	regexp.MustCompile(`(?i)s(\d+)`),
	regexp.MustCompile(`第(\d+)季`),
}

// SeasonNumber extracts a season number from a path segment such as
// "Season 2", "S03", or "第4季". Segments with no recognizable marker
// default to season 1.
func SeasonNumber(segment string) int {
	for _, pattern := range seasonPatterns {
		match := pattern.FindStringSubmatch(segment)
		if match == nil {
			continue
		}
		if season, err := strconv.Atoi(match[1]); err == nil {
			return season
		}
	}
	return 1
}

// SeasonFolderName renders a season folder name from a template containing
// {season}, {season:02}, or {season:03} placeholders, then sanitizes the
// result like any other segment.
func SeasonFolderName(template string, season int) string {
	name := template
	name = strings.ReplaceAll(name, "{season}", strconv.Itoa(season))
	name = strings.ReplaceAll(name, "{season:02}", fmtPadded(season, 2))
	name = strings.ReplaceAll(name, "{season:03}", fmtPadded(season, 3))
	return FileName(name)
}

func fmtPadded(season, width int) string {
	s := strconv.Itoa(season)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
