package extract

import (
	"regexp"
	"strings"
)

var (
	innerWhitespace = regexp.MustCompile(`\s+`)
	strayEdges      = "_." // stray glyphs trimmed from value edges
)

// clean trims a raw candidate, collapses internal whitespace, strips stray
// underscores and periods from the edges, and maps sentinel tokens to an
// explicit absence. The second return is false when nothing survives.
func (e *Extractor) clean(value string) (string, bool) {
	value = strings.TrimSpace(value)
	value = innerWhitespace.ReplaceAllString(value, " ")
	value = strings.Trim(value, strayEdges)
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if e.sentinels[strings.ToLower(value)] {
		return "", false
	}
	return value, true
}
