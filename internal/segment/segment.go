// Package segment splits normalized full-document text into per-page blocks
// using the literal page-boundary markers embedded by the ingestion step.
package segment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

var (
	pageMarker    = regexp.MustCompile(`--- Page \d+ ---`)
	declaredCount = regexp.MustCompile(`Page \d+ of (\d+)`)
)

// Marker renders the page-boundary marker for a 1-based page number. The
// ingestion step uses it when assembling recognition output, so assembly
// and segmentation share one convention.
func Marker(page int) string {
	return "--- Page " + strconv.Itoa(page) + " ---"
}

// SplitPages splits a page-marked text blob into ordered per-page texts.
// An empty leading segment before the first marker is discarded, as is any
// segment that is all whitespace. Page numbers are the 1-based positions of
// the surviving segments; the marker's own digits are not trusted.
func SplitPages(fullText string) []document.PageText {
	segments := pageMarker.Split(fullText, -1)

	if len(segments) > 0 && strings.TrimSpace(segments[0]) == "" {
		segments = segments[1:]
	}

	pages := make([]document.PageText, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		pages = append(pages, document.PageText{
			Page:    len(pages) + 1,
			RawText: seg,
		})
	}
	return pages
}

// DeclaredPageCount reads the total page count from an in-text
// "Page X of Y" marker, when the form carries one.
func DeclaredPageCount(text string) (int, bool) {
	m := declaredCount.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
