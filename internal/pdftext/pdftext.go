// Package pdftext extracts the vector text layer of text-native PDFs. The
// DocuSign-produced claim forms carry a full text layer, so recognition can
// be skipped entirely for them.
package pdftext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/MeKo-Tech/claimlens/internal/segment"
)

// ErrNotTextNative reports a PDF without a usable text layer. Callers fall
// back to the recognition path.
var ErrNotTextNative = errors.New("pdf has no extractable text layer")

// Extractor pulls per-page plain text out of a PDF and joins the pages as a
// page-marked blob.
type Extractor struct{}

// New creates a vector text extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractPageMarked returns the document text with every page prefixed by
// its page marker, plus the PDF's page count. It returns ErrNotTextNative
// when no page yields non-whitespace text.
func (e *Extractor) ExtractPageMarked(path string) (string, int, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF %q: %w", path, err)
	}

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return "", 0, fmt.Errorf("pdf %q: %w", path, ErrNotTextNative)
	}

	var blob strings.Builder
	hasText := false
	fonts := make(map[string]*pdf.Font)

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text := e.pageText(page, fonts)
		if strings.TrimSpace(text) != "" {
			hasText = true
		}

		blob.WriteString(segment.Marker(pageNum))
		blob.WriteString("\n")
		blob.WriteString(text)
		blob.WriteString("\n")
	}

	if !hasText {
		return "", totalPages, fmt.Errorf("pdf %q: %w", path, ErrNotTextNative)
	}
	return blob.String(), totalPages, nil
}

// pageText reads one page's text, preferring the row-ordered reading so
// label/value adjacency survives, with plain text as the fallback.
func (e *Extractor) pageText(page pdf.Page, fonts map[string]*pdf.Font) string {
	var sb strings.Builder

	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		for _, row := range rows {
			for i, text := range row.Content {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(text.S)
			}
			sb.WriteString("\n")
		}
		return sb.String()
	}

	plain, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return plain
}
