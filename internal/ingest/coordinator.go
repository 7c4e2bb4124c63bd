// Package ingest sequences one document through the pipeline: input
// resolution, normalization, segmentation, per-page classification and
// extraction, and final assembly of the structured document.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/MeKo-Tech/claimlens/internal/claimtext"
	"github.com/MeKo-Tech/claimlens/internal/config"
	"github.com/MeKo-Tech/claimlens/internal/document"
	"github.com/MeKo-Tech/claimlens/internal/extract"
	"github.com/MeKo-Tech/claimlens/internal/pdftext"
	"github.com/MeKo-Tech/claimlens/internal/section"
	"github.com/MeKo-Tech/claimlens/internal/segment"
)

// Recognizer is the external text recognition collaborator. It is consulted
// only for inputs without a usable text layer.
type Recognizer interface {
	// RecognizePage recognizes one 1-based page of the referenced input.
	RecognizePage(ctx context.Context, ref string, page int) ([]document.Token, error)
}

// Input is one document to process. Exactly one of Text, Tokens, or PDFPath
// carries the content; Name identifies the input in errors and artifacts.
type Input struct {
	Name    string
	Text    string
	Tokens  []document.Token
	PDFPath string
}

// Result is the full output of one successful run: the structured document,
// the confidence metrics (zero-valued when no tokens were involved), and the
// verbatim detections artifact (nil when no tokens were involved).
type Result struct {
	Document   *document.StructuredDocument
	Confidence document.ConfidenceMetrics
	Detections *document.Detections
}

// ProcessError is a stage-level ingestion failure. A failed run produces no
// partial document.
type ProcessError struct {
	Input string
	Err   error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process %q: %v", e.Input, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Coordinator owns the stage sequencing for one configuration. It is safe
// for concurrent use.
type Coordinator struct {
	cfg        *config.Config
	normalizer *claimtext.Normalizer
	extractor  *extract.Extractor
	pdf        *pdftext.Extractor
	recognizer Recognizer
	envelope   *regexp.Regexp
}

// NewCoordinator builds a coordinator. The recognizer may be nil; PDF inputs
// without a text layer then fail with a ProcessError.
func NewCoordinator(cfg *config.Config, recognizer Recognizer) *Coordinator {
	var envelope *regexp.Regexp
	if cfg.Form.EnvelopeLabel != "" {
		envelope = regexp.MustCompile(regexp.QuoteMeta(cfg.Form.EnvelopeLabel) + `[:\s]*([A-Za-z0-9-]+)`)
	}
	return &Coordinator{
		cfg:        cfg,
		normalizer: claimtext.NewNormalizer(cfg.Normalizer),
		extractor:  extract.New(cfg.Form),
		pdf:        pdftext.New(),
		recognizer: recognizer,
		envelope:   envelope,
	}
}

// Process runs one input through the full pipeline. The input path is
// decided once up front; page-level and field-level misses are recovered
// inside the stages and never abort the run.
func (c *Coordinator) Process(ctx context.Context, in Input) (*Result, error) {
	blob, tokens, err := c.resolve(ctx, in)
	if err != nil {
		return nil, &ProcessError{Input: in.Name, Err: err}
	}

	normalized := c.normalizer.Normalize(blob)

	pages := segment.SplitPages(normalized)
	if len(pages) == 0 {
		return nil, &ProcessError{Input: in.Name, Err: errors.New("no page content to segment")}
	}

	structured := make([]document.StructuredPage, 0, len(pages))
	for _, p := range pages {
		sec := section.Classify(p.Page, p.RawText)
		fields := c.extractor.Extract(sec, p)
		slog.Debug("classified page", "input", in.Name, "page", p.Page, "section", sec)

		structured = append(structured, document.StructuredPage{
			Page:       p.Page,
			Section:    sec,
			RawText:    p.RawText,
			FormFields: fields.FormFields,
			Signatures: fields.Signatures,
			PartB:      fields.PartB,
			Tables:     fields.Tables,
			ThirdParty: fields.ThirdParty,
		})
	}

	doc := &document.StructuredDocument{
		Document: c.metadata(normalized, len(pages)),
		Pages:    structured,
	}

	result := &Result{Document: doc}
	if len(tokens) > 0 {
		result.Confidence = c.normalizer.CalculateConfidence(tokens)
		result.Detections = &document.Detections{
			ProcessedAt:     time.Now().UTC(),
			TotalDetections: len(tokens),
			Detections:      tokens,
		}
	}

	slog.Info("document processed",
		"input", in.Name,
		"pages", len(pages),
		"total_pages", doc.Document.TotalPages,
		"detections", len(tokens))
	return result, nil
}

// Outcome pairs one batch input with its result or failure.
type Outcome struct {
	Input  string
	Result *Result
	Err    error
}

// ProcessAll runs a batch sequentially with per-document isolation: one
// document's failure never aborts the rest.
func (c *Coordinator) ProcessAll(ctx context.Context, inputs []Input) []Outcome {
	outcomes := make([]Outcome, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{Input: in.Name, Err: &ProcessError{Input: in.Name, Err: err}})
			continue
		}
		result, err := c.Process(ctx, in)
		if err != nil {
			slog.Error("document failed", "input", in.Name, "error", err)
		}
		outcomes = append(outcomes, Outcome{Input: in.Name, Result: result, Err: err})
	}
	return outcomes
}

// resolve turns the input into a page-marked text blob, plus the raw tokens
// when recognition was involved.
func (c *Coordinator) resolve(ctx context.Context, in Input) (string, []document.Token, error) {
	switch {
	case in.Text != "":
		return in.Text, nil, nil

	case len(in.Tokens) > 0:
		return assembleTokens(in.Tokens), in.Tokens, nil

	case in.PDFPath != "":
		blob, totalPages, err := c.pdf.ExtractPageMarked(in.PDFPath)
		if err == nil {
			slog.Debug("text-native pdf", "input", in.Name, "pages", totalPages)
			return blob, nil, nil
		}
		if !errors.Is(err, pdftext.ErrNotTextNative) {
			return "", nil, err
		}
		if c.recognizer == nil {
			return "", nil, fmt.Errorf("no text layer and no recognizer configured: %w", err)
		}
		tokens, err := c.recognizeAll(ctx, in.PDFPath, totalPages)
		if err != nil {
			return "", nil, err
		}
		return assembleTokens(tokens), tokens, nil

	default:
		return "", nil, errors.New("empty input: need text, tokens, or a pdf path")
	}
}

// assembleTokens renders recognized tokens as a page-marked blob: pages in
// ascending order, one token text per line, under the page's marker.
func assembleTokens(tokens []document.Token) string {
	byPage := make(map[int][]document.Token)
	for _, t := range tokens {
		byPage[t.Page] = append(byPage[t.Page], t)
	}

	pages := make([]int, 0, len(byPage))
	for p := range byPage {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString(segment.Marker(p))
		sb.WriteString("\n")
		for _, t := range byPage[p] {
			sb.WriteString(t.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// metadata assembles the document-level metadata. A declared "Page X of Y"
// count wins over the segmented page count.
func (c *Coordinator) metadata(normalized string, segmented int) document.Metadata {
	total := segmented
	if declared, ok := segment.DeclaredPageCount(normalized); ok {
		total = declared
	}

	md := document.Metadata{
		DocumentType: c.cfg.Form.DocumentType,
		TotalPages:   total,
		ExtractedAt:  time.Now().UTC(),
	}
	if c.envelope != nil {
		if m := c.envelope.FindStringSubmatch(normalized); m != nil {
			md.EnvelopeID = m[1]
		}
	}
	return md
}
