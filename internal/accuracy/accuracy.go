// Package accuracy compares a produced structured document against a ground
// truth and reports per-page and aggregate field accuracy. Mismatches are
// data in the report, never errors.
package accuracy

import (
	"fmt"
	"io"
	"sort"

	"github.com/agext/levenshtein"
	"github.com/olekukonko/tablewriter"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// PageStats aggregates field accuracy over one page (or the whole document).
type PageStats struct {
	Page       int     `json:"page"`
	Fields     int     `json:"fields"`
	Exact      int     `json:"exact"`
	Normalized int     `json:"normalized"`
	CERSum     float64 `json:"-"`
}

// ExactPct is the exact-match percentage, 0 when the page has no fields.
func (s PageStats) ExactPct() float64 {
	if s.Fields == 0 {
		return 0
	}
	return 100 * float64(s.Exact) / float64(s.Fields)
}

// NormalizedPct is the normalized-match percentage, 0 when the page has no
// fields.
func (s PageStats) NormalizedPct() float64 {
	if s.Fields == 0 {
		return 0
	}
	return 100 * float64(s.Normalized) / float64(s.Fields)
}

// MeanCER is the mean character error rate over the page's fields, 0 when
// the page has no fields.
func (s PageStats) MeanCER() float64 {
	if s.Fields == 0 {
		return 0
	}
	return s.CERSum / float64(s.Fields)
}

// Mismatch is one field whose prediction missed the truth even after
// normalization.
type Mismatch struct {
	Page     int    `json:"page"`
	Key      string `json:"key"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Report is the full comparison result.
type Report struct {
	Pages      []PageStats `json:"pages"`
	Total      PageStats   `json:"total"`
	Mismatches []Mismatch  `json:"mismatches"`
}

var cerParams = levenshtein.NewParams()

// CER is the character error rate between a truth and a predicted value in
// normalized form: 1 minus the levenshtein similarity ratio. Two empty
// strings have no error; a non-empty truth against an absent prediction is
// a total error.
func CER(truth, pred string) float64 {
	if truth == "" && pred == "" {
		return 0
	}
	return 1 - levenshtein.Similarity(truth, pred, cerParams)
}

// Evaluate compares a prediction against the ground truth. Truth pages drive
// the comparison: a prediction page that is missing scores zero matches for
// every truth field on it. Only non-nil truth leaves count. Neither document
// is mutated.
func Evaluate(pred, truth *document.StructuredDocument) *Report {
	report := &Report{}

	for i := range truth.Pages {
		truthPage := &truth.Pages[i]
		var predPage *document.StructuredPage
		if pred != nil {
			predPage = pred.PageByNumber(truthPage.Page)
		}

		truthFlat := flattenPage(truthPage)
		predFlat := flattenPage(predPage)

		stats := PageStats{Page: truthPage.Page}
		for _, key := range sortedKeys(truthFlat) {
			truthVal := truthFlat[key]
			if truthVal == nil {
				continue
			}
			stats.Fields++

			predVal, present := predFlat[key]
			if present && render(truthVal) == render(predVal) {
				stats.Exact++
			}

			truthNorm := normalize(render(truthVal))
			predNorm := ""
			if present {
				predNorm = normalize(render(predVal))
			}
			if truthNorm == predNorm {
				stats.Normalized++
			}
			stats.CERSum += CER(truthNorm, predNorm)
		}

		report.Pages = append(report.Pages, stats)
		report.Total.Fields += stats.Fields
		report.Total.Exact += stats.Exact
		report.Total.Normalized += stats.Normalized
		report.Total.CERSum += stats.CERSum
	}

	report.Mismatches = collectMismatches(pred, truth)
	return report
}

// collectMismatches walks the truth again and lists every field whose
// normalized prediction differs from the truth.
func collectMismatches(pred, truth *document.StructuredDocument) []Mismatch {
	var mismatches []Mismatch
	for i := range truth.Pages {
		truthPage := &truth.Pages[i]
		var predPage *document.StructuredPage
		if pred != nil {
			predPage = pred.PageByNumber(truthPage.Page)
		}

		truthFlat := flattenPage(truthPage)
		predFlat := flattenPage(predPage)

		for _, key := range sortedKeys(truthFlat) {
			truthVal := truthFlat[key]
			if truthVal == nil {
				continue
			}
			predVal, present := predFlat[key]
			actual := ""
			if present {
				actual = render(predVal)
			}
			if normalize(render(truthVal)) == normalize(actual) {
				continue
			}
			mismatches = append(mismatches, Mismatch{
				Page:     truthPage.Page,
				Key:      key,
				Expected: render(truthVal),
				Actual:   actual,
			})
		}
	}
	return mismatches
}

// Render writes the per-page accuracy table, the aggregate footer, and the
// mismatch listing.
func (r *Report) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Page", "Fields", "Exact", "Exact %", "Norm", "Norm %", "Mean CER"})

	for _, p := range r.Pages {
		table.Append([]string{
			fmt.Sprintf("%d", p.Page),
			fmt.Sprintf("%d", p.Fields),
			fmt.Sprintf("%d", p.Exact),
			fmt.Sprintf("%.1f", p.ExactPct()),
			fmt.Sprintf("%d", p.Normalized),
			fmt.Sprintf("%.1f", p.NormalizedPct()),
			fmt.Sprintf("%.3f", p.MeanCER()),
		})
	}
	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d", r.Total.Fields),
		fmt.Sprintf("%d", r.Total.Exact),
		fmt.Sprintf("%.1f", r.Total.ExactPct()),
		fmt.Sprintf("%d", r.Total.Normalized),
		fmt.Sprintf("%.1f", r.Total.NormalizedPct()),
		fmt.Sprintf("%.3f", r.Total.MeanCER()),
	})
	table.Render()

	if len(r.Mismatches) == 0 {
		fmt.Fprintln(w, "No mismatches.")
		return
	}
	fmt.Fprintf(w, "Mismatches (%d):\n", len(r.Mismatches))
	for _, m := range r.Mismatches {
		fmt.Fprintf(w, "  page %d %s: expected %q, got %q\n", m.Page, m.Key, m.Expected, m.Actual)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
