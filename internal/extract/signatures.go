package extract

import (
	"regexp"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// Part D (signature block) patterns.
var (
	fullDateShape = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)

	// yearGluedName matches a printed name glued to the preceding date's
	// year, the usual recognition of the signature row.
	yearGluedName = regexp.MustCompile(`\d{4}([A-Z][a-z]+\s+[A-Z][a-z]+)`)

	// printNameNextLine reads the line under a "Print Name" label.
	printNameNextLine = regexp.MustCompile(`(?s)Print Name.*?\n([A-Z][a-z]+\s+[A-Z][a-z]+)`)

	// dateAdjacentName matches a printed name directly after a signature
	// date on the same line.
	dateAdjacentName = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`)
)

// extractPartD applies the medical-record-authorization signature schema.
// Claimant and insured sign on the same date on this form, so the first
// signature date fills both fields.
func (e *Extractor) extractPartD(text string) document.FieldMap {
	signatures := document.FieldMap{}

	var date any
	if m := fullDateShape.FindString(text); m != "" {
		date = NormalizeDate(m)
	}
	signatures["claimant_signature_date_mm_dd_yy"] = date
	signatures["insured_signature_date_mm_dd_yy"] = date

	signatures["printed_name"] = e.applyRule(FieldRule{
		Key: "printed_name",
		Strategies: []Strategy{
			{Name: "year-glued", Pattern: yearGluedName},
			{Name: "print-name-label", Pattern: printNameNextLine},
			{Name: "date-adjacent", Pattern: dateAdjacentName},
		},
		Validate: e.ValidName,
	}, text)

	return signatures
}
