package extract

import "regexp"

// Shared value shapes of the form family. Field-specific labeled patterns
// live next to the section rule tables that use them.
var (
	// namePairShape matches a "First Last" capitalized word pair.
	namePairShape = regexp.MustCompile(`[A-Z][a-z]+\s+[A-Z][a-z]+`)

	// emailShape is a permissive address shape for recognized text.
	emailShape = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// dateShape matches M/D/YY and M/D/YYYY dates.
	dateShape = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)

	// streetShape matches "123 Something Road"-style address lines.
	streetShape = regexp.MustCompile(`(\d+\s+[A-Z][a-z]+\s+(?:Avenue|Ave|Street|St|Road|Rd|Drive|Dr|Lane|Ln|Court|Ct|Boulevard|Blvd))`)

	// zipShape matches a bare five-digit postal code.
	zipShape = regexp.MustCompile(`\b(\d{5})\b`)
)
