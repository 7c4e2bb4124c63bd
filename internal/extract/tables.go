package extract

import (
	"regexp"
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// Itemization (supplement table) patterns.
var (
	rowDateShape   = regexp.MustCompile(`\d{2}/\d{2}/\d{2,4}`)
	amountShape    = regexp.MustCompile(`\d+\.\d+`)
	providerShape  = regexp.MustCompile(`(?i)([A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*)*\s+(?:Hospital|Clinic))`)
	currencyShape  = regexp.MustCompile(`\b([A-Z]{2,3})\s*\(([A-Za-z ]+)\)`)
	amountOnlyLine = regexp.MustCompile(`^\d+\.\d+$`)
	capitalWord    = regexp.MustCompile(`^[A-Z][a-z]{3,}$`)
	serviceShape   = regexp.MustCompile(`(Examination(?:\s+and\s+tests)?|Medication|Consultation|Laboratory|X-ray|tests)`)
	diagnosisShape = regexp.MustCompile(`(?i)\b(virus|infection|injury|illness|fracture)\b`)
)

// currencyKeywords flag a line as a currency cell in the line-oriented
// fallback parse.
var currencyKeywords = []string{"TL", "Lira", "USD", "Dollar", "EUR", "Euro", "GBP", "Pound"}

// extractSupplementA parses the non-U.S. claim itemization table.
func (e *Extractor) extractSupplementA(text string) document.FieldMap {
	items := e.alignedItemization(text)
	if len(items) == 0 {
		items = e.lineItemization(text)
	}
	return document.FieldMap{"supplement_a_items": items}
}

// extractSupplementB parses the illness-or-injury itemization. The section
// is usually blank; the same row model applies when rows are present.
func (e *Extractor) extractSupplementB(text string) document.FieldMap {
	return document.FieldMap{"supplement_b_items": e.lineItemization(text)}
}

// alignedItemization is a best-effort positional alignment, not a
// layout-aware table parse. Recognized table text arrives with its columns
// interleaved, so the parser collects all date-shaped tokens as row anchors
// and independently collects amount-, provider- and service-shaped tokens,
// pairing the i-th anchor with the i-th value of each kind. Amounts are
// assigned in reverse appearance order to compensate for the column
// interleave observed on this form. Known failure mode: rows misalign
// whenever the recognized text order differs from the true row order.
func (e *Extractor) alignedItemization(text string) []document.FieldMap {
	dates := rowDateShape.FindAllString(text, -1)
	if len(dates) == 0 {
		return nil
	}

	amounts := amountShape.FindAllString(text, -1)
	providers := e.collectProviders(text)
	services := serviceShape.FindAllString(text, -1)

	var diagnosis string
	if m := diagnosisShape.FindStringSubmatch(text); m != nil {
		diagnosis = strings.ToLower(m[1])
	}
	currency := findCurrency(text)
	country := findCountry(text, providers)

	items := make([]document.FieldMap, 0, len(dates))
	for i, d := range dates {
		item := document.FieldMap{
			"date_of_service_mm_dd_yy": NormalizeDate(d),
			"provider":                 nil,
			"diagnosis":                nil,
			"description_of_services":  nil,
			"currency":                 nil,
			"country":                  nil,
			"amount_charged":           nil,
		}
		if i < len(providers) {
			item["provider"] = providers[i]
		} else if len(providers) > 0 {
			item["provider"] = providers[0]
		}
		if i < len(amounts) {
			item["amount_charged"] = amounts[len(amounts)-1-i]
		}
		if i < len(services) {
			item["description_of_services"] = normalizeService(services[i])
		} else {
			item["description_of_services"] = "Medical Service"
		}
		if diagnosis != "" {
			item["diagnosis"] = diagnosis
		}
		if currency != "" {
			item["currency"] = currency
		}
		if country != "" {
			item["country"] = country
		}
		items = append(items, item)
	}
	return items
}

// collectProviders finds provider-shaped tokens, splits doubled
// concatenations ("ACIBADEM HospitalACIBADEM Hospital") and deduplicates.
func (e *Extractor) collectProviders(text string) []string {
	seen := make(map[string]bool)
	var providers []string
	for _, m := range providerShape.FindAllStringSubmatch(text, -1) {
		p := innerWhitespace.ReplaceAllString(m[1], " ")
		p = strings.TrimSpace(p)

		// A doubled concatenation repeats the institution keyword.
		if parts := strings.Split(p, "Hospital"); len(parts) > 2 {
			p = strings.TrimSpace(parts[0]) + " Hospital"
		}
		if len(p) <= 5 || seen[p] {
			continue
		}
		providers = append(providers, p)
		seen[p] = true
	}
	return providers
}

// findCurrency reads a "TL (Turkish Lira)"-style currency cell.
func findCurrency(text string) string {
	if m := currencyShape.FindStringSubmatch(text); m != nil {
		return m[1] + " (" + strings.TrimSpace(m[2]) + ")"
	}
	return ""
}

// findCountry takes the first standalone capitalized-word line that is not
// part of a provider name or a service keyword.
func findCountry(text string, providers []string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !capitalWord.MatchString(line) {
			continue
		}
		if serviceShape.MatchString(line) || diagnosisShape.MatchString(line) {
			continue
		}
		partOfProvider := false
		for _, p := range providers {
			if strings.Contains(p, line) {
				partOfProvider = true
				break
			}
		}
		if !partOfProvider {
			return line
		}
	}
	return ""
}

func normalizeService(s string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// lineItemization is the strict line-oriented fallback: a line opening with
// a date starts a new row and subsequent lines are classified into row
// fields by keyword.
func (e *Extractor) lineItemization(text string) []document.FieldMap {
	items := []document.FieldMap{}
	var current document.FieldMap

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if d := rowDateShape.FindString(line); d != "" && strings.HasPrefix(line, d) {
			if current != nil {
				items = append(items, current)
			}
			current = document.FieldMap{
				"date_of_service_mm_dd_yy": NormalizeDate(d),
				"provider":                 nil,
				"diagnosis":                nil,
				"description_of_services":  nil,
				"currency":                 nil,
				"country":                  nil,
				"amount_charged":           nil,
			}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case providerShape.MatchString(line):
			current["provider"] = line
		case diagnosisShape.MatchString(line):
			current["diagnosis"] = strings.ToLower(diagnosisShape.FindString(line))
		case serviceShape.MatchString(line):
			current["description_of_services"] = line
		case hasCurrencyKeyword(line):
			words := strings.Fields(line)
			current["currency"] = words[len(words)-1]
		case amountOnlyLine.MatchString(line):
			current["amount_charged"] = line
		case capitalWord.MatchString(line):
			current["country"] = line
		}
	}
	if current != nil {
		items = append(items, current)
	}
	return items
}

func hasCurrencyKeyword(line string) bool {
	for _, kw := range currencyKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
