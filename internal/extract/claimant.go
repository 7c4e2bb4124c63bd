package extract

import (
	"regexp"
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// Part A (page 1) labeled patterns.
var (
	partANameLabel      = regexp.MustCompile(`1A\.\s*Claimant'?s?\s*Full Name[:\s]*([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	partANameBeforeAddr = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)\n\d+\s+[A-Z]`)
	partAGenderLabel    = regexp.MustCompile(`2A\.\s*Gender[:\s]*(Male|Female)`)
	partAGenderLoose    = regexp.MustCompile(`\b(?i:(male|female))\b`)
	partADOBLabel       = regexp.MustCompile(`3A\.\s*Date of Birth[:\s]*(\d{1,2}/\d{1,2}/\d{2,4})`)
	partAAddrLabel      = regexp.MustCompile(`4A\.\s*Current Mailing Address[:\s]*([^\n]+)`)
	partACityLabel      = regexp.MustCompile(`5A\.\s*City[:\s]*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s*(?:6A|State)`)
	partACityBeforeSt   = regexp.MustCompile(`([A-Z][a-z]+)\n[A-Z]{2}\b`)
	partAStateLabel     = regexp.MustCompile(`6A\.\s*State[:\s]*([A-Z]{2})`)
	partAStateLoose     = regexp.MustCompile(`([A-Z]{2})\s*USA`)
	partACountryLabel   = regexp.MustCompile(`8A\.\s*Country[:\s]*([A-Za-z]+)`)
	partAPhoneLabel     = regexp.MustCompile(`9A\.\s*Primary Telephone[:\s]*(\d{7,})`)
	partAPhone2Label    = regexp.MustCompile(`10A\.\s*Secondary Telephone[:\s]*([\d-]+)`)
	partAEmailLabel     = regexp.MustCompile(`11A\.\s*Email[^:\n]*[:\s]*([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	partAPolicyLabel    = regexp.MustCompile(`(?i)(?:Policy|Certificate)\s*Number:?\s*(\d+)`)
	partACitizenLabel   = regexp.MustCompile(`13A\.\s*Citizenship[:\s]*([A-Za-z]+)`)
	partAHomeLabel      = regexp.MustCompile(`14A\.\s*Home Country[:\s]*([A-Za-z]+)`)
	partAVisitedLabel   = regexp.MustCompile(`15A\.\s*Countries Visited:?\s*([^.\n]+)`)
	countryPairShape    = regexp.MustCompile(`\n([A-Z][a-z]+,\s*[A-Z][a-z]+)`)
	parenthetical       = regexp.MustCompile(`\([^)]*\)`)
	longDigitBeforeCap  = regexp.MustCompile(`(\d{9,15})[A-Z]`)
	policyRunShape      = regexp.MustCompile(`\b(\d{9,10})\b`)
	nextFieldLabel      = regexp.MustCompile(`\s*(?:5A\.|City:).*$`)
)

// extractPartA applies the claimant-information schema to the first page.
func (e *Extractor) extractPartA(text string) document.FieldMap {
	rules := []FieldRule{
		{
			Key: "1a_claimant_full_name",
			Strategies: []Strategy{
				{Name: "label", Pattern: partANameLabel},
				{Name: "trailing-name-shape", Scan: e.scanTrailingName},
				{Name: "name-before-address", Pattern: partANameBeforeAddr},
			},
			Validate: e.ValidName,
		},
		{
			Key: "2a_gender",
			Strategies: []Strategy{
				{Name: "label", Pattern: partAGenderLabel},
				{Name: "keyword", Pattern: partAGenderLoose},
			},
			Normalize: capitalize,
		},
		{
			Key: "3a_date_of_birth_mm_dd_yy",
			Strategies: []Strategy{
				{Name: "label", Pattern: partADOBLabel},
				{Name: "last-date-on-page", Scan: scanLastDate},
			},
			Normalize: NormalizeDate,
		},
		{
			Key: "4a_current_mailing_address",
			Strategies: []Strategy{
				{Name: "label", Scan: scanAddressAfterLabel},
				{Name: "street-shape", Pattern: streetShape},
			},
		},
		{
			Key: "5a_city",
			Strategies: []Strategy{
				{Name: "label", Pattern: partACityLabel},
				{Name: "word-before-state", Scan: e.scanCityBeforeState},
			},
		},
		{
			Key: "6a_state",
			Strategies: []Strategy{
				{Name: "label", Pattern: partAStateLabel},
				{Name: "code-before-country", Pattern: partAStateLoose},
			},
		},
		{
			Key: "7a_postal_code",
			Strategies: []Strategy{
				{Name: "zip-shape", Scan: e.scanValidZIP},
			},
			Validate: e.ValidZIP,
		},
		{
			Key: "8a_country",
			Strategies: []Strategy{
				{Name: "country-keyword", Scan: scanUSAKeyword},
				{Name: "label", Pattern: partACountryLabel},
			},
		},
		{
			Key: "9a_primary_telephone",
			Strategies: []Strategy{
				{Name: "label", Pattern: partAPhoneLabel},
				{Name: "loose-digit-run", Scan: e.scanLoosePhone},
			},
			Validate: e.ValidPhone,
		},
		{
			Key: "10a_secondary_telephone",
			Strategies: []Strategy{
				{Name: "label", Pattern: partAPhone2Label},
			},
			Validate: e.ValidPhone,
		},
		{
			Key: "11a_email_address",
			Strategies: []Strategy{
				{Name: "label", Pattern: partAEmailLabel},
				{Name: "email-shape", Scan: scanLooseEmail},
			},
		},
		{
			Key: "12a_policy_or_certificate_number",
			Strategies: []Strategy{
				{Name: "label", Pattern: partAPolicyLabel},
				{Name: "long-digit-run", Pattern: policyRunShape},
			},
			Validate: e.ValidPolicyNumber,
		},
		{
			Key: "13a_citizenship",
			Strategies: []Strategy{
				{Name: "country-keyword", Scan: scanUSAKeyword},
				{Name: "label", Pattern: partACitizenLabel},
			},
			Validate: shortAlpha,
		},
		{
			Key: "14a_home_country",
			Strategies: []Strategy{
				{Name: "country-keyword", Scan: scanUSAKeyword},
				{Name: "label", Pattern: partAHomeLabel},
			},
			Validate: shortAlpha,
		},
		{
			Key: "15a_countries_visited",
			Strategies: []Strategy{
				{Name: "label", Scan: e.scanCountriesVisited},
				{Name: "country-pair-shape", Pattern: countryPairShape},
			},
		},
	}

	return e.apply(rules, text)
}

// scanTrailingName looks for a name-shaped word pair in the last lines of
// the page, where the signer block puts the claimant name, filtering
// boilerplate through the stop list.
func (e *Extractor) scanTrailingName(text string) string {
	lines := strings.Split(text, "\n")
	start := len(lines) - 10
	if start < 0 {
		start = 0
	}
	for _, line := range lines[start:] {
		if m := namePairShape.FindString(line); m != "" && e.ValidName(m) {
			return m
		}
	}
	return ""
}

// scanLastDate returns the last fully-shaped date on the page. On page 1
// the claimant's date of birth is the final date in the signer block.
func scanLastDate(text string) string {
	matches := dateShape.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}

// scanAddressAfterLabel takes the text after the mailing-address label and
// cuts it at the next field label.
func scanAddressAfterLabel(text string) string {
	m := partAAddrLabel.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	val := nextFieldLabel.ReplaceAllString(m[1], "")
	return strings.TrimSpace(val)
}

// scanCityBeforeState finds a capitalized word on the line above a state
// code or country name, the usual layout of the recognized address block.
func (e *Extractor) scanCityBeforeState(text string) string {
	for _, m := range partACityBeforeSt.FindAllStringSubmatch(text, -1) {
		candidate := m[1]
		if cityStopWords[candidate] || !e.ValidName(candidate) {
			continue
		}
		return candidate
	}
	return ""
}

// cityStopWords are capitalized words that precede state lines but are
// never city names on this form.
var cityStopWords = map[string]bool{
	"Page": true, "Trips": true, "Male": true, "Female": true, "Country": true,
}

// scanValidZIP returns the first five-digit run that survives issuer-ZIP
// exclusion.
func (e *Extractor) scanValidZIP(text string) string {
	for _, m := range zipShape.FindAllStringSubmatch(text, -1) {
		if e.ValidZIP(m[1]) {
			return m[1]
		}
	}
	return ""
}

// scanUSAKeyword reports a USA residence when the country keyword appears
// anywhere on the page.
func scanUSAKeyword(text string) string {
	if strings.Contains(text, "USA") {
		return "USA"
	}
	return ""
}

// scanLoosePhone looks for a long digit run glued to following uppercase
// text, scanning from the end of the page. Runs sitting near a policy or
// certificate label are skipped; those belong to field 12A.
func (e *Extractor) scanLoosePhone(text string) string {
	matches := longDigitBeforeCap.FindAllStringSubmatchIndex(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		start := matches[i][2]
		candidate := text[start:matches[i][3]]
		if nearPolicyLabel(text, start) {
			continue
		}
		if e.ValidPhone(candidate) {
			return candidate
		}
	}
	return ""
}

// nearPolicyLabel reports whether a policy/certificate label sits shortly
// before the given offset.
func nearPolicyLabel(text string, offset int) bool {
	window := offset - 40
	if window < 0 {
		window = 0
	}
	prefix := text[window:offset]
	return strings.Contains(prefix, "Policy") || strings.Contains(prefix, "Certificate")
}

// scanLooseEmail finds a bare email shape and strips the stray country-code
// prefix the recognizer sometimes glues onto it ("USAname@..." for a value
// that follows the country field).
func scanLooseEmail(text string) string {
	val := emailShape.FindString(text)
	if val == "" {
		return ""
	}
	for _, prefix := range []string{"USA", "US"} {
		rest, found := strings.CutPrefix(val, prefix)
		if found && rest != "" && rest[0] >= 'a' && rest[0] <= 'z' {
			return rest
		}
	}
	return val
}

// scanCountriesVisited reads the countries-visited label value and drops
// parenthetical form hints.
func (e *Extractor) scanCountriesVisited(text string) string {
	m := partAVisitedLabel.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	val := strings.TrimSpace(parenthetical.ReplaceAllString(m[1], ""))
	if !e.ValidName(val) {
		return ""
	}
	return val
}

// shortAlpha accepts short purely-alphabetic values, the shape of country
// and citizenship entries.
func shortAlpha(s string) bool {
	if len(s) == 0 || len(s) > 20 {
		return false
	}
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			return false
		}
	}
	return true
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
