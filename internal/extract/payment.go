package extract

import (
	"regexp"
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// Supplement C (payment authorization) patterns.
var (
	beneficiaryNameLabel  = regexp.MustCompile(`(?i)Beneficiary Name[:\s]*([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	zipGluedName          = regexp.MustCompile(`\d{5}([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	beneficiaryEmailLabel = regexp.MustCompile(`(?i)(?:3\.|Beneficiary)\s*Email(?:\s*Address)?[:\s]*([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	beneficiaryAddrLabel  = regexp.MustCompile(`(?i)Beneficiary Address[:\s]*([^\n]+)`)
	paymentCityLabel      = regexp.MustCompile(`(?:5\.\s*)?City[:\s]*([A-Z][a-z]+)`)
	cityGluedToStreet     = regexp.MustCompile(`([A-Z][a-z]+)\d+\s+[A-Z][a-z]+\s+(?:Avenue|Ave|Street|St|Road|Rd)`)
	paymentStateLabel     = regexp.MustCompile(`\bState[:\s]*([A-Z]{2})`)
	stateGluedToZip       = regexp.MustCompile(`X?([A-Z]{2})\s+\d{5}`)
	bankNameLabel         = regexp.MustCompile(`(?i)Bank Name[:\s]*([^\n]+)`)
	accountNumberLabel    = regexp.MustCompile(`(?i)Account Number[:\s]*([A-Z0-9]+)`)
	thirdPartyMarker      = "THIRD PARTY"
)

// extractSupplementC applies the payment-authorization schema: the
// beneficiary block, the payment type, and, when the third-party
// continuation shares the page, the insured signature row.
func (e *Extractor) extractSupplementC(text string) document.FieldMap {
	rules := []FieldRule{
		{
			Key: "beneficiary_name",
			Strategies: []Strategy{
				{Name: "label", Pattern: beneficiaryNameLabel},
				{Name: "zip-glued", Pattern: zipGluedName},
			},
			Validate: e.ValidName,
		},
		{
			Key: "beneficiary_email",
			Strategies: []Strategy{
				{Name: "label", Pattern: beneficiaryEmailLabel},
				{Name: "email-shape", Scan: scanLooseEmail},
			},
		},
		{
			Key: "beneficiary_address",
			Strategies: []Strategy{
				{Name: "label", Pattern: beneficiaryAddrLabel},
				{Name: "street-shape", Pattern: streetShape},
			},
		},
		{
			Key: "beneficiary_city",
			Strategies: []Strategy{
				{Name: "label", Pattern: paymentCityLabel},
				{Name: "glued-to-street", Pattern: cityGluedToStreet},
			},
		},
		{
			Key: "beneficiary_state",
			Strategies: []Strategy{
				{Name: "label", Pattern: paymentStateLabel},
				{Name: "glued-to-zip", Pattern: stateGluedToZip},
			},
		},
		{
			Key: "beneficiary_postal_code",
			Strategies: []Strategy{
				{Name: "zip-shape", Scan: e.scanValidZIP},
			},
			Validate: e.ValidZIP,
		},
		{
			Key: "beneficiary_country",
			Strategies: []Strategy{
				{Name: "country-keyword", Scan: scanUSAKeyword},
			},
		},
	}

	fields := e.apply(rules, text)

	fields["payment_type"] = paymentType(text)
	if fields["payment_type"] == "Wire" {
		fields["bank_name"] = e.applyRule(FieldRule{
			Key:        "bank_name",
			Strategies: []Strategy{{Name: "label", Pattern: bankNameLabel}},
		}, text)
		fields["account_number"] = e.applyRule(FieldRule{
			Key:        "account_number",
			Strategies: []Strategy{{Name: "label", Pattern: accountNumberLabel}},
		}, text)
	}

	if strings.Contains(text, thirdPartyMarker) {
		var date any
		if m := fullDateShape.FindString(text); m != "" {
			date = NormalizeDate(m)
		}
		fields["insured_signature_date_mm_dd_yy"] = date
		fields["printed_name_of_insured"] = e.applyRule(FieldRule{
			Key: "printed_name_of_insured",
			Strategies: []Strategy{
				{Name: "year-glued", Pattern: yearGluedName},
				{Name: "date-adjacent", Pattern: dateAdjacentName},
			},
			Validate: e.ValidName,
		}, text)
	}

	return fields
}

// paymentType reads the selected payout method. Check is the form default;
// Wire and ACH win only when Check is not on the page.
func paymentType(text string) string {
	hasCheck := strings.Contains(text, "Check")
	switch {
	case strings.Contains(text, "Wire") && !hasCheck:
		return "Wire"
	case strings.Contains(text, "ACH") && !hasCheck:
		return "ACH"
	default:
		return "Check"
	}
}

// Third-party payment form labels, precompiled per output key.
var thirdPartyRules = []struct {
	key     string
	pattern *regexp.Regexp
}{
	{"name", regexp.MustCompile(`(?i)(?:Third Party\s*)?Name[:\s]+([^\n]+)`)},
	{"address", regexp.MustCompile(`(?i)(?:Third Party\s*)?Address[:\s]+([^\n]+)`)},
	{"city", regexp.MustCompile(`(?i)City[:\s]+([^\n]+)`)},
	{"state", regexp.MustCompile(`(?i)State[:\s]+([^\n]+)`)},
	{"postal_code", regexp.MustCompile(`(?i)Postal Code[:\s]+([^\n]+)`)},
	{"country", regexp.MustCompile(`(?i)Country[:\s]+([^\n]+)`)},
}

// extractThirdParty applies the third-party payment form schema. The block
// follows the third-party marker; fields left blank on the form come back
// as explicit absences.
func (e *Extractor) extractThirdParty(text string) document.FieldMap {
	// Only the text after the marker belongs to the third-party form.
	if idx := strings.Index(text, thirdPartyMarker); idx >= 0 {
		text = text[idx:]
	}

	fields := make(document.FieldMap, len(thirdPartyRules))
	for _, r := range thirdPartyRules {
		fields[r.key] = e.applyRule(FieldRule{
			Key:        r.key,
			Strategies: []Strategy{{Name: "label", Pattern: r.pattern}},
		}, text)
	}
	return fields
}
