package extract

import (
	"regexp"
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// Part A continuation (page 2) patterns.
var (
	institutionShape  = regexp.MustCompile(`([A-Z][a-zA-Z ,\-]+(?:High School|University|College|School))`)
	schoolNameLabel   = regexp.MustCompile(`Name of School:`)
	schoolStreetShape = regexp.MustCompile(`X?(\d+\s+[A-Z][a-z]+\s+(?:Road|Rd|Street|St|Avenue|Ave))`)
	stateCodeLine     = regexp.MustCompile(`\n([A-Z]{2})\n`)
	wordAfterLine     = regexp.MustCompile(`\n([A-Z][a-z]+)`)
)

// extractPartAContinued applies the page 2 continuation schema: the
// full-time-student block plus the employment and other-coverage answers.
func (e *Extractor) extractPartAContinued(text string) document.FieldMap {
	rules := []FieldRule{
		{
			Key: "16a_school_name",
			Strategies: []Strategy{
				{Name: "institution-shape", Scan: e.scanSchoolName},
				{Name: "after-label", Scan: e.scanSchoolNameAfterLabel},
			},
		},
		{
			Key: "16a_school_address",
			Strategies: []Strategy{
				{Name: "street-shape", Pattern: schoolStreetShape},
			},
		},
		{
			Key: "16a_school_city",
			Strategies: []Strategy{
				{Name: "word-before-state", Scan: e.scanCityBeforeState},
				{Name: "line-after-address", Scan: scanCityAfterAddress},
			},
		},
		{
			Key: "16a_school_state",
			Strategies: []Strategy{
				{Name: "code-line", Pattern: stateCodeLine},
			},
		},
		{
			Key: "16a_school_postal_code",
			Strategies: []Strategy{
				{Name: "zip-shape", Scan: e.scanValidZIP},
			},
			Validate: e.ValidZIP,
		},
		{
			Key: "16a_school_country",
			Strategies: []Strategy{
				{Name: "country-keyword", Scan: scanUSAKeyword},
			},
		},
	}

	fields := e.apply(rules, text)

	// A found school name answers the student question; otherwise fall back
	// to the checkbox next to the question label.
	if fields["16a_school_name"] != nil {
		fields["16a_full_time_student"] = "Yes"
	} else {
		fields["16a_full_time_student"] = yesNo(e.IsChecked(text, "Full-time student"))
	}

	fields["17a_employed"] = yesNo(e.IsChecked(text, "Employed"))
	fields["18a_other_insurance_coverage"] = yesNo(e.IsChecked(text, "Other insurance"))

	return fields
}

// scanSchoolName finds institution-suffixed names, skipping the form's own
// labels ("Name of School:", "Address of School:") which share the suffix.
func (e *Extractor) scanSchoolName(text string) string {
	for _, m := range institutionShape.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(m[1])
		if len(candidate) <= 10 {
			continue
		}
		if strings.Contains(candidate, " of School") || strings.HasSuffix(candidate, "of School") {
			continue
		}
		if !e.ValidName(candidate) {
			continue
		}
		return candidate
	}
	return ""
}

// scanSchoolNameAfterLabel searches for an institution shape anywhere after
// the "Name of School:" label. The value often sits several lines below,
// past the address and city labels.
func (e *Extractor) scanSchoolNameAfterLabel(text string) string {
	loc := schoolNameLabel.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	m := institutionShape.FindStringSubmatch(text[loc[1]:])
	if m == nil {
		return ""
	}
	candidate := strings.TrimSpace(m[1])
	if len(candidate) <= 3 || !e.ValidName(candidate) {
		return ""
	}
	return candidate
}

// scanCityAfterAddress takes the first capitalized word on a line after the
// school street address.
func scanCityAfterAddress(text string) string {
	addr := schoolStreetShape.FindStringSubmatchIndex(text)
	if addr == nil {
		return ""
	}
	m := wordAfterLine.FindStringSubmatch(text[addr[1]:])
	if m == nil {
		return ""
	}
	return m[1]
}

// Part B checkbox labels, keyed by output field name. Order is fixed for
// deterministic serialization of the applying-for map.
var partBClaims = []struct {
	key   string
	label string
}{
	{"travel_delay", "Travel Delay"},
	{"lost_checked_luggage", "Lost Checked Luggage"},
	{"trip_interruption", "Trip Interruption"},
	{"emergency_quarantine_indemnity_benefit_covid_19", "Covid-19"},
}

var incidentLabel = regexp.MustCompile(`(?i)incident[:\s]*([^\n]+)`)

// extractPartB applies the travel-assistance claim schema: the applying-for
// checkbox block and the free-text incident details.
func (e *Extractor) extractPartB(text string) document.FieldMap {
	applying := document.FieldMap{}
	for _, c := range partBClaims {
		applying[c.key] = strings.Contains(text, c.label) && e.IsChecked(text, c.label)
	}
	applying["other"] = strings.Contains(text, "Other")

	fields := document.FieldMap{
		"1b_applying_for": applying,
	}

	details := e.applyRule(FieldRule{
		Key: "2b_incident_details",
		Strategies: []Strategy{
			{Name: "label", Pattern: incidentLabel},
		},
		Validate: e.validIncidentDetails,
	}, text)
	if details == nil {
		// The form treats a blank incident line as an explicit N/A.
		details = "N/A"
	}
	fields["2b_incident_details"] = details

	return fields
}

// validIncidentDetails rejects captures that are actually the envelope
// identifier line, which shares the page footer with the incident field.
func (e *Extractor) validIncidentDetails(v string) bool {
	if e.cfg.EnvelopeLabel == "" {
		return true
	}
	first, _, _ := strings.Cut(e.cfg.EnvelopeLabel, " ")
	return !strings.Contains(v, first)
}
