package extract

import (
	"regexp"
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// Part C (medical information) patterns.
var (
	monthDayShape = regexp.MustCompile(`X?((?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept?|Oct|Nov|Dec)\s+\d{1,2}[a-z]*)`)
	onsetLabel    = regexp.MustCompile(`(?is)1C\.[^2]*?(?:Onset|date)[:\s]*([^\n]+?)(?:\n|If accident|location)`)
	locationLabel = regexp.MustCompile(`(?is)location[^:\n]*[:\s]*([^\n]+?)(?:\n|How did)`)
	symptomsLabel = regexp.MustCompile(`(?i)(?:describe\s+)?symptoms?[^:\n]*[:\s]*([^\n]+)`)

	// brokenOrdinal repairs the recognizer dropping the 't' in day
	// ordinals ("8h" for "8th").
	brokenOrdinal = regexp.MustCompile(`(\d)h\b`)
)

// symptomKeywords identify lines that actually describe symptoms rather
// than neighboring form text.
var symptomKeywords = []string{
	"fever", "headache", "dizz", "nausea", "pain", "cough", "fatigue", "issues",
}

// extractPartC applies the medical-information schema.
func (e *Extractor) extractPartC(text string) document.FieldMap {
	rules := []FieldRule{
		{
			Key: "1c_onset_of_illness_or_date_time_of_injury",
			Strategies: []Strategy{
				{Name: "month-day-shape", Pattern: monthDayShape},
				{Name: "label", Scan: scanOnsetAfterLabel},
			},
			Normalize: repairOrdinal,
		},
		{
			Key: "1c_accident_location_if_any",
			Strategies: []Strategy{
				{Name: "label", Scan: scanAccidentLocation},
			},
		},
		{
			Key: "1c_symptoms_description",
			Strategies: []Strategy{
				{Name: "label", Scan: scanSymptomsAfterLabel},
				{Name: "keyword-line", Scan: scanSymptomLine},
			},
		},
	}

	fields := e.apply(rules, text)

	// History questions answer No unless their checkbox carries a mark.
	fields["2c_had_same_illness_or_injury_before"] = yesNo(e.IsChecked(text, "same illness or injury"))
	fields["3c_motorized_vehicle_accident"] = yesNo(e.IsChecked(text, "motorized vehicle"))
	fields["4c_any_conditions_or_medication_last_2_years"] = yesNo(e.IsChecked(text, "medication"))
	fields["5c_incident_related_to_employment"] = yesNo(e.IsChecked(text, "employment"))

	return fields
}

// repairOrdinal fixes broken day ordinals in an onset value.
func repairOrdinal(s string) string {
	return brokenOrdinal.ReplaceAllString(s, "${1}th")
}

// scanOnsetAfterLabel reads the onset line following the 1C label and keeps
// it only when it carries something date-like.
func scanOnsetAfterLabel(text string) string {
	m := onsetLabel.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	val := strings.TrimSpace(m[1])
	if md := monthDayShape.FindStringSubmatch(val); md != nil {
		return md[1]
	}
	if dateShape.MatchString(val) {
		line, _, _ := strings.Cut(val, "\n")
		return line
	}
	return ""
}

// scanAccidentLocation reads the accident-location label value. A written-in
// N/A is handled by the sentinel mapping in clean and becomes an explicit
// absence.
func scanAccidentLocation(text string) string {
	m := locationLabel.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	val := strings.TrimSpace(m[1])
	if len(val) <= 1 || strings.EqualFold(val, "N/A") {
		return ""
	}
	return val
}

// scanSymptomsAfterLabel reads the symptoms line and keeps it only when it
// mentions a known symptom.
func scanSymptomsAfterLabel(text string) string {
	m := symptomsLabel.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	val := strings.TrimSpace(m[1])
	if !containsSymptomKeyword(val) {
		return ""
	}
	return val
}

// scanSymptomLine falls back to the first line mentioning two or more
// symptom keywords, the shape of a written symptom list.
func scanSymptomLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		hits := 0
		for _, kw := range symptomKeywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits >= 2 {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func containsSymptomKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range symptomKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
