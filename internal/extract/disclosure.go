package extract

import (
	"regexp"

	"github.com/MeKo-Tech/claimlens/internal/document"
)

// Supplement D (PHI disclosure authorization) patterns.
var (
	insuredNameLabel = regexp.MustCompile(`(?i)Insured(?:'s)?\s*Name[:\s]*([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	relationshipKind = `Father|Mother|Son|Daughter|Spouse|Guardian`

	// joinedRepName matches a relationship glued to the representative's
	// name, the usual recognition of the representative row.
	joinedRepName = regexp.MustCompile(`(` + relationshipKind + `)([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	spacedRepName = regexp.MustCompile(`(` + relationshipKind + `)\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`)

	relationshipLabel = regexp.MustCompile(`(?is)Relationship[^:\n]*[:\s]+(` + relationshipKind + `)`)
	repNameLabel      = regexp.MustCompile(`(?is)Personal Representative[^:\n]*Name[:\s]+([A-Z][a-z]+\s+[A-Z][a-z]+)`)
)

// extractSupplementD applies the PHI-disclosure authorization schema. The
// representative row yields relationship and name from one match when the
// recognizer joined them; label strategies cover the separated layout.
func (e *Extractor) extractSupplementD(text string) document.FieldMap {
	fields := document.FieldMap{
		"insured_name": e.applyRule(FieldRule{
			Key:        "insured_name",
			Strategies: []Strategy{{Name: "label", Pattern: insuredNameLabel}},
			Validate:   e.ValidName,
		}, text),
		"policy_certificate_number": e.applyRule(FieldRule{
			Key:        "policy_certificate_number",
			Strategies: []Strategy{{Name: "label", Pattern: partAPolicyLabel}},
			Validate:   e.ValidPolicyNumber,
		}, text),
		"personal_representative_relationship": nil,
		"personal_representative_name":         nil,
	}

	for _, re := range []*regexp.Regexp{joinedRepName, spacedRepName} {
		if m := re.FindStringSubmatch(text); m != nil && e.ValidName(m[2]) {
			fields["personal_representative_relationship"] = m[1]
			fields["personal_representative_name"] = m[2]
			return fields
		}
	}

	fields["personal_representative_relationship"] = e.applyRule(FieldRule{
		Key:        "personal_representative_relationship",
		Strategies: []Strategy{{Name: "label", Pattern: relationshipLabel}},
	}, text)
	fields["personal_representative_name"] = e.applyRule(FieldRule{
		Key:        "personal_representative_name",
		Strategies: []Strategy{{Name: "label", Pattern: repNameLabel}},
		Validate:   e.ValidName,
	}, text)

	return fields
}
