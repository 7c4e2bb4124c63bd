// Package section assigns each page of a claim form to exactly one logical
// form section. Classification is a finite ordered rule list over the page
// number and the presence of literal header phrases, not a full parser.
package section

import "strings"

// Section is one of a closed set of named logical regions of the claim form.
type Section string

const (
	// PartA is the claimant information section on page 1.
	PartA Section = "PART A: CLAIMANT INFORMATION"
	// PartAContinued is the composite page 2 section: the tail of Part A
	// plus Part B (travel assistance and other claims).
	PartAContinued Section = "PART A (Continued) + PART B: TRAVEL ASSISTANCE AND OTHER CLAIMS"
	// PartC is the medical information section.
	PartC Section = "PART C: MEDICAL INFORMATION"
	// PartD is the medical record authorization (signatures) section.
	PartD Section = "PART D: MEDICAL RECORD AUTHORIZATION"
	// SupplementA is the non-U.S. claim itemization table.
	SupplementA Section = "SUPPLEMENT A — NON-U.S. CLAIM ITEMIZATION FORM"
	// SupplementB is the illness or injury itemization table.
	SupplementB Section = "SUPPLEMENT B — ILLNESS OR INJURY"
	// SupplementC is the payment authorization agreement form.
	SupplementC Section = "SUPPLEMENT C — PAYMENT AUTHORIZATION AGREEMENT FORM"
	// SupplementCThirdParty is the composite continuation of Supplement C
	// that carries the third party payment form.
	SupplementCThirdParty Section = "SUPPLEMENT C (Continued) + THIRD PARTY PAYMENT FORM"
	// SupplementD is the authorization form for PHI disclosure.
	SupplementD Section = "SUPPLEMENT D — AUTHORIZATION FORM (PHI Disclosure)"
	// Unknown is the explicit terminal state when no marker matches.
	Unknown Section = "UNKNOWN SECTION"
)

// rule maps a header phrase to a section. A zero page matches any page;
// a secondary marker, when set, must also be present. Rules are evaluated
// in order and the first match wins, which is the tie-break when a page
// carries more than one marker.
type rule struct {
	marker    string
	secondary string
	page      int
	section   Section
}

var rules = []rule{
	{marker: "PART A: CLAIMANT INFORMATION", page: 1, section: PartA},
	// The same header on any later page means the Part A continuation
	// that shares the page with Part B.
	{marker: "PART A: CLAIMANT INFORMATION", section: PartAContinued},
	{marker: "PART C: MEDICAL INFORMATION", section: PartC},
	{marker: "PART D: MEDICAL RECORD AUTHORIZATION", section: PartD},
	{marker: "SUPPLEMENT A", section: SupplementA},
	{marker: "SUPPLEMENT B", section: SupplementB},
	{marker: "SUPPLEMENT C", secondary: "THIRD PARTY", section: SupplementCThirdParty},
	{marker: "SUPPLEMENT C", section: SupplementC},
	{marker: "SUPPLEMENT D", section: SupplementD},
}

// Classify returns the section for a page. It is total and deterministic:
// every (pageNum, text) pair yields exactly one Section, and no marker
// match yields Unknown.
func Classify(pageNum int, text string) Section {
	for _, r := range rules {
		if !strings.Contains(text, r.marker) {
			continue
		}
		if r.page != 0 && r.page != pageNum {
			continue
		}
		if r.secondary != "" && !strings.Contains(text, r.secondary) {
			continue
		}
		return r.section
	}
	return Unknown
}

// All enumerates every section value, Unknown included, for exhaustive tests.
func All() []Section {
	return []Section{
		PartA, PartAContinued, PartC, PartD,
		SupplementA, SupplementB, SupplementC, SupplementCThirdParty,
		SupplementD, Unknown,
	}
}

// Slots reports which field map slots a section populates on its page.
type Slots struct {
	FormFields bool
	Signatures bool
	PartB      bool
	Tables     bool
	ThirdParty bool
}

// FieldSlots returns the field map slots defined for a section. Unknown
// defines none; extraction is skipped for such pages.
func FieldSlots(s Section) Slots {
	switch s {
	case PartA:
		return Slots{FormFields: true}
	case PartAContinued:
		return Slots{FormFields: true, PartB: true}
	case PartC:
		return Slots{FormFields: true}
	case PartD:
		return Slots{Signatures: true}
	case SupplementA, SupplementB:
		return Slots{Tables: true}
	case SupplementC:
		return Slots{FormFields: true}
	case SupplementCThirdParty:
		return Slots{FormFields: true, ThirdParty: true}
	case SupplementD:
		return Slots{FormFields: true}
	default:
		return Slots{}
	}
}
