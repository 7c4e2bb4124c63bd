package extract

import (
	"strings"

	"github.com/MeKo-Tech/claimlens/internal/config"
	"github.com/MeKo-Tech/claimlens/internal/document"
	"github.com/MeKo-Tech/claimlens/internal/section"
)

// PageFields carries the section-typed field maps extracted from one page.
// Only the slots the page's section defines are non-nil.
type PageFields struct {
	FormFields document.FieldMap
	Signatures document.FieldMap
	PartB      document.FieldMap
	Tables     document.FieldMap
	ThirdParty document.FieldMap
}

// Extractor applies the per-section field schemas of one form family.
// It is stateless across documents; all form literals come from the
// configuration.
type Extractor struct {
	cfg       config.FormConfig
	sentinels map[string]bool
}

// New builds an extractor for a form family configuration.
func New(cfg config.FormConfig) *Extractor {
	sentinels := make(map[string]bool, len(cfg.SentinelValues))
	for _, s := range cfg.SentinelValues {
		sentinels[strings.ToLower(s)] = true
	}
	return &Extractor{cfg: cfg, sentinels: sentinels}
}

// Extract runs the section's field schema over the page text and returns the
// field map(s) that section defines. Unknown sections yield no maps at all;
// extraction for such pages is skipped. Extraction never fails: every field
// is either a validated value or an explicit nil.
func (e *Extractor) Extract(sec section.Section, page document.PageText) PageFields {
	switch sec {
	case section.PartA:
		return PageFields{FormFields: e.extractPartA(page.RawText)}
	case section.PartAContinued:
		return PageFields{
			FormFields: e.extractPartAContinued(page.RawText),
			PartB:      e.extractPartB(page.RawText),
		}
	case section.PartC:
		return PageFields{FormFields: e.extractPartC(page.RawText)}
	case section.PartD:
		return PageFields{Signatures: e.extractPartD(page.RawText)}
	case section.SupplementA:
		return PageFields{Tables: e.extractSupplementA(page.RawText)}
	case section.SupplementB:
		return PageFields{Tables: e.extractSupplementB(page.RawText)}
	case section.SupplementC:
		return PageFields{FormFields: e.extractSupplementC(page.RawText)}
	case section.SupplementCThirdParty:
		return PageFields{
			FormFields: e.extractSupplementC(page.RawText),
			ThirdParty: e.extractThirdParty(page.RawText),
		}
	case section.SupplementD:
		return PageFields{FormFields: e.extractSupplementD(page.RawText)}
	default:
		return PageFields{}
	}
}

// apply evaluates a section's rule table over the page text.
func (e *Extractor) apply(rules []FieldRule, text string) document.FieldMap {
	fields := make(document.FieldMap, len(rules))
	for _, r := range rules {
		fields[r.Key] = e.applyRule(r, text)
	}
	return fields
}
