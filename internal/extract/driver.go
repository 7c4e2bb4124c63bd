// Package extract locates, cleans, normalizes and validates individual field
// values in classified page text. Each field is described by an ordered chain
// of strategies: a targeted pattern anchored near the field's label first,
// then looser positional or shape-based fallbacks. One driver evaluates the
// chains; per-field extraction never fails, it only produces an explicit
// absence.
package extract

import "regexp"

// Strategy locates one candidate value in page text. Either Pattern or Scan
// is set. Pattern strategies capture submatch Group (default 1); Scan
// strategies run arbitrary positional logic and return "" when they find
// nothing.
type Strategy struct {
	Name    string
	Pattern *regexp.Regexp
	Group   int
	Scan    func(text string) string
}

// find returns the raw candidate for this strategy, or "".
func (s Strategy) find(text string) string {
	if s.Scan != nil {
		return s.Scan(text)
	}
	if s.Pattern == nil {
		return ""
	}
	m := s.Pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	group := s.Group
	if group == 0 {
		group = 1
	}
	if group >= len(m) {
		return ""
	}
	return m[group]
}

// FieldRule describes one field of a section schema: its output key, the
// ordered fallback chain, and the type-specific normalizer and plausibility
// validator applied to every candidate.
type FieldRule struct {
	Key        string
	Strategies []Strategy
	Normalize  func(string) string
	Validate   func(string) bool
}

// applyRule walks the fallback chain for one field. Every candidate passes
// clean, normalize, validate in that order; the first accepted value wins.
// Total failure yields nil, never an empty string.
func (e *Extractor) applyRule(r FieldRule, text string) any {
	for _, s := range r.Strategies {
		raw := s.find(text)
		if raw == "" {
			continue
		}
		v, ok := e.clean(raw)
		if !ok {
			continue
		}
		if r.Normalize != nil {
			v = r.Normalize(v)
		}
		if r.Validate != nil && !r.Validate(v) {
			continue
		}
		return v
	}
	return nil
}
