package extract

import (
	"fmt"
	"regexp"
)

// IsChecked reports whether a checkbox label is immediately followed by a
// mark glyph (X, x, or a check mark) within the configured character window.
func (e *Extractor) IsChecked(text, label string) bool {
	re, err := regexp.Compile(fmt.Sprintf(`(?i)%s\s{0,%d}[Xx✓]`, regexp.QuoteMeta(label), e.cfg.CheckboxWindow))
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// yesNo renders a checkbox answer as the form's Yes/No vocabulary.
func yesNo(checked bool) string {
	if checked {
		return "Yes"
	}
	return "No"
}
