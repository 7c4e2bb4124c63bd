package extract

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// ValidZIP rejects postal codes that belong to the form issuer's own header
// block. The issuer's ZIP and box number appear on every page and are the
// most common mis-attribution.
func (e *Extractor) ValidZIP(zip string) bool {
	if zip == "" {
		return false
	}
	for _, excluded := range e.cfg.ExcludedZIPCodes {
		if strings.Contains(zip, excluded) {
			return false
		}
	}
	return true
}

// ValidPhone rejects phone candidates with too few digits; short digit runs
// are page numbers or artifacts, not phone numbers.
func (e *Extractor) ValidPhone(phone string) bool {
	digits := nonDigit.ReplaceAllString(phone, "")
	return len(digits) >= e.cfg.MinPhoneDigits
}

// ValidPolicyNumber rejects policy/certificate candidates shorter than the
// form family's minimum length.
func (e *Extractor) ValidPolicyNumber(num string) bool {
	return len(num) >= e.cfg.MinPolicyNumberLength
}

// ValidName rejects name-shaped candidates that are form boilerplate.
func (e *Extractor) ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, stop := range e.cfg.NameStopList {
		if strings.Contains(name, stop) || strings.Contains(stop, name) {
			return false
		}
	}
	return true
}
