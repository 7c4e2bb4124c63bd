package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dateFull  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dateShort = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`)
)

// NormalizeDate rewrites M/D/YYYY and M/D/YY dates to zero-padded
// MM/DD/YYYY. Two-digit years are assumed to be in the 21st century.
// A string that is not date-shaped is returned unchanged, and the
// function is idempotent.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)

	if m := dateFull.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%02d/%02d/%s", atoi(m[1]), atoi(m[2]), m[3])
	}
	if m := dateShort.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%02d/%02d/20%s", atoi(m[1]), atoi(m[2]), m[3])
	}
	return s
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
