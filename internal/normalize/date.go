package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

var (
	yearOnlyRe  = regexp.MustCompile(`^\d{4}$`)
	yearMonthRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
)

// NormalizeDate reduces a raw date string to an ISO-8601 partial date:
// YYYY-MM-DD, YYYY-MM, or bare YYYY. Partial input shapes are matched before
// general parsing because a parser cannot report which components were
// actually present. Unparseable input degrades to absent, never an error.
func NormalizeDate(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if yearOnlyRe.MatchString(s) {
		return &s
	}

	if m := yearMonthRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return nil
		}
		v := fmt.Sprintf("%s-%02d", m[1], month)
		return &v
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	v := t.Format("2006-01-02")
	return &v
}
