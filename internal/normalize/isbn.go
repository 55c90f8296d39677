package normalize

import (
	"regexp"
	"strings"
)

var nonDigitRe = regexp.MustCompile(`[^0-9]`)

// isbnMissingSentinels are string spellings of "no value" that upstream
// sources emit instead of leaving the field blank.
var isbnMissingSentinels = map[string]struct{}{
	"none":    {},
	"null":    {},
	"nan":     {},
	"missing": {},
}

// CleanISBN strips an ISBN string down to digits and accepts the result only
// if exactly 10 or 13 digits remain. Anything else, including missing-value
// sentinels, is absent.
func CleanISBN(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if _, ok := isbnMissingSentinels[strings.ToLower(s)]; ok {
		return nil
	}

	digits := nonDigitRe.ReplaceAllString(s, "")
	if len(digits) == 10 || len(digits) == 13 {
		return &digits
	}
	return nil
}
