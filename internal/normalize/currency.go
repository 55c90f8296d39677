package normalize

import (
	"math"
	"strconv"
	"strings"
)

// validCurrencies is the recognized ISO-4217 subset.
var validCurrencies = map[string]struct{}{
	"USD": {},
	"EUR": {},
	"GBP": {},
	"CAD": {},
	"JPY": {},
	"AUD": {},
}

// NormalizeCurrency uppercases a raw currency code and accepts it only if it
// is in the recognized set. An invalid code makes the currency absent; the
// associated price amount is retained regardless.
func NormalizeCurrency(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "nan", "none":
		return nil
	}

	code := strings.ToUpper(s)
	if _, ok := validCurrencies[code]; ok {
		return &code
	}
	return nil
}

// ParsePrice parses a raw price amount. Sentinel strings and non-finite
// values are absent.
func ParsePrice(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
