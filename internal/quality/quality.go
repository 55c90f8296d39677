// Package quality computes per-source data quality reports over the
// normalized record sets, before merging.
package quality

import (
	"math"
	"time"

	"bookmerge/internal/normalize"
)

// KeyColumns are the columns whose completeness the pipeline tracks.
var KeyColumns = []string{"book_id", "title_normalized", "isbn13_clean", "authors_raw"}

// Report is the quality summary for one source. All counts are native ints
// and all percentages float64s so the report serializes to plain JSON.
type Report struct {
	Source             string             `json:"source"`
	RunID              string             `json:"run_id"`
	Timestamp          string             `json:"timestamp"`
	TotalRows          int                `json:"total_rows"`
	NullCounts         map[string]int     `json:"null_counts"`
	CompletenessPct    map[string]float64 `json:"completeness_pct"`
	PctValidLanguages  float64            `json:"pct_valid_languages_bcp47"`
	PctValidCurrencies float64            `json:"pct_valid_currencies_iso4217"`
}

// Compute builds the report for one source's normalized records. Total over
// its input: the zero-row case defines every percentage as 0 rather than
// dividing by zero.
func Compute(records []normalize.Record, source normalize.Source, keyColumns []string, runID string, now time.Time) Report {
	report := Report{
		Source:          string(source),
		RunID:           runID,
		Timestamp:       now.Format(time.RFC3339),
		TotalRows:       len(records),
		NullCounts:      make(map[string]int, len(keyColumns)),
		CompletenessPct: make(map[string]float64, len(keyColumns)),
	}

	for _, col := range keyColumns {
		nulls := 0
		for _, r := range records {
			if !columnPresent(r, col) {
				nulls++
			}
		}
		report.NullCounts[col] = nulls
		report.CompletenessPct[col] = pct(len(records)-nulls, len(records))
	}

	validLang, validCurrency := 0, 0
	for _, r := range records {
		if r.LanguageCode != nil {
			validLang++
		}
		if r.CurrencyCode != nil {
			validCurrency++
		}
	}
	report.PctValidLanguages = pct(validLang, len(records))
	report.PctValidCurrencies = pct(validCurrency, len(records))

	return report
}

// columnPresent reports whether a key column holds a usable value. Unknown
// column names count as absent.
func columnPresent(r normalize.Record, column string) bool {
	switch column {
	case "book_id":
		return r.BookID != ""
	case "title_normalized":
		return r.TitleNormalized != ""
	case "isbn13_clean":
		return r.ISBN13Clean != nil
	case "isbn10_clean":
		return r.ISBN10Clean != nil
	case "authors_raw":
		return r.AuthorsRaw != ""
	default:
		return false
	}
}

// pct is a completeness percentage rounded to two decimals, 0 for zero rows.
func pct(valid, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(valid)/float64(total)*100*100) / 100
}
