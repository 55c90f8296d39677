// Package normalize maps per-source raw records onto the shared intermediate
// schema: field renames, ISBN/date/language/currency cleaning, and identity
// assignment. Every function is pure over its input. A record that fails a
// field rule carries an absent value for that field; records are never
// dropped.
package normalize

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"bookmerge/internal/identity"
	"bookmerge/internal/ingest"
)

// FoldTitle produces the trimmed, case-folded title form used for identity
// grouping. The canonical title keeps its original casing; this form is
// never shown to users. Casers carry state, so one is built per call.
func FoldTitle(raw string) string {
	return cases.Fold().String(strings.TrimSpace(raw))
}

// Goodreads maps scraped records onto the shared schema. The scrape source
// carries no date, language, price, publisher, or category data.
func Goodreads(books []ingest.GoodreadsBook, now time.Time) []Record {
	records := make([]Record, 0, len(books))
	ts := now.Format(time.RFC3339)

	for _, b := range books {
		r := Record{
			Source:          SourceGoodreads,
			TitleRaw:        b.Title,
			TitleNormalized: FoldTitle(b.Title),
			AuthorsRaw:      strings.TrimSpace(b.Author),
			SourceURL:       optional(b.BookURL),
			ISBN13Clean:     CleanISBN(b.ISBN13),
			ISBN10Clean:     CleanISBN(b.ISBN10),

			IngestionTimestamp: ts,
		}
		r.BookID = identity.Assign(r.ISBN13Clean, r.TitleNormalized, r.PrincipalAuthor())
		records = append(records, r)
	}

	return records
}

// GoogleBooks maps enriched API rows onto the shared schema. The raw title
// and URL come from the goodreads back-reference so both sources group under
// the scrape identity; ISBNs fall back to the back-referenced values when the
// API row carries none of its own.
func GoogleBooks(rows []ingest.GoogleBooksRow, now time.Time) []Record {
	records := make([]Record, 0, len(rows))
	ts := now.Format(time.RFC3339)

	for _, row := range rows {
		isbn13 := CleanISBN(row.ISBN13)
		if isbn13 == nil {
			isbn13 = CleanISBN(row.GoodreadsISBN13)
		}
		isbn10 := CleanISBN(row.ISBN10)
		if isbn10 == nil {
			isbn10 = CleanISBN(row.GoodreadsISBN10)
		}

		r := Record{
			Source:          SourceGoogleBooks,
			TitleRaw:        row.GoodreadsTitle,
			TitleNormalized: FoldTitle(row.GoodreadsTitle),
			AuthorsRaw:      strings.TrimSpace(row.Authors),
			SourceURL:       optional(row.GoodreadsURL),
			ISBN13Clean:     isbn13,
			ISBN10Clean:     isbn10,
			PublicationDate: NormalizeDate(row.PubDate),
			LanguageCode:    NormalizeLanguage(row.Language),
			CurrencyCode:    NormalizeCurrency(row.PriceCurrency),
			PriceAmount:     ParsePrice(row.PriceAmount),
			Publisher:       optional(row.Publisher),
			Categories:      optional(row.Categories),

			IngestionTimestamp: ts,
		}
		r.BookID = identity.Assign(r.ISBN13Clean, r.TitleNormalized, r.PrincipalAuthor())
		records = append(records, r)
	}

	return records
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
