// Package emit materializes the pipeline artifacts: the canonical book table,
// the source-detail audit table, the quality metrics document, and the schema
// documentation. Outputs are fully overwritten each run; any write failure is
// fatal to the run.
package emit

import (
	"time"

	"bookmerge/internal/normalize"
	"bookmerge/internal/resolve"
)

// CanonicalRecord is one row of dim_book.parquet. Field order defines the
// parquet column order, which downstream documentation consumers rely on —
// do not reorder.
type CanonicalRecord struct {
	BookID          string   `parquet:"book_id"`
	Title           string   `parquet:"title"`
	TitleNormalized string   `parquet:"title_normalized"`
	AuthorPrincipal string   `parquet:"author_principal"`
	Authors         string   `parquet:"authors"`
	Publisher       *string  `parquet:"publisher,optional"`
	PublicationYear *string  `parquet:"publication_year,optional"`
	PublicationDate *string  `parquet:"publication_date,optional"`
	Language        *string  `parquet:"language,optional"`
	ISBN10          *string  `parquet:"isbn10,optional"`
	ISBN13          *string  `parquet:"isbn13,optional"`
	PageCount       *int32   `parquet:"page_count,optional"`
	Format          *string  `parquet:"format,optional"`
	Categories      *string  `parquet:"categories,optional"`
	Price           *float64 `parquet:"price,optional"`
	Currency        *string  `parquet:"currency,optional"`
	WinningSource   string   `parquet:"winning_source"`
	UpdatedAt       string   `parquet:"updated_at"`
}

// DetailRecord is one row of book_source_detail.parquet: the full normalized
// record plus the winner flag. Every input record appears exactly once,
// winners and losers alike.
type DetailRecord struct {
	SourceName         string   `parquet:"source_name"`
	TitleRaw           string   `parquet:"title_raw"`
	TitleNormalized    string   `parquet:"title_normalized"`
	AuthorsRaw         string   `parquet:"authors_raw"`
	SourceURL          *string  `parquet:"source_url,optional"`
	ISBN13Clean        *string  `parquet:"isbn13_clean,optional"`
	ISBN10Clean        *string  `parquet:"isbn10_clean,optional"`
	PublicationDate    *string  `parquet:"publication_date,optional"`
	LanguageCode       *string  `parquet:"language_code,optional"`
	CurrencyCode       *string  `parquet:"currency_code,optional"`
	PriceAmount        *float64 `parquet:"price_amount,optional"`
	Publisher          *string  `parquet:"publisher,optional"`
	Categories         *string  `parquet:"categories,optional"`
	PageCount          *int32   `parquet:"page_count,optional"`
	BookID             string   `parquet:"book_id"`
	IngestionTimestamp string   `parquet:"ingestion_timestamp"`
	IsWinner           bool     `parquet:"is_winner"`
}

// BuildCanonical projects the winning record of each group onto the fixed
// canonical schema.
func BuildCanonical(winners []normalize.Record, updatedAt time.Time) []CanonicalRecord {
	ts := updatedAt.Format(time.RFC3339)

	rows := make([]CanonicalRecord, 0, len(winners))
	for _, w := range winners {
		authorPrincipal := w.PrincipalAuthor()

		rows = append(rows, CanonicalRecord{
			BookID:          w.BookID,
			Title:           w.TitleRaw,
			TitleNormalized: w.TitleNormalized,
			AuthorPrincipal: authorPrincipal,
			Authors:         w.AuthorsRaw,
			Publisher:       w.Publisher,
			PublicationYear: w.PublicationYear(),
			PublicationDate: w.PublicationDate,
			Language:        w.LanguageCode,
			ISBN10:          w.ISBN10Clean,
			ISBN13:          w.ISBN13Clean,
			PageCount:       w.PageCount,
			Format:          nil, // no source carries a format yet
			Categories:      w.Categories,
			Price:           w.PriceAmount,
			Currency:        w.CurrencyCode,
			WinningSource:   string(w.Source),
			UpdatedAt:       ts,
		})
	}

	return rows
}

// BuildDetail converts resolver audit rows into the detail table shape.
func BuildDetail(detail []resolve.Detail) []DetailRecord {
	rows := make([]DetailRecord, 0, len(detail))
	for _, d := range detail {
		rows = append(rows, DetailRecord{
			SourceName:         string(d.Source),
			TitleRaw:           d.TitleRaw,
			TitleNormalized:    d.TitleNormalized,
			AuthorsRaw:         d.AuthorsRaw,
			SourceURL:          d.SourceURL,
			ISBN13Clean:        d.ISBN13Clean,
			ISBN10Clean:        d.ISBN10Clean,
			PublicationDate:    d.PublicationDate,
			LanguageCode:       d.LanguageCode,
			CurrencyCode:       d.CurrencyCode,
			PriceAmount:        d.PriceAmount,
			Publisher:          d.Publisher,
			Categories:         d.Categories,
			PageCount:          d.PageCount,
			BookID:             d.BookID,
			IngestionTimestamp: d.IngestionTimestamp,
			IsWinner:           d.IsWinner,
		})
	}
	return rows
}
