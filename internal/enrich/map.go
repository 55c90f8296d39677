package enrich

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bookmerge/internal/ingest"
)

// MapVolume flattens an API volume into a landing CSV row, attaching the
// goodreads back-reference fields for provenance.
func MapVolume(v Volume, book ingest.GoodreadsBook) ingest.GoogleBooksRow {
	row := ingest.GoogleBooksRow{
		GBID:       v.ID,
		Title:      v.VolumeInfo.Title,
		Subtitle:   v.VolumeInfo.Subtitle,
		Authors:    strings.Join(v.VolumeInfo.Authors, ", "),
		Publisher:  v.VolumeInfo.Publisher,
		PubDate:    v.VolumeInfo.PublishedDate,
		Language:   v.VolumeInfo.Language,
		Categories: strings.Join(v.VolumeInfo.Categories, "; "),

		GoodreadsTitle:  book.Title,
		GoodreadsAuthor: book.Author,
		GoodreadsURL:    book.BookURL,
		GoodreadsISBN10: book.ISBN10,
		GoodreadsISBN13: book.ISBN13,
	}

	for _, ident := range v.VolumeInfo.IndustryIdentifiers {
		switch ident.Type {
		case "ISBN_13":
			row.ISBN13 = ident.Identifier
		case "ISBN_10":
			row.ISBN10 = ident.Identifier
		}
	}

	if v.SaleInfo.ListPrice != nil {
		row.PriceAmount = strconv.FormatFloat(v.SaleInfo.ListPrice.Amount, 'f', 2, 64)
		row.PriceCurrency = v.SaleInfo.ListPrice.CurrencyCode
	}

	return row
}

// WriteCSV lands the enriched rows under the fixed column header.
func WriteCSV(path string, rows []ingest.GoogleBooksRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create landing dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create landing CSV: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(ingest.GoogleBooksColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.GBID, row.Title, row.Subtitle, row.Authors, row.Publisher,
			row.PubDate, row.Language, row.Categories, row.ISBN13, row.ISBN10,
			row.PriceAmount, row.PriceCurrency, row.GoodreadsTitle,
			row.GoodreadsAuthor, row.GoodreadsURL, row.GoodreadsISBN10,
			row.GoodreadsISBN13,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush landing CSV: %w", err)
	}

	slog.Info("Google Books landing written", "path", path, "rows", len(rows))
	return nil
}
