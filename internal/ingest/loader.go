package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrNoRecords marks a readable landing file that yielded zero rows. The
// pipeline aborts the whole run on it before writing any artifact.
var ErrNoRecords = errors.New("landing file contains no records")

// LoadGoodreads reads the scraped landing JSON.
func LoadGoodreads(path string) ([]GoodreadsBook, error) {
	slog.Debug("Opening Goodreads landing file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read goodreads landing file: %w", err)
	}

	var landing GoodreadsLanding
	if err := json.Unmarshal(data, &landing); err != nil {
		return nil, fmt.Errorf("failed to parse goodreads landing file: %w", err)
	}

	if len(landing.Books) == 0 {
		return nil, fmt.Errorf("goodreads %s: %w", path, ErrNoRecords)
	}

	slog.Info("Goodreads landing loaded", "rows", len(landing.Books))
	return landing.Books, nil
}

// LoadGoogleBooks reads the enriched landing CSV. Columns are resolved by
// header name so column order in the file does not matter.
func LoadGoogleBooks(path string) ([]GoogleBooksRow, error) {
	slog.Debug("Opening Google Books landing file", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open googlebooks landing file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read googlebooks CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var rows []GoogleBooksRow
	lineNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse googlebooks CSV at line %d: %w", lineNum+1, err)
		}
		lineNum++

		rows = append(rows, GoogleBooksRow{
			GBID:            field(row, "gb_id"),
			Title:           field(row, "title"),
			Subtitle:        field(row, "subtitle"),
			Authors:         field(row, "authors"),
			Publisher:       field(row, "publisher"),
			PubDate:         field(row, "pub_date"),
			Language:        field(row, "language"),
			Categories:      field(row, "categories"),
			ISBN13:          field(row, "isbn13"),
			ISBN10:          field(row, "isbn10"),
			PriceAmount:     field(row, "price_amount"),
			PriceCurrency:   field(row, "price_currency"),
			GoodreadsTitle:  field(row, "goodreads_title"),
			GoodreadsAuthor: field(row, "goodreads_author"),
			GoodreadsURL:    field(row, "goodreads_url"),
			GoodreadsISBN10: field(row, "goodreads_isbn10"),
			GoodreadsISBN13: field(row, "goodreads_isbn13"),
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("googlebooks %s: %w", path, ErrNoRecords)
	}

	slog.Info("Google Books landing loaded", "rows", len(rows))
	return rows, nil
}
