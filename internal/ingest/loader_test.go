package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestLoadGoodreads(t *testing.T) {
	path := writeFile(t, "goodreads_books.json", `{
  "scraper_metadata": {
    "search_query": "data science",
    "num_records_scraped": 2
  },
  "books": [
    {
      "book_id_source": "1",
      "book_url": "https://www.goodreads.com/book/show/1",
      "title": "Book One",
      "author": "Author One",
      "rating": 4.2,
      "ratings_count": 1500,
      "isbn13": "9780134685991"
    },
    {
      "book_id_source": "2",
      "book_url": "https://www.goodreads.com/book/show/2",
      "title": "Book Two",
      "author": null,
      "rating": null,
      "isbn10": "0134685997"
    }
  ]
}`)

	books, err := LoadGoodreads(path)
	if err != nil {
		t.Fatalf("LoadGoodreads failed: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("Expected 2 books, got %d", len(books))
	}

	if books[0].Title != "Book One" || books[0].ISBN13 != "9780134685991" {
		t.Errorf("First book mismatch: %+v", books[0])
	}
	if books[0].Rating == nil || *books[0].Rating != 4.2 {
		t.Errorf("Expected rating 4.2, got %v", books[0].Rating)
	}
	// JSON null degrades to zero values, resolved later at normalization.
	if books[1].Author != "" || books[1].Rating != nil {
		t.Errorf("Null fields should be zero-valued: %+v", books[1])
	}
}

func TestLoadGoodreadsZeroRows(t *testing.T) {
	path := writeFile(t, "goodreads_books.json", `{"scraper_metadata": {}, "books": []}`)

	_, err := LoadGoodreads(path)
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("Expected ErrNoRecords, got %v", err)
	}
}

func TestLoadGoodreadsMissingFile(t *testing.T) {
	_, err := LoadGoodreads(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadGoodreadsMalformed(t *testing.T) {
	path := writeFile(t, "goodreads_books.json", `{"books": [`)
	_, err := LoadGoodreads(path)
	if err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestLoadGoogleBooks(t *testing.T) {
	path := writeFile(t, "googlebooks_books.csv",
		"gb_id,title,subtitle,authors,publisher,pub_date,language,categories,isbn13,isbn10,price_amount,price_currency,goodreads_title,goodreads_author,goodreads_url,goodreads_isbn10,goodreads_isbn13\n"+
			"GBID-1,Enhanced: Book One,Subtitle,Author One,Tech Press,2020-01-01,en,Data Science,9781234567890,1234567890,24.99,USD,Book One,Author One,https://example.com/1,,9780134685991\n"+
			"GBID-2,Enhanced: Book Two,,\"Author Two, Co Author\",,,,,,,,,Book Two,Author Two,https://example.com/2,,\n")

	rows, err := LoadGoogleBooks(path)
	if err != nil {
		t.Fatalf("LoadGoogleBooks failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0].GBID != "GBID-1" || rows[0].PriceCurrency != "USD" {
		t.Errorf("First row mismatch: %+v", rows[0])
	}
	if rows[0].GoodreadsISBN13 != "9780134685991" {
		t.Errorf("Back-reference ISBN mismatch: %q", rows[0].GoodreadsISBN13)
	}
	if rows[1].Authors != "Author Two, Co Author" {
		t.Errorf("Quoted field mismatch: %q", rows[1].Authors)
	}
	if rows[1].Publisher != "" || rows[1].PriceAmount != "" {
		t.Errorf("Empty columns should stay empty: %+v", rows[1])
	}
}

func TestLoadGoogleBooksHeaderOrderIndependent(t *testing.T) {
	path := writeFile(t, "googlebooks_books.csv",
		"goodreads_title,gb_id,language\n"+
			"Book One,GBID-9,en\n")

	rows, err := LoadGoogleBooks(path)
	if err != nil {
		t.Fatalf("LoadGoogleBooks failed: %v", err)
	}
	if rows[0].GBID != "GBID-9" || rows[0].GoodreadsTitle != "Book One" || rows[0].Language != "en" {
		t.Errorf("Columns not resolved by name: %+v", rows[0])
	}
}

func TestLoadGoogleBooksZeroRows(t *testing.T) {
	path := writeFile(t, "googlebooks_books.csv",
		"gb_id,title\n")

	_, err := LoadGoogleBooks(path)
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("Expected ErrNoRecords, got %v", err)
	}
}
