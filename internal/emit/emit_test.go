package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"

	"bookmerge/internal/normalize"
	"bookmerge/internal/resolve"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func winner() normalize.Record {
	return normalize.Record{
		Source:          normalize.SourceGoogleBooks,
		TitleRaw:        "Deep Learning",
		TitleNormalized: "deep learning",
		AuthorsRaw:      "Ian Goodfellow, Yoshua Bengio, Aaron Courville",
		ISBN13Clean:     strPtr("9780262035613"),
		PublicationDate: strPtr("2016-11-18"),
		LanguageCode:    strPtr("en"),
		CurrencyCode:    strPtr("USD"),
		PriceAmount:     func() *float64 { v := 72.0; return &v }(),
		Publisher:       strPtr("MIT Press"),
		BookID:          "9780262035613",
	}
}

func TestBuildCanonical(t *testing.T) {
	rows := BuildCanonical([]normalize.Record{winner()}, testNow)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 canonical row, got %d", len(rows))
	}

	r := rows[0]
	if r.BookID != "9780262035613" {
		t.Errorf("Unexpected book_id %q", r.BookID)
	}
	if r.Title != "Deep Learning" {
		t.Errorf("Canonical title must keep original casing, got %q", r.Title)
	}
	if r.AuthorPrincipal != "Ian Goodfellow" {
		t.Errorf("Expected first author, got %q", r.AuthorPrincipal)
	}
	if r.PublicationYear == nil || *r.PublicationYear != "2016" {
		t.Errorf("Expected derived year 2016, got %v", r.PublicationYear)
	}
	if r.WinningSource != "googlebooks" {
		t.Errorf("Expected winning source googlebooks, got %q", r.WinningSource)
	}
	if r.UpdatedAt != testNow.Format(time.RFC3339) {
		t.Errorf("Unexpected updated_at %q", r.UpdatedAt)
	}
	if r.Format != nil {
		t.Errorf("Format has no source yet, got %v", *r.Format)
	}
}

// The canonical column order is part of the contract with documentation
// consumers; verify the written parquet preserves it exactly.
func TestCanonicalColumnOrder(t *testing.T) {
	expected := []string{
		"book_id", "title", "title_normalized", "author_principal", "authors",
		"publisher", "publication_year", "publication_date", "language",
		"isbn10", "isbn13", "page_count", "format", "categories",
		"price", "currency", "winning_source", "updated_at",
	}
	if len(expected) != 18 {
		t.Fatalf("Canonical schema must have 18 columns, test lists %d", len(expected))
	}

	path := filepath.Join(t.TempDir(), "dim_book.parquet")
	rows := BuildCanonical([]normalize.Record{winner()}, testNow)
	if err := WriteCanonical(path, rows); err != nil {
		t.Fatalf("WriteCanonical failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open written parquet: %v", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		t.Fatalf("Failed to stat parquet: %v", err)
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		t.Fatalf("Failed to read parquet: %v", err)
	}

	fields := pf.Schema().Fields()
	if len(fields) != len(expected) {
		t.Fatalf("Expected %d columns, got %d", len(expected), len(fields))
	}
	for i, f := range fields {
		if f.Name() != expected[i] {
			t.Errorf("Column %d: expected %q, got %q", i, expected[i], f.Name())
		}
	}
}

func TestBuildDetailKeepsWinnerFlag(t *testing.T) {
	detail := []resolve.Detail{
		{Record: winner(), IsWinner: true},
		{Record: normalize.Record{Source: normalize.SourceGoodreads, BookID: "9780262035613", TitleRaw: "Deep Learning"}, IsWinner: false},
	}

	rows := BuildDetail(detail)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 detail rows, got %d", len(rows))
	}
	if !rows[0].IsWinner || rows[1].IsWinner {
		t.Error("Winner flags not preserved")
	}
	if rows[1].SourceName != "goodreads" {
		t.Errorf("Expected source name goodreads, got %q", rows[1].SourceName)
	}
}

func TestSchemaMarkdown(t *testing.T) {
	rows := BuildCanonical([]normalize.Record{winner()}, testNow)
	doc := SchemaMarkdown(rows, testNow)

	for _, want := range []string{
		"# Canonical Model Schema",
		"dim_book.parquet",
		"Column Structure (18 fields)",
		"book_id",
		"winning_source",
		"9780262035613",
		"Normalization Methodology",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Schema doc missing %q", want)
		}
	}

	// format has no value in any row: nullable with no example.
	if !strings.Contains(doc, "format") {
		t.Error("Schema doc missing format column")
	}
}

func TestWriteSchemaDoc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.md")
	rows := BuildCanonical([]normalize.Record{winner()}, testNow)

	if err := WriteSchemaDoc(path, rows, testNow); err != nil {
		t.Fatalf("WriteSchemaDoc failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read schema doc: %v", err)
	}
	if len(content) == 0 {
		t.Error("Schema doc is empty")
	}
}
