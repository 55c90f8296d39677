package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestExtractBookID(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		expected string
	}{
		{
			name:     "plain id",
			href:     "/book/show/24072897",
			expected: "24072897",
		},
		{
			name:     "id with slug",
			href:     "/book/show/24072897.Deep_Learning",
			expected: "24072897",
		},
		{
			name:     "absolute url",
			href:     "https://www.goodreads.com/book/show/3735293-clean-code?ref=x",
			expected: "3735293",
		},
		{
			name:     "unrelated href",
			href:     "/author/show/12345",
			expected: "",
		},
		{
			name:     "empty",
			href:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBookID(tt.href); got != tt.expected {
				t.Errorf("ExtractBookID(%q) = %q, want %q", tt.href, got, tt.expected)
			}
		})
	}
}

func TestParseBookPage(t *testing.T) {
	html := `<html><body>
	<h1 data-testid="bookTitle"> Clean Code </h1>
	<span data-testid="authorName"><a href="/author/show/45372">Robert C. Martin</a></span>
	<div data-testid="rating">
		<span data-testid="ratingValue">4.23</span>
		<span data-testid="ratingsCount">23,456 ratings</span>
	</div>
	<div class="details">ISBN13: (9780132350884) ISBN: (0132350882)</div>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse fixture HTML: %v", err)
	}

	book := ParseBookPage(doc, "3735293")

	if book.BookIDSource != "3735293" {
		t.Errorf("Expected book id 3735293, got %q", book.BookIDSource)
	}
	if book.BookURL != "https://www.goodreads.com/book/show/3735293" {
		t.Errorf("Unexpected book url %q", book.BookURL)
	}
	if book.Title != "Clean Code" {
		t.Errorf("Expected trimmed title, got %q", book.Title)
	}
	if book.Author != "Robert C. Martin" {
		t.Errorf("Expected author, got %q", book.Author)
	}
	if book.Rating == nil || *book.Rating != 4.23 {
		t.Errorf("Expected rating 4.23, got %v", book.Rating)
	}
	if book.RatingsCount == nil || *book.RatingsCount != 23456 {
		t.Errorf("Expected ratings count 23456, got %v", book.RatingsCount)
	}
	if book.ISBN13 != "9780132350884" {
		t.Errorf("Expected ISBN13, got %q", book.ISBN13)
	}
	if book.ISBN10 != "0132350882" {
		t.Errorf("Expected ISBN10, got %q", book.ISBN10)
	}
}

func TestParseBookPageMissingFields(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	if err != nil {
		t.Fatalf("Failed to parse fixture HTML: %v", err)
	}

	book := ParseBookPage(doc, "1")

	if book.Title != "" || book.Author != "" {
		t.Errorf("Missing fields should stay empty: %+v", book)
	}
	if book.Rating != nil || book.RatingsCount != nil {
		t.Errorf("Missing numeric fields should stay nil: %+v", book)
	}
	if book.ISBN13 != "" || book.ISBN10 != "" {
		t.Errorf("Missing ISBNs should stay empty: %+v", book)
	}
}
