package enrich

import (
	"fmt"

	"bookmerge/internal/ingest"
)

// Mock tables cycled by book index. Deterministic on purpose: repeated
// offline runs must land identical rows so the pipeline's reproducibility
// properties hold end to end.
var (
	mockDates      = []string{"2018-01-01", "2019-01-01", "2020-01-01", "2021-01-01", "2022-01-01", "2023-01-01"}
	mockLanguages  = []string{"en", "es", "fr"}
	mockCategories = []string{"Data Science", "Programming", "Machine Learning"}
	mockPrices     = []float64{24.99, 31.50, 42.00}
	mockCurrencies = []string{"USD", "EUR"}
)

// mockVolume fabricates an API volume for one scraped book, used when no
// API key is configured.
func mockVolume(book ingest.GoodreadsBook, index int) Volume {
	author := book.Author
	if author == "" {
		author = "J. Doe"
	}
	title := book.Title
	if title == "" {
		title = "Unknown Title"
	}

	return Volume{
		ID: fmt.Sprintf("GBID-%04d", 1000+index),
		VolumeInfo: VolumeInfo{
			Title:         "Enhanced: " + title,
			Subtitle:      "A Deep Dive into Data",
			Authors:       []string{author},
			Publisher:     "Tech Press Inc.",
			PublishedDate: mockDates[index%len(mockDates)],
			Language:      mockLanguages[index%len(mockLanguages)],
			Categories:    []string{mockCategories[index%len(mockCategories)]},
			IndustryIdentifiers: []IndustryIdentifier{
				{Type: "ISBN_13", Identifier: "9781234567890"},
				{Type: "ISBN_10", Identifier: "1234567890"},
			},
		},
		SaleInfo: SaleInfo{
			ListPrice: &ListPrice{
				Amount:       mockPrices[index%len(mockPrices)],
				CurrencyCode: mockCurrencies[index%len(mockCurrencies)],
			},
		},
	}
}
