package ingest

// GoodreadsBook is one scraped book record as stored in the landing JSON.
// Missing values arrive as JSON null / empty string; presence is resolved
// at the normalization boundary, not here.
type GoodreadsBook struct {
	BookIDSource string   `json:"book_id_source"`
	BookURL      string   `json:"book_url"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Rating       *float64 `json:"rating"`
	RatingsCount *int64   `json:"ratings_count"`
	ISBN10       string   `json:"isbn10"`
	ISBN13       string   `json:"isbn13"`
}

// ScraperMetadata describes how the landing file was produced.
type ScraperMetadata struct {
	SourceURL          string `json:"source_url"`
	SearchQuery        string `json:"search_query"`
	UserAgent          string `json:"user_agent"`
	ScrapeDate         string `json:"scrape_date"`
	NumRecordsScraped  int    `json:"num_records_scraped"`
	ExtractionStrategy string `json:"extraction_strategy"`
}

// GoodreadsLanding is the on-disk shape of landing/goodreads_books.json.
type GoodreadsLanding struct {
	ScraperMetadata ScraperMetadata `json:"scraper_metadata"`
	Books           []GoodreadsBook `json:"books"`
}

// GoogleBooksRow is one row of landing/googlebooks_books.csv. All fields are
// raw strings; an empty string means the column was absent for that row.
// The goodreads_* fields are back-references to the scraped record the row
// enriches, carried for provenance and ISBN cross-referencing.
type GoogleBooksRow struct {
	GBID            string
	Title           string
	Subtitle        string
	Authors         string
	Publisher       string
	PubDate         string
	Language        string
	Categories      string
	ISBN13          string
	ISBN10          string
	PriceAmount     string
	PriceCurrency   string
	GoodreadsTitle  string
	GoodreadsAuthor string
	GoodreadsURL    string
	GoodreadsISBN10 string
	GoodreadsISBN13 string
}

// GoogleBooksColumns is the fixed header of the landing CSV, shared by the
// enrich writer and the loader.
var GoogleBooksColumns = []string{
	"gb_id", "title", "subtitle", "authors", "publisher", "pub_date",
	"language", "categories", "isbn13", "isbn10", "price_amount",
	"price_currency", "goodreads_title", "goodreads_author", "goodreads_url",
	"goodreads_isbn10", "goodreads_isbn13",
}
