// Package scrape collects raw book records from Goodreads search results:
// a search pass gathers book IDs, then each book page is visited for the
// fields the integration pipeline consumes. Output lands unmodified in
// landing/goodreads_books.json.
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"bookmerge/internal/config"
	"bookmerge/internal/ingest"
)

const bookURLPattern = "https://www.goodreads.com/book/show/%s"

var (
	bookIDRe       = regexp.MustCompile(`/book/show/(\d+)`)
	isbn13Re       = regexp.MustCompile(`ISBN13:?[\s(]+(\d{13})`)
	isbn10Re       = regexp.MustCompile(`ISBN:?[\s(]+(\d{10})`)
	ratingsCountRe = regexp.MustCompile(`(\d+)`)
)

// Scraper fetches and parses Goodreads pages with polite per-request delays.
type Scraper struct {
	cfg        config.ScrapeConfig
	httpClient *http.Client
}

func New(cfg config.ScrapeConfig) *Scraper {
	return &Scraper{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Run performs the full scrape and writes the landing file.
func (s *Scraper) Run(ctx context.Context, outputPath string) error {
	ids, err := s.SearchBookIDs(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("search for %q returned no book IDs", s.cfg.Query)
	}

	books := s.ScrapeBooks(ctx, ids)
	if len(books) == 0 {
		return fmt.Errorf("no book pages could be scraped")
	}

	return writeLanding(outputPath, s.cfg, books)
}

// SearchBookIDs pages through search results collecting distinct book IDs,
// up to the configured maximum.
func (s *Scraper) SearchBookIDs(ctx context.Context) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)

	for page := 1; page <= s.cfg.MaxPages && len(ids) < s.cfg.MaxBooks; page++ {
		pageURL := fmt.Sprintf("%s?q=%s&search_type=books&page=%d",
			s.cfg.SearchURL, url.QueryEscape(s.cfg.Query), page)
		slog.Info("Searching for book IDs", "page", page)

		doc, err := s.fetchDocument(ctx, pageURL)
		if err != nil {
			slog.Warn("Search page fetch failed, stopping pagination", "page", page, "err", err)
			break
		}

		rows := doc.Find("table.tableList tr")
		if rows.Length() <= 1 {
			slog.Info("No more search results", "page", page)
			break
		}

		rows.Each(func(_ int, row *goquery.Selection) {
			if len(ids) >= s.cfg.MaxBooks {
				return
			}
			href, ok := row.Find("a.bookTitle").Attr("href")
			if !ok {
				return
			}
			if id := ExtractBookID(href); id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		})

		sleep(ctx, s.cfg.PageDelay.Std())
	}

	slog.Info("Search complete", "book_ids", len(ids))
	return ids, nil
}

// ScrapeBooks visits each book page. Pages that fail to download are skipped;
// a partial scrape is still a valid landing set.
func (s *Scraper) ScrapeBooks(ctx context.Context, ids []string) []ingest.GoodreadsBook {
	books := make([]ingest.GoodreadsBook, 0, len(ids))

	for i, id := range ids {
		slog.Info("Scraping book page", "index", i+1, "total", len(ids), "book_id", id)

		pageURL := fmt.Sprintf(bookURLPattern, id)
		doc, err := s.fetchDocument(ctx, pageURL)
		if err != nil {
			slog.Warn("Skipping book after download failure", "book_id", id, "err", err)
			continue
		}

		books = append(books, ParseBookPage(doc, id))
		sleep(ctx, s.cfg.BookDelay.Std())
	}

	return books
}

// ExtractBookID pulls the numeric book ID out of a /book/show/ href.
func ExtractBookID(href string) string {
	m := bookIDRe.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseBookPage extracts the raw record fields from a book detail page.
// Fields that cannot be located stay at their zero value; presence is
// resolved later, at normalization.
func ParseBookPage(doc *goquery.Document, bookID string) ingest.GoodreadsBook {
	book := ingest.GoodreadsBook{
		BookIDSource: bookID,
		BookURL:      fmt.Sprintf(bookURLPattern, bookID),
	}

	book.Title = strings.TrimSpace(doc.Find("h1[data-testid='bookTitle']").First().Text())
	book.Author = strings.TrimSpace(doc.Find("span[data-testid='authorName'] a").First().Text())

	ratingText := strings.TrimSpace(doc.Find("div[data-testid='rating'] span[data-testid='ratingValue']").First().Text())
	if ratingText != "" {
		if v, err := strconv.ParseFloat(ratingText, 64); err == nil {
			book.Rating = &v
		}
	}

	countText := strings.ReplaceAll(doc.Find("div[data-testid='rating'] span[data-testid='ratingsCount']").First().Text(), ",", "")
	if m := ratingsCountRe.FindStringSubmatch(countText); m != nil {
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			book.RatingsCount = &v
		}
	}

	// ISBNs live in free text in the details section.
	text := doc.Text()
	if m := isbn13Re.FindStringSubmatch(text); m != nil {
		book.ISBN13 = m[1]
	}
	if m := isbn10Re.FindStringSubmatch(text); m != nil {
		book.ISBN10 = m[1]
	}

	return book
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}
	return doc, nil
}

func writeLanding(path string, cfg config.ScrapeConfig, books []ingest.GoodreadsBook) error {
	landing := ingest.GoodreadsLanding{
		ScraperMetadata: ingest.ScraperMetadata{
			SourceURL:          fmt.Sprintf("%s?q=%s&search_type=books", cfg.SearchURL, url.QueryEscape(cfg.Query)),
			SearchQuery:        cfg.Query,
			UserAgent:          cfg.UserAgent,
			ScrapeDate:         time.Now().Format(time.RFC3339),
			NumRecordsScraped:  len(books),
			ExtractionStrategy: "Search List -> Visit Individual Book Page",
		},
		Books: books,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create landing dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create landing file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(landing); err != nil {
		return fmt.Errorf("failed to encode landing file: %w", err)
	}

	slog.Info("Goodreads landing written", "path", path, "books", len(books))
	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
