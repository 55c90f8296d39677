// Package enrich looks up each scraped book in the Google Books API and
// lands the merged rows as CSV for the integration pipeline. Without an API
// key the client falls back to deterministic mock volumes so the rest of the
// pipeline can be exercised offline.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"bookmerge/internal/config"
	"bookmerge/internal/ingest"
)

// Volume mirrors the slice of the Google Books API response the pipeline
// consumes.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
	SaleInfo   SaleInfo   `json:"saleInfo"`
}

type VolumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Language            string               `json:"language"`
	Categories          []string             `json:"categories"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type SaleInfo struct {
	ListPrice *ListPrice `json:"listPrice"`
}

type ListPrice struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

type searchResponse struct {
	Items []Volume `json:"items"`
}

// Client queries the Google Books volumes endpoint.
type Client struct {
	cfg        config.EnrichConfig
	httpClient *http.Client
}

func New(cfg config.EnrichConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Mocking reports whether the client will serve mock volumes instead of
// calling the API.
func (c *Client) Mocking() bool {
	return c.cfg.APIKey == ""
}

// Enrich looks up every scraped book. The query ladder tries title+author,
// then title alone, then ISBN; books with no match on any rung are skipped
// with a warning. The per-book result is the API volume merged with the
// goodreads back-reference fields.
func (c *Client) Enrich(ctx context.Context, books []ingest.GoodreadsBook) []ingest.GoogleBooksRow {
	if c.Mocking() {
		slog.Warn("GOOGLE_BOOKS_API_KEY not set, using mock volumes")
	}
	slog.Info("Starting enrichment", "books", len(books))

	rows := make([]ingest.GoogleBooksRow, 0, len(books))
	for i, book := range books {
		var volume *Volume

		if c.Mocking() {
			v := mockVolume(book, i)
			volume = &v
		} else {
			volume = c.lookupLadder(ctx, book)
			sleep(ctx, c.cfg.RequestDelay.Std())
		}

		if volume == nil {
			slog.Warn("No match found, skipping", "title", book.Title)
			continue
		}

		rows = append(rows, MapVolume(*volume, book))
	}

	return rows
}

func (c *Client) lookupLadder(ctx context.Context, book ingest.GoodreadsBook) *Volume {
	isbn := book.ISBN13
	if isbn == "" {
		isbn = book.ISBN10
	}

	queries := make([]string, 0, 3)
	if book.Title != "" && book.Author != "" {
		queries = append(queries, fmt.Sprintf("intitle:%q+inauthor:%q", book.Title, book.Author))
	}
	if book.Title != "" {
		queries = append(queries, fmt.Sprintf("intitle:%q", book.Title))
	}
	if isbn != "" {
		queries = append(queries, "isbn:"+isbn)
	}

	for _, q := range queries {
		volume, err := c.Search(ctx, q)
		if err != nil {
			slog.Error("Google Books lookup failed", "query", q, "err", err)
			continue
		}
		if volume != nil {
			return volume
		}
	}
	return nil
}

// Search runs one volumes query and returns the top match, or nil when the
// API found nothing.
func (c *Client) Search(ctx context.Context, query string) (*Volume, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", "1")
	params.Set("key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query volumes endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("volumes endpoint returned %d: %s", resp.StatusCode, body)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode volumes response: %w", err)
	}

	if len(parsed.Items) == 0 {
		return nil, nil
	}
	return &parsed.Items[0], nil
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
