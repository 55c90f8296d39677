package cmd

import (
	"github.com/spf13/cobra"

	"bookmerge/internal/config"
	"bookmerge/internal/scrape"
)

func newScrapeCmd() *cobra.Command {
	var query string
	var maxBooks int

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape book records from Goodreads search results",
		Long: `Searches Goodreads for the configured query, visits each result's book
page, and lands the raw records in landing/goodreads_books.json.`,
		Example: `  # Scrape with the configured defaults
  bookmerge scrape

  # Scrape a different query
  bookmerge scrape --query "machine learning" --max-books 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if query != "" {
				cfg.Scrape.Query = query
			}
			if maxBooks > 0 {
				cfg.Scrape.MaxBooks = maxBooks
			}

			scraper := scrape.New(cfg.Scrape)
			return scraper.Run(cmd.Context(), cfg.GoodreadsJSON())
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query (overrides config)")
	cmd.Flags().IntVarP(&maxBooks, "max-books", "n", 0, "Maximum books to scrape (overrides config)")

	return cmd
}
