package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookmerge/internal/config"
	"bookmerge/internal/enrich"
	"bookmerge/internal/ingest"
)

func newEnrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich scraped books via the Google Books API",
		Long: `Looks up each scraped book in the Google Books API (title+author, then
title, then ISBN) and lands the merged rows in landing/googlebooks_books.csv.

Set GOOGLE_BOOKS_API_KEY to query the real API; without it the command
produces deterministic mock volumes so the pipeline can run offline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			books, err := ingest.LoadGoodreads(cfg.GoodreadsJSON())
			if err != nil {
				return fmt.Errorf("scrape landing required before enrichment: %w", err)
			}

			client := enrich.New(cfg.Enrich)
			rows := client.Enrich(cmd.Context(), books)
			if len(rows) == 0 {
				return fmt.Errorf("enrichment produced no rows")
			}

			return enrich.WriteCSV(cfg.GoogleBooksCSV(), rows)
		},
	}

	return cmd
}
