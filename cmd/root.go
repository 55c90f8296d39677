package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmerge",
		Short: "Book metadata integration pipeline with provenance and quality reporting",
		Long: `Bookmerge integrates book metadata from a scraped Goodreads catalog and
the Google Books lookup API into a single canonical dataset.

The integrate command runs the record-linkage and survivorship pipeline:
it assigns a durable cross-source identity to each book, resolves conflicts
under a deterministic precedence policy, and emits the canonical table,
a full audit trail, and per-source quality metrics.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: bookmerge.yml if present)")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newEnrichCmd())
	cmd.AddCommand(newIntegrateCmd())

	return cmd
}
