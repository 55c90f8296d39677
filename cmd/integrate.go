package cmd

import (
	"github.com/spf13/cobra"

	"bookmerge/internal/config"
	"bookmerge/internal/pipeline"
)

func newIntegrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Run the record-linkage and survivorship pipeline",
		Long: `Runs the full integration batch over the landing files:

  1. Ingest both landing sources in full
  2. Normalize each source onto the shared schema
  3. Resolve cross-source identity and pick one winner per book
  4. Emit dim_book.parquet, book_source_detail.parquet, quality metrics,
     and the schema documentation

The run aborts before writing anything if either source yields zero rows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			_, err = pipeline.Run(cfg)
			return err
		},
	}

	return cmd
}
