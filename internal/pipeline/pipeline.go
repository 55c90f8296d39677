// Package pipeline orchestrates the four-stage integration batch:
// ingest -> normalize -> resolve -> emit. Each stage consumes the prior
// stage's output in full; data flows strictly forward and nothing is written
// until both sources have been ingested successfully.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"bookmerge/internal/config"
	"bookmerge/internal/emit"
	"bookmerge/internal/ingest"
	"bookmerge/internal/normalize"
	"bookmerge/internal/quality"
	"bookmerge/internal/resolve"
)

// Result carries the in-memory outputs of a run, mainly for tests and for
// callers that want to inspect beyond the written artifacts.
type Result struct {
	Canonical []emit.CanonicalRecord
	Detail    []emit.DetailRecord
	Reports   []quality.Report
}

// Run executes one full integration batch and writes all artifacts. A run
// either completes fully or returns an error with no canonical output; zero
// rows from either source abort before anything is written.
func Run(cfg config.Config) (*Result, error) {
	runID := uuid.NewString()
	started := time.Now().UTC()
	slog.Info("Integration pipeline starting", "run_id", runID)

	// Stage 1: ingestion.
	grBooks, err := ingest.LoadGoodreads(cfg.GoodreadsJSON())
	if err != nil {
		return nil, fmt.Errorf("ingestion failed: %w", err)
	}
	gbRows, err := ingest.LoadGoogleBooks(cfg.GoogleBooksCSV())
	if err != nil {
		return nil, fmt.Errorf("ingestion failed: %w", err)
	}

	// Stage 2: normalization, per source.
	grStd := normalize.Goodreads(grBooks, started)
	gbStd := normalize.GoogleBooks(gbRows, started)
	slog.Info("Sources normalized",
		"goodreads_rows", len(grStd), "googlebooks_rows", len(gbStd))

	reports := []quality.Report{
		quality.Compute(grStd, normalize.SourceGoodreads, quality.KeyColumns, runID, started),
		quality.Compute(gbStd, normalize.SourceGoogleBooks, quality.KeyColumns, runID, started),
	}

	// Stage 3: identity grouping and survivorship over the unified set.
	unified := make([]normalize.Record, 0, len(grStd)+len(gbStd))
	unified = append(unified, grStd...)
	unified = append(unified, gbStd...)

	winners, detail := resolve.Resolve(unified)

	// Stage 4: artifact emission. Full overwrite, no partial artifact set.
	canonical := emit.BuildCanonical(winners, started)
	detailRows := emit.BuildDetail(detail)

	if err := os.MkdirAll(cfg.StandardDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create standard dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DocsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create docs dir: %w", err)
	}

	if err := emit.WriteDetail(cfg.SourceDetailParquet(), detailRows); err != nil {
		return nil, err
	}
	if err := emit.WriteCanonical(cfg.DimBookParquet(), canonical); err != nil {
		return nil, err
	}
	if err := emit.WriteQualityMetrics(cfg.QualityMetricsJSON(), reports); err != nil {
		return nil, err
	}
	if err := emit.WriteSchemaDoc(cfg.SchemaMarkdown(), canonical, started); err != nil {
		return nil, err
	}

	slog.Info("Integration pipeline complete",
		"run_id", runID,
		"canonical_rows", len(canonical),
		"detail_rows", len(detailRows),
		"elapsed", time.Since(started).Round(time.Millisecond))

	return &Result{Canonical: canonical, Detail: detailRows, Reports: reports}, nil
}
