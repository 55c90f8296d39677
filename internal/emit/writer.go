package emit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"

	"bookmerge/internal/quality"
)

// WriteCanonical writes dim_book.parquet, replacing any previous run's table.
func WriteCanonical(path string, rows []CanonicalRecord) error {
	if err := writeParquet(path, rows); err != nil {
		return fmt.Errorf("failed to write canonical table: %w", err)
	}
	slog.Info("Canonical table written", "path", path, "rows", len(rows))
	return nil
}

// WriteDetail writes book_source_detail.parquet.
func WriteDetail(path string, rows []DetailRecord) error {
	if err := writeParquet(path, rows); err != nil {
		return fmt.Errorf("failed to write source detail table: %w", err)
	}
	slog.Info("Source detail table written", "path", path, "rows", len(rows))
	return nil
}

func writeParquet[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		file.Close()
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	return file.Close()
}

// WriteQualityMetrics writes the per-source quality reports as an indented
// JSON array.
func WriteQualityMetrics(path string, reports []quality.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode quality metrics: %w", err)
	}

	slog.Info("Quality metrics written", "path", path, "sources", len(reports))
	return nil
}
