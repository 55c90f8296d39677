package emit

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// canonicalColumn documents one field of the canonical table. The slice
// below mirrors the CanonicalRecord field order exactly.
type canonicalColumn struct {
	Name        string
	Type        string
	Description string
	value       func(CanonicalRecord) (string, bool)
}

var canonicalColumns = []canonicalColumn{
	{"book_id", "string", "Canonical ID (clean ISBN-13 or stable title hash). Primary key.", func(r CanonicalRecord) (string, bool) { return r.BookID, r.BookID != "" }},
	{"title", "string", "Book title from the winning record, original casing.", func(r CanonicalRecord) (string, bool) { return r.Title, r.Title != "" }},
	{"title_normalized", "string", "Case-folded, trimmed title used for deduplication.", func(r CanonicalRecord) (string, bool) { return r.TitleNormalized, r.TitleNormalized != "" }},
	{"author_principal", "string", "First author of the list.", func(r CanonicalRecord) (string, bool) { return r.AuthorPrincipal, r.AuthorPrincipal != "" }},
	{"authors", "string", "Comma-joined author string from the winning record.", func(r CanonicalRecord) (string, bool) { return r.Authors, r.Authors != "" }},
	{"publisher", "string?", "Publisher name (mostly from Google Books).", func(r CanonicalRecord) (string, bool) { return strVal(r.Publisher) }},
	{"publication_year", "string?", "Publication year (YYYY).", func(r CanonicalRecord) (string, bool) { return strVal(r.PublicationYear) }},
	{"publication_date", "string?", "Normalized publication date (YYYY-MM-DD, YYYY-MM, or YYYY).", func(r CanonicalRecord) (string, bool) { return strVal(r.PublicationDate) }},
	{"language", "string?", "Normalized language code (BCP-47 subset, e.g. \"en\").", func(r CanonicalRecord) (string, bool) { return strVal(r.Language) }},
	{"isbn10", "string?", "Clean ISBN-10.", func(r CanonicalRecord) (string, bool) { return strVal(r.ISBN10) }},
	{"isbn13", "string?", "Clean ISBN-13. Preferred identity key.", func(r CanonicalRecord) (string, bool) { return strVal(r.ISBN13) }},
	{"page_count", "int32?", "Number of pages.", func(r CanonicalRecord) (string, bool) { return intVal(r.PageCount) }},
	{"format", "string?", "Book format (no source carries it yet).", func(r CanonicalRecord) (string, bool) { return strVal(r.Format) }},
	{"categories", "string?", "Categories/genres (delimiter-joined string).", func(r CanonicalRecord) (string, bool) { return strVal(r.Categories) }},
	{"price", "double?", "Price amount, retained even when the currency code is invalid.", func(r CanonicalRecord) (string, bool) { return floatVal(r.Price) }},
	{"currency", "string?", "Normalized currency code (ISO-4217 subset, e.g. \"USD\").", func(r CanonicalRecord) (string, bool) { return strVal(r.Currency) }},
	{"winning_source", "string", "Source of the record chosen as canonical.", func(r CanonicalRecord) (string, bool) { return r.WinningSource, r.WinningSource != "" }},
	{"updated_at", "string", "Timestamp of the run that produced this row.", func(r CanonicalRecord) (string, bool) { return r.UpdatedAt, r.UpdatedAt != "" }},
}

func strVal(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func intVal(p *int32) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.FormatInt(int64(*p), 10), true
}

func floatVal(p *float64) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.FormatFloat(*p, 'g', -1, 64), true
}

// SchemaMarkdown renders the schema document for the canonical table:
// column-by-column structure with a first-non-null example per column, plus
// the normalization methodology.
func SchemaMarkdown(rows []CanonicalRecord, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# Canonical Model Schema: `dim_book.parquet`\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", generatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString("**Deduplication Key:** `book_id` (clean ISBN-13, or a stable title+author hash when no ISBN exists)\n\n")
	b.WriteString("**Survivorship Rule:** Google Books > longer title > most recent publication date\n\n")
	fmt.Fprintf(&b, "## Column Structure (%d fields)\n\n", len(canonicalColumns))

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Column", "Type", "Description", "Nullable", "Example"})

	for _, col := range canonicalColumns {
		example := "N/A"
		nullable := "no"
		found := false
		for _, row := range rows {
			v, ok := col.value(row)
			if !ok {
				nullable = "yes"
				continue
			}
			if !found {
				example = v
				found = true
			}
		}
		tw.AppendRow(table.Row{col.Name, col.Type, col.Description, nullable, example})
	}

	b.WriteString(tw.RenderMarkdown())
	b.WriteString("\n\n## Normalization Methodology\n\n")
	b.WriteString("- **Dates:** normalized to ISO-8601 (YYYY-MM-DD, YYYY-MM, or YYYY).\n")
	b.WriteString("- **Language:** normalized to a BCP-47 subset (e.g. `en`, `es`).\n")
	b.WriteString("- **Currency:** normalized to an ISO-4217 subset (e.g. `USD`, `EUR`).\n")
	b.WriteString("- **Titles:** case-folded into `title_normalized` for deduplication only.\n")

	return b.String()
}

// WriteSchemaDoc writes schema.md next to the quality metrics.
func WriteSchemaDoc(path string, rows []CanonicalRecord, generatedAt time.Time) error {
	if err := os.WriteFile(path, []byte(SchemaMarkdown(rows, generatedAt)), 0644); err != nil {
		return fmt.Errorf("failed to write schema doc: %w", err)
	}
	slog.Info("Schema doc written", "path", path)
	return nil
}
