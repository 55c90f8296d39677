package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so delays can be written as "500ms" or "2s"
// in the config file; yaml.v3 has no native duration decoding.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds pipeline-wide settings. All fields have working defaults so
// the tool runs without a config file.
type Config struct {
	LandingDir  string `yaml:"landing_dir"`
	StandardDir string `yaml:"standard_dir"`
	DocsDir     string `yaml:"docs_dir"`

	Scrape ScrapeConfig `yaml:"scrape"`
	Enrich EnrichConfig `yaml:"enrich"`
}

// ScrapeConfig configures the Goodreads scraper.
type ScrapeConfig struct {
	SearchURL string   `yaml:"search_url"`
	Query     string   `yaml:"query"`
	MaxBooks  int      `yaml:"max_books"`
	MaxPages  int      `yaml:"max_pages"`
	PageDelay Duration `yaml:"page_delay"`
	BookDelay Duration `yaml:"book_delay"`
	UserAgent string   `yaml:"user_agent"`
}

// EnrichConfig configures the Google Books lookup client.
type EnrichConfig struct {
	BaseURL      string   `yaml:"base_url"`
	RequestDelay Duration `yaml:"request_delay"`

	// APIKey comes from the GOOGLE_BOOKS_API_KEY environment variable,
	// never from the config file.
	APIKey string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LandingDir:  "landing",
		StandardDir: "standard",
		DocsDir:     filepath.Join("standard", "docs"),
		Scrape: ScrapeConfig{
			SearchURL: "https://www.goodreads.com/search",
			Query:     "data science",
			MaxBooks:  10,
			MaxPages:  5,
			PageDelay: Duration(time.Second),
			BookDelay: Duration(1500 * time.Millisecond),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		},
		Enrich: EnrichConfig{
			BaseURL:      "https://www.googleapis.com/books/v1/volumes",
			RequestDelay: Duration(500 * time.Millisecond),
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path means
// "bookmerge.yml if present"; a missing optional file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		path = "bookmerge.yml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			cfg.Enrich.APIKey = os.Getenv("GOOGLE_BOOKS_API_KEY")
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Enrich.APIKey = os.Getenv("GOOGLE_BOOKS_API_KEY")
	return cfg, nil
}

// Landing-file and artifact paths. The integrate pipeline and the two
// ingestion commands agree on these names.

func (c Config) GoodreadsJSON() string {
	return filepath.Join(c.LandingDir, "goodreads_books.json")
}

func (c Config) GoogleBooksCSV() string {
	return filepath.Join(c.LandingDir, "googlebooks_books.csv")
}

func (c Config) DimBookParquet() string {
	return filepath.Join(c.StandardDir, "dim_book.parquet")
}

func (c Config) SourceDetailParquet() string {
	return filepath.Join(c.StandardDir, "book_source_detail.parquet")
}

func (c Config) QualityMetricsJSON() string {
	return filepath.Join(c.DocsDir, "quality_metrics.json")
}

func (c Config) SchemaMarkdown() string {
	return filepath.Join(c.DocsDir, "schema.md")
}
