package normalize

import "strings"

// Source tags which collaborator produced a record.
type Source string

const (
	SourceGoodreads   Source = "goodreads"
	SourceGoogleBooks Source = "googlebooks"
)

// Record is the shared intermediate schema both sources are mapped onto.
// Optional fields are pointers; nil means the source had no usable value.
// Presence is decided exactly once, here, so downstream stages never re-parse.
type Record struct {
	Source          Source
	TitleRaw        string
	TitleNormalized string
	AuthorsRaw      string
	SourceURL       *string

	ISBN13Clean     *string
	ISBN10Clean     *string
	PublicationDate *string
	LanguageCode    *string
	CurrencyCode    *string
	PriceAmount     *float64

	Publisher  *string
	Categories *string
	PageCount  *int32

	// BookID is the resolved cross-source identity. Never empty after
	// normalization.
	BookID string

	IngestionTimestamp string
}

// PrincipalAuthor returns the first comma-delimited author, trimmed. Empty
// when the record carries no author at all.
func (r Record) PrincipalAuthor() string {
	first, _, _ := strings.Cut(r.AuthorsRaw, ",")
	return strings.TrimSpace(first)
}

// PublicationYear derives the YYYY prefix of the normalized date.
func (r Record) PublicationYear() *string {
	if r.PublicationDate == nil || len(*r.PublicationDate) < 4 {
		return nil
	}
	year := (*r.PublicationDate)[:4]
	return &year
}
