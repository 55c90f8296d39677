// Package resolve implements survivorship: grouping normalized records by
// book_id and choosing one winning record per group under a deterministic
// precedence rule.
package resolve

import (
	"log/slog"

	"bookmerge/internal/normalize"
)

// absentDateSentinel sorts below every real normalized date.
const absentDateSentinel = "0000-00-00"

// sourceRank orders sources for survivorship; lower wins. The enrichment
// source outranks the scrape-only source. Adding a source means one entry
// here.
var sourceRank = map[normalize.Source]int{
	normalize.SourceGoogleBooks: 1,
	normalize.SourceGoodreads:   2,
}

// Detail is one audit row: a normalized record tagged with whether it was
// chosen as canonical for its book_id group.
type Detail struct {
	normalize.Record
	IsWinner bool
}

// Resolve partitions records by book_id and selects one winner per group.
// Winners are returned in first-seen group order; detail preserves input
// order and contains every input record exactly once. Both orders are fixed
// for a fixed input, so repeated runs are byte-comparable.
func Resolve(records []normalize.Record) (winners []normalize.Record, detail []Detail) {
	winnerIdx := make(map[string]int, len(records))
	groupOrder := make([]string, 0, len(records))

	for i, r := range records {
		best, seen := winnerIdx[r.BookID]
		if !seen {
			winnerIdx[r.BookID] = i
			groupOrder = append(groupOrder, r.BookID)
			continue
		}
		if beats(r, records[best]) {
			winnerIdx[r.BookID] = i
		}
	}

	winners = make([]normalize.Record, 0, len(groupOrder))
	for _, id := range groupOrder {
		winners = append(winners, records[winnerIdx[id]])
	}

	detail = make([]Detail, 0, len(records))
	for i, r := range records {
		detail = append(detail, Detail{
			Record:   r,
			IsWinner: winnerIdx[r.BookID] == i,
		})
	}

	slog.Info("Survivorship resolved",
		"input_records", len(records),
		"distinct_books", len(winners),
		"duplicates_collapsed", len(records)-len(winners))

	return winners, detail
}

// beats reports whether a should replace b as its group's winner. Applied in
// strict priority: source rank, then longer raw title, then most recent
// normalized date. Ties keep the earlier record.
func beats(a, b normalize.Record) bool {
	ra, rb := sourceRank[a.Source], sourceRank[b.Source]
	if ra != rb {
		return ra < rb
	}

	la, lb := len(a.TitleRaw), len(b.TitleRaw)
	if la != lb {
		return la > lb
	}

	return dateSortKey(a) > dateSortKey(b)
}

func dateSortKey(r normalize.Record) string {
	if r.PublicationDate == nil {
		return absentDateSentinel
	}
	return *r.PublicationDate
}
