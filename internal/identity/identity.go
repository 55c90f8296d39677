// Package identity assigns the durable cross-source book_id. A record with a
// clean ISBN-13 takes it as its identity so independently-sourced records for
// the same physical book collide into one group; everything else falls back
// to a stable hash of normalized title plus principal author.
package identity

import (
	"hash/fnv"
	"strconv"
)

// Sentinels substituted into the fallback key when a component is missing.
// Changing either changes every ISBN-less book_id, so they are fixed.
const (
	MissingTitleSentinel  = "__MISSING_TITLE__"
	MissingAuthorSentinel = "__MISSING_AUTHOR__"
)

// Assign computes the book_id for a record. Total and deterministic: it
// always yields a non-empty identity.
func Assign(isbn13Clean *string, titleNormalized, principalAuthor string) string {
	if isbn13Clean != nil && IsISBN13(*isbn13Clean) {
		return *isbn13Clean
	}
	return StableHash(FallbackKey(titleNormalized, principalAuthor))
}

// IsISBN13 reports whether a cleaned value is exactly 13 numeric digits.
func IsISBN13(value string) bool {
	if len(value) != 13 {
		return false
	}
	for _, c := range value {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FallbackKey joins normalized title and principal author into the composite
// dedup key used when no valid ISBN-13 exists.
func FallbackKey(titleNormalized, principalAuthor string) string {
	if titleNormalized == "" {
		titleNormalized = MissingTitleSentinel
	}
	if principalAuthor == "" {
		principalAuthor = MissingAuthorSentinel
	}
	return titleNormalized + "|" + principalAuthor
}

// StableHash is a 64-bit FNV-1a digest rendered as a decimal string. It must
// stay stable across runs and processes: a runtime's randomized hash here
// would make deduplication non-reproducible between runs.
func StableHash(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return strconv.FormatUint(h.Sum64(), 10)
}
