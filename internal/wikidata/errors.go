package wikidata

import "errors"

var (
	// ErrNotFound is returned when a label or property lookup matches
	// nothing.
	ErrNotFound = errors.New("wikidata: not found")

	// ErrQueryFailed is returned when the query service answers with a
	// non-200 status.
	ErrQueryFailed = errors.New("wikidata: query failed")
)
