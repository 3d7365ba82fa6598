package wiki

import "errors"

var (
	// ErrPageMissing is returned when a requested page does not exist.
	ErrPageMissing = errors.New("wiki: page does not exist")

	// ErrNoChange is returned by SavePage when the new text is identical
	// to the current text. Callers usually treat it as a skip, not a
	// failure.
	ErrNoChange = errors.New("wiki: edit would not change the page")

	// ErrNotLoggedIn is returned when an operation that needs bot rights
	// runs on an anonymous client.
	ErrNotLoggedIn = errors.New("wiki: not logged in")

	// ErrNoRevisions is returned when a revision query matches nothing.
	ErrNoRevisions = errors.New("wiki: no revisions found")
)
