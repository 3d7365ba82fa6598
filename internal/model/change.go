package model

import "time"

// Change types reported by the MediaWiki recentchanges list.
const (
	// ChangeTypeEdit is an edit to an existing page.
	ChangeTypeEdit = "edit"

	// ChangeTypeNew is a page creation.
	ChangeTypeNew = "new"

	// ChangeTypeLog is a log action (delete, block, move, ...).
	ChangeTypeLog = "log"
)

// RecentChange is one entry from the wiki's recent changes feed.
type RecentChange struct {
	// Type is one of the ChangeType constants.
	Type string

	// Title is the full page title including namespace prefix.
	Title string

	// User is the account or IP that made the change.
	User string

	// Timestamp is when the change was made (UTC).
	Timestamp time.Time

	// RevID is the revision created by this change (0 for log entries).
	RevID int64

	// Bot reports whether the change was flagged as a bot edit.
	Bot bool
}

// Contribution is one entry from a user's contribution history.
type Contribution struct {
	// Title is the page the user edited.
	Title string

	// RevID is the revision the contribution created.
	RevID int64

	// Timestamp is when the contribution was made (UTC).
	Timestamp time.Time

	// Comment is the edit summary the user supplied.
	Comment string
}

// Revision is one entry from a page's revision history.
type Revision struct {
	// ID is the revision identifier.
	ID int64

	// ParentID is the identifier of the previous revision (0 for the
	// first revision of a page).
	ParentID int64

	// User is the account that made the revision.
	User string

	// Timestamp is when the revision was saved (UTC).
	Timestamp time.Time

	// Size is the page size in bytes after the revision.
	Size int64

	// Comment is the edit summary.
	Comment string
}

// LogEvent is one entry from the wiki's public log.
type LogEvent struct {
	// Type is the log type (delete, block, ...).
	Type string

	// Action is the specific action within the log type.
	Action string

	// Title is the page or user page the action targeted.
	Title string

	// User is the account that performed the action.
	User string

	// Timestamp is when the action was logged (UTC).
	Timestamp time.Time
}
