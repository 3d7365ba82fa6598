// Package wiki wraps the MediaWiki action API behind the handful of
// operations the maintenance commands need: reading and saving pages,
// walking recent changes and contributions, and listing category members.
//
// The wrapper owns three cross-cutting concerns so callers do not have to:
// edit rate limiting, dry-run mode (edits become logged diffs instead of
// saves), and base-timestamp conflict detection on every save.
package wiki
