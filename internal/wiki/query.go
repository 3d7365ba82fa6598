package wiki

import (
	"fmt"
	"strconv"
	"time"

	"cgt.name/pkg/go-mwclient/params"
	"github.com/antonholmquist/jason"

	"github.com/celianv/vikibot/internal/model"
)

// parseAPITime parses the ISO 8601 timestamps the action API emits.
func parseAPITime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// RecentChanges returns all edit, new-page and log entries between start
// and end, newest first. limit caps each request, not the total; the
// query walks continuation until the window is exhausted.
func (c *Client) RecentChanges(start, end time.Time, limit int) ([]model.RecentChange, error) {
	q := c.mw.NewQuery(params.Values{
		"action":        "query",
		"list":          "recentchanges",
		"rcstart":       start.UTC().Format(time.RFC3339),
		"rcend":         end.UTC().Format(time.RFC3339),
		"rctype":        "edit|new|log",
		"rcprop":        "title|user|timestamp|ids|flags",
		"rclimit":       strconv.Itoa(limit),
		"formatversion": "2",
	})

	var changes []model.RecentChange
	for q.Next() {
		entries, err := q.Resp().GetObjectArray("query", "recentchanges")
		if err != nil {
			return nil, fmt.Errorf("malformed recentchanges response: %w", err)
		}
		for _, entry := range entries {
			rc, err := decodeRecentChange(entry)
			if err != nil {
				return nil, err
			}
			changes = append(changes, rc)
		}
	}
	if err := q.Err(); err != nil {
		return nil, fmt.Errorf("recentchanges query failed: %w", err)
	}
	return changes, nil
}

func decodeRecentChange(entry *jason.Object) (model.RecentChange, error) {
	var rc model.RecentChange
	var err error
	if rc.Type, err = entry.GetString("type"); err != nil {
		return rc, fmt.Errorf("recentchanges entry without type: %w", err)
	}
	if rc.Title, err = entry.GetString("title"); err != nil {
		return rc, fmt.Errorf("recentchanges entry without title: %w", err)
	}
	rc.User, _ = entry.GetString("user")
	if ts, err := entry.GetString("timestamp"); err == nil {
		if rc.Timestamp, err = parseAPITime(ts); err != nil {
			return rc, fmt.Errorf("bad recentchanges timestamp %q: %w", ts, err)
		}
	}
	if revid, err := entry.GetInt64("revid"); err == nil {
		rc.RevID = revid
	}
	if bot, err := entry.GetBoolean("bot"); err == nil {
		rc.Bot = bot
	}
	return rc, nil
}

// UserContribs returns a user's contributions between start and end,
// newest first.
func (c *Client) UserContribs(user string, start, end time.Time, limit int) ([]model.Contribution, error) {
	q := c.mw.NewQuery(params.Values{
		"action":        "query",
		"list":          "usercontribs",
		"ucuser":        user,
		"ucstart":       start.UTC().Format(time.RFC3339),
		"ucend":         end.UTC().Format(time.RFC3339),
		"ucprop":        "title|timestamp|ids|comment",
		"uclimit":       strconv.Itoa(limit),
		"formatversion": "2",
	})

	var contribs []model.Contribution
	for q.Next() {
		entries, err := q.Resp().GetObjectArray("query", "usercontribs")
		if err != nil {
			return nil, fmt.Errorf("malformed usercontribs response: %w", err)
		}
		for _, entry := range entries {
			var contrib model.Contribution
			if contrib.Title, err = entry.GetString("title"); err != nil {
				return nil, fmt.Errorf("usercontribs entry without title: %w", err)
			}
			if ts, err := entry.GetString("timestamp"); err == nil {
				if contrib.Timestamp, err = parseAPITime(ts); err != nil {
					return nil, fmt.Errorf("bad usercontribs timestamp %q: %w", ts, err)
				}
			}
			if revid, err := entry.GetInt64("revid"); err == nil {
				contrib.RevID = revid
			}
			contrib.Comment, _ = entry.GetString("comment")
			contribs = append(contribs, contrib)
		}
	}
	if err := q.Err(); err != nil {
		return nil, fmt.Errorf("usercontribs query failed: %w", err)
	}
	return contribs, nil
}

// LogEvents returns entries of the given log type (delete, block, ...)
// between start and end, newest first.
func (c *Client) LogEvents(logType string, start, end time.Time, limit int) ([]model.LogEvent, error) {
	q := c.mw.NewQuery(params.Values{
		"action":        "query",
		"list":          "logevents",
		"letype":        logType,
		"lestart":       start.UTC().Format(time.RFC3339),
		"leend":         end.UTC().Format(time.RFC3339),
		"leprop":        "title|user|timestamp|type",
		"lelimit":       strconv.Itoa(limit),
		"formatversion": "2",
	})

	var events []model.LogEvent
	for q.Next() {
		entries, err := q.Resp().GetObjectArray("query", "logevents")
		if err != nil {
			return nil, fmt.Errorf("malformed logevents response: %w", err)
		}
		for _, entry := range entries {
			var ev model.LogEvent
			ev.Type = logType
			if ev.Title, err = entry.GetString("title"); err != nil {
				return nil, fmt.Errorf("logevents entry without title: %w", err)
			}
			ev.User, _ = entry.GetString("user")
			if ts, err := entry.GetString("timestamp"); err == nil {
				if ev.Timestamp, err = parseAPITime(ts); err != nil {
					return nil, fmt.Errorf("bad logevents timestamp %q: %w", ts, err)
				}
			}
			events = append(events, ev)
		}
	}
	if err := q.Err(); err != nil {
		return nil, fmt.Errorf("logevents query failed: %w", err)
	}
	return events, nil
}

// CategoryMembers lists the article titles in a category. The "Catégorie:"
// prefix is added when absent.
func (c *Client) CategoryMembers(category string, limit int) ([]string, error) {
	title := category
	if len(title) < 10 || title[:10] != "Catégorie" {
		title = "Catégorie:" + category
	}
	q := c.mw.NewQuery(params.Values{
		"action":        "query",
		"list":          "categorymembers",
		"cmtitle":       title,
		"cmtype":        "page",
		"cmlimit":       strconv.Itoa(limit),
		"formatversion": "2",
	})

	var members []string
	for q.Next() {
		entries, err := q.Resp().GetObjectArray("query", "categorymembers")
		if err != nil {
			return nil, fmt.Errorf("malformed categorymembers response: %w", err)
		}
		for _, entry := range entries {
			name, err := entry.GetString("title")
			if err != nil {
				return nil, fmt.Errorf("categorymembers entry without title: %w", err)
			}
			members = append(members, name)
		}
	}
	if err := q.Err(); err != nil {
		return nil, fmt.Errorf("categorymembers query failed: %w", err)
	}
	return members, nil
}

// AllPages walks every non-redirect article in the main namespace and
// calls fn with each title. fn returning an error stops the walk.
func (c *Client) AllPages(limit int, fn func(title string) error) error {
	q := c.mw.NewQuery(params.Values{
		"action":        "query",
		"list":          "allpages",
		"apnamespace":   "0",
		"apfilterredir": "nonredirects",
		"aplimit":       strconv.Itoa(limit),
		"formatversion": "2",
	})

	for q.Next() {
		entries, err := q.Resp().GetObjectArray("query", "allpages")
		if err != nil {
			return fmt.Errorf("malformed allpages response: %w", err)
		}
		for _, entry := range entries {
			title, err := entry.GetString("title")
			if err != nil {
				return fmt.Errorf("allpages entry without title: %w", err)
			}
			if err := fn(title); err != nil {
				return err
			}
		}
	}
	if err := q.Err(); err != nil {
		return fmt.Errorf("allpages query failed: %w", err)
	}
	return nil
}

// BotUsers returns the set of accounts in the bot group. Stats exclude
// their edits.
func (c *Client) BotUsers() (map[string]bool, error) {
	q := c.mw.NewQuery(params.Values{
		"action":        "query",
		"list":          "allusers",
		"augroup":       "bot",
		"aulimit":       "500",
		"formatversion": "2",
	})

	bots := make(map[string]bool)
	for q.Next() {
		entries, err := q.Resp().GetObjectArray("query", "allusers")
		if err != nil {
			return nil, fmt.Errorf("malformed allusers response: %w", err)
		}
		for _, entry := range entries {
			name, err := entry.GetString("name")
			if err != nil {
				continue
			}
			bots[name] = true
		}
	}
	if err := q.Err(); err != nil {
		return nil, fmt.Errorf("allusers query failed: %w", err)
	}
	return bots, nil
}

// Revisions returns the newest revisions of a page, newest first, up to
// limit entries.
func (c *Client) Revisions(title string, limit int) ([]model.Revision, error) {
	resp, err := c.mw.Get(params.Values{
		"action":        "query",
		"prop":          "revisions",
		"titles":        title,
		"rvprop":        "ids|user|timestamp|size|comment",
		"rvlimit":       strconv.Itoa(limit),
		"formatversion": "2",
	})
	if err != nil {
		return nil, fmt.Errorf("revision query failed for %s: %w", title, err)
	}
	pages, err := resp.GetObjectArray("query", "pages")
	if err != nil || len(pages) == 0 {
		return nil, fmt.Errorf("malformed revision response for %s: %w", title, err)
	}
	if missing, err := pages[0].GetBoolean("missing"); err == nil && missing {
		return nil, fmt.Errorf("%w: %s", ErrPageMissing, title)
	}
	entries, err := pages[0].GetObjectArray("revisions")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRevisions, title)
	}

	revs := make([]model.Revision, 0, len(entries))
	for _, entry := range entries {
		var rev model.Revision
		if rev.ID, err = entry.GetInt64("revid"); err != nil {
			return nil, fmt.Errorf("revision entry without revid: %w", err)
		}
		rev.ParentID, _ = entry.GetInt64("parentid")
		rev.User, _ = entry.GetString("user")
		if ts, err := entry.GetString("timestamp"); err == nil {
			if rev.Timestamp, err = parseAPITime(ts); err != nil {
				return nil, fmt.Errorf("bad revision timestamp %q: %w", ts, err)
			}
		}
		if size, err := entry.GetInt64("size"); err == nil {
			rev.Size = size
		}
		rev.Comment, _ = entry.GetString("comment")
		revs = append(revs, rev)
	}
	return revs, nil
}

// RevisionContent fetches the wikitext of one revision by ID.
func (c *Client) RevisionContent(revID int64) (string, error) {
	resp, err := c.mw.Get(params.Values{
		"action":        "query",
		"prop":          "revisions",
		"revids":        strconv.FormatInt(revID, 10),
		"rvprop":        "content",
		"rvslots":       "main",
		"formatversion": "2",
	})
	if err != nil {
		return "", fmt.Errorf("revision content query failed for %d: %w", revID, err)
	}
	pages, err := resp.GetObjectArray("query", "pages")
	if err != nil || len(pages) == 0 {
		return "", fmt.Errorf("%w: revision %d", ErrNoRevisions, revID)
	}
	entries, err := pages[0].GetObjectArray("revisions")
	if err != nil || len(entries) == 0 {
		return "", fmt.Errorf("%w: revision %d", ErrNoRevisions, revID)
	}
	content, err := entries[0].GetString("slots", "main", "content")
	if err != nil {
		return "", fmt.Errorf("revision %d has no main slot content: %w", revID, err)
	}
	return content, nil
}

// ParseHTML renders a page to HTML through action=parse. Used to pull a
// plain-text excerpt for report embeds.
func (c *Client) ParseHTML(title string) (string, error) {
	resp, err := c.mw.Get(params.Values{
		"action":        "parse",
		"page":          title,
		"prop":          "text",
		"formatversion": "2",
	})
	if err != nil {
		return "", fmt.Errorf("parse failed for %s: %w", title, err)
	}
	html, err := resp.GetString("parse", "text")
	if err != nil {
		return "", fmt.Errorf("malformed parse response for %s: %w", title, err)
	}
	return html, nil
}
