package wiki

import (
	"errors"
	"fmt"
	"strings"

	"cgt.name/pkg/go-mwclient"
	"cgt.name/pkg/go-mwclient/params"
	"golang.org/x/sync/errgroup"
)

// Page is a wiki page with the metadata needed to save it back safely.
type Page struct {
	Title string
	Text  string
	// Timestamp of the revision Text came from, used as basetimestamp on
	// save so concurrent edits fail instead of being silently overwritten.
	Timestamp string
}

// existsBatchSize is the API's title limit for a single query request.
const existsBatchSize = 50

// Page fetches a page's current wikitext.
func (c *Client) Page(title string) (*Page, error) {
	text, timestamp, err := c.mw.GetPageByName(title)
	if err != nil {
		if errors.Is(err, mwclient.ErrPageNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPageMissing, title)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", title, err)
	}
	return &Page{Title: title, Text: text, Timestamp: timestamp}, nil
}

// SavePage writes new text to a page. The edit is marked bot and minor
// unless major is set. In dry-run mode the edit is logged as a diff and
// not sent. A save that would not change the page returns ErrNoChange.
func (c *Client) SavePage(page *Page, newText, summary string, major bool) error {
	if page.Text == newText {
		return fmt.Errorf("%w: %s", ErrNoChange, page.Title)
	}
	if c.dryRun {
		c.logger.Info("dry run, skipping save",
			"title", page.Title,
			"summary", summary,
			"diff", Diff(page.Text, newText))
		return nil
	}
	if !c.loggedIn {
		return ErrNotLoggedIn
	}

	c.throttle()
	p := params.Values{
		"title":         page.Title,
		"text":          newText,
		"summary":       summary,
		"bot":           "true",
		"basetimestamp": page.Timestamp,
	}
	if !major {
		p["minor"] = "true"
	}
	if err := c.mw.Edit(p); err != nil {
		if errors.Is(err, mwclient.ErrEditNoChange) {
			return fmt.Errorf("%w: %s", ErrNoChange, page.Title)
		}
		return fmt.Errorf("failed to save %s: %w", page.Title, err)
	}
	c.lastEdit = timeNow()
	c.logger.Info("saved page", "title", page.Title, "summary", summary)
	return nil
}

// ExistingPages filters titles down to those that exist, preserving input
// order. Probes run in batches of fifty titles, the API maximum, with the
// batches issued concurrently.
func (c *Client) ExistingPages(titles []string) ([]string, error) {
	exists := make([]bool, len(titles))
	var g errgroup.Group
	g.SetLimit(4)

	for start := 0; start < len(titles); start += existsBatchSize {
		end := min(start+existsBatchSize, len(titles))
		batch := titles[start:end]
		offset := start
		g.Go(func() error {
			resp, err := c.mw.Get(params.Values{
				"action":        "query",
				"titles":        strings.Join(batch, "|"),
				"formatversion": "2",
			})
			if err != nil {
				return fmt.Errorf("existence probe failed: %w", err)
			}
			pages, err := resp.GetObjectArray("query", "pages")
			if err != nil {
				return fmt.Errorf("malformed existence response: %w", err)
			}
			found := make(map[string]bool, len(pages))
			for _, page := range pages {
				title, err := page.GetString("title")
				if err != nil {
					continue
				}
				if missing, err := page.GetBoolean("missing"); err == nil && missing {
					continue
				}
				found[title] = true
			}

			// The API reports results under normalized titles (first
			// letter uppercased, underscores to spaces), so map each
			// input title to the form the response uses.
			normalized := make(map[string]string)
			if entries, err := resp.GetObjectArray("query", "normalized"); err == nil {
				for _, entry := range entries {
					from, err := entry.GetString("from")
					if err != nil {
						continue
					}
					to, err := entry.GetString("to")
					if err != nil {
						continue
					}
					normalized[from] = to
				}
			}

			for i, title := range batch {
				if to, ok := normalized[title]; ok {
					title = to
				}
				exists[offset+i] = found[title]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(titles))
	for i, title := range titles {
		if exists[i] {
			kept = append(kept, title)
		}
	}
	return kept, nil
}

// PageSizes returns the byte size of each existing title. Missing titles
// are absent from the result.
func (c *Client) PageSizes(titles []string) (map[string]int, error) {
	sizes := make(map[string]int, len(titles))
	for start := 0; start < len(titles); start += existsBatchSize {
		end := min(start+existsBatchSize, len(titles))
		resp, err := c.mw.Get(params.Values{
			"action":        "query",
			"prop":          "info",
			"titles":        strings.Join(titles[start:end], "|"),
			"formatversion": "2",
		})
		if err != nil {
			return nil, fmt.Errorf("size query failed: %w", err)
		}
		pages, err := resp.GetObjectArray("query", "pages")
		if err != nil {
			return nil, fmt.Errorf("malformed size response: %w", err)
		}
		for _, page := range pages {
			title, err := page.GetString("title")
			if err != nil {
				continue
			}
			if missing, err := page.GetBoolean("missing"); err == nil && missing {
				continue
			}
			length, err := page.GetInt64("length")
			if err != nil {
				continue
			}
			sizes[title] = int(length)
		}
	}
	return sizes, nil
}
