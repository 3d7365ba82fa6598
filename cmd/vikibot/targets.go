package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/model"
)

// recentOrAllTitles resolves the articles a sweep-style command should
// examine: the full main namespace with --all, otherwise the distinct
// articles touched within the --since window.
func recentOrAllTitles(ctx context.Context, cmd *cobra.Command, b *bot) ([]string, error) {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return nil, err
	}
	if all {
		var titles []string
		err := b.client.AllPages(b.cfg.QueryLimit, func(title string) error {
			titles = append(titles, title)
			return ctx.Err()
		})
		return titles, err
	}

	since, err := cmd.Flags().GetDuration("since")
	if err != nil {
		return nil, err
	}
	return recentlyTouchedTitles(b, since)
}

// recentlyTouchedTitles returns the distinct article titles edited or
// created within the window, newest activity first.
func recentlyTouchedTitles(b *bot, since time.Duration) ([]string, error) {
	now := time.Now().UTC()
	changes, err := b.client.RecentChanges(now, now.Add(-since), b.cfg.QueryLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var titles []string
	for _, rc := range changes {
		if rc.Type != model.ChangeTypeEdit && rc.Type != model.ChangeTypeNew {
			continue
		}
		if seen[rc.Title] {
			continue
		}
		seen[rc.Title] = true
		titles = append(titles, rc.Title)
	}
	return titles, nil
}
