package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/model"
	"github.com/celianv/vikibot/internal/wiki"
	"github.com/celianv/vikibot/internal/wikitext"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Update the bot's daily statistics pages",
		Long: `Stats aggregates today's recent changes (excluding bot accounts) and
rewrites the bot's statistics page with the day's numbers: total
changes, new articles, most edited pages and most active contributors.

The dated archive page is updated too: the current day's section is
replaced if it already exists, and the table of contents is rebuilt.

Examples:
  # Update both statistics pages
  vikibot stats

  # Preview without saving
  vikibot stats --dry-run`,
		Args: cobra.NoArgs,
		RunE: runStatsCmd,
	}
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
	b, err := newBot(cmd)
	if err != nil {
		return err
	}
	defer b.close()

	if err := b.checkStop(); err != nil {
		return err
	}
	if err := b.login(); err != nil {
		return err
	}

	ctx, cancel := signalContext(b.logger)
	defer cancel()

	report := model.NewRunReport("stats")
	err = runStats(ctx, b, report)
	report.Finish()
	if finishErr := b.finishRun(ctx, cmd, report); err == nil {
		err = finishErr
	}
	return err
}

// runStats computes today's statistics and rewrites both pages.
func runStats(ctx context.Context, b *bot, report *model.RunReport) error {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dateFR := now.Format("02/01/2006")

	stats, err := collectDailyStats(b, now, midnight)
	if err != nil {
		return err
	}
	if stats.TotalChanges == 0 {
		b.logger.Info("no changes today outside bot accounts")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	section := wikitext.RenderDailyStats(stats, dateFR)

	// Main statistics page holds only the current day.
	statsPage, err := pageOrNew(b.client, b.cfg.Pages.Stats)
	if err != nil {
		return err
	}
	report.Record(saveOutcome(b.client, statsPage, section,
		fmt.Sprintf("📊 MAJ automatique du %s", dateFR)))

	// Archive keeps one section per day with a regenerated TOC.
	archivePage, err := pageOrNew(b.client, b.cfg.Pages.Archive)
	if err != nil {
		return err
	}
	newArchive := wikitext.UpsertDailySection(archivePage.Text, dateFR, section)
	report.Record(saveOutcome(b.client, archivePage, newArchive,
		fmt.Sprintf("🗃️ MAJ archives (%s)", dateFR)))

	return nil
}

// collectDailyStats gathers recent changes and moderation log events for
// the window and aggregates them, excluding bot accounts.
func collectDailyStats(b *bot, start, end time.Time) (*model.DailyStats, error) {
	changes, err := b.client.RecentChanges(start, end, b.cfg.QueryLimit)
	if err != nil {
		return nil, err
	}

	bots, err := b.client.BotUsers()
	if err != nil {
		return nil, err
	}
	if bots == nil {
		bots = make(map[string]bool)
	}
	if b.cfg.Username != "" {
		bots[b.cfg.Username] = true
	}

	loc, err := b.cfg.Location()
	if err != nil {
		return nil, err
	}

	stats := model.ComputeDailyStats(changes, bots, loc)
	stats.Start = end
	stats.End = start

	deletions, err := b.client.LogEvents("delete", start, end, b.cfg.QueryLimit)
	if err != nil {
		return nil, err
	}
	stats.DeletedPages = len(deletions)

	blocks, err := b.client.LogEvents("block", start, end, b.cfg.QueryLimit)
	if err != nil {
		return nil, err
	}
	stats.BlockedUsers = len(blocks)

	return stats, nil
}

// pageOrNew fetches a page, returning an empty one when it does not
// exist yet so the first run can create it.
func pageOrNew(client *wiki.Client, title string) (*wiki.Page, error) {
	page, err := client.Page(title)
	if errors.Is(err, wiki.ErrPageMissing) {
		return &wiki.Page{Title: title}, nil
	}
	return page, err
}

// saveOutcome saves a page and folds the result into a page outcome.
func saveOutcome(client *wiki.Client, page *wiki.Page, newText, summary string) model.PageOutcome {
	outcome := model.PageOutcome{Title: page.Title}
	if err := client.SavePage(page, newText, summary, false); err != nil {
		if errors.Is(err, wiki.ErrNoChange) {
			outcome.Detail = "no change"
			return outcome
		}
		outcome.Action = model.OutcomeFailed
		outcome.Err = err.Error()
		return outcome
	}
	outcome.Action = model.OutcomeEdited
	return outcome
}
