package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/config"
	"github.com/celianv/vikibot/internal/model"
	"github.com/celianv/vikibot/internal/wikitext"
)

// NewShortlistCmd creates the shortlist command.
func NewShortlistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shortlist",
		Short: "Prune grown articles from the important-and-short list",
		Long: `Shortlist prunes the "important and short articles" list page: every
{{Wpj|Title}} line whose target article now exceeds the byte threshold
is removed, since the article is no longer short.

Only the region between the "` + config.ShortlistStartMarker + `" and
"` + config.ShortlistEndMarker + `" headings is touched.

Examples:
  # Prune the list
  vikibot shortlist

  # Preview without saving
  vikibot shortlist --dry-run`,
		Args: cobra.NoArgs,
		RunE: runShortlistCmd,
	}
}

// runShortlistCmd executes the shortlist command.
func runShortlistCmd(cmd *cobra.Command, _ []string) error {
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

	report := model.NewRunReport("shortlist")
	err = runShortlist(ctx, b, report)
	report.Finish()
	if finishErr := b.finishRun(ctx, cmd, report); err == nil {
		err = finishErr
	}
	return err
}

// runShortlist prunes the list page.
func runShortlist(ctx context.Context, b *bot, report *model.RunReport) error {
	page, err := b.client.Page(b.cfg.Pages.Shortlist)
	if err != nil {
		return err
	}

	before, section, after, ok := wikitext.SliceBetween(page.Text,
		config.ShortlistStartMarker, config.ShortlistEndMarker)
	if !ok {
		return fmt.Errorf("list page %s has no editable region", page.Title)
	}

	listed := wikitext.ListedArticles(section)
	if len(listed) == 0 {
		b.logger.Info("list is empty")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sizes, err := b.client.PageSizes(listed)
	if err != nil {
		return err
	}

	newSection := section
	removed := 0
	for _, title := range listed {
		size, known := sizes[title]
		if !known {
			b.logger.Warn("listed article not found", "title", title)
			continue
		}
		if int64(size) <= b.cfg.ShortlistMaxBytes {
			continue
		}
		newSection = wikitext.RemoveListedArticle(newSection, title)
		removed++
		b.logger.Info("pruning grown article", "title", title, "bytes", size)
	}

	if removed == 0 {
		report.Record(model.PageOutcome{Title: page.Title, Detail: "no grown articles"})
		return nil
	}

	summary := fmt.Sprintf("Retrait automatique des articles de plus de %d octets", b.cfg.ShortlistMaxBytes)
	report.Record(saveOutcome(b.client, page, before+newSection+after, summary))
	return nil
}
