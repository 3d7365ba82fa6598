package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/config"
	"github.com/celianv/vikibot/internal/model"
	"github.com/celianv/vikibot/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Post the daily activity digest to Discord",
		Long: `Report analyzes the last 24 hours of wiki activity (excluding bot
accounts) and posts a digest embed to the configured Discord webhook:
hourly peak and quiet hours, pages created and edited, the most edited
article, deletions and blocks.

The webhook URL comes from the configuration file or the
` + config.EnvStatsWebhook + ` environment variable.

Examples:
  # Post the digest
  vikibot report

  # Also write a local Markdown digest
  vikibot report --markdown digest.md`,
		Args: cobra.NoArgs,
		RunE: runReportCmd,
	}

	cmd.Flags().StringP("markdown", "m", "", "Also write a Markdown digest to the given file")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	b, err := newBot(cmd)
	if err != nil {
		return err
	}
	defer b.close()

	if b.cfg.Webhooks.Stats == "" {
		return fmt.Errorf("%w: set %s or webhooks.stats", config.ErrNoWebhook, config.EnvStatsWebhook)
	}

	ctx, cancel := signalContext(b.logger)
	defer cancel()

	loc, err := b.cfg.Location()
	if err != nil {
		return err
	}
	end := time.Now().In(loc)
	start := end.Add(-24 * time.Hour)

	stats, err := collectDailyStats(b, end.UTC(), start.UTC())
	if err != nil {
		return err
	}
	stats.Start = start
	stats.End = end

	if markdownPath, _ := cmd.Flags().GetString("markdown"); markdownPath != "" {
		if err := writeMarkdownDigest(markdownPath, stats); err != nil {
			return err
		}
		b.logger.Info("wrote digest", "path", markdownPath)
	}

	notifier := report.NewNotifier(b.cfg.Webhooks.Stats, b.cfg.Username)
	if b.cfg.DryRun {
		b.logger.Info("dry run, skipping Discord post", "embed", notifier.DailyEmbed(stats).Title)
		return nil
	}
	if err := notifier.Send(ctx, notifier.DailyEmbed(stats)); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Daily digest posted.")
	return nil
}

// writeMarkdownDigest renders the statistics to a local Markdown file.
func writeMarkdownDigest(path string, stats *model.DailyStats) error {
	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create digest file: %w", err)
	}
	defer f.Close()

	if err := report.NewMarkdownWriter(f).WriteDailyStats(stats); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	return f.Close()
}
