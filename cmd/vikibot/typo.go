package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/task"
)

// NewTypoCmd creates the typo command.
func NewTypoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "typo [titles...]",
		Short: "Apply typographic conventions to article prose",
		Long: `Typo fixes the recurring typographic slips in article prose:
"File:" becomes "Fichier:", French guillemets become the {{"|...}}
quotation template, stray spaces before periods are removed, a space is
inserted before ! and ?, and sentences are re-capitalized.

Text inside templates, tables, HTML comments and external links is
never touched, so markup stays valid.

By default the articles edited in the last 24 hours are examined.

Examples:
  # Fix recently edited articles
  vikibot typo

  # Fix specific articles
  vikibot typo "Tour Eiffel"

  # Sweep every article
  vikibot typo --all`,
		Args: cobra.ArbitraryArgs,
		RunE: runTypoCmd,
	}

	cmd.Flags().DurationP("since", "s", 24*time.Hour, "Window of recent edits to examine")
	cmd.Flags().BoolP("all", "a", false, "Sweep every article instead of recent edits")

	return cmd
}

// runTypoCmd executes the typo command.
func runTypoCmd(cmd *cobra.Command, args []string) error {
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

	titles := args
	if len(titles) == 0 {
		titles, err = recentOrAllTitles(ctx, cmd, b)
		if err != nil {
			return err
		}
	}
	if len(titles) == 0 {
		b.logger.Info("no candidate articles")
		return nil
	}

	runner := b.newRunner(
		task.WithSkipRedirects(),
		task.WithSkipWorkInProgress(),
	)
	report, err := runner.Run(ctx, task.NewTypoFixer(), titles)
	if finishErr := b.finishRun(ctx, cmd, report); err == nil {
		err = finishErr
	}
	return err
}
