package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/task"
)

// NewRedcatCmd creates the redcat command.
func NewRedcatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redcat",
		Short: "Remove category links to non-existent categories",
		Long: `Redcat removes category links whose category page does not exist.
Such links file articles under red-linked categories nobody maintains.

By default the articles edited in the last 24 hours are examined; use
--all to sweep the whole wiki.

Examples:
  # Clean recently edited articles
  vikibot redcat

  # Sweep every article
  vikibot redcat --all`,
		Args: cobra.NoArgs,
		RunE: runRedcatCmd,
	}

	cmd.Flags().DurationP("since", "s", 24*time.Hour, "Window of recent edits to examine")
	cmd.Flags().BoolP("all", "a", false, "Sweep every article instead of recent edits")

	return cmd
}

// runRedcatCmd executes the redcat command.
func runRedcatCmd(cmd *cobra.Command, _ []string) error {
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

	titles, err := recentOrAllTitles(ctx, cmd, b)
	if err != nil {
		return err
	}
	if len(titles) == 0 {
		b.logger.Info("no candidate articles")
		return nil
	}

	runner := b.newRunner(task.WithSkipRedirects())
	report, err := runner.Run(ctx, task.NewRedCategoryCleaner(b.client), titles)
	if finishErr := b.finishRun(ctx, cmd, report); err == nil {
		err = finishErr
	}
	return err
}
