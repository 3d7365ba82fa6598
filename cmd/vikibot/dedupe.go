package main

import (
	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/task"
)

// NewDedupeCmd creates the dedupe command.
func NewDedupeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Remove the generic personality category from gendered pages",
		Long: `Dedupe examines the members of the generic alphabetical personality
category and removes the generic category link from pages that already
carry a gendered one. The gender command adds the gendered category;
this command cleans up the leftover duplicates.

Examples:
  # Clean the generic category
  vikibot dedupe

  # Preview without saving
  vikibot dedupe --dry-run`,
		Args: cobra.NoArgs,
		RunE: runDedupeCmd,
	}
}

// runDedupeCmd executes the dedupe command.
func runDedupeCmd(cmd *cobra.Command, _ []string) error {
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

	titles, err := b.client.CategoryMembers(b.cfg.Categories.Generic, b.cfg.QueryLimit)
	if err != nil {
		return err
	}

	deduper := task.NewCategoryDeduper(
		b.cfg.Categories.Generic, b.cfg.Categories.Male, b.cfg.Categories.Female)

	runner := b.newRunner(task.WithSkipRedirects())
	report, err := runner.Run(ctx, deduper, titles)
	if finishErr := b.finishRun(ctx, cmd, report); err == nil {
		err = finishErr
	}
	return err
}
