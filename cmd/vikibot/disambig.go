package main

import (
	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/task"
)

// NewDisambigCmd creates the disambig command.
func NewDisambigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disambig",
		Short: "Remove {{Portail}} templates from disambiguation pages",
		Long: `Disambig sweeps the main namespace and removes {{Portail}} templates
from pages carrying {{Homonymie}}. Disambiguation pages list meanings
and do not belong to a portal.

Examples:
  # Clean every disambiguation page
  vikibot disambig

  # Preview without saving
  vikibot disambig --dry-run`,
		Args: cobra.NoArgs,
		RunE: runDisambigCmd,
	}
}

// runDisambigCmd executes the disambig command.
func runDisambigCmd(cmd *cobra.Command, _ []string) error {
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

	var titles []string
	if err := b.client.AllPages(b.cfg.QueryLimit, func(title string) error {
		titles = append(titles, title)
		return ctx.Err()
	}); err != nil {
		return err
	}

	runner := b.newRunner(task.WithSkipRedirects())
	report, err := runner.Run(ctx, task.NewDisambigCleaner(), titles)
	if finishErr := b.finishRun(ctx, cmd, report); err == nil {
		err = finishErr
	}
	return err
}
