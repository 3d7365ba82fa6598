package main

import (
	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/task"
	"github.com/celianv/vikibot/internal/wikidata"
)

// NewGenderCmd creates the gender command.
func NewGenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gender",
		Short: "Sort personality articles into gendered categories via Wikidata",
		Long: `Gender examines the members of the generic alphabetical personality
category, resolves each subject on Wikidata by French label, reads the
sex-or-gender property and replaces the generic category with the
matching male or female one.

Subjects without a Wikidata item, without a gender claim, or with a
gender the category tree does not distinguish are left untouched.

Examples:
  # Classify all members of the generic category
  vikibot gender

  # Classify at most 20 members
  vikibot gender --limit 20`,
		Args: cobra.NoArgs,
		RunE: runGenderCmd,
	}

	cmd.Flags().IntP("limit", "l", 0, "Stop after this many pages (0 = all members)")

	return cmd
}

// runGenderCmd executes the gender command.
func runGenderCmd(cmd *cobra.Command, _ []string) error {
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
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(titles) > limit {
		titles = titles[:limit]
	}

	resolver := wikidata.New(
		wikidata.WithEndpoint(b.cfg.SPARQLEndpoint),
		wikidata.WithUserAgent(b.cfg.UserAgent),
	)
	classifier := task.NewGenderClassifier(resolver,
		b.cfg.Categories.Generic, b.cfg.Categories.Male, b.cfg.Categories.Female)

	runner := b.newRunner(task.WithSkipRedirects())
	report, err := runner.Run(ctx, classifier, titles)
	if finishErr := b.finishRun(ctx, cmd, report); err == nil {
		err = finishErr
	}
	return err
}
