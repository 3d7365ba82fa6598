package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/model"
	"github.com/celianv/vikibot/internal/task"
)

// NewStubCmd creates the stub command.
func NewStubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stub [titles...]",
		Short: "Tag short articles with an {{ébauche}} notice",
		Long: `Stub prepends an {{ébauche|portal}} notice to short articles that
lack one. Portal parameters come from the article's {{Portail}}
template; a portal is only used when a matching "Modèle:Ébauche ..."
template exists on the wiki.

Redirects, articles under {{Travaux}}, already tagged articles and
articles above the word threshold are skipped. Articles handled in an
earlier run are never tagged twice.

By default the articles created in the last 24 hours are examined.

Examples:
  # Tag recent creations
  vikibot stub

  # Tag creations of the last three days
  vikibot stub --since 72h

  # Sweep the whole wiki, capped at 50 edits
  vikibot stub --all --max-edits 50

  # Tag specific articles
  vikibot stub "Tour Eiffel" "Pont du Gard"`,
		Args: cobra.ArbitraryArgs,
		RunE: runStubCmd,
	}

	cmd.Flags().DurationP("since", "s", 24*time.Hour, "Window of recent page creations to examine")
	cmd.Flags().BoolP("all", "a", false, "Sweep every article instead of recent creations")
	cmd.Flags().IntP("max-edits", "m", 0, "Stop after this many edits (0 = unlimited, only with --all)")

	return cmd
}

// runStubCmd executes the stub command.
func runStubCmd(cmd *cobra.Command, args []string) error {
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

	titles, err := stubTargets(cmd, args, b)
	if err != nil {
		return err
	}
	if len(titles) == 0 {
		b.logger.Info("no candidate articles")
		return nil
	}

	maxEdits, err := cmd.Flags().GetInt("max-edits")
	if err != nil {
		return err
	}

	tagger := task.NewStubTagger(b.client, b.cfg.MinStubWords)
	runner := b.newRunner(
		task.WithSkipRedirects(),
		task.WithSkipWorkInProgress(),
		task.WithSeen(b.journal),
	)

	report, err := runWithEditCap(ctx, runner, tagger, titles, maxEdits)
	if finishErr := b.finishRun(ctx, cmd, report); err == nil {
		err = finishErr
	}
	return err
}

// stubTargets resolves the article titles to examine: explicit
// arguments, a full sweep, or the recent-creation window.
func stubTargets(cmd *cobra.Command, args []string, b *bot) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return nil, err
	}
	if all {
		var titles []string
		err := b.client.AllPages(b.cfg.QueryLimit, func(title string) error {
			titles = append(titles, title)
			return nil
		})
		return titles, err
	}

	since, err := cmd.Flags().GetDuration("since")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	changes, err := b.client.RecentChanges(now, now.Add(-since), b.cfg.QueryLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var titles []string
	for _, rc := range changes {
		if rc.Type != model.ChangeTypeNew || seen[rc.Title] {
			continue
		}
		seen[rc.Title] = true
		titles = append(titles, rc.Title)
	}
	return titles, nil
}

// runWithEditCap runs the task, stopping cleanly once maxEdits pages
// have been changed. A zero cap means unlimited.
func runWithEditCap(ctx context.Context, runner *task.Runner, t task.Task, titles []string, maxEdits int) (*model.RunReport, error) {
	if maxEdits <= 0 {
		return runner.Run(ctx, t, titles)
	}

	total := model.NewRunReport(t.Name())
	for _, title := range titles {
		partial, err := runner.Run(ctx, t, []string{title})
		for _, o := range partial.Outcomes {
			total.Record(o)
		}
		if err != nil {
			return total.Finish(), err
		}
		if total.Edited() >= maxEdits {
			break
		}
	}
	return total.Finish(), nil
}
