package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/model"
	"github.com/celianv/vikibot/internal/wiki"
)

// NewRollbackCmd creates the rollback command.
func NewRollbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback <user>",
		Short: "Mass-revert a user's recent edits",
		Long: `Rollback reverts the contributions of one user, typically after a
vandalism spree. For each page the user touched:

  - the page is only reverted while its latest revision is still by the
    target user; pages someone else edited afterwards are skipped
  - the page is restored to its newest revision by a different author,
    so a run of consecutive edits by the target is undone as a whole
  - pages the target created (no prior foreign revision) are skipped

The command asks for confirmation before editing; use --yes in scripts.

Examples:
  # Revert everything a vandal did in the last 24 hours
  vikibot rollback "Vandale123" --reason "vandalisme"

  # Revert a narrower window without prompting
  vikibot rollback "Vandale123" --start 2025-03-14T00:00:00Z --end 2025-03-15T00:00:00Z --yes`,
		Args: cobra.ExactArgs(1),
		RunE: runRollbackCmd,
	}

	cmd.Flags().String("start", "", "Only revert contributions after this RFC 3339 time")
	cmd.Flags().String("end", "", "Only revert contributions before this RFC 3339 time")
	cmd.Flags().StringP("reason", "r", "", "Reason recorded in edit summaries")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// runRollbackCmd executes the rollback command.
func runRollbackCmd(cmd *cobra.Command, args []string) error {
	target := args[0]

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

	start, end, err := rollbackWindow(cmd)
	if err != nil {
		return err
	}

	contribs, err := b.client.UserContribs(target, start, end, b.cfg.QueryLimit)
	if err != nil {
		return err
	}
	if len(contribs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No contributions found for %s.\n", target)
		return nil
	}

	titles := distinctTitles(contribs)
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !b.cfg.DryRun {
		ok, err := confirm(cmd, fmt.Sprintf("%s touched %d page(s) in the window. Revert?", target, len(titles)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Rollback cancelled.")
			return nil
		}
	}

	reason, _ := cmd.Flags().GetString("reason")
	if reason == "" {
		reason = "révocation en masse"
	}

	report := model.NewRunReport("rollback")
	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			break
		}
		if b.stop.StopRequested() {
			b.logger.Warn("stop requested, aborting rollback")
			break
		}
		report.Record(rollbackPage(b, title, target, reason))
	}
	report.Finish()
	return b.finishRun(ctx, cmd, report)
}

// rollbackWindow parses the --start/--end bounds. The default window is
// the last 24 hours.
func rollbackWindow(cmd *cobra.Command) (start, end time.Time, err error) {
	now := time.Now().UTC()
	start, end = now, now.Add(-24*time.Hour)

	if s, _ := cmd.Flags().GetString("end"); s != "" {
		// usercontribs runs newest first: "start" is the newer bound.
		if start, err = time.Parse(time.RFC3339, s); err != nil {
			return start, end, fmt.Errorf("invalid --end: %w", err)
		}
	}
	if s, _ := cmd.Flags().GetString("start"); s != "" {
		if end, err = time.Parse(time.RFC3339, s); err != nil {
			return start, end, fmt.Errorf("invalid --start: %w", err)
		}
	}
	return start, end, nil
}

// distinctTitles returns the distinct page titles of the contributions,
// most recently touched first.
func distinctTitles(contribs []model.Contribution) []string {
	seen := make(map[string]bool)
	var titles []string
	for _, c := range contribs {
		if seen[c.Title] {
			continue
		}
		seen[c.Title] = true
		titles = append(titles, c.Title)
	}
	return titles
}

// rollbackPage restores one page to its newest revision not authored by
// the target user.
func rollbackPage(b *bot, title, target, reason string) model.PageOutcome {
	outcome := model.PageOutcome{Title: title}

	revs, err := b.client.Revisions(title, b.cfg.QueryLimit)
	if err != nil {
		if errors.Is(err, wiki.ErrPageMissing) {
			outcome.Detail = "page deleted meanwhile"
			return outcome
		}
		return failOutcome(outcome, err)
	}
	if len(revs) == 0 {
		outcome.Detail = "no revisions"
		return outcome
	}

	// Never revert past someone else's newer edit.
	if revs[0].User != target {
		outcome.Detail = fmt.Sprintf("latest revision is by %s", revs[0].User)
		return outcome
	}

	restore := pickRestoreRevision(revs, target)
	if restore == nil {
		outcome.Detail = "no prior revision by another author"
		return outcome
	}

	oldText, err := b.client.RevisionContent(restore.ID)
	if err != nil {
		return failOutcome(outcome, err)
	}

	page, err := b.client.Page(title)
	if err != nil {
		return failOutcome(outcome, err)
	}

	summary := fmt.Sprintf("Révocation des modifications de %s : %s", target, reason)
	if err := b.client.SavePage(page, oldText, summary, true); err != nil {
		if errors.Is(err, wiki.ErrNoChange) {
			outcome.Detail = "content already restored"
			return outcome
		}
		return failOutcome(outcome, err)
	}

	outcome.Action = model.OutcomeEdited
	outcome.Detail = fmt.Sprintf("restored revision %d by %s", restore.ID, restore.User)
	return outcome
}

// pickRestoreRevision returns the newest revision not authored by the
// target user, or nil when the target wrote the whole history.
func pickRestoreRevision(revs []model.Revision, target string) *model.Revision {
	for i := range revs {
		if revs[i].User != target {
			return &revs[i]
		}
	}
	return nil
}

func failOutcome(outcome model.PageOutcome, err error) model.PageOutcome {
	outcome.Action = model.OutcomeFailed
	outcome.Err = err.Error()
	return outcome
}

// confirm asks a yes/no question on the command's input stream.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (oui/non) : ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "oui", "o", "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}
