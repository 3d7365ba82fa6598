package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/celianv/vikibot/internal/config"
	"github.com/celianv/vikibot/internal/journal"
	"github.com/celianv/vikibot/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent maintenance runs from the local journal",
		Long: `History lists the runs recorded in the local journal: which command
ran, when, and how many pages it edited, skipped or failed.

Examples:
  # The ten most recent runs
  vikibot history

  # Recent stub runs, with per-page outcomes
  vikibot history --command stub --details`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("command", "t", "", "Only show runs of this command")
	cmd.Flags().IntP("limit", "l", 10, "Maximum number of runs to show")
	cmd.Flags().BoolP("details", "d", false, "Show per-page outcomes as Markdown")

	return cmd
}

// runHistoryCmd executes the history command. It only reads the local
// journal, so it needs neither credentials nor network access.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	j, err := journal.Open(config.XDGDataDir(), journal.Options{})
	if err != nil {
		return fmt.Errorf("no journal found (run a maintenance command first): %w", err)
	}
	defer j.Close()

	command, _ := cmd.Flags().GetString("command")
	limit, _ := cmd.Flags().GetInt("limit")
	details, _ := cmd.Flags().GetBool("details")

	runs, err := j.RecentRuns(cmd.Context(), command, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	if details {
		writer := report.NewMarkdownWriter(cmd.OutOrStdout())
		for _, run := range runs {
			if err := writer.WriteRun(run); err != nil {
				return err
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "COMMAND\tSTARTED\tDURATION\tEDITED\tSKIPPED\tFAILED\tMODE")
	for _, run := range runs {
		mode := "live"
		if run.DryRun {
			mode = "dry-run"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.Command,
			run.Started.Local().Format("2006-01-02 15:04"),
			run.Duration().Round(timeRound),
			run.Edited(), run.Skipped(), run.Failed(),
			mode)
	}
	return w.Flush()
}
