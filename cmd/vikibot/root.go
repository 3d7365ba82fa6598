// Package main provides the entry point for the vikibot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for vikibot.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vikibot",
		Short: "Maintenance bot for the French Vikidia wiki",
		Long: `vikibot runs the maintenance tasks of a Vikidia bot account:
daily statistics, stub-notice tagging, category cleanup, typographic
fixes, list pruning, mass rollback and an emergency-stop watcher.

Credentials and page names come from a .vikibot configuration file
(see "vikibot init") and environment variables such as VIKIBOT_PASSWORD.`,
		Version:       resolveBuildMetadata().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file path (default: .vikibot in current or home directory)")
	cmd.PersistentFlags().BoolP("dry-run", "n", false, "Log diffs instead of saving edits")

	// Add subcommands
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewStubCmd())
	cmd.AddCommand(NewDisambigCmd())
	cmd.AddCommand(NewGenderCmd())
	cmd.AddCommand(NewDedupeCmd())
	cmd.AddCommand(NewRedcatCmd())
	cmd.AddCommand(NewShortlistCmd())
	cmd.AddCommand(NewTypoCmd())
	cmd.AddCommand(NewRollbackCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
