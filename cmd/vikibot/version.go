package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Overridden at release time via -ldflags. When left empty the values
// are recovered from the binary's embedded build info instead.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildMetadata is the resolved version triple printed by the version
// command.
type buildMetadata struct {
	Version string
	Commit  string
	Date    string
}

// resolveBuildMetadata prefers the ldflags values and falls back to
// debug.ReadBuildInfo for binaries installed with go install.
func resolveBuildMetadata() buildMetadata {
	meta := buildMetadata{Version: version, Commit: commit, Date: date}

	info, ok := debug.ReadBuildInfo()
	if meta.Version == "" {
		meta.Version = "(devel)"
		if ok && info.Main.Version != "" {
			meta.Version = info.Main.Version
		}
	}
	if meta.Commit == "" {
		meta.Commit = "unknown"
		if ok {
			if rev := vcsSetting(info, "vcs.revision"); rev != "" {
				meta.Commit = shortHash(rev)
			}
		}
	}
	if meta.Date == "" {
		meta.Date = "unknown"
		if ok {
			if ts := vcsSetting(info, "vcs.time"); ts != "" {
				meta.Date = ts
			}
		}
	}
	return meta
}

// vcsSetting returns the value of a build setting, or "" when absent.
func vcsSetting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// shortHash abbreviates a commit hash to its usual 7-character form.
func shortHash(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of vikibot.`,
		Run: func(cmd *cobra.Command, _ []string) {
			meta := resolveBuildMetadata()
			fmt.Fprintf(cmd.OutOrStdout(), "vikibot version %s\n", meta.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", meta.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", meta.Date)
		},
	}
}
