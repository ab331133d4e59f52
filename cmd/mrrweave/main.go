// Package main provides the entry point for the mrrweave CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meterops/mrrweave/cmd/mrrweave/commands"
	"github.com/meterops/mrrweave/pkg/version"
)

var quiet bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "mrrweave",
		Short: "mrrweave - Missing Register Readings report consolidation",
		Long: `mrrweave reads a drop folder of Missing Register Readings exception
reports, recovers the data fields that survive their text encoding damage,
and consolidates everything into a single CSV ordered by billing month and
read cycle, with gaps visibly marked.

Commands:
  run       Consolidate a reports folder into one CSV`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "mrrweave %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
