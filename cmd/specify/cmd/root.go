package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jrakru/spec-kit/internal/tui"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "specify",
	Short: "Setup tool for Specify spec-driven development projects",
	Long: `Specify bootstraps projects for spec-driven development.

It downloads the matching template release for your AI assistant(s),
merges it into a new or existing project, and wires up the slash
commands your assistant will use to drive the workflow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(os.Stdout)
		_ = cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("specify %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
