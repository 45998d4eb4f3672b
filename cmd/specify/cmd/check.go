package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/Jrakru/spec-kit/internal/core"
	"github.com/Jrakru/spec-kit/internal/core/agent"
	"github.com/Jrakru/spec-kit/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that all required tools are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		tui.PrintBanner(os.Stdout)
		fmt.Fprintln(os.Stdout, "Checking for installed tools...")
		fmt.Fprintln(os.Stdout)

		tracker := core.NewStepTracker("Check Available Tools")

		tracker.Add("git", "Git version control")
		gitOK := core.GitAvailable()
		markTool(tracker, "git", gitOK)

		anyAgentOK := false
		for _, ag := range agent.All() {
			if !ag.RequiresCLI() {
				continue
			}
			tracker.Add(ag.CLITool, ag.DisplayName+" CLI")
			ok := ag.ToolInstalled()
			markTool(tracker, ag.CLITool, ok)
			anyAgentOK = anyAgentOK || ok
		}

		// Editors with agent integrations but no dedicated agent CLI.
		for _, tool := range []struct{ name, label string }{
			{"code", "Visual Studio Code"},
			{"code-insiders", "Visual Studio Code Insiders"},
		} {
			tracker.Add(tool.name, tool.label)
			_, err := exec.LookPath(tool.name)
			markTool(tracker, tool.name, err == nil)
		}

		fmt.Fprintln(os.Stdout, tui.RenderSteps(tracker.Title(), tracker.Snapshot()))
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, "Specify CLI is ready to use!")

		if !gitOK {
			fmt.Fprintln(os.Stdout, "Tip: Install git for repository management")
		}
		if !anyAgentOK {
			fmt.Fprintln(os.Stdout, "Tip: Install an AI assistant for the best experience")
		}
		return nil
	},
}

func markTool(tracker *core.StepTracker, key string, ok bool) {
	if ok {
		tracker.Complete(key, "available")
		return
	}
	tracker.Error(key, "not found")
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
