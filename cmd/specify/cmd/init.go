package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jrakru/spec-kit/internal/core"
	"github.com/Jrakru/spec-kit/internal/core/agent"
	"github.com/Jrakru/spec-kit/internal/tui"
)

var initFlags struct {
	ai               []string
	script           string
	here             bool
	force            bool
	noGit            bool
	ignoreAgentTools bool
	githubToken      string
	templateRepo     string
	templatePath     string
	skipTLS          bool
	debug            bool
}

var initCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Initialize a new Specify project from the latest template",
	Long: `Initialize a new Specify project from the latest template.

Downloads the template release matching your AI assistant(s) and script
type, merges it into the project directory, initializes a git repository,
and lists the slash commands to start with.

Examples:
  specify init my-project
  specify init my-project --ai claude
  specify init my-project --ai claude,copilot --script sh
  specify init --here --ai copilot
  specify init my-project --template-path ./templates/copilot-sh.zip`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	f := initCmd.Flags()
	f.StringArrayVar(&initFlags.ai, "ai", nil, "AI assistant(s) to configure (repeatable or comma-separated)")
	f.StringVar(&initFlags.script, "script", "", "script variant: sh or ps")
	f.BoolVar(&initFlags.here, "here", false, "initialize in the current directory instead of creating one")
	f.BoolVar(&initFlags.force, "force", false, "skip the confirmation when using --here in a non-empty directory")
	f.BoolVar(&initFlags.noGit, "no-git", false, "skip git repository initialization")
	f.BoolVar(&initFlags.ignoreAgentTools, "ignore-agent-tools", false, "skip checks for agent CLI tools")
	f.StringVar(&initFlags.githubToken, "github-token", "", "GitHub token for API requests (or set GH_TOKEN/GITHUB_TOKEN)")
	f.StringVar(&initFlags.templateRepo, "template-repo", "", "override template repository (owner/repo)")
	f.StringVar(&initFlags.templatePath, "template-path", "", "use a local template archive or directory instead of downloading")
	f.BoolVar(&initFlags.skipTLS, "skip-tls", false, "skip SSL/TLS verification (not recommended)")
	f.BoolVar(&initFlags.debug, "debug", false, "show verbose diagnostic output on failure")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	tui.PrintBanner(os.Stdout)

	projectName := ""
	if len(args) > 0 {
		projectName = args[0]
	}
	if projectName != "" && initFlags.here {
		return fmt.Errorf("cannot specify both a project name and --here")
	}
	if projectName == "" && !initFlags.here {
		return fmt.Errorf("must specify either a project name or --here")
	}

	var projectPath string
	if initFlags.here {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		projectPath = cwd
		projectName = filepath.Base(cwd)

		if dirNonEmpty(projectPath) && !initFlags.force {
			fmt.Fprintln(os.Stdout, "Warning: current directory is not empty; template files will be merged and may overwrite existing files.")
			if !stdinIsTTY() || !tui.Confirm("Continue with merge into the current directory?", false) {
				return fmt.Errorf("aborted")
			}
		}
	} else {
		abs, err := filepath.Abs(projectName)
		if err != nil {
			return fmt.Errorf("resolving project path: %w", err)
		}
		projectPath = abs
		if _, err := os.Stat(projectPath); err == nil {
			return fmt.Errorf("directory %q already exists", projectName)
		}
	}

	// Config is advisory; a missing or unreadable file falls back to defaults.
	var settings *core.Settings
	if cm, err := core.NewConfigManager(); err == nil {
		if s, err := cm.Load(); err == nil {
			settings = s
		}
	}

	aiValues := initFlags.ai
	if len(aiValues) == 0 && settings != nil {
		aiValues = settings.DefaultAgents
	}
	agents, err := resolveAgents(aiValues)
	if err != nil {
		return err
	}
	if !initFlags.ignoreAgentTools {
		if err := checkAgentTools(agents); err != nil {
			return err
		}
	}

	script, err := resolveScript(initFlags.script)
	if err != nil {
		return err
	}

	overrides, err := core.ResolveOverrides(initFlags.templateRepo, initFlags.templatePath, settings)
	if err != nil {
		return err
	}

	token := core.GithubToken(initFlags.githubToken)
	if token == "" && settings != nil {
		token = settings.GithubToken
	}
	client := core.NewReleaseClient(core.ClientConfig{
		Token:         token,
		SkipTLSVerify: initFlags.skipTLS || (settings != nil && settings.SkipTLS),
	})

	tracker := tui.NewTracker(os.Stdout, "Initialize Specify Project", stdinIsTTY())
	steps := tracker.Steps()
	steps.Add("precheck", "Check required tools")
	steps.Complete("precheck", "ok")
	steps.Add("ai-select", "Select AI assistant")
	steps.Complete("ai-select", strings.Join(agent.DisplayNames(agents), ", "))
	steps.Add("script-select", "Select script type")
	steps.Complete("script-select", string(script))
	for _, step := range []struct{ key, label string }{
		{core.StepFetch, "Fetch latest release"},
		{core.StepDownload, "Download template"},
		{core.StepExtract, "Extract template"},
		{core.StepZipList, "Archive contents"},
		{core.StepSummary, "Extraction summary"},
		{core.StepRelocate, "Consolidate non-agent assets"},
		{core.StepChmod, "Ensure scripts executable"},
		{core.StepCleanup, "Cleanup"},
		{"git", "Initialize git repository"},
		{"final", "Finalize"},
	} {
		steps.Add(step.key, step.label)
	}

	runErr := tracker.Run(func(r core.Reporter) error {
		prov := core.NewProvisioner(client, r)
		_, err := prov.Run(context.Background(), core.ProvisionOptions{
			ProjectPath: projectPath,
			InPlace:     initFlags.here,
			Agents:      agents,
			Script:      script,
			Overrides:   overrides,
			DownloadDir: filepath.Dir(projectPath),
		})
		if err != nil {
			return err
		}

		if initFlags.noGit {
			r.Skip("git", "--no-git flag")
		} else {
			r.Start("git", "")
			switch {
			case core.IsGitRepo(projectPath):
				r.Complete("git", "existing repo detected")
			case core.GitAvailable():
				if err := core.InitGitRepo(projectPath); err != nil {
					r.Error("git", err.Error())
				} else {
					r.Complete("git", "initialized")
				}
			default:
				r.Skip("git", "git not available")
			}
		}

		r.Complete("final", "project ready")
		return nil
	})
	if runErr != nil {
		tui.PrintError(os.Stdout, runErr)
		if initFlags.debug {
			printDebugEnvironment(os.Stdout)
		}
		return fmt.Errorf("initialization failed")
	}

	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "Project ready.")

	tui.PrintSecurityNotice(os.Stdout, agents)
	tui.PrintNextSteps(os.Stdout, projectPath, projectName, initFlags.here, agents)
	return nil
}

func printDebugEnvironment(w io.Writer) {
	cwd, _ := os.Getwd()
	fmt.Fprintf(w, "\nDebug environment:\n  Go       %s\n  Platform %s/%s\n  CWD      %s\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, cwd)
}
