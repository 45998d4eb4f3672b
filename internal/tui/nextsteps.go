package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Jrakru/spec-kit/internal/core"
	"github.com/Jrakru/spec-kit/internal/core/agent"
)

const markdownWidth = 80

// PrintNextSteps renders the post-init guidance: how to enter the project,
// Codex environment setup when applicable, and the slash commands discovered
// in each selected agent's command folder.
func PrintNextSteps(w io.Writer, projectPath, projectName string, here bool, agents []agent.Agent) {
	var b strings.Builder
	b.WriteString("# Next Steps\n\n")

	step := 1
	if here {
		b.WriteString(fmt.Sprintf("%d. You're already in the project directory!\n", step))
	} else {
		b.WriteString(fmt.Sprintf("%d. Go to the project folder: `cd %s`\n", step, projectName))
	}
	step++

	if hasAgent(agents, "codex") {
		codexHome := filepath.Join(projectPath, ".codex")
		cmd := fmt.Sprintf("export CODEX_HOME=%q", codexHome)
		if runtime.GOOS == "windows" {
			cmd = fmt.Sprintf("setx CODEX_HOME %q", codexHome)
		}
		b.WriteString(fmt.Sprintf("%d. Set `CODEX_HOME` before running Codex: `%s`\n", step, cmd))
		step++
	}

	b.WriteString(fmt.Sprintf("%d. Start using slash commands with your AI assistant(s):\n", step))
	sub := 1
	for _, ag := range agents {
		commands := core.DiscoverCommands(projectPath, ag)
		if len(commands) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("   %d.%d %s commands:\n", step, sub, ag.DisplayName))
		for _, cmd := range commands {
			if cmd.Description != "" {
				b.WriteString(fmt.Sprintf("      - `/%s` - %s\n", cmd.Name, cmd.Description))
			} else {
				b.WriteString(fmt.Sprintf("      - `/%s`\n", cmd.Name))
			}
		}
		sub++
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, panelStyle.Render(renderMarkdown(b.String())))

	if hasAgent(agents, "codex") {
		printCodexNotice(w)
	}
}

// PrintSecurityNotice warns that agent folders may hold credentials and
// suggests gitignoring them. Printed only when at least one selected agent
// writes a project-local folder.
func PrintSecurityNotice(w io.Writer, agents []agent.Agent) {
	if len(agents) == 0 {
		return
	}
	var lines []string
	for _, ag := range agents {
		lines = append(lines, fmt.Sprintf("- %s (%s)", titleStyle.Render(ag.Dir), ag.DisplayName))
	}
	body := warningStyle.Render("Agent Folder Security") + "\n\n" +
		"Some agents may store credentials, auth tokens, or other identifying\n" +
		"artifacts in your project. Consider adding the following directories\n" +
		"(or subsets) to " + titleStyle.Render(".gitignore") + ":\n" +
		strings.Join(lines, "\n")
	fmt.Fprintln(w)
	fmt.Fprintln(w, warningPanelStyle.Render(body))
}

func printCodexNotice(w io.Writer) {
	body := warningStyle.Render("Slash Commands in Codex") + "\n\n" +
		"Custom prompts do not yet support arguments in Codex. You may need to\n" +
		"manually specify additional project instructions directly in prompt\n" +
		"files located in " + titleStyle.Render(".codex/prompts/") + ".\n\n" +
		"For more information, see:\n" +
		mutedStyle.Render("https://github.com/openai/codex/issues/2890")
	fmt.Fprintln(w)
	fmt.Fprintln(w, warningPanelStyle.Render(body))
}

// renderMarkdown runs markdown through glamour, falling back to the raw
// text when the renderer cannot be built.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWidth),
	)
	if err != nil {
		return md
	}
	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(rendered, "\n")
}

func hasAgent(agents []agent.Agent, key string) bool {
	for _, ag := range agents {
		if ag.Key == key {
			return true
		}
	}
	return false
}
