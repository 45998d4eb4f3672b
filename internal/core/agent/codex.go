package agent

// NewCodex creates the Codex CLI agent profile.
// Codex reads prompts from .codex/prompts and expects CODEX_HOME to point at
// the project's .codex directory; the CLI surfaces that in its next steps.
func NewCodex() Agent {
	return Agent{
		Key:         "codex",
		DisplayName: "Codex CLI",
		Dir:         ".codex",
		CommandsDir: ".codex/prompts",
		Format:      FormatMarkdown,
		CLITool:     "codex",
		InstallURL:  "https://github.com/openai/codex",
	}
}

func init() { Register(NewCodex()) }
