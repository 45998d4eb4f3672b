package agent

// NewCopilot creates the GitHub Copilot agent profile.
// Copilot is IDE-integrated and needs no CLI tool check.
func NewCopilot() Agent {
	return Agent{
		Key:         "copilot",
		DisplayName: "GitHub Copilot",
		Dir:         ".github",
		CommandsDir: ".github/prompts",
		Format:      FormatPromptMarkdown,
	}
}

func init() { Register(NewCopilot()) }
