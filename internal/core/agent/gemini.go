package agent

// NewGemini creates the Gemini CLI agent profile.
func NewGemini() Agent {
	return Agent{
		Key:         "gemini",
		DisplayName: "Gemini CLI",
		Dir:         ".gemini",
		CommandsDir: ".gemini/commands",
		Format:      FormatTOML,
		CLITool:     "gemini",
		InstallURL:  "https://github.com/google-gemini/gemini-cli",
	}
}

func init() { Register(NewGemini()) }
