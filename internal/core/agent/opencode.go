package agent

// NewOpenCode creates the opencode agent profile.
// The "command" directory is singular; that is opencode's convention.
func NewOpenCode() Agent {
	return Agent{
		Key:         "opencode",
		DisplayName: "opencode",
		Dir:         ".opencode",
		CommandsDir: ".opencode/command",
		Format:      FormatMarkdown,
		CLITool:     "opencode",
		InstallURL:  "https://opencode.ai",
	}
}

func init() { Register(NewOpenCode()) }
