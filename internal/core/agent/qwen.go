package agent

// NewQwen creates the Qwen Code agent profile.
func NewQwen() Agent {
	return Agent{
		Key:         "qwen",
		DisplayName: "Qwen Code",
		Dir:         ".qwen",
		CommandsDir: ".qwen/commands",
		Format:      FormatTOML,
		CLITool:     "qwen",
		InstallURL:  "https://github.com/QwenLM/qwen-code",
	}
}

func init() { Register(NewQwen()) }
