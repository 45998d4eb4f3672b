package agent

// NewWindsurf creates the Windsurf agent profile.
func NewWindsurf() Agent {
	return Agent{
		Key:         "windsurf",
		DisplayName: "Windsurf",
		Dir:         ".windsurf",
		CommandsDir: ".windsurf/workflows",
		Format:      FormatMarkdown,
	}
}

func init() { Register(NewWindsurf()) }
