package agent

// NewRoo creates the Roo Code agent profile.
func NewRoo() Agent {
	return Agent{
		Key:         "roo",
		DisplayName: "Roo Code",
		Dir:         ".roo",
		CommandsDir: ".roo/commands",
		Format:      FormatMarkdown,
	}
}

func init() { Register(NewRoo()) }
