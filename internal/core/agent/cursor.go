package agent

// NewCursor creates the Cursor agent profile.
func NewCursor() Agent {
	return Agent{
		Key:         "cursor",
		DisplayName: "Cursor",
		Dir:         ".cursor",
		CommandsDir: ".cursor/commands",
		Format:      FormatMarkdown,
	}
}

func init() { Register(NewCursor()) }
