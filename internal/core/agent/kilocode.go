package agent

// NewKiloCode creates the Kilo Code agent profile.
func NewKiloCode() Agent {
	return Agent{
		Key:         "kilocode",
		DisplayName: "Kilo Code",
		Dir:         ".kilocode",
		CommandsDir: ".kilocode/workflows",
		Format:      FormatMarkdown,
	}
}

func init() { Register(NewKiloCode()) }
