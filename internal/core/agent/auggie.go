package agent

// NewAuggie creates the Auggie CLI agent profile.
// Auggie's project directory is .augment, not .auggie.
func NewAuggie() Agent {
	return Agent{
		Key:         "auggie",
		DisplayName: "Auggie CLI",
		Dir:         ".augment",
		CommandsDir: ".augment/commands",
		Format:      FormatMarkdown,
		CLITool:     "auggie",
		InstallURL:  "https://docs.augmentcode.com/cli/setup-auggie/install-auggie-cli",
	}
}

func init() { Register(NewAuggie()) }
