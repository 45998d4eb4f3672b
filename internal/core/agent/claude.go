package agent

// NewClaude creates the Claude Code agent profile.
//
// After `claude migrate-installer` the executable is removed from $PATH and
// aliased at ~/.claude/local/claude, so that path is probed first.
func NewClaude() Agent {
	return Agent{
		Key:            "claude",
		DisplayName:    "Claude Code",
		Dir:            ".claude",
		CommandsDir:    ".claude/commands",
		Format:         FormatMarkdown,
		CLITool:        "claude",
		InstallURL:     "https://docs.anthropic.com/en/docs/claude-code/setup",
		extraToolPaths: []string{"~/.claude/local/claude"},
	}
}

func init() { Register(NewClaude()) }
