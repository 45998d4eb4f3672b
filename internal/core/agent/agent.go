// Package agent defines the AI assistant profiles that Specify can provision.
//
// Each agent is a self-contained value that knows its project directory, its
// slash-command layout, and the CLI tool (if any) used to detect a local
// installation. Agents register themselves at init time.
package agent

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandFormat identifies how an agent stores its slash-command files.
type CommandFormat string

const (
	// FormatMarkdown is a plain .md file with optional YAML frontmatter.
	FormatMarkdown CommandFormat = "md"
	// FormatPromptMarkdown is Copilot's .prompt.md naming variant.
	FormatPromptMarkdown CommandFormat = "prompt.md"
	// FormatTOML is a .toml file with a top-level description key.
	FormatTOML CommandFormat = "toml"
)

// Patterns returns the glob patterns that enumerate command files.
func (f CommandFormat) Patterns() []string {
	switch f {
	case FormatPromptMarkdown:
		return []string{"*.prompt.md"}
	case FormatTOML:
		return []string{"*.toml"}
	default:
		return []string{"*.md"}
	}
}

// Agent describes one AI assistant profile.
type Agent struct {
	Key         string // machine name: "claude", "copilot"
	DisplayName string // human name: "Claude Code", "GitHub Copilot"

	// Dir is the project-relative root directory owned by this agent,
	// without a trailing separator (".claude", ".github").
	Dir string

	// CommandsDir is the project-relative directory holding slash-command
	// files, and Format how those files are parsed.
	CommandsDir string
	Format      CommandFormat

	// CLITool is the executable probed to verify the agent is usable.
	// Empty for IDE-integrated agents that need no CLI.
	CLITool    string
	InstallURL string

	// extraToolPaths are absolute candidate locations checked before $PATH.
	// Paths may start with ~/ which is expanded at probe time.
	extraToolPaths []string
}

// RootName returns the top-level directory name the agent owns ("" never).
func (a Agent) RootName() string {
	return filepath.Base(a.Dir)
}

// RequiresCLI reports whether this agent has a CLI tool to check for.
func (a Agent) RequiresCLI() bool {
	return a.CLITool != ""
}

// ToolInstalled reports whether the agent's CLI tool is available.
// Agents without a CLI tool always report true.
func (a Agent) ToolInstalled() bool {
	if a.CLITool == "" {
		return true
	}
	for _, p := range a.extraToolPaths {
		if strings.HasPrefix(p, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				continue
			}
			p = filepath.Join(home, p[2:])
		}
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return true
		}
	}
	_, err := exec.LookPath(a.CLITool)
	return err == nil
}

// --- Registry ---

var registry []Agent

// Register adds an agent to the global registry.
func Register(a Agent) { registry = append(registry, a) }

// All returns all registered agents in registration order.
func All() []Agent { return registry }

// Keys returns the machine names of all registered agents.
func Keys() []string {
	keys := make([]string, len(registry))
	for i, a := range registry {
		keys[i] = a.Key
	}
	return keys
}

// ByKey returns the agent with the given machine name, if registered.
func ByKey(key string) (Agent, bool) {
	for _, a := range registry {
		if a.Key == key {
			return a, true
		}
	}
	return Agent{}, false
}

// ByKeys resolves a list of agent keys to Agent values.
// Returns an error naming the valid choices if any key is unknown.
func ByKeys(keys []string) ([]Agent, error) {
	result := make([]Agent, 0, len(keys))
	for _, key := range keys {
		a, ok := ByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown AI assistant %q; choose from: %s",
				key, strings.Join(Keys(), ", "))
		}
		result = append(result, a)
	}
	return result, nil
}

// IsKnownRoot reports whether name is the root directory of any agent.
func IsKnownRoot(name string) bool {
	for _, a := range registry {
		if a.RootName() == name {
			return true
		}
	}
	return false
}

// DisplayNames returns the display names of the given agents.
func DisplayNames(agents []Agent) []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.DisplayName
	}
	return names
}
