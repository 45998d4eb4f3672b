package core

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Jrakru/spec-kit/internal/core/agent"
)

// SlashCommand is one provisioned command file discovered in an agent's
// commands directory.
type SlashCommand struct {
	Name        string
	Description string // empty when the file carries none
}

// coreCommandOrder is the preferred ordering for the spec-driven workflow
// commands; anything else sorts alphabetically after them.
var coreCommandOrder = []string{
	"constitution",
	"specify",
	"clarify",
	"plan",
	"tasks",
	"analyze",
	"implement",
}

// DiscoverCommands enumerates the slash commands a template provisioned for
// the given agent. Missing or unreadable directories yield an empty list;
// discovery is display-only and never fails the run.
func DiscoverCommands(projectPath string, a agent.Agent) []SlashCommand {
	cmdDir := filepath.Join(projectPath, filepath.FromSlash(a.CommandsDir))

	var paths []string
	for _, pattern := range a.Format.Patterns() {
		matches, err := filepath.Glob(filepath.Join(cmdDir, pattern))
		if err != nil {
			continue
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	var commands []SlashCommand
	for _, path := range paths {
		if !fileExists(path) {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if a.Format == agent.FormatPromptMarkdown {
			name = strings.TrimSuffix(name, ".prompt")
		}
		commands = append(commands, SlashCommand{
			Name:        name,
			Description: commandDescription(path, a.Format),
		})
	}

	sortCommands(commands)
	return commands
}

// sortCommands orders the core workflow commands first, in workflow order,
// then everything else alphabetically.
func sortCommands(commands []SlashCommand) {
	rank := func(name string) int {
		for i, core := range coreCommandOrder {
			if name == core {
				return i
			}
		}
		return len(coreCommandOrder)
	}
	sort.SliceStable(commands, func(i, j int) bool {
		ri, rj := rank(commands[i].Name), rank(commands[j].Name)
		if ri != rj {
			return ri < rj
		}
		return commands[i].Name < commands[j].Name
	})
}

// commandDescription extracts a short description from a command file header.
func commandDescription(path string, format agent.CommandFormat) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	head := string(data)
	if len(head) > 1000 {
		head = head[:1000]
	}
	head = strings.ReplaceAll(head, "\r\n", "\n")

	if format == agent.FormatTOML {
		return tomlDescription(head)
	}
	return frontmatterDescription(head)
}

// frontmatterDescription parses a YAML frontmatter block delimited by ---
// lines and returns its description field.
func frontmatterDescription(head string) string {
	trimmed := strings.TrimLeft(head, " \t\n")
	if !strings.HasPrefix(trimmed, "---") {
		return ""
	}
	rest := strings.TrimPrefix(trimmed, "---")
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return ""
	}

	var fm struct {
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return ""
	}
	return strings.TrimSpace(fm.Description)
}

// tomlDescription scans the leading lines for a description key.
func tomlDescription(head string) string {
	lines := strings.Split(head, "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if !strings.HasPrefix(s, "description") {
			continue
		}
		_, value, ok := strings.Cut(s, "=")
		if !ok {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return ""
}
