package core

import (
	"path/filepath"
	"testing"

	"github.com/Jrakru/spec-kit/internal/core/agent"
)

func mustAgent(t *testing.T, key string) agent.Agent {
	t.Helper()
	a, ok := agent.ByKey(key)
	if !ok {
		t.Fatalf("agent %q not registered", key)
	}
	return a
}

func TestDiscoverCommands_MarkdownFrontmatter(t *testing.T) {
	project := t.TempDir()
	dir := filepath.Join(project, ".claude", "commands")
	writeTestFile(t, filepath.Join(dir, "specify.md"), "---\ndescription: Create a feature specification\n---\nBody\n")
	writeTestFile(t, filepath.Join(dir, "plan.md"), "no frontmatter here\n")

	commands := DiscoverCommands(project, mustAgent(t, "claude"))

	if len(commands) != 2 {
		t.Fatalf("found %d commands, want 2", len(commands))
	}
	if commands[0].Name != "specify" || commands[0].Description != "Create a feature specification" {
		t.Errorf("commands[0] = %+v", commands[0])
	}
	if commands[1].Name != "plan" || commands[1].Description != "" {
		t.Errorf("commands[1] = %+v", commands[1])
	}
}

func TestDiscoverCommands_PromptSuffixStripped(t *testing.T) {
	project := t.TempDir()
	dir := filepath.Join(project, ".github", "prompts")
	writeTestFile(t, filepath.Join(dir, "specify.prompt.md"), "---\ndescription: Start a spec\n---\n")
	writeTestFile(t, filepath.Join(dir, "notes.md"), "not a prompt file\n")

	commands := DiscoverCommands(project, mustAgent(t, "copilot"))

	if len(commands) != 1 {
		t.Fatalf("found %d commands, want only *.prompt.md files", len(commands))
	}
	if commands[0].Name != "specify" {
		t.Errorf("Name = %q, want prompt suffix stripped", commands[0].Name)
	}
}

func TestDiscoverCommands_TOMLDescription(t *testing.T) {
	project := t.TempDir()
	dir := filepath.Join(project, ".gemini", "commands")
	writeTestFile(t, filepath.Join(dir, "specify.toml"), "description = \"Create a feature specification\"\nprompt = \"...\"\n")
	writeTestFile(t, filepath.Join(dir, "tasks.toml"), "prompt = \"no description\"\n")

	commands := DiscoverCommands(project, mustAgent(t, "gemini"))

	if len(commands) != 2 {
		t.Fatalf("found %d commands, want 2", len(commands))
	}
	if commands[0].Description != "Create a feature specification" {
		t.Errorf("Description = %q", commands[0].Description)
	}
}

func TestDiscoverCommands_WorkflowOrder(t *testing.T) {
	project := t.TempDir()
	dir := filepath.Join(project, ".claude", "commands")
	for _, name := range []string{"zeta", "implement", "constitution", "alpha", "specify"} {
		writeTestFile(t, filepath.Join(dir, name+".md"), "Body\n")
	}

	commands := DiscoverCommands(project, mustAgent(t, "claude"))

	got := make([]string, len(commands))
	for i, c := range commands {
		got[i] = c.Name
	}
	want := []string{"constitution", "specify", "implement", "alpha", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDiscoverCommands_MissingDir(t *testing.T) {
	commands := DiscoverCommands(t.TempDir(), mustAgent(t, "claude"))
	if len(commands) != 0 {
		t.Errorf("found %d commands in an empty project", len(commands))
	}
}
