package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/Jrakru/spec-kit/internal/core"
	"github.com/Jrakru/spec-kit/internal/core/agent"
	"github.com/Jrakru/spec-kit/internal/tui"
)

// stdinIsTTY reports whether interactive prompts can run.
func stdinIsTTY() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// splitAgentFlags flattens repeatable --ai values, each of which may itself
// be a comma-separated list.
func splitAgentFlags(values []string) []string {
	var keys []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				keys = append(keys, part)
			}
		}
	}
	return keys
}

// resolveAgents turns --ai flag values into agents, or prompts when the flag
// is absent. Non-interactive runs default to copilot.
func resolveAgents(flagValues []string) ([]agent.Agent, error) {
	keys := splitAgentFlags(flagValues)
	if len(keys) > 0 {
		return agent.ByKeys(keys)
	}

	if !stdinIsTTY() {
		ag, _ := agent.ByKey("copilot")
		return []agent.Agent{ag}, nil
	}

	var agents []agent.Agent
	chosen := map[string]bool{}
	for {
		var options []tui.Option
		for _, ag := range agent.All() {
			if chosen[ag.Key] {
				continue
			}
			options = append(options, tui.Option{Key: ag.Key, Description: ag.DisplayName})
		}
		if len(options) == 0 {
			break
		}

		prompt := "Choose your AI assistant:"
		if len(agents) > 0 {
			prompt = "Choose an additional AI assistant:"
		}
		key, err := tui.Select(prompt, options, "copilot")
		if err != nil {
			if len(agents) > 0 {
				break
			}
			return nil, err
		}
		ag, _ := agent.ByKey(key)
		agents = append(agents, ag)
		chosen[key] = true

		if !tui.Confirm("Add another assistant?", false) {
			break
		}
	}
	return agents, nil
}

// resolveScript turns the --script flag into a script type, or prompts.
// Non-interactive runs default per platform.
func resolveScript(flagValue string) (core.ScriptType, error) {
	if flagValue != "" {
		return core.ParseScriptType(flagValue)
	}

	def := core.ScriptSh
	if runtime.GOOS == "windows" {
		def = core.ScriptPs
	}
	if !stdinIsTTY() {
		return def, nil
	}

	options := []tui.Option{
		{Key: string(core.ScriptSh), Description: core.ScriptTypeDescriptions[core.ScriptSh]},
		{Key: string(core.ScriptPs), Description: core.ScriptTypeDescriptions[core.ScriptPs]},
	}
	key, err := tui.Select("Choose script type (or press Enter)", options, string(def))
	if err != nil {
		return "", err
	}
	return core.ScriptType(key), nil
}

// checkAgentTools verifies that each selected agent's CLI is on PATH.
// IDE-backed agents have no CLI requirement and always pass.
func checkAgentTools(agents []agent.Agent) error {
	for _, ag := range agents {
		if !ag.RequiresCLI() || ag.ToolInstalled() {
			continue
		}
		return fmt.Errorf(
			"%s requires the %q CLI which was not found\n  Install it from: %s\n  (or pass --ignore-agent-tools to skip this check)",
			ag.DisplayName, ag.CLITool, ag.InstallURL)
	}
	return nil
}

// dirNonEmpty reports whether path exists and contains at least one entry.
func dirNonEmpty(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}
