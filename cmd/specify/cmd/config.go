package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jrakru/spec-kit/internal/core"
	"github.com/Jrakru/spec-kit/internal/core/agent"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Specify configuration",
	Long: `Manage the Specify configuration at ~/.specify/config.json.

The file is JSONC: comments and trailing commas are allowed when editing
it by hand.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := core.NewConfigManager()
		if err != nil {
			return err
		}
		s, err := cm.Load()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n\n", cm.ConfigPath())
		fmt.Printf("  template-repo:  %s\n", orUnset(s.TemplateRepo))
		fmt.Printf("  template-path:  %s\n", orUnset(s.TemplatePath))
		fmt.Printf("  github-token:   %s\n", orUnset(maskToken(s.GithubToken)))
		fmt.Printf("  skip-tls:       %t\n", s.SkipTLS)
		fmt.Printf("  default-agents: %s\n", orUnset(strings.Join(s.DefaultAgents, ", ")))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Keys:
  template-repo   release repository in owner/repo form
  template-path   local template archive or directory
  github-token    token for GitHub API requests
  skip-tls        true/false, disable TLS verification
  default-agents  comma-separated agent keys preselected by init`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := core.NewConfigManager()
		if err != nil {
			return err
		}
		s, err := cm.Load()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "template-repo":
			if value != "" && !strings.Contains(value, "/") {
				return fmt.Errorf("template-repo must be in owner/repo form")
			}
			s.TemplateRepo = value
		case "template-path":
			s.TemplatePath = value
		case "github-token":
			s.GithubToken = value
		case "skip-tls":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("skip-tls must be true or false")
			}
			s.SkipTLS = b
		case "default-agents":
			keys := strings.Split(value, ",")
			for i := range keys {
				keys[i] = strings.TrimSpace(keys[i])
			}
			if _, err := agent.ByKeys(keys); err != nil {
				return err
			}
			s.DefaultAgents = keys
		default:
			return fmt.Errorf("unknown key %q", key)
		}

		if err := cm.Save(s); err != nil {
			return err
		}
		fmt.Printf("Set %s\n", key)
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
