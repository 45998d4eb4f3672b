package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tailscale/hujson"
)

const (
	configDirName  = ".specify"
	configFileName = "config.json"
)

// Settings is the user configuration stored at ~/.specify/config.json.
// The file is JSONC: comments and trailing commas are tolerated so users can
// annotate their overrides.
type Settings struct {
	// TemplateRepo overrides the release repository in "owner/repo" form.
	TemplateRepo string `json:"templateRepo,omitempty"`
	// TemplatePath points at a local template archive or directory.
	TemplatePath string `json:"templatePath,omitempty"`
	// GithubToken authenticates release API requests and downloads.
	GithubToken string `json:"githubToken,omitempty"`
	// SkipTLS disables certificate verification for release fetches.
	SkipTLS bool `json:"skipTLS,omitempty"`
	// DefaultAgents are the agent keys preselected by init.
	DefaultAgents []string `json:"defaultAgents,omitempty"`
}

// ConfigManager handles reading and writing the Specify configuration.
type ConfigManager struct {
	configDir string
	mu        sync.RWMutex
}

// NewConfigManager creates a ConfigManager using the default config path
// (~/.specify/).
func NewConfigManager() (*ConfigManager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &ConfigManager{
		configDir: filepath.Join(home, configDirName),
	}, nil
}

// NewConfigManagerWithDir creates a ConfigManager using a custom config
// directory. Useful for testing.
func NewConfigManagerWithDir(dir string) *ConfigManager {
	return &ConfigManager{configDir: dir}
}

// ConfigPath returns the full path to the config file.
func (cm *ConfigManager) ConfigPath() string {
	return filepath.Join(cm.configDir, configFileName)
}

// Load reads the settings from disk. Returns zero-value settings if the file
// doesn't exist.
func (cm *ConfigManager) Load() (*Settings, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	data, err := os.ReadFile(cm.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(standardized, &s); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &s, nil
}

// Save writes the settings to disk, creating the directory if needed.
// Comments in an existing file are not preserved.
func (cm *ConfigManager) Save(s *Settings) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := os.MkdirAll(cm.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Write atomically: write to temp file then rename
	tmpPath := cm.ConfigPath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, cm.ConfigPath()); err != nil {
		_ = os.Remove(tmpPath) // clean up on failure
		return fmt.Errorf("saving config: %w", err)
	}

	return nil
}
