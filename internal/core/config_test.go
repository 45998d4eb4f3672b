package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigManager_LoadMissingFile(t *testing.T) {
	cm := NewConfigManagerWithDir(t.TempDir())
	s, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.TemplateRepo != "" || s.SkipTLS || len(s.DefaultAgents) != 0 {
		t.Errorf("missing file should yield zero settings, got %+v", s)
	}
}

func TestConfigManager_SaveAndLoad(t *testing.T) {
	cm := NewConfigManagerWithDir(filepath.Join(t.TempDir(), ".specify"))

	saved := &Settings{
		TemplateRepo:  "acme/templates",
		TemplatePath:  "/tmp/templates",
		GithubToken:   "tok",
		SkipTLS:       true,
		DefaultAgents: []string{"claude", "copilot"},
	}
	if err := cm.Save(saved); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.TemplateRepo != saved.TemplateRepo || loaded.GithubToken != saved.GithubToken {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}
	if !loaded.SkipTLS || len(loaded.DefaultAgents) != 2 {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}

	// No temp file left behind by the atomic write.
	if _, err := os.Stat(cm.ConfigPath() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
}

func TestConfigManager_LoadToleratesJSONC(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)
	os.WriteFile(cm.ConfigPath(), []byte(`{
	// release repository override
	"templateRepo": "acme/templates",
	"defaultAgents": [
		"claude",
		"copilot", // trailing comma is fine
	],
}`), 0o600)

	s, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.TemplateRepo != "acme/templates" {
		t.Errorf("TemplateRepo = %q", s.TemplateRepo)
	}
	if len(s.DefaultAgents) != 2 || s.DefaultAgents[1] != "copilot" {
		t.Errorf("DefaultAgents = %v", s.DefaultAgents)
	}
}

func TestConfigManager_LoadRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)
	os.WriteFile(cm.ConfigPath(), []byte(`{"templateRepo": `), 0o600)

	if _, err := cm.Load(); err == nil {
		t.Errorf("Load() should fail on malformed config")
	} else if !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("error = %v, want a parse error", err)
	}
}

func TestConfigManager_SaveRestrictsPermissions(t *testing.T) {
	cm := NewConfigManagerWithDir(filepath.Join(t.TempDir(), ".specify"))
	if err := cm.Save(&Settings{GithubToken: "secret"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(cm.ConfigPath())
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm()&0o077 != 0 {
		t.Errorf("mode = %o, config with a token must not be group/world readable", info.Mode().Perm())
	}
}
