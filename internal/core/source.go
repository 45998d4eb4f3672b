package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// Environment overrides for the template source. CLI flags take
	// precedence over these; these take precedence over the config file.
	EnvTemplateRepo = "SPEC_KIT_TEMPLATE_REPO"
	EnvTemplatePath = "SPEC_KIT_TEMPLATE_PATH"

	defaultRepoOwner = "Jrakru"
	defaultRepoName  = "spec-kit"
)

// TemplateOverrides is the per-run template origin configuration, resolved
// once from flags, environment, and the config file.
type TemplateOverrides struct {
	RepoOwner string
	RepoName  string
	LocalPath string // non-empty means skip the network entirely
}

// ResolveOverrides merges the template repo/path overrides with the
// precedence flag > environment > config file > default.
func ResolveOverrides(flagRepo, flagPath string, settings *Settings) (TemplateOverrides, error) {
	if settings == nil {
		settings = &Settings{}
	}

	repoSpec := firstNonEmpty(flagRepo, os.Getenv(EnvTemplateRepo), settings.TemplateRepo,
		defaultRepoOwner+"/"+defaultRepoName)
	owner, name, ok := strings.Cut(repoSpec, "/")
	if !ok || owner == "" || name == "" {
		return TemplateOverrides{}, fmt.Errorf("invalid template repo %q. Expected 'owner/repo'", repoSpec)
	}

	localPath := firstNonEmpty(flagPath, os.Getenv(EnvTemplatePath), settings.TemplatePath)
	if localPath != "" {
		abs, err := filepath.Abs(expandPath(localPath))
		if err != nil {
			return TemplateOverrides{}, fmt.Errorf("resolving template path: %w", err)
		}
		localPath = abs
	}

	return TemplateOverrides{RepoOwner: owner, RepoName: name, LocalPath: localPath}, nil
}

// ResolveSource turns an (agent, script) request plus the run's overrides
// into a concrete template source. Resolution never touches the network;
// remote sources are only described here and fetched later.
func ResolveSource(agentKey string, script ScriptType, ov TemplateOverrides) (*TemplateSource, error) {
	if ov.LocalPath == "" {
		return &TemplateSource{
			Kind:      SourceRemoteRelease,
			Agent:     agentKey,
			Script:    string(script),
			RepoOwner: ov.RepoOwner,
			RepoName:  ov.RepoName,
		}, nil
	}

	info, err := os.Stat(ov.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("template path not found: %s", ov.LocalPath)
	}

	if !info.IsDir() {
		return &TemplateSource{Kind: SourceLocalArchive, Path: ov.LocalPath}, nil
	}

	// A directory that already carries payload markers is usable as-is.
	if pathExists(filepath.Join(ov.LocalPath, specsRootName)) ||
		pathExists(filepath.Join(ov.LocalPath, specifyRootName)) {
		return &TemplateSource{Kind: SourceLocalDir, Path: ov.LocalPath}, nil
	}

	variant, isDir := findTemplateVariant(ov.LocalPath, agentKey, string(script))
	if variant == "" {
		return nil, fmt.Errorf("no template found for agent %q and script %q in %s",
			agentKey, script, ov.LocalPath)
	}
	if isDir {
		return &TemplateSource{Kind: SourceLocalDir, Path: variant}, nil
	}
	return &TemplateSource{Kind: SourceLocalArchive, Path: variant}, nil
}

// findTemplateVariant locates a prebuilt agent template under baseDir for the
// given script type. Directories are preferred over archives (no extraction
// work); within each pattern set the lexicographically last match wins, which
// selects the highest version suffix.
func findTemplateVariant(baseDir, agent, script string) (path string, isDir bool) {
	dirPatterns := []string{
		fmt.Sprintf("sdd-%s-package-%s", agent, script),
		fmt.Sprintf("sdd-%s-package-%s-*", agent, script),
	}
	for _, pattern := range dirPatterns {
		if match := lastGlobMatch(baseDir, pattern, true); match != "" {
			return match, true
		}
	}

	zipPatterns := []string{
		fmt.Sprintf("spec-kit-template-%s-%s.zip", agent, script),
		fmt.Sprintf("spec-kit-template-%s-%s-*.zip", agent, script),
	}
	for _, pattern := range zipPatterns {
		if match := lastGlobMatch(baseDir, pattern, false); match != "" {
			return match, false
		}
	}

	return "", false
}

// lastGlobMatch returns the lexicographically last entry under dir matching
// pattern and the wanted kind, or "" when nothing matches.
func lastGlobMatch(dir, pattern string, wantDir bool) string {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return ""
	}
	sort.Strings(matches)
	for i := len(matches) - 1; i >= 0; i-- {
		if wantDir && dirExists(matches[i]) {
			return matches[i]
		}
		if !wantDir && fileExists(matches[i]) {
			return matches[i]
		}
	}
	return ""
}

// firstNonEmpty returns the first non-empty string of its arguments.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
