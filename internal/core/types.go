// Package core implements the template provisioning pipeline for Specify
// projects: source resolution, archive extraction, conflict-aware merging,
// legacy layout consolidation, and script permission normalization.
// It has zero UI dependencies and is independently testable.
package core

import "fmt"

// SourceKind identifies where a template payload comes from.
type SourceKind string

const (
	// SourceRemoteRelease fetches the template from a GitHub release asset.
	SourceRemoteRelease SourceKind = "remote-release"
	// SourceLocalArchive unpacks a template ZIP already on disk.
	SourceLocalArchive SourceKind = "local-archive"
	// SourceLocalDir merges a template directory directly, without copying
	// it to a staging area first.
	SourceLocalDir SourceKind = "local-directory"
)

// TemplateSource is a resolved template origin for one agent. It is created
// once per agent per run and never mutated afterward.
type TemplateSource struct {
	Kind SourceKind

	// Remote release coordinates (SourceRemoteRelease only).
	Agent     string
	Script    string
	RepoOwner string
	RepoName  string

	// Path on disk (SourceLocalArchive and SourceLocalDir only).
	Path string
}

// ReleaseAsset is the metadata for a downloadable release asset.
// It is fetched fresh each run and never cached.
type ReleaseAsset struct {
	Name        string
	Size        int64
	DownloadURL string
	Release     string // release tag the asset belongs to
}

// ScriptType selects the script flavor packaged with a template.
type ScriptType string

const (
	// ScriptSh selects POSIX shell (bash/zsh) scripts.
	ScriptSh ScriptType = "sh"
	// ScriptPs selects PowerShell scripts.
	ScriptPs ScriptType = "ps"
)

// ScriptTypeDescriptions maps each script type to its human description.
var ScriptTypeDescriptions = map[ScriptType]string{
	ScriptSh: "POSIX Shell (bash/zsh)",
	ScriptPs: "PowerShell",
}

// ParseScriptType validates a raw --script value.
func ParseScriptType(raw string) (ScriptType, error) {
	switch ScriptType(raw) {
	case ScriptSh, ScriptPs:
		return ScriptType(raw), nil
	default:
		return "", fmt.Errorf("invalid script type %q. Choose from: sh, ps", raw)
	}
}

// MergeSummary counts the outcome of one merge pass.
type MergeSummary struct {
	Copied  int // files written (new or overwritten)
	Skipped int // files left untouched by the preserve policy or guards
}

// Add accumulates another summary into this one.
func (s *MergeSummary) Add(other MergeSummary) {
	s.Copied += other.Copied
	s.Skipped += other.Skipped
}

// RelocationSummary counts what the legacy relocator moved.
type RelocationSummary struct {
	Legacy int // items migrated out of the legacy .specify root
	Moved  int // legacy top-level directories moved wholesale
	Nested int // stray items moved from under .specs
}

// Changed reports whether the relocation pass moved anything.
func (s RelocationSummary) Changed() bool {
	return s.Legacy > 0 || s.Moved > 0 || s.Nested > 0
}

// PermissionSummary reports the outcome of script permission normalization.
type PermissionSummary struct {
	Updated  int
	Failures []string // "relative/path: reason" entries, non-fatal
}
