package core

import "path/filepath"

const (
	// specsRootName is the reserved top-level subtree holding consolidated
	// non-agent assets. It is the one subtree merged under a
	// never-overwrite policy when it already exists.
	specsRootName = ".specs"

	// specifyRootName is the canonical configuration root nested inside the
	// specs root. The same name at the project top level is the legacy
	// location that relocation migrates away from.
	specifyRootName = ".specify"
)

// SpecsRoot returns the project's reserved specs subtree (.specs).
func SpecsRoot(projectPath string) string {
	return filepath.Join(projectPath, specsRootName)
}

// SpecifyRoot returns the canonical configuration root (.specs/.specify).
func SpecifyRoot(projectPath string) string {
	return filepath.Join(projectPath, specsRootName, specifyRootName)
}

// ScriptsDir returns the consolidated scripts directory whose entries get
// execute-bit normalization (.specs/.specify/scripts).
func ScriptsDir(projectPath string) string {
	return filepath.Join(SpecifyRoot(projectPath), "scripts")
}

// legacyTopLevelDirs are older project-root directory names that relocation
// consolidates under the canonical configuration root.
var legacyTopLevelDirs = []string{
	"plan",
	"spec",
	"notes",
	"scratch",
	"memory",
	"docs",
	"logs",
	"specs",
}
