package core

import (
	"os"
	"path/filepath"
)

// RelocateLegacyDirectories consolidates older project layouts into the
// canonical configuration root (.specs/.specify). It runs once, after all
// agents have merged, and is best-effort: failures are skipped per item and
// never abort the run. Running it twice performs no further moves.
//
// Three passes, each merge-without-overwrite:
//  1. children of a legacy top-level .specify root move into the canonical
//     root; the emptied legacy root is removed
//  2. a fixed list of legacy top-level directory names moves wholesale when
//     absent at the canonical root
//  3. stray items directly under .specs (other than .specify itself) move in
func RelocateLegacyDirectories(projectPath string) RelocationSummary {
	var summary RelocationSummary

	specsRoot := SpecsRoot(projectPath)
	specifyRoot := SpecifyRoot(projectPath)

	// Pass 1: migrate the legacy project-root .specify directory.
	legacyRoot := filepath.Join(projectPath, specifyRootName)
	if dirExists(legacyRoot) {
		entries, err := os.ReadDir(legacyRoot)
		if err == nil {
			for _, entry := range entries {
				item := filepath.Join(legacyRoot, entry.Name())
				dest := filepath.Join(specifyRoot, entry.Name())

				if pathExists(dest) {
					if !entry.IsDir() {
						continue
					}
					if moveMergeChildren(item, dest) {
						summary.Legacy++
					}
					_ = os.Remove(item)
					continue
				}

				if moveItem(item, dest) {
					summary.Legacy++
				}
			}
		}
		// Only disappears once fully drained.
		_ = os.Remove(legacyRoot)
	}

	// Pass 2: known legacy top-level directories move wholesale.
	for _, name := range legacyTopLevelDirs {
		source := filepath.Join(projectPath, name)
		if !pathExists(source) {
			continue
		}
		dest := filepath.Join(specifyRoot, name)
		if pathExists(dest) {
			continue
		}
		if moveItem(source, dest) {
			summary.Moved++
		}
	}

	// Pass 3: anything still sitting directly under .specs belongs inside
	// the canonical root.
	if dirExists(specsRoot) {
		entries, err := os.ReadDir(specsRoot)
		if err == nil {
			for _, entry := range entries {
				if entry.Name() == specifyRootName {
					continue
				}
				item := filepath.Join(specsRoot, entry.Name())
				dest := filepath.Join(specifyRoot, entry.Name())

				if pathExists(dest) {
					if entry.IsDir() && dirExists(dest) {
						moveMergeChildren(item, dest)
						_ = os.Remove(item)
					}
					continue
				}

				if moveItem(item, dest) {
					summary.Nested++
				}
			}
		}
	}

	return summary
}

// moveItem renames src to dest, creating dest's parent first. Returns false
// on any failure; relocation treats failures as skips.
func moveItem(src, dest string) bool {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false
	}
	return os.Rename(src, dest) == nil
}

// moveMergeChildren moves each child of srcDir into dstDir, skipping
// children that already exist at the destination. Returns true when at
// least one child moved.
func moveMergeChildren(srcDir, dstDir string) bool {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return false
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return false
	}
	moved := false
	for _, entry := range entries {
		target := filepath.Join(dstDir, entry.Name())
		if pathExists(target) {
			continue
		}
		if os.Rename(filepath.Join(srcDir, entry.Name()), target) == nil {
			moved = true
		}
	}
	return moved
}
