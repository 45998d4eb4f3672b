package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// MergeOptions configures one merge pass of a payload into a project tree.
type MergeOptions struct {
	// TopLevelFilter restricts the merge to payload entries whose top-level
	// name is in the set. Nil means merge everything.
	TopLevelFilter map[string]bool

	// PreserveExistingSpecs switches the reserved .specs subtree to a
	// never-overwrite policy when it already exists at the destination.
	PreserveExistingSpecs bool
}

// MergeTree copies the payload root's contents into the project tree.
// It only ever adds files or overwrites plain files in place; nothing is
// deleted. The reserved specs subtree is merged without overwriting when
// MergeOptions demand it.
func MergeTree(payloadRoot, projectPath string, opts MergeOptions) (MergeSummary, error) {
	var summary MergeSummary

	resolvedProject, err := filepath.Abs(projectPath)
	if err != nil {
		return summary, fmt.Errorf("resolving project path: %w", err)
	}

	entries, err := os.ReadDir(payloadRoot)
	if err != nil {
		return summary, fmt.Errorf("reading payload root: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if opts.TopLevelFilter != nil && !opts.TopLevelFilter[name] {
			continue
		}

		srcPath := filepath.Join(payloadRoot, name)
		destPath := filepath.Join(resolvedProject, name)

		// Guard against merging a directory into itself, which happens when
		// the payload root is the project tree (local directory, in place).
		if pathExists(destPath) && samePath(destPath, srcPath) {
			continue
		}

		switch {
		case opts.PreserveExistingSpecs && name == specsRootName && pathExists(destPath):
			s, err := copyTreePreserve(srcPath, destPath)
			summary.Add(s)
			if err != nil {
				return summary, fmt.Errorf("merging %s: %w", name, err)
			}
		case entry.IsDir():
			s, err := copyTreeOverwrite(srcPath, destPath)
			summary.Add(s)
			if err != nil {
				return summary, fmt.Errorf("copying %s: %w", name, err)
			}
		default:
			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				return summary, fmt.Errorf("copying %s: %w", name, err)
			}
			if err := copyFile(srcPath, destPath); err != nil {
				return summary, fmt.Errorf("copying %s: %w", name, err)
			}
			summary.Copied++
		}
	}

	return summary, nil
}

// copyTreeOverwrite copies src into dst recursively, overwriting any
// existing files at the same relative paths.
func copyTreeOverwrite(src, dst string) (MergeSummary, error) {
	var summary MergeSummary
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(destPath, 0o755)
		}
		if err := copyFile(path, destPath); err != nil {
			return err
		}
		summary.Copied++
		return nil
	})
	return summary, err
}

// copyTreePreserve copies src into dst recursively but never replaces an
// existing file. Directories are created as needed.
func copyTreePreserve(src, dst string) (MergeSummary, error) {
	var summary MergeSummary

	if !pathExists(dst) {
		return copyTreeOverwrite(src, dst)
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return summary, err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return summary, err
	}

	for _, entry := range entries {
		srcChild := filepath.Join(src, entry.Name())
		dstChild := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			s, err := copyTreePreserve(srcChild, dstChild)
			summary.Add(s)
			if err != nil {
				return summary, err
			}
			continue
		}

		if pathExists(dstChild) {
			summary.Skipped++
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dstChild), 0o755); err != nil {
			return summary, err
		}
		if err := copyFile(srcChild, dstChild); err != nil {
			return summary, err
		}
		summary.Copied++
	}

	return summary, nil
}
