package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// EnsureExecutableScripts walks the consolidated scripts directory and sets
// execute bits on POSIX shell scripts that have a shebang but lack them.
// Each set read bit is mirrored to the corresponding execute bit, and
// owner-execute is always forced on. No-op on Windows. Per-file failures
// are collected, not fatal.
func EnsureExecutableScripts(projectPath string) PermissionSummary {
	var summary PermissionSummary

	if runtime.GOOS == "windows" {
		return summary
	}

	scriptsRoot := ScriptsDir(projectPath)
	if !dirExists(scriptsRoot) {
		return summary
	}

	_ = filepath.WalkDir(scriptsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: record and keep going.
			summary.Failures = append(summary.Failures, failureEntry(scriptsRoot, path, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".sh" {
			return nil
		}

		updated, err := normalizeScriptMode(path)
		if err != nil {
			summary.Failures = append(summary.Failures, failureEntry(scriptsRoot, path, err))
			return nil
		}
		if updated {
			summary.Updated++
		}
		return nil
	})

	return summary
}

// normalizeScriptMode applies the execute-bit derivation to one script and
// reports whether the mode changed. Symlinks, non-regular files, files
// without a shebang, and files that already carry any execute bit are left
// alone.
func normalizeScriptMode(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	hasShebang, err := startsWithShebang(path)
	if err != nil || !hasShebang {
		return false, err
	}

	mode := info.Mode().Perm()
	if mode&0o111 != 0 {
		return false, nil
	}

	newMode := mode
	if mode&0o400 != 0 {
		newMode |= 0o100
	}
	if mode&0o040 != 0 {
		newMode |= 0o010
	}
	if mode&0o004 != 0 {
		newMode |= 0o001
	}
	// Owner must always be able to run it.
	newMode |= 0o100

	if err := os.Chmod(path, newMode); err != nil {
		return false, err
	}
	return true, nil
}

// startsWithShebang reports whether the file's first two bytes are "#!".
func startsWithShebang(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	var head [2]byte
	n, err := f.Read(head[:])
	if err != nil || n < 2 {
		return false, nil
	}
	return head[0] == '#' && head[1] == '!', nil
}

// failureEntry formats a per-file failure relative to the scripts root.
func failureEntry(root, path string, err error) string {
	rel, relErr := filepath.Rel(root, path)
	if relErr != nil {
		rel = path
	}
	return fmt.Sprintf("%s: %v", rel, err)
}
