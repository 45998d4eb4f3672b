package core

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Payload is an extracted template ready to merge. Root's immediate children
// are the items the merge engine copies. Cleanup must be called on every
// exit path; it is a no-op for payloads that were not staged.
type Payload struct {
	Root      string
	Entries   int  // top-level entry count before flattening
	Flattened bool // single wrapping directory was collapsed

	stagingDir string
}

// Cleanup removes the transient staging directory, if any.
func (p *Payload) Cleanup() {
	if p.stagingDir != "" {
		_ = os.RemoveAll(p.stagingDir)
	}
}

// Staged reports whether the payload lives in a transient staging area.
func (p *Payload) Staged() bool { return p.stagingDir != "" }

// PreparePayload turns an on-disk template (directory or archive) into a
// payload root. Directories are used in place; archives are extracted into a
// process-private staging directory. In both cases the single-wrapper
// flatten rule is applied: a payload whose root holds exactly one directory
// is replaced by that child.
func PreparePayload(source *TemplateSource) (*Payload, error) {
	switch source.Kind {
	case SourceLocalDir:
		entries, err := os.ReadDir(source.Path)
		if err != nil {
			return nil, fmt.Errorf("reading template directory: %w", err)
		}
		p := &Payload{Root: source.Path, Entries: len(entries)}
		return flatten(p, entries), nil
	case SourceLocalArchive:
		return extractArchive(source.Path)
	default:
		return nil, fmt.Errorf("source kind %q has no on-disk payload", source.Kind)
	}
}

// extractArchive unpacks a zip file into a fresh staging directory and
// returns the flattened payload. The staging directory is removed on error.
func extractArchive(archivePath string) (*Payload, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", filepath.Base(archivePath), err)
	}
	defer func() { _ = reader.Close() }()

	stagingDir, err := os.MkdirTemp("", "specify-extract-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	for _, entry := range reader.File {
		if err := extractEntry(entry, stagingDir); err != nil {
			_ = os.RemoveAll(stagingDir)
			return nil, fmt.Errorf("extracting %s: %w", entry.Name, err)
		}
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		_ = os.RemoveAll(stagingDir)
		return nil, fmt.Errorf("listing extracted payload: %w", err)
	}

	p := &Payload{Root: stagingDir, Entries: len(entries), stagingDir: stagingDir}
	return flatten(p, entries), nil
}

// extractEntry writes one zip entry under destRoot, rejecting paths that
// would escape it.
func extractEntry(entry *zip.File, destRoot string) error {
	rel := filepath.FromSlash(entry.Name)
	if strings.Contains(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("unsafe archive path %q", entry.Name)
	}
	destPath := filepath.Join(destRoot, rel)
	if !strings.HasPrefix(destPath, filepath.Clean(destRoot)+string(os.PathSeparator)) {
		return fmt.Errorf("unsafe archive path %q", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	mode := entry.Mode()
	if mode == 0 {
		mode = 0o644
	}
	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	_, err = io.Copy(dst, src)
	return err
}

// flatten applies the single-wrapper rule: exactly one top-level entry that
// is a directory means the payload root descends one level. This undoes the
// convention of archives wrapping their content in one folder.
func flatten(p *Payload, entries []os.DirEntry) *Payload {
	if len(entries) == 1 && entries[0].IsDir() {
		p.Root = filepath.Join(p.Root, entries[0].Name())
		p.Flattened = true
	}
	return p
}
