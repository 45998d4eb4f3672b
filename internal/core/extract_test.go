package core

import (
	"archive/zip"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// buildZip writes a zip archive with the given name->content entries.
// Names ending in "/" become directory entries.
func buildZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		if name[len(name)-1] == '/' {
			if _, err := w.Create(name); err != nil {
				t.Fatalf("adding dir %s: %v", name, err)
			}
			continue
		}
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
}

func TestPreparePayload_ExtractsArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "template.zip")
	buildZip(t, archive, map[string]string{
		".specs/.specify/memory/constitution.md": "constitution",
		".claude/commands/specify.md":            "command",
	})

	payload, err := PreparePayload(&TemplateSource{Kind: SourceLocalArchive, Path: archive})
	if err != nil {
		t.Fatalf("PreparePayload() error: %v", err)
	}
	defer payload.Cleanup()

	if !payload.Staged() {
		t.Errorf("archive payload should be staged")
	}
	if payload.Entries != 2 {
		t.Errorf("Entries = %d, want 2", payload.Entries)
	}
	if payload.Flattened {
		t.Errorf("two top-level entries should not flatten")
	}
	if got := readTestFile(t, filepath.Join(payload.Root, ".specs", ".specify", "memory", "constitution.md")); got != "constitution" {
		t.Errorf("extracted content = %q", got)
	}
}

func TestPreparePayload_FlattensSingleWrapper(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "template.zip")
	buildZip(t, archive, map[string]string{
		"spec-kit-main/.specs/.specify/memory/constitution.md": "constitution",
		"spec-kit-main/README.md":                              "readme",
	})

	payload, err := PreparePayload(&TemplateSource{Kind: SourceLocalArchive, Path: archive})
	if err != nil {
		t.Fatalf("PreparePayload() error: %v", err)
	}
	defer payload.Cleanup()

	if !payload.Flattened {
		t.Errorf("single wrapping directory should flatten")
	}
	if filepath.Base(payload.Root) != "spec-kit-main" {
		t.Errorf("Root = %s, want the wrapper directory", payload.Root)
	}
	if _, err := os.Stat(filepath.Join(payload.Root, "README.md")); err != nil {
		t.Errorf("flattened root missing content: %v", err)
	}
}

func TestPreparePayload_SingleFileDoesNotFlatten(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "template.zip")
	buildZip(t, archive, map[string]string{"README.md": "readme"})

	payload, err := PreparePayload(&TemplateSource{Kind: SourceLocalArchive, Path: archive})
	if err != nil {
		t.Fatalf("PreparePayload() error: %v", err)
	}
	defer payload.Cleanup()

	if payload.Flattened {
		t.Errorf("a single top-level file must not flatten")
	}
}

func TestPreparePayload_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	buildZip(t, archive, map[string]string{
		"../outside.txt": "escape",
	})

	payload, err := PreparePayload(&TemplateSource{Kind: SourceLocalArchive, Path: archive})
	if err == nil {
		payload.Cleanup()
		t.Fatalf("PreparePayload() should reject path traversal")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "..", "outside.txt")); statErr == nil {
		t.Errorf("traversal entry was written outside the staging area")
	}
}

func TestPreparePayload_LocalDirInPlace(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ".specs", ".specify", "memory", "constitution.md"), "constitution")
	writeTestFile(t, filepath.Join(dir, ".claude", "commands", "specify.md"), "command")

	payload, err := PreparePayload(&TemplateSource{Kind: SourceLocalDir, Path: dir})
	if err != nil {
		t.Fatalf("PreparePayload() error: %v", err)
	}
	defer payload.Cleanup()

	if payload.Staged() {
		t.Errorf("directory payload should not be staged")
	}
	if payload.Root != dir {
		t.Errorf("Root = %s, want %s", payload.Root, dir)
	}

	// Cleanup must not touch a caller-owned directory.
	payload.Cleanup()
	if _, err := os.Stat(filepath.Join(dir, ".claude", "commands", "specify.md")); err != nil {
		t.Errorf("cleanup removed caller-owned content: %v", err)
	}
}

func TestPreparePayload_PreservesExecutableMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions only")
	}

	dir := t.TempDir()
	archive := filepath.Join(dir, "template.zip")

	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	w := zip.NewWriter(f)
	header := &zip.FileHeader{Name: "scripts/run.sh", Method: zip.Deflate}
	header.SetMode(0o755)
	fw, err := w.CreateHeader(header)
	if err != nil {
		t.Fatalf("adding entry: %v", err)
	}
	fw.Write([]byte("#!/bin/sh\n"))
	w.Close()
	f.Close()

	payload, err := PreparePayload(&TemplateSource{Kind: SourceLocalArchive, Path: archive})
	if err != nil {
		t.Fatalf("PreparePayload() error: %v", err)
	}
	defer payload.Cleanup()

	info, err := os.Stat(filepath.Join(payload.Root, "run.sh"))
	if err != nil {
		t.Fatalf("stat extracted script: %v", err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("mode = %v, want execute bit preserved", info.Mode().Perm())
	}
}
