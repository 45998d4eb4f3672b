package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/Jrakru/spec-kit/cmd/specify/cmd"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"specify": func() {
			if err := cmd.Execute(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	})
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		RequireExplicitExec: true,
		Setup: func(e *testscript.Env) error {
			// Set HOME to WORK so ~/.specify/ is created inside the temp dir
			e.Vars = append(e.Vars, "HOME="+e.WorkDir)
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			// is-executable asserts that a file has (or lacks) an owner
			// execute bit. Usage: [!] is-executable <path>
			"is-executable": cmdIsExecutable,

			// dir-not-exists asserts that a directory does not exist.
			// Usage: [!] dir-not-exists <path>
			"dir-not-exists": cmdDirNotExists,
		},
	})
}

func cmdIsExecutable(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 1 {
		ts.Fatalf("usage: is-executable <path>")
	}
	info, err := os.Stat(ts.MkAbs(args[0]))
	if err != nil {
		ts.Fatalf("stat %s: %v", args[0], err)
	}
	executable := info.Mode()&0o100 != 0
	if executable == neg {
		ts.Fatalf("%s: executable=%v, want %v", args[0], executable, !neg)
	}
}

func cmdDirNotExists(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 1 {
		ts.Fatalf("usage: dir-not-exists <path>")
	}
	info, err := os.Stat(ts.MkAbs(args[0]))
	exists := err == nil && info.IsDir()
	if exists != neg {
		ts.Fatalf("%s: exists=%v, want %v", args[0], exists, neg)
	}
}
