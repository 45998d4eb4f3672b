package core

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const gitTimeout = 30 * time.Second

// GitAvailable reports whether a git executable is on the PATH.
func GitAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsGitRepo reports whether path is inside a git work tree.
func IsGitRepo(path string) bool {
	if !dirExists(path) {
		return false
	}
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = path
	output, err := runWithTimeout(cmd, gitTimeout)
	return err == nil && strings.TrimSpace(output) == "true"
}

// InitGitRepo initializes a repository in projectPath and creates the
// initial commit from the provisioned template.
func InitGitRepo(projectPath string) error {
	steps := [][]string{
		{"init"},
		{"add", "."},
		{"commit", "-m", "Initial commit from Specify template"},
	}
	for _, args := range steps {
		cmd := exec.Command("git", args...)
		cmd.Dir = projectPath
		cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
		if output, err := runWithTimeout(cmd, gitTimeout); err != nil {
			return fmt.Errorf("git %s: %s", args[0], firstOutputLine(output, err))
		}
	}
	return nil
}

// runWithTimeout runs a command with a timeout, returning combined output.
func runWithTimeout(cmd *exec.Cmd, timeout time.Duration) (string, error) {
	done := make(chan struct{})
	var output []byte
	var cmdErr error

	go func() {
		output, cmdErr = cmd.CombinedOutput()
		close(done)
	}()

	select {
	case <-done:
		return string(output), cmdErr
	case <-time.After(timeout):
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		return "", fmt.Errorf("command timed out after %s", timeout)
	}
}

// firstOutputLine prefers the command's own output over the exec error.
func firstOutputLine(output string, err error) string {
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return err.Error()
}
