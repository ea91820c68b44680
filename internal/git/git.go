// Package git reads commit history from a local repository via the git executable.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/gorewood/worklog/internal/output"
)

// Run executes a git command with the given arguments in dir.
// An empty dir runs in the current working directory.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(dir string, args ...string) (string, error) {
	return RunContext(context.Background(), dir, args...)
}

// RunContext executes a git command with the given context and arguments in dir.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func RunContext(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Check if git is not found
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		// Git command failed - include stderr in message
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RepoRoot returns the root directory of the repository containing dir.
// Returns an error if dir is not in a git repository.
func RepoRoot(dir string) (string, error) {
	root, err := Run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		where := dir
		if where == "" {
			where = "current directory"
		}
		return "", output.NewSystemErrorWithCause("not in a git repository: "+where, err)
	}
	return root, nil
}
