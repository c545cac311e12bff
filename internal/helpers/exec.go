package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

// CommandRunner defines an interface for executing system commands
// This allows for mocking in tests and dependency injection
type CommandRunner interface {
	// LookPath resolves a command name to the executable that would run
	LookPath(name string) (string, error)

	// RunCommandWithOutput runs a command and returns both stdout and stderr
	RunCommandWithOutput(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

	// GetExitCode extracts the exit code from a command error
	GetExitCode(err error) int
}

// OSCommandRunner is the default implementation using os/exec
type OSCommandRunner struct {
	pathCache sync.Map // map[string]string
}

// NewOSCommandRunner creates a new OSCommandRunner instance
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// LookPath resolves name through PATH. Successful lookups are cached.
func (r *OSCommandRunner) LookPath(name string) (string, error) {
	if cached, ok := r.pathCache.Load(name); ok {
		if path, ok := cached.(string); ok {
			return path, nil
		}
		r.pathCache.Delete(name)
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("look up %q: %w", name, err)
	}
	r.pathCache.Store(name, path)
	return path, nil
}

// RunCommandWithOutput runs a command and returns both stdout and stderr.
// SECURITY: Uses exec.CommandContext with separate arguments to prevent command injection
// Output is returned even when the command fails so callers can report it.
func (r *OSCommandRunner) RunCommandWithOutput(ctx context.Context, name string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		err = fmt.Errorf("command %q failed: %w", name, err)
	}

	return stdout, stderr, err
}

// GetExitCode extracts the exit code from a command error
func (r *OSCommandRunner) GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}

// IsCommandNotFound reports whether err means the program itself could not be found
func IsCommandNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
