package python

import (
	"errors"
	"fmt"

	"github.com/quantmind-br/pyfind/internal/interpreter"
)

var (
	// ErrEmptyRequest is returned for a blank request string
	ErrEmptyRequest = errors.New("empty python request")

	// ErrLauncherNotFound means the py launcher is not installed
	ErrLauncherNotFound = errors.New("python launcher not found")
)

// NoPythonInstalledError is returned by FindDefault when nothing at all was found
type NoPythonInstalledError struct {
	Windows bool
}

func (e *NoPythonInstalledError) Error() string {
	if e.Windows {
		return "Could not find `python.exe` through PATH or `py --list-paths`. Is Python installed?"
	}
	return "Could not find `python3` or `python` in PATH. Is Python installed?"
}

// NoSuchPythonError is how callers report an empty result for an explicit request
type NoSuchPythonError struct {
	Request string
}

func (e *NoSuchPythonError) Error() string {
	return fmt.Sprintf("No Python %s In PATH. Is Python %s installed?", e.Request, e.Request)
}

// LegacyPythonError is a Python 2 (or older) interpreter found for a request that asked for it
type LegacyPythonError struct {
	Path string
}

func (e *LegacyPythonError) Error() string {
	return fmt.Sprintf("`%s`: %v", e.Path, interpreter.ErrPython2OrOlder)
}

func (e *LegacyPythonError) Unwrap() error {
	return interpreter.ErrPython2OrOlder
}

// PathResolutionError is an I/O failure while resolving name inside dir
type PathResolutionError struct {
	Name string
	Dir  string
	Err  error
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve `%s` in `%s`: %v", e.Name, e.Dir, e.Err)
}

func (e *PathResolutionError) Unwrap() error {
	return e.Err
}

// LauncherError means the launcher process could not be started
type LauncherError struct {
	Command string
	Err     error
}

func (e *LauncherError) Error() string {
	return fmt.Sprintf("failed to run `%s --list-paths`: %v", e.Command, e.Err)
}

func (e *LauncherError) Unwrap() error {
	return e.Err
}

// SubprocessOutputError carries the output of a launcher run that failed or printed garbage
type SubprocessOutputError struct {
	Message  string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *SubprocessOutputError) Error() string {
	return fmt.Sprintf("%s\n--- stdout:\n%s\n--- stderr:\n%s\n---", e.Message, e.Stdout, e.Stderr)
}
