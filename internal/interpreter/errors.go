package interpreter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPython2OrOlder is returned when the queried interpreter predates Python 3
var ErrPython2OrOlder = errors.New("python 2 or older is not supported, use python 3 or newer")

// CanonicalizeError means the executable path could not be resolved on disk
type CanonicalizeError struct {
	Path string
	Err  error
}

func (e *CanonicalizeError) Error() string {
	return fmt.Sprintf("failed to canonicalize path `%s`: %v", e.Path, e.Err)
}

func (e *CanonicalizeError) Unwrap() error {
	return e.Err
}

// QueryError wraps any failure to run or decode the interpreter probe
type QueryError struct {
	Path   string
	Err    error
	Stdout string
	Stderr string
}

func (e *QueryError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "querying python at `%s` failed: %v", e.Path, e.Err)
	if e.Stdout != "" {
		fmt.Fprintf(&b, "\n--- stdout:\n%s", e.Stdout)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, "\n--- stderr:\n%s", e.Stderr)
	}
	return b.String()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
