package security

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const maxPathLength = 4096

var envNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidatePath performs general path validation
func ValidatePath(path string) error {
	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null bytes: %q", path)
	}

	// Check for excessive length
	if len(path) > maxPathLength {
		return fmt.Errorf("path too long: %d characters", len(path))
	}

	return nil
}

// NormalizePath validates path and cleans it lexically.
// The path does not need to exist.
func NormalizePath(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}

// ValidateEnvironmentVariable validates an environment variable name
func ValidateEnvironmentVariable(name string) error {
	if name == "" {
		return fmt.Errorf("environment variable name cannot be empty")
	}

	if !envNameRegex.MatchString(name) {
		return fmt.Errorf("invalid environment variable name: %s", name)
	}

	return nil
}
