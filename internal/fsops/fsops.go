package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

// CheckWritable checks if a path is writable
func CheckWritable(fs afero.Fs, path string) error {
	testFile := filepath.Join(path, ".write_test")
	f, err := fs.Create(testFile)
	if err != nil {
		return fmt.Errorf("path not writable: %w", err)
	}
	f.Close()
	fs.Remove(testFile)
	return nil
}

// EnsureDir ensures a directory exists with the given permissions
func EnsureDir(fs afero.Fs, path string, perm os.FileMode) error {
	if err := fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("ensure directory: %w", err)
	}
	return nil
}

// Exists checks if a path exists
func Exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// IsDir checks if a path is a directory
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsAbsent reports whether err only says that nothing lives at the path
func IsAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// IsExecutable reports whether path is a regular file the current user may execute.
// With checkMode unset (Windows) any regular file counts, extensions decide executability there.
// A missing file is (false, nil); other stat failures are returned.
func IsExecutable(fsys afero.Fs, path string, checkMode bool) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if IsAbsent(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return false, nil
	}
	if !checkMode {
		return true, nil
	}

	if _, ok := fsys.(*afero.OsFs); ok {
		return accessExecutable(path), nil
	}
	return info.Mode().Perm()&0o111 != 0, nil
}
