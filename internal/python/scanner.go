package python

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/quantmind-br/pyfind/internal/fsops"
	"github.com/quantmind-br/pyfind/internal/platform"
	"github.com/spf13/afero"
)

// Scanner resolves executable names inside single search-path directories
type Scanner struct {
	fs       afero.Fs
	platform platform.Platform
	pathExt  []string
}

// NewScanner creates a Scanner on fs. pathExt is only consulted for Windows.
func NewScanner(fs afero.Fs, p platform.Platform, pathExt []string) *Scanner {
	if len(pathExt) == 0 {
		pathExt = parsePathExt("")
	}
	return &Scanner{
		fs:       fs,
		platform: p,
		pathExt:  pathExt,
	}
}

// FindIn returns every executable called name in dir, in resolution order.
// A name that is simply not there yields an empty result; only genuine I/O
// failures are returned as *PathResolutionError.
func (s *Scanner) FindIn(dir, name string) ([]string, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, &PathResolutionError{Name: name, Dir: dir, Err: err}
	}

	var found []string
	for _, file := range s.fileNames(name) {
		path := filepath.Join(expanded, file)
		ok, err := fsops.IsExecutable(s.fs, path, !s.platform.IsWindows())
		if err != nil {
			return nil, &PathResolutionError{Name: name, Dir: dir, Err: err}
		}
		if ok {
			found = append(found, path)
		}
	}
	return found, nil
}

// fileNames expands name with PATHEXT on Windows when it has no executable extension
func (s *Scanner) fileNames(name string) []string {
	if !s.platform.IsWindows() {
		return []string{name}
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext != "" && slices.Contains(s.pathExt, ext) {
		return []string{name}
	}

	names := make([]string, 0, len(s.pathExt))
	for _, ext := range s.pathExt {
		names = append(names, name+ext)
	}
	return names
}
