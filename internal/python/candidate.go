package python

import (
	"context"
	"errors"
	"iter"

	"github.com/quantmind-br/pyfind/internal/interpreter"
)

// Source records where a candidate came from
type Source int

const (
	// SourcePath is an executable found by name in a search-path directory
	SourcePath Source = iota
	// SourceShim is a pyenv-win style python.bat in a search-path directory
	SourceShim
	// SourceLauncher is an entry of `py --list-paths`
	SourceLauncher
)

func (s Source) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourceShim:
		return "shim"
	case SourceLauncher:
		return "py launcher"
	}
	return "unknown"
}

// Candidate is an executable found during the search that has not been validated yet
type Candidate struct {
	Path   string
	Source Source
	// Name is the executable name searched for; empty for launcher entries
	Name string
	// Dir is the search-path directory the candidate was found in
	Dir string
	// Major and Minor are only known for launcher entries
	Major uint8
	Minor uint8
}

// KnownVersion returns the version declared by the source, if any
func (c Candidate) KnownVersion() (major, minor uint8, ok bool) {
	if c.Source != SourceLauncher {
		return 0, 0, false
	}
	return c.Major, c.Minor, true
}

// pathCandidates walks dirs in order, trying every name in each directory before moving on.
// On Windows the python.bat shim is tried last in each directory.
func (f *Finder) pathCandidates(dirs, names []string) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		for _, dir := range dirs {
			for _, name := range names {
				paths, err := f.scanner.FindIn(dir, name)
				if err != nil {
					f.log.Debug().Err(err).Str("dir", dir).Str("name", name).Msg("skipping unreadable search path entry")
					continue
				}
				for _, path := range paths {
					if f.platform.IsWindows() && IsWindowsStoreShim(path) {
						f.log.Debug().Str("path", path).Msg("skipping windows store shim")
						continue
					}
					if !yield(Candidate{Path: path, Source: SourcePath, Name: name, Dir: dir}, nil) {
						return
					}
				}
			}

			if !f.platform.IsWindows() {
				continue
			}
			shims, err := f.scanner.FindIn(dir, "python.bat")
			if err != nil {
				f.log.Debug().Err(err).Str("dir", dir).Msg("skipping unreadable search path entry")
				continue
			}
			for _, shim := range shims {
				if !yield(Candidate{Path: shim, Source: SourceShim, Name: "python.bat", Dir: dir}, nil) {
					return
				}
			}
		}
	}
}

// launcherCandidates runs the launcher only once iteration reaches it.
// A missing launcher yields nothing.
func (f *Finder) launcherCandidates(ctx context.Context) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		entries, err := f.launcher.ListPaths(ctx)
		if err != nil {
			if errors.Is(err, ErrLauncherNotFound) {
				f.log.Debug().Msg("`py` is not installed")
				return
			}
			yield(Candidate{}, err)
			return
		}

		for _, entry := range entries {
			c := Candidate{
				Path:   entry.ExecutablePath,
				Source: SourceLauncher,
				Major:  entry.Major,
				Minor:  entry.Minor,
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}

// useLauncher reports whether the launcher fallback applies in this environment
func (f *Finder) useLauncher() bool {
	return f.platform.IsWindows() && !f.env.UseOverride
}

// Verdict is the outcome of validating one candidate
type Verdict int

const (
	// VerdictAccepted means the candidate satisfies the selector and ends the search
	VerdictAccepted Verdict = iota
	// VerdictMismatch means the candidate was queried and reports another version
	VerdictMismatch
	// VerdictUnqueried means the version declared by the source cannot match
	VerdictUnqueried
	// VerdictLegacy means a Python 2 interpreter was skipped
	VerdictLegacy
	// VerdictShimFailed means a python.bat shim could not be queried and was skipped
	VerdictShimFailed
	// VerdictFatal means the search must stop with Evaluation.Err
	VerdictFatal
)

// Evaluation is the result of Finder.Evaluate. Interpreter is set when the candidate
// was queried successfully; Err carries the query failure for skipped and fatal verdicts.
type Evaluation struct {
	Verdict     Verdict
	Interpreter *interpreter.Interpreter
	Err         error
}

// Final reports whether the search stops at this candidate
func (e Evaluation) Final() bool {
	return e.Verdict == VerdictAccepted || e.Verdict == VerdictFatal
}

// Evaluate validates c against selector with the acceptance rules Find applies
func (f *Finder) Evaluate(ctx context.Context, selector Selector, c Candidate) Evaluation {
	if major, minor, ok := c.KnownVersion(); ok && !selector.couldMatch(major, minor) {
		return Evaluation{Verdict: VerdictUnqueried}
	}

	interp, err := f.querier.Query(ctx, c.Path)
	if err != nil {
		switch {
		case c.Source == SourceShim:
			// An unconfigured pyenv-win shim prints help text instead of running python
			f.log.Warn().Err(err).Str("path", c.Path).Msg("failed to query python shim")
			return Evaluation{Verdict: VerdictShimFailed, Err: err}
		case errors.Is(err, interpreter.ErrPython2OrOlder):
			if selector.targetsLegacy() {
				return Evaluation{Verdict: VerdictFatal, Err: &LegacyPythonError{Path: c.Path}}
			}
			f.log.Debug().Str("path", c.Path).Msg("found a Python 2 installation that isn't supported, skipping")
			return Evaluation{Verdict: VerdictLegacy, Err: err}
		default:
			return Evaluation{Verdict: VerdictFatal, Err: err}
		}
	}

	if !selector.Matches(interp.PythonMajor(), interp.PythonMinor(), interp.PythonPatch()) {
		f.log.Debug().
			Str("path", c.Path).
			Str("version", interp.Version()).
			Str("requested", selector.String()).
			Msg("interpreter does not match the requested version")
		return Evaluation{Verdict: VerdictMismatch, Interpreter: interp}
	}

	return Evaluation{Verdict: VerdictAccepted, Interpreter: interp}
}
