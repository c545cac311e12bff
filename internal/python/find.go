package python

import (
	"context"
	"errors"
	"iter"

	"github.com/quantmind-br/pyfind/internal/helpers"
	"github.com/quantmind-br/pyfind/internal/interpreter"
	"github.com/quantmind-br/pyfind/internal/platform"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Finder locates interpreters in the search path and, on Windows, through the py launcher.
// A Finder is bound to the Environment it was created with; build a new one to pick up
// changes to PATH or the override variable.
type Finder struct {
	querier  interpreter.Querier
	env      Environment
	platform platform.Platform
	scanner  *Scanner
	launcher *Launcher
	log      *zerolog.Logger
}

// NewFinder creates a Finder for the host platform and filesystem
func NewFinder(querier interpreter.Querier, env Environment, log *zerolog.Logger) *Finder {
	return NewFinderWithDeps(querier, env, log, afero.NewOsFs(), helpers.NewOSCommandRunner(), platform.Current())
}

// NewFinderWithDeps creates a Finder with injected dependencies (for tests)
func NewFinderWithDeps(
	querier interpreter.Querier,
	env Environment,
	log *zerolog.Logger,
	fs afero.Fs,
	runner helpers.CommandRunner,
	p platform.Platform,
) *Finder {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	env = env.withDefaults()
	return &Finder{
		querier:  querier,
		env:      env,
		platform: p,
		scanner:  NewScanner(fs, p, env.PathExt),
		launcher: NewLauncher(runner, env.LauncherCommand, log),
		log:      log,
	}
}

// Platform returns the platform the Finder searches for
func (f *Finder) Platform() platform.Platform {
	return f.platform
}

// Environment returns the captured discovery environment
func (f *Finder) Environment() Environment {
	return f.env
}

// FindRequested resolves a version ("3.10"), an executable name ("python3.10") or a path.
// A nil interpreter with a nil error means nothing matched.
func (f *Finder) FindRequested(ctx context.Context, request string) (*interpreter.Interpreter, error) {
	f.log.Debug().Str("request", request).Msg("starting interpreter discovery")

	req, err := ParseRequest(request, f.platform)
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case RequestVersion:
		return f.Find(ctx, req.Selector)
	case RequestName:
		executable, err := f.findExecutable(ctx, req.Raw)
		if err != nil {
			return nil, err
		}
		if executable == "" {
			return nil, nil
		}
		return f.querier.Query(ctx, executable)
	default:
		return f.querier.Query(ctx, req.Path)
	}
}

// FindDefault returns python3/python (python.exe on Windows) or NoPythonInstalledError
func (f *Finder) FindDefault(ctx context.Context) (*interpreter.Interpreter, error) {
	f.log.Debug().Msg("starting interpreter discovery for default python")

	interp, err := f.TryFindDefault(ctx)
	if err != nil {
		return nil, err
	}
	if interp == nil {
		return nil, &NoPythonInstalledError{Windows: f.platform.IsWindows()}
	}
	return interp, nil
}

// TryFindDefault is FindDefault returning nil instead of an error when nothing is installed
func (f *Finder) TryFindDefault(ctx context.Context) (*interpreter.Interpreter, error) {
	return f.Find(ctx, DefaultSelector())
}

// Find returns the first candidate that satisfies selector, in search order:
// every search-path directory (trying each candidate name in turn), then the py launcher
// on Windows when no override search path is set.
func (f *Finder) Find(ctx context.Context, selector Selector) (*interpreter.Interpreter, error) {
	for c, err := range f.Candidates(ctx, selector) {
		if err != nil {
			return nil, err
		}

		f.log.Debug().Str("path", c.Path).Stringer("source", c.Source).Msg("trying candidate")
		ev := f.Evaluate(ctx, selector, c)
		switch ev.Verdict {
		case VerdictAccepted:
			return ev.Interpreter, nil
		case VerdictFatal:
			return nil, ev.Err
		}
	}
	return nil, nil
}

// Candidates enumerates every candidate for selector in search order without querying any.
// Launcher failures other than a missing launcher are yielded as errors.
func (f *Finder) Candidates(ctx context.Context, selector Selector) iter.Seq2[Candidate, error] {
	dirs := f.env.Dirs(f.platform)
	names := selector.names(f.platform)

	return func(yield func(Candidate, error) bool) {
		for c, err := range f.pathCandidates(dirs, names) {
			if !yield(c, err) {
				return
			}
		}

		if !f.useLauncher() {
			return
		}
		for c, err := range f.launcherCandidates(ctx) {
			if !yield(c, err) {
				return
			}
		}
	}
}

// findExecutable resolves a bare executable name. Unlike the version search, an
// unreadable directory is fatal here. Returns "" when nothing matched.
func (f *Finder) findExecutable(ctx context.Context, name string) (string, error) {
	for _, dir := range f.env.Dirs(f.platform) {
		paths, err := f.scanner.FindIn(dir, name)
		if err != nil {
			return "", err
		}
		for _, path := range paths {
			if f.platform.IsWindows() && IsWindowsStoreShim(path) {
				continue
			}
			return path, nil
		}
	}

	if !f.useLauncher() {
		return "", nil
	}

	entries, err := f.launcher.ListPaths(ctx)
	if err != nil {
		if errors.Is(err, ErrLauncherNotFound) {
			f.log.Debug().Msg("`py` is not installed")
			return "", nil
		}
		return "", err
	}
	for _, entry := range entries {
		// Ex) `python3.12.exe` or `python3.12`
		if baseName(entry.ExecutablePath) == name || stem(entry.ExecutablePath) == name {
			return entry.ExecutablePath, nil
		}
	}
	return "", nil
}
