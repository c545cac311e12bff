package interpreter

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quantmind-br/pyfind/internal/cache"
	"github.com/quantmind-br/pyfind/internal/helpers"
	"github.com/rs/zerolog"
)

//go:embed get_interpreter_info.py
var infoScript string

// DefaultQueryTimeout bounds a single probe run
const DefaultQueryTimeout = 10 * time.Second

// Querier inspects an executable and reports the interpreter behind it
type Querier interface {
	Query(ctx context.Context, executable string) (*Interpreter, error)
}

// Store persists probe results between runs
type Store interface {
	Get(ctx context.Context, executable string) (*cache.Entry, error)
	Put(ctx context.Context, entry *cache.Entry) error
}

// OSQuerier runs the probe script with the interpreter under test
type OSQuerier struct {
	runner  helpers.CommandRunner
	store   Store
	timeout time.Duration
	log     *zerolog.Logger
}

// NewOSQuerier creates a querier. store may be nil to disable caching.
func NewOSQuerier(runner helpers.CommandRunner, store Store, timeout time.Duration, log *zerolog.Logger) *OSQuerier {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &OSQuerier{
		runner:  runner,
		store:   store,
		timeout: timeout,
		log:     log,
	}
}

type probeResult struct {
	Result string `json:"result"`
	Kind   string `json:"kind"`
	Info
}

// Query canonicalizes executable, then returns the cached probe result or runs the probe.
// Cache entries are keyed on the absolute requested path; freshness follows the link target.
func (q *OSQuerier) Query(ctx context.Context, executable string) (*Interpreter, error) {
	abs, canonical, err := canonicalize(executable)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(canonical)
	if err != nil {
		return nil, &CanonicalizeError{Path: executable, Err: err}
	}

	if info, ok := q.lookup(ctx, abs, stat); ok {
		q.log.Debug().Str("executable", executable).Msg("using cached interpreter info")
		return New(executable, info), nil
	}

	info, raw, err := q.probe(ctx, executable)
	if err != nil {
		return nil, err
	}

	if q.store != nil {
		entry := &cache.Entry{
			Executable: abs,
			ModTime:    stat.ModTime(),
			Size:       stat.Size(),
			Info:       raw,
		}
		if err := q.store.Put(ctx, entry); err != nil {
			q.log.Warn().Err(err).Str("executable", abs).Msg("failed to cache interpreter info")
		}
	}

	return New(executable, info), nil
}

func (q *OSQuerier) lookup(ctx context.Context, key string, stat os.FileInfo) (Info, bool) {
	if q.store == nil {
		return Info{}, false
	}

	entry, err := q.store.Get(ctx, key)
	if err != nil {
		q.log.Warn().Err(err).Str("executable", key).Msg("failed to read interpreter cache")
		return Info{}, false
	}
	if entry == nil || !entry.Fresh(stat.ModTime(), stat.Size()) {
		return Info{}, false
	}

	var info Info
	if err := json.Unmarshal(entry.Info, &info); err != nil {
		q.log.Debug().Err(err).Str("executable", key).Msg("discarding unreadable cache entry")
		return Info{}, false
	}
	return info, true
}

func (q *OSQuerier) probe(ctx context.Context, executable string) (Info, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	q.log.Debug().Str("executable", executable).Msg("querying interpreter")

	stdout, stderr, err := q.runner.RunCommandWithOutput(ctx, executable, "-c", infoScript)
	if err != nil {
		return Info{}, nil, &QueryError{
			Path:   executable,
			Err:    err,
			Stdout: strings.TrimSpace(stdout),
			Stderr: strings.TrimSpace(stderr),
		}
	}

	var result probeResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		return Info{}, nil, &QueryError{
			Path:   executable,
			Err:    fmt.Errorf("decode interpreter info: %w", err),
			Stdout: strings.TrimSpace(stdout),
			Stderr: strings.TrimSpace(stderr),
		}
	}

	switch result.Result {
	case "success":
	case "error":
		if result.Kind == "unsupported_python_version" {
			return Info{}, nil, ErrPython2OrOlder
		}
		return Info{}, nil, &QueryError{Path: executable, Err: fmt.Errorf("interpreter reported %q", result.Kind)}
	default:
		return Info{}, nil, &QueryError{Path: executable, Err: errors.New("interpreter info has no result field")}
	}

	raw, err := json.Marshal(result.Info)
	if err != nil {
		return Info{}, nil, fmt.Errorf("encode interpreter info: %w", err)
	}
	return result.Info, raw, nil
}

// canonicalize returns the absolute form of path and its symlink-resolved target
func canonicalize(path string) (abs, resolved string, err error) {
	abs, err = filepath.Abs(path)
	if err != nil {
		return "", "", &CanonicalizeError{Path: path, Err: err}
	}
	resolved, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return "", "", &CanonicalizeError{Path: path, Err: err}
	}
	return abs, resolved, nil
}
