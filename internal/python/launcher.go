package python

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/quantmind-br/pyfind/internal/helpers"
	"github.com/rs/zerolog"
)

// pyListPathsRe matches `py --list-paths` lines such as
//
//	-V:3.12          C:\Users\Ferris\AppData\Local\Programs\Python\Python312\python.exe
//	-V:3.11-arm64 *  C:\Python311-arm64\python.exe
//	-3.8-32          C:\Python38-32\python.exe
var pyListPathsRe = regexp.MustCompile(`(?m)^ -(?:V:)?(\d+)\.(\d+)-?(?:arm)?\d*\s*\*?\s*(.*)$`)

// PyListEntry is one installation reported by the launcher
type PyListEntry struct {
	Major          uint8
	Minor          uint8
	ExecutablePath string
}

// Launcher lists installations through the Windows `py` launcher
type Launcher struct {
	runner  helpers.CommandRunner
	command string
	log     *zerolog.Logger
}

// NewLauncher creates a Launcher running command (normally "py")
func NewLauncher(runner helpers.CommandRunner, command string, log *zerolog.Logger) *Launcher {
	if command == "" {
		command = DefaultLauncher
	}
	return &Launcher{
		runner:  runner,
		command: command,
		log:     log,
	}
}

// ListPaths runs `py --list-paths` and returns the entries in launcher order.
// A missing launcher is reported as ErrLauncherNotFound.
func (l *Launcher) ListPaths(ctx context.Context) ([]PyListEntry, error) {
	l.log.Debug().Str("command", l.command).Msg("listing installations with the python launcher")

	// `py` sometimes prints "Installed Pythons found by py Launcher for Windows" to stderr which we ignore.
	stdout, stderr, err := l.runner.RunCommandWithOutput(ctx, l.command, "--list-paths")
	if err != nil {
		if helpers.IsCommandNotFound(err) {
			return nil, fmt.Errorf("%w: %w", ErrLauncherNotFound, err)
		}

		code := l.runner.GetExitCode(err)
		if code < 0 {
			return nil, &LauncherError{Command: l.command, Err: err}
		}
		return nil, &SubprocessOutputError{
			Message:  fmt.Sprintf("Running `%s --list-paths` failed with status %d", l.command, code),
			ExitCode: code,
			Stdout:   strings.TrimSpace(stdout),
			Stderr:   strings.TrimSpace(stderr),
		}
	}

	if !utf8.ValidString(stdout) {
		return nil, &SubprocessOutputError{
			Message:  fmt.Sprintf("The stdout of `%s --list-paths` isn't UTF-8 encoded", l.command),
			Stdout:   strings.TrimSpace(strings.ToValidUTF8(stdout, "\uFFFD")),
			Stderr:   strings.TrimSpace(strings.ToValidUTF8(stderr, "\uFFFD")),
		}
	}

	return parsePyListPaths(stdout), nil
}

// parsePyListPaths extracts entries; lines that do not match are ignored
func parsePyListPaths(stdout string) []PyListEntry {
	stdout = strings.ReplaceAll(stdout, "\r", "")

	var entries []PyListEntry
	for _, m := range pyListPathsRe.FindAllStringSubmatch(stdout, -1) {
		major, err := strconv.ParseUint(m[1], 10, 8)
		if err != nil {
			continue
		}
		minor, err := strconv.ParseUint(m[2], 10, 8)
		if err != nil {
			continue
		}
		path := strings.TrimSpace(m[3])
		if path == "" {
			continue
		}
		entries = append(entries, PyListEntry{
			Major:          uint8(major),
			Minor:          uint8(minor),
			ExecutablePath: path,
		})
	}
	return entries
}
