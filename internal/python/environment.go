package python

import (
	"os"
	"strings"

	"github.com/quantmind-br/pyfind/internal/platform"
)

const (
	// DefaultOverrideEnv replaces PATH for discovery and disables the py launcher.
	// Test suites set it to keep discovery hermetic.
	DefaultOverrideEnv = "PYFIND_TEST_PYTHON_PATH"

	// DefaultLauncher is the Windows Python launcher
	DefaultLauncher = "py"

	defaultPathExt = ".COM;.EXE;.BAT;.CMD"
)

// Environment is the process state discovery depends on, captured once per call
type Environment struct {
	// SearchPath is the raw directory list that is scanned
	SearchPath string
	// UseOverride is set when SearchPath came from the override variable
	UseOverride bool
	// PathExt lists executable extensions tried for extensionless names on Windows
	PathExt []string
	// LauncherCommand is the program run in list mode on Windows
	LauncherCommand string
}

// EnvironmentFromOS reads PATH, PATHEXT and the override variable named overrideVar.
// An override that is set but empty still wins and yields an empty search path.
func EnvironmentFromOS(overrideVar, launcher string) Environment {
	if overrideVar == "" {
		overrideVar = DefaultOverrideEnv
	}

	env := Environment{
		LauncherCommand: launcher,
		PathExt:         parsePathExt(os.Getenv("PATHEXT")),
	}

	if value, ok := os.LookupEnv(overrideVar); ok {
		env.SearchPath = value
		env.UseOverride = true
	} else {
		env.SearchPath = os.Getenv("PATH")
	}

	return env.withDefaults()
}

func (e Environment) withDefaults() Environment {
	if e.LauncherCommand == "" {
		e.LauncherCommand = DefaultLauncher
	}
	if len(e.PathExt) == 0 {
		e.PathExt = parsePathExt("")
	}
	return e
}

// Dirs splits SearchPath for platform p, skipping empty entries.
// On Windows, entries wrapped in double quotes are unquoted.
func (e Environment) Dirs(p platform.Platform) []string {
	var dirs []string
	for _, dir := range strings.Split(e.SearchPath, p.ListSeparator()) {
		if p.IsWindows() {
			dir = strings.ReplaceAll(dir, `"`, "")
		}
		if dir == "" {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

func parsePathExt(value string) []string {
	if value == "" {
		value = defaultPathExt
	}

	var exts []string
	for _, ext := range strings.Split(value, ";") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, strings.ToLower(ext))
	}
	return exts
}
