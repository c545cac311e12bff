package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/quantmind-br/pyfind/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testOverrideEnv = "PYFIND_CMD_TEST_PYTHON_PATH"

// requireUnix skips tests that rely on shell-script interpreters
func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters are shell scripts")
	}
}

// fakePython writes a shell script that answers the interpreter probe like python would
func fakePython(t *testing.T, dir, name string, major, minor, patch int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	body := fmt.Sprintf(`{"result": "success", "major": %d, "minor": %d, "patch": %d, "version": "%d.%d.%d", `+
		`"implementation": "cpython", "sys_executable": %q, "prefix": "/usr", "base_prefix": "/usr", "os": "linux", "arch": "x86_64"}`,
		major, minor, patch, major, minor, patch, path)
	writeScript(t, path, "cat <<'JSON'\n"+body+"\nJSON\n")
	return path
}

// legacyPython writes a script that reports an unsupported python 2
func legacyPython(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	writeScript(t, path, `echo '{"result": "error", "kind": "unsupported_python_version"}'`+"\n")
	return path
}

// brokenPython writes a script that crashes
func brokenPython(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	writeScript(t, path, "echo 'Fatal Python error: init_fs_encoding' >&2\nexit 1\n")
	return path
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
}

// testConfig points discovery at searchPath through the override variable and
// keeps the cache inside the test's temp dir
func testConfig(t *testing.T, searchPath string) *config.Config {
	t.Helper()
	t.Setenv(testOverrideEnv, searchPath)

	return &config.Config{
		Paths: config.PathsConfig{
			CacheFile: filepath.Join(t.TempDir(), "cache", "interpreters.db"),
			LogFile:   filepath.Join(t.TempDir(), "pyfind.log"),
		},
		Discovery: config.DiscoveryConfig{
			Launcher:     "py",
			OverrideEnv:  testOverrideEnv,
			QueryTimeout: 5 * time.Second,
		},
		Cache:   config.CacheConfig{Enabled: true},
		Logging: config.LoggingConfig{Level: "debug", Color: "never"},
	}
}

func testLogger() *zerolog.Logger {
	log := zerolog.New(io.Discard)
	return &log
}

// execute runs cmd with args and returns stdout
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
