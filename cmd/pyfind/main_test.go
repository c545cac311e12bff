package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/quantmind-br/pyfind/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps config and data files inside the test's temp dir
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Chdir(home)
	return home
}

func TestConfigLoad(t *testing.T) {
	isolate(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestRun(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		isolate(t)
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{"version"}, &stdout, &stderr)
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout.String(), "pyfind version "+version)
	})

	t.Run("help", func(t *testing.T) {
		isolate(t)
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), nil, &stdout, &stderr)
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout.String(), "find")
	})

	t.Run("unknown command", func(t *testing.T) {
		isolate(t)
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{"frobnicate"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), `Error: unknown command "frobnicate"`)
	})

	t.Run("command error goes to stderr", func(t *testing.T) {
		isolate(t)
		t.Setenv("PYFIND_TEST_PYTHON_PATH", t.TempDir())
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{"find", "3.1000"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Error: No Python 3.1000 In PATH. Is Python 3.1000 installed?")
	})

	t.Run("find through the override path", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("fake interpreter is a shell script")
		}
		home := isolate(t)
		bin := filepath.Join(home, "bin")
		require.NoError(t, os.MkdirAll(bin, 0o755))
		python3 := filepath.Join(bin, "python3")
		script := "#!/bin/sh\ncat <<'JSON'\n" +
			`{"result": "success", "major": 3, "minor": 13, "patch": 0, "version": "3.13.0", "implementation": "cpython", ` +
			`"sys_executable": "` + python3 + `", "prefix": "/usr", "base_prefix": "/usr", "os": "linux", "arch": "x86_64"}` +
			"\nJSON\n"
		require.NoError(t, os.WriteFile(python3, []byte(script), 0o755))
		t.Setenv("PYFIND_TEST_PYTHON_PATH", bin)

		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"find", "3.13"}, &stdout, &stderr)
		assert.Equal(t, 0, code, stderr.String())
		assert.Equal(t, python3, strings.TrimSpace(stdout.String()))
	})

	t.Run("invalid config", func(t *testing.T) {
		isolate(t)
		t.Setenv("PYFIND_DISCOVERY_QUERY_TIMEOUT", "0s")
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{"version"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "Error loading config")
	})
}
