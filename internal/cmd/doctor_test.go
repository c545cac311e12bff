package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantmind-br/pyfind/internal/cache"
	"github.com/quantmind-br/pyfind/internal/helpers"
	"github.com/quantmind-br/pyfind/internal/paths"
	"github.com/quantmind-br/pyfind/internal/platform"
	"github.com/quantmind-br/pyfind/internal/python"
	"github.com/quantmind-br/pyfind/internal/ui"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDoctorCmd(t *testing.T) {
	cmd := NewDoctorCmd(testConfig(t, ""), testLogger())

	assert.NotNil(t, cmd)
	assert.Equal(t, "doctor", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}

func TestDoctorCmd(t *testing.T) {
	requireUnix(t)
	ui.DisableColors()
	defer ui.EnableColors()

	t.Run("healthy", func(t *testing.T) {
		dir := t.TempDir()
		python3 := fakePython(t, dir, "python3", 3, 12, 1)

		out, err := execute(t, NewDoctorCmd(testConfig(t, dir), testLogger()))
		require.NoError(t, err)
		assert.Contains(t, out, "Discovery Diagnostics")
		assert.Contains(t, out, "Using "+testOverrideEnv)
		assert.Contains(t, out, python3)
		assert.Contains(t, out, "not used on linux")
		assert.Contains(t, out, "All critical checks passed")
	})

	t.Run("missing search path entry is a warning", func(t *testing.T) {
		dir := t.TempDir()
		fakePython(t, dir, "python3", 3, 12, 1)
		missing := filepath.Join(t.TempDir(), "missing")

		out, err := execute(t, NewDoctorCmd(testConfig(t, missing+string(filepath.ListSeparator)+dir), testLogger()))
		require.NoError(t, err)
		assert.Contains(t, out, "search path entry does not exist: "+missing)
		assert.Contains(t, out, "Found 1 warning(s)")
	})

	t.Run("no interpreter", func(t *testing.T) {
		out, err := execute(t, NewDoctorCmd(testConfig(t, t.TempDir()), testLogger()))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "system check failed with 1 issue(s)")
		assert.Contains(t, out, "Could not find `python3` or `python` in PATH")
	})

	t.Run("broken default interpreter", func(t *testing.T) {
		dir := t.TempDir()
		brokenPython(t, dir, "python3")

		out, err := execute(t, NewDoctorCmd(testConfig(t, dir), testLogger()))
		require.Error(t, err)
		assert.Contains(t, out, "default interpreter is broken")
	})

	t.Run("cache disabled", func(t *testing.T) {
		dir := t.TempDir()
		fakePython(t, dir, "python3", 3, 12, 1)
		cfg := testConfig(t, dir)
		cfg.Cache.Enabled = false

		out, err := execute(t, NewDoctorCmd(cfg, testLogger()))
		require.NoError(t, err)
		assert.Contains(t, out, "disabled")
	})
}

func TestCheckLauncher(t *testing.T) {
	ui.DisableColors()
	defer ui.EnableColors()

	env := python.Environment{LauncherCommand: "py"}

	t.Run("resolved path is shown", func(t *testing.T) {
		var out bytes.Buffer
		report := &doctorReport{out: &out}
		runner := &helpers.MockCommandRunner{
			LookPathFunc: func(name string) (string, error) {
				return `C:\Windows\` + name + ".exe", nil
			},
		}

		checkLauncher(report, runner, platform.Windows(), env)
		assert.Contains(t, out.String(), `py: C:\Windows\py.exe`)
		assert.Empty(t, report.warnings)
	})

	t.Run("missing launcher is a warning", func(t *testing.T) {
		var out bytes.Buffer
		report := &doctorReport{out: &out}
		runner := &helpers.MockCommandRunner{
			LookPathFunc: func(name string) (string, error) {
				return "", fmt.Errorf("look up %q: %w", name, exec.ErrNotFound)
			},
		}

		checkLauncher(report, runner, platform.Windows(), env)
		require.Len(t, report.warnings, 1)
		assert.Contains(t, report.warnings[0], "py: not found")
	})

	t.Run("override disables the launcher", func(t *testing.T) {
		var out bytes.Buffer
		report := &doctorReport{out: &out}

		checkLauncher(report, &helpers.MockCommandRunner{}, platform.Windows(), python.Environment{LauncherCommand: "py", UseOverride: true})
		assert.Contains(t, out.String(), "disabled by the search path override")
	})
}

func TestCheckConfig(t *testing.T) {
	ui.DisableColors()
	defer ui.EnableColors()

	cfg := testConfig(t, "")
	resolver := paths.NewResolverWithHome(cfg, "/home/user")
	fs := afero.NewMemMapFs()

	var out bytes.Buffer
	checkConfig(&doctorReport{out: &out}, fs, resolver)
	assert.Contains(t, out.String(), "not found, using defaults")
	assert.Contains(t, out.String(), "Log file: "+cfg.Paths.LogFile)

	configFile := filepath.Join(resolver.ConfigDir(), "config.toml")
	require.NoError(t, afero.WriteFile(fs, configFile, []byte("[cache]\nenabled = false\n"), 0o644))

	out.Reset()
	checkConfig(&doctorReport{out: &out}, fs, resolver)
	assert.Contains(t, out.String(), "Config file: "+configFile+"\n")
}

func TestCheckCache_StaleEntries(t *testing.T) {
	ui.DisableColors()
	defer ui.EnableColors()

	ctx := context.Background()
	cfg := testConfig(t, "")
	existing := filepath.Join(t.TempDir(), "python3")
	require.NoError(t, os.WriteFile(existing, []byte("#!/bin/sh\n"), 0o755))

	c, err := cache.Open(ctx, cfg.Paths.CacheFile)
	require.NoError(t, err)
	for _, exe := range []string{existing, filepath.Join(t.TempDir(), "gone", "python3")} {
		require.NoError(t, c.Put(ctx, &cache.Entry{Executable: exe, ModTime: time.Now(), Info: []byte("{}")}))
	}
	require.NoError(t, c.Close())

	var out bytes.Buffer
	report := &doctorReport{out: &out}
	checkCache(ctx, report, afero.NewOsFs(), cfg)

	assert.Contains(t, out.String(), "(2 cached)")
	require.Len(t, report.warnings, 1)
	assert.Contains(t, report.warnings[0], "1 cached interpreter(s) no longer exist")
}
