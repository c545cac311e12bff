package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/quantmind-br/pyfind/internal/cache"
	"github.com/quantmind-br/pyfind/internal/config"
	"github.com/quantmind-br/pyfind/internal/fsops"
	"github.com/quantmind-br/pyfind/internal/helpers"
	"github.com/quantmind-br/pyfind/internal/paths"
	"github.com/quantmind-br/pyfind/internal/platform"
	"github.com/quantmind-br/pyfind/internal/python"
	"github.com/quantmind-br/pyfind/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// doctorReport collects problems found by the checks
type doctorReport struct {
	out      io.Writer
	issues   []string
	warnings []string
}

func (r *doctorReport) issue(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ui.FprintFailure(r.out, "%s", msg)
	r.issues = append(r.issues, msg)
}

func (r *doctorReport) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ui.FprintWarning(r.out, "%s", msg)
	r.warnings = append(r.warnings, msg)
}

// NewDoctorCmd creates the doctor command
func NewDoctorCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the discovery environment",
		Long:  `Check the search path, the Windows py launcher, the default interpreter and the query cache.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			report := &doctorReport{out: cmd.OutOrStdout()}
			fs := afero.NewOsFs()
			d := openDiscovery(ctx, cfg, log, true)
			defer d.Close()
			plat := d.finder.Platform()
			env := d.finder.Environment()

			ui.FprintHeader(report.out, "Discovery Diagnostics")

			ui.FprintSubheader(report.out, "Configuration")
			checkConfig(report, fs, paths.NewResolver(cfg))

			ui.FprintSubheader(report.out, "Search Path")
			checkSearchPath(report, fs, plat, env, cfg.Discovery.OverrideEnv)

			ui.FprintSubheader(report.out, "Python Launcher")
			checkLauncher(report, helpers.NewOSCommandRunner(), plat, env)

			ui.FprintSubheader(report.out, "Query Cache")
			checkCache(ctx, report, fs, cfg)

			ui.FprintSubheader(report.out, "Default Interpreter")
			checkDefaultInterpreter(ctx, report, d.finder)

			ui.FprintHeader(report.out, "Summary")
			if len(report.issues) == 0 {
				ui.FprintSuccess(report.out, "All critical checks passed!")
			} else {
				ui.FprintFailure(report.out, "Found %d issue(s):", len(report.issues))
				ui.FprintList(report.out, report.issues)
			}
			if len(report.warnings) > 0 {
				ui.FprintWarning(report.out, "Found %d warning(s):", len(report.warnings))
				ui.FprintList(report.out, report.warnings)
			}

			if len(report.issues) > 0 {
				return fmt.Errorf("system check failed with %d issue(s)", len(report.issues))
			}
			return nil
		},
	}

	return cmd
}

// checkConfig shows where configuration and logs are read from
func checkConfig(report *doctorReport, fs afero.Fs, resolver *paths.Resolver) {
	configFile := filepath.Join(resolver.ConfigDir(), "config.toml")
	if fsops.Exists(fs, configFile) {
		ui.FprintKeyValue(report.out, "Config file", configFile)
	} else {
		ui.FprintKeyValue(report.out, "Config file", configFile+" (not found, using defaults)")
	}
	ui.FprintKeyValue(report.out, "Log file", resolver.LogFile())
}

// checkSearchPath reports where the search path comes from and which entries exist
func checkSearchPath(report *doctorReport, fs afero.Fs, plat platform.Platform, env python.Environment, overrideVar string) {
	if env.UseOverride {
		ui.FprintInfo(report.out, "Using %s (py launcher disabled)", overrideVar)
	} else {
		ui.FprintInfo(report.out, "Using PATH")
	}

	dirs := env.Dirs(plat)
	if len(dirs) == 0 {
		report.warn("search path is empty")
		return
	}

	for _, dir := range dirs {
		if fsops.IsDir(fs, dir) {
			ui.FprintSuccess(report.out, "%s", dir)
		} else {
			report.warn("search path entry does not exist: %s", dir)
		}
	}
}

func checkLauncher(report *doctorReport, runner helpers.CommandRunner, plat platform.Platform, env python.Environment) {
	if !plat.IsWindows() {
		ui.FprintInfo(report.out, "not used on %s", plat.OS)
		return
	}
	if env.UseOverride {
		ui.FprintInfo(report.out, "disabled by the search path override")
		return
	}
	path, err := runner.LookPath(env.LauncherCommand)
	if err != nil {
		report.warn("%s: not found (only PATH will be searched)", env.LauncherCommand)
		return
	}
	ui.FprintSuccess(report.out, "%s: %s", env.LauncherCommand, path)
}

// checkCache opens the cache database and checks its directory is writable
func checkCache(ctx context.Context, report *doctorReport, fs afero.Fs, cfg *config.Config) {
	if !cfg.Cache.Enabled {
		ui.FprintInfo(report.out, "disabled")
		return
	}

	cachePath := paths.NewResolver(cfg).CacheFile()
	c, err := cache.Open(ctx, cachePath)
	if err != nil {
		report.issue("cache database not accessible: %v", err)
		return
	}
	defer c.Close()

	if err := fsops.CheckWritable(fs, filepath.Dir(cachePath)); err != nil {
		report.issue("cache directory not writable: %v", err)
		return
	}

	entries, err := c.List(ctx)
	if err != nil {
		report.warn("cannot list cached interpreters: %v", err)
		return
	}
	ui.FprintSuccess(report.out, "%s (%d cached)", cachePath, len(entries))

	stale := 0
	for _, entry := range entries {
		if !fsops.Exists(fs, entry.Executable) {
			stale++
		}
	}
	if stale > 0 {
		report.warn("%d cached interpreter(s) no longer exist, run `pyfind cache clean`", stale)
	}
}

func checkDefaultInterpreter(ctx context.Context, report *doctorReport, finder *python.Finder) {
	interp, err := finder.TryFindDefault(ctx)
	switch {
	case err != nil:
		report.issue("default interpreter is broken: %v", err)
	case interp == nil:
		report.issue("%v", &python.NoPythonInstalledError{Windows: finder.Platform().IsWindows()})
	default:
		ui.FprintSuccess(report.out, "%s (%s %s)", interp.Executable(), interp.Implementation(), interp.Version())
		ui.FprintKeyValue(report.out, "  Prefix", interp.Prefix())
		if interp.IsVirtualEnv() {
			ui.FprintKeyValue(report.out, "  Base prefix", interp.BasePrefix())
		}
	}
}
