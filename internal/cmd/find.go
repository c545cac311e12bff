package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/quantmind-br/pyfind/internal/config"
	"github.com/quantmind-br/pyfind/internal/interpreter"
	"github.com/quantmind-br/pyfind/internal/python"
	"github.com/quantmind-br/pyfind/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// interpreterJSON is the --json shape of a found interpreter
type interpreterJSON struct {
	Executable     string `json:"executable"`
	SysExecutable  string `json:"sys_executable"`
	Version        string `json:"version"`
	Major          uint8  `json:"major"`
	Minor          uint8  `json:"minor"`
	Patch          uint8  `json:"patch"`
	Implementation string `json:"implementation"`
	Prefix         string `json:"prefix"`
	BasePrefix     string `json:"base_prefix"`
	VirtualEnv     bool   `json:"virtualenv"`
	OS             string `json:"os"`
	Arch           string `json:"arch"`
}

func toJSON(interp *interpreter.Interpreter) interpreterJSON {
	info := interp.Info()
	return interpreterJSON{
		Executable:     interp.Executable(),
		SysExecutable:  info.SysExecutable,
		Version:        info.Version,
		Major:          info.Major,
		Minor:          info.Minor,
		Patch:          info.Patch,
		Implementation: info.Implementation,
		Prefix:         info.Prefix,
		BasePrefix:     info.BasePrefix,
		VirtualEnv:     interp.IsVirtualEnv(),
		OS:             info.OS,
		Arch:           info.Arch,
	}
}

// NewFindCmd creates the find command
func NewFindCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "find [REQUEST]",
		Short: "Find a Python interpreter",
		Long: `Find a Python interpreter matching REQUEST and print its path.

REQUEST may be a version (3, 3.12, 3.12.1), an executable name looked up in
PATH (python3.12, python.exe) or a path to an interpreter. Without REQUEST the
default python3/python is used.`,
		Example: `  pyfind find
  pyfind find 3.12
  pyfind find python3.11
  pyfind find ~/.venvs/tools/bin/python --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d := openDiscovery(ctx, cfg, log, !noCache)
			defer d.Close()

			spinner := ui.NewSpinner(cmd.ErrOrStderr(), "Searching for Python")
			var (
				interp *interpreter.Interpreter
				err    error
			)
			if len(args) == 0 {
				interp, err = d.finder.FindDefault(ctx)
			} else {
				interp, err = d.finder.FindRequested(ctx, args[0])
				if err == nil && interp == nil {
					err = &python.NoSuchPythonError{Request: args[0]}
				}
			}
			if err != nil {
				_ = spinner.Clear()
				return err
			}
			_ = spinner.Finish()

			log.Debug().
				Str("executable", interp.Executable()).
				Str("version", interp.Version()).
				Msg("found interpreter")

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toJSON(interp))
			}

			fmt.Fprintln(cmd.OutOrStdout(), interp.Executable())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "always query interpreters instead of using cached results")

	return cmd
}
