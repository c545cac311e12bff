package cmd

import (
	"github.com/quantmind-br/pyfind/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "pyfind",
		Short:        "Find Python interpreters",
		Long:         `Locate a Python interpreter by version, executable name or path, the way PATH and the Windows py launcher see them.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewFindCmd(cfg, log))
	cmd.AddCommand(NewListCmd(cfg, log))
	cmd.AddCommand(NewDoctorCmd(cfg, log))
	cmd.AddCommand(NewCacheCmd(cfg, log))
	cmd.AddCommand(NewCompletionCmd(cfg, log))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}
