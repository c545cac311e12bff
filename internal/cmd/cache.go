package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/pyfind/internal/cache"
	"github.com/quantmind-br/pyfind/internal/config"
	"github.com/quantmind-br/pyfind/internal/interpreter"
	"github.com/quantmind-br/pyfind/internal/paths"
	"github.com/quantmind-br/pyfind/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command group
func NewCacheCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear cached interpreter queries",
	}

	cmd.AddCommand(newCacheListCmd(cfg))
	cmd.AddCommand(newCacheCleanCmd(cfg, log))
	cmd.AddCommand(newCacheDirCmd(cfg))

	return cmd
}

func newCacheDirCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the cache database path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), paths.NewResolver(cfg).CacheFile())
		},
	}
}

func newCacheListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached interpreters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			c, err := cache.Open(ctx, paths.NewResolver(cfg).CacheFile())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer c.Close()

			entries, err := c.List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				ui.FprintInfo(out, "Cache is empty")
				return nil
			}
			printCacheTable(out, entries)
			return nil
		},
	}
}

func printCacheTable(out io.Writer, entries []cache.Entry) {
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"Executable", "Version", "Cached At"}),
		tablewriter.WithAlignment(tw.MakeAlign(3, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for _, entry := range entries {
		version := "-"
		var info interpreter.Info
		if err := json.Unmarshal(entry.Info, &info); err == nil && info.Version != "" {
			version = info.Version
		}
		table.Append(entry.Executable, version, entry.CachedAt.Format("2006-01-02 15:04"))
	}

	table.Render()
}

func newCacheCleanCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Drop every cached interpreter query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cachePath := paths.NewResolver(cfg).CacheFile()

			if !yes {
				confirmed, err := ui.ConfirmPrompt(fmt.Sprintf("Clear the interpreter cache at %s", cachePath))
				if err != nil {
					return err
				}
				if !confirmed {
					ui.FprintInfo(cmd.OutOrStdout(), "Cache left untouched")
					return nil
				}
			}

			c, err := cache.Open(ctx, cachePath)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer c.Close()

			n, err := c.Clear(ctx)
			if err != nil {
				return err
			}

			log.Info().Int64("removed", n).Str("path", cachePath).Msg("cleared interpreter cache")
			ui.FprintSuccess(cmd.OutOrStdout(), "Removed %d cached interpreter(s)", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}
