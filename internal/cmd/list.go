package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/pyfind/internal/config"
	"github.com/quantmind-br/pyfind/internal/interpreter"
	"github.com/quantmind-br/pyfind/internal/python"
	"github.com/quantmind-br/pyfind/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Row status values
const (
	statusMatch    = "match"
	statusNoMatch  = "no match"
	statusLegacy   = "python 2"
	statusBroken   = "error"
	statusSelected = "selected"
	statusSkipped  = "skipped"
)

// listRow is one queried candidate
type listRow struct {
	Path           string `json:"path"`
	Source         string `json:"source"`
	Version        string `json:"version,omitempty"`
	Implementation string `json:"implementation,omitempty"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
}

// NewListCmd creates the list command
func NewListCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput bool
		filterName string
		selectOne  bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "list [VERSION]",
		Short: "List Python interpreters in search order",
		Long: `List every interpreter candidate in the order discovery would try them.

Unlike find, list keeps going after the first match and shows broken or
non-matching interpreters too. The first matching interpreter is marked as selected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			selector := python.DefaultSelector()
			if len(args) == 1 {
				var err error
				selector, err = python.ParseSelector(args[0])
				if err != nil {
					return fmt.Errorf("list expects a version such as 3 or 3.12: %w", err)
				}
			}

			d := openDiscovery(ctx, cfg, log, !noCache)
			defer d.Close()

			candidates, err := collectCandidates(ctx, d.finder, selector, filterName)
			if err != nil {
				return err
			}

			rows := queryCandidates(ctx, d.finder, selector, candidates, cmd.ErrOrStderr())

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				if filterName != "" {
					ui.FprintWarning(out, "No interpreters found matching %q", filterName)
				} else {
					ui.FprintInfo(out, "No interpreters found")
				}
				return nil
			}

			if selectOne {
				return selectRow(out, rows)
			}

			printListTable(out, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().StringVar(&filterName, "name", "", "fuzzy filter on the interpreter path")
	cmd.Flags().BoolVarP(&selectOne, "select", "s", false, "pick an interpreter interactively and print its path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "always query interpreters instead of using cached results")

	return cmd
}

// collectCandidates enumerates candidates without querying them, dropping
// duplicates and anything the name filter rejects
func collectCandidates(ctx context.Context, finder *python.Finder, selector python.Selector, filterName string) ([]python.Candidate, error) {
	var candidates []python.Candidate
	seen := make(map[string]bool)

	for c, err := range finder.Candidates(ctx, selector) {
		if err != nil {
			return nil, err
		}
		if seen[c.Path] {
			continue
		}
		seen[c.Path] = true

		if filterName != "" && !fuzzy.MatchNormalizedFold(filterName, c.Path) {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// queryCandidates evaluates every candidate against selector with the same rules as find.
// The row find would return is marked selected; once find would have stopped, with a match
// or an error, no later row is selected.
func queryCandidates(ctx context.Context, finder *python.Finder, selector python.Selector, candidates []python.Candidate, progress io.Writer) []listRow {
	if len(candidates) == 0 {
		return nil
	}

	bar := ui.NewProgressBar(progress, len(candidates), "Querying interpreters")
	defer bar.Finish()

	rows := make([]listRow, 0, len(candidates))
	stopped := false
	for _, c := range candidates {
		bar.Describe(c.Path)

		ev := finder.Evaluate(ctx, selector, c)
		row := listRow{Path: c.Path, Source: c.Source.String()}
		if ev.Interpreter != nil {
			row.Version = ev.Interpreter.Version()
			row.Implementation = ev.Interpreter.Implementation()
		}
		if ev.Err != nil {
			row.Error = ev.Err.Error()
		}

		switch ev.Verdict {
		case python.VerdictAccepted:
			row.Status = statusMatch
			if !stopped {
				row.Status = statusSelected
			}
		case python.VerdictMismatch, python.VerdictUnqueried:
			row.Status = statusNoMatch
		case python.VerdictLegacy:
			row.Status = statusLegacy
		case python.VerdictShimFailed:
			row.Status = statusSkipped
		case python.VerdictFatal:
			row.Status = statusBroken
			if errors.Is(ev.Err, interpreter.ErrPython2OrOlder) {
				row.Status = statusLegacy
			}
		}
		if ev.Final() {
			stopped = true
		}

		rows = append(rows, row)
		bar.Add(1)
	}
	return rows
}

func printListTable(out io.Writer, rows []listRow) {
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"Path", "Source", "Version", "Implementation", "Status"}),
		tablewriter.WithAlignment(tw.MakeAlign(5, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for _, row := range rows {
		table.Append(
			row.Path,
			ui.ColorizeSource(row.Source),
			dashIfEmpty(row.Version),
			dashIfEmpty(row.Implementation),
			colorizeStatus(row.Status),
		)
	}

	table.Render()
}

func selectRow(out io.Writer, rows []listRow) error {
	var options []ui.SelectOption
	for _, row := range rows {
		if row.Status != statusMatch && row.Status != statusSelected {
			continue
		}
		options = append(options, ui.SelectOption{
			Label:  row.Path,
			Detail: fmt.Sprintf("%s %s, %s", row.Implementation, row.Version, row.Source),
			Value:  row.Path,
		})
	}
	if len(options) == 0 {
		return errors.New("no working interpreter to select")
	}

	_, choice, err := ui.SelectPrompt("Select an interpreter", options)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, choice.Value)
	return nil
}

func colorizeStatus(status string) string {
	switch status {
	case statusSelected:
		return ui.Success.Sprint(status)
	case statusMatch:
		return ui.Info.Sprint(status)
	case statusBroken:
		return ui.Error.Sprint(status)
	case statusLegacy, statusNoMatch, statusSkipped:
		return ui.Muted.Sprint(status)
	}
	return status
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
