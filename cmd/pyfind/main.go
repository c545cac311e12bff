package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/quantmind-br/pyfind/internal/cmd"
	"github.com/quantmind-br/pyfind/internal/config"
	"github.com/quantmind-br/pyfind/internal/logging"
	"github.com/quantmind-br/pyfind/internal/paths"
	"github.com/quantmind-br/pyfind/internal/ui"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	ui.InitColors(logging.NoColor(cfg.Logging.Color))

	// Initialize logger
	log := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		LogFile: paths.NewResolver(cfg).LogFile(),
		NoColor: !ui.AreColorsEnabled(),
	})

	rootCmd := cmd.NewRootCmd(cfg, log, version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SilenceErrors = true

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Debug().Err(err).Msg("command failed")
		ui.FprintFailure(stderr, "Error: %v", err)
		return 1
	}
	return 0
}
