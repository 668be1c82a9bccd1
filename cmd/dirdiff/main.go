package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sdejongh/dirdiff/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code := 1
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
		}
		os.Exit(code)
	}
}

func run() error {
	cli.Version, cli.Commit, cli.BuildDate = version, commit, date

	rootCmd := &cobra.Command{
		Use:   "dirdiff",
		Short: "Directory tree comparison tool",
		Long: `dirdiff compares an original and a modified directory tree and writes a
report of new, deleted and modified files, either as an annotated tree with
full contents or as unified diff hunks.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewCompareCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
