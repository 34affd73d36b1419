package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kioku/wt/internal/apperr"
	"github.com/kioku/wt/internal/config"
	"github.com/kioku/wt/internal/log"
	"github.com/kioku/wt/internal/output"
)

var (
	// Global flags
	verbose  bool
	repoFlag string

	// Shared state injected into commands
	cfg     config.Config
	workDir string
)

// errCancelled marks an interactive picker backed out with esc/ctrl+c.
// It maps to exit code 130 and prints nothing.
var errCancelled = errors.New("cancelled")

var rootCmd = &cobra.Command{
	Use:   "wt",
	Short: "Git worktree lifecycle manager",
	Long: `wt manages git worktrees under the repository's .worktrees directory.

It creates one worktree per branch, finds them again, and removes them
once their branch is integrated into the mainline.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Flags are parsed by now; attach the logger here so --verbose
		// is honored.
		cmd.SetContext(log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose)))
	},
}

// Execute runs the CLI and exits with the error kind's stable code.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	cfg = loadedCfg

	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wt: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = output.WithPrinter(ctx, os.Stdout)
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errCancelled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "wt: %v\n", err)
		os.Exit(apperr.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Operate on the repository at this path instead of cwd")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newGoCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newPruneCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newInitCmd())
}
