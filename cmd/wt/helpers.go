package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/kioku/wt/internal/branch"
	"github.com/kioku/wt/internal/git"
	"github.com/kioku/wt/internal/ui"
	"github.com/kioku/wt/internal/worktree"
)

// resolveEngine locates the repository (from --repo or cwd) and builds
// the engine for it.
func resolveEngine(ctx context.Context) (*worktree.Engine, error) {
	start := workDir
	if repoFlag != "" {
		abs, err := filepath.Abs(repoFlag)
		if err != nil {
			return nil, err
		}
		start = abs
	}

	root, err := git.ResolveRoot(ctx, start)
	if err != nil {
		return nil, err
	}
	return worktree.New(git.NewClient(root, cfg.Remote), root), nil
}

// interactive reports whether both ends of the terminal are a TTY, the
// precondition for showing the picker.
func interactive() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// nonMain filters out the main worktree, which picker-driven commands
// must never target.
func nonMain(worktrees []git.Worktree) []git.Worktree {
	var out []git.Worktree
	for _, wt := range worktrees {
		if !wt.IsMain {
			out = append(out, wt)
		}
	}
	return out
}

// pickBranch shows the picker and returns the chosen branch.
// A cancelled picker surfaces errCancelled.
func pickBranch(prompt string, worktrees []git.Worktree) (branch.Name, error) {
	wt, cancelled, err := ui.PickWorktree(prompt, worktrees)
	if err != nil {
		return "", err
	}
	if cancelled {
		return "", errCancelled
	}
	return branch.Name(wt.Branch), nil
}
