package main

import (
	"github.com/spf13/cobra"

	"github.com/kioku/wt/internal/branch"
	"github.com/kioku/wt/internal/hooks"
	"github.com/kioku/wt/internal/log"
	"github.com/kioku/wt/internal/output"
	"github.com/kioku/wt/internal/worktree"
)

type mergeResponse struct {
	OK          bool     `json:"ok"`
	Branch      string   `json:"branch"`
	Mainline    string   `json:"mainline"`
	CleanedUp   bool     `json:"cleaned_up"`
	RemovedPath string   `json:"removed_path,omitempty"`
	Pushed      bool     `json:"pushed"`
	Warnings    []string `json:"warnings,omitempty"`
}

func newMergeCmd() *cobra.Command {
	var (
		jsonOut   bool
		push      bool
		noCleanup bool
		mainline  string
	)

	cmd := &cobra.Command{
		Use:   "merge [branch]",
		Short: "Merge a worktree's branch into the mainline",
		Long: `Merge a branch into the mainline with a merge commit, then remove
its worktree.

The merge runs in the main worktree, which must already have the
mainline checked out. Conflicts abort the merge and leave both
worktrees untouched. Without a branch argument the worktree containing
the current directory is merged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, err := resolveEngine(ctx)
			if err != nil {
				return err
			}

			var target branch.Name
			if len(args) == 1 {
				target = branch.Name(args[0])
			}
			if mainline == "" {
				mainline = cfg.Mainline
			}

			result, err := engine.Merge(ctx, target, workDir, worktree.MergeOptions{
				Mainline:  mainline,
				Push:      push,
				NoCleanup: noCleanup,
			})
			if err != nil {
				return err
			}

			matches := hooks.Select(cfg.Hooks, hooks.TriggerMerge)
			warnings := append(result.Warnings, hooks.RunAll(ctx, matches, hooks.Context{
				Path:    result.WorktreePath,
				Branch:  result.Branch.String(),
				Repo:    result.RepoRoot,
				Trigger: hooks.TriggerMerge,
			}, result.RepoRoot)...)

			l := log.FromContext(ctx)
			for _, w := range warnings {
				l.Warnf("%s", w)
			}

			p := output.FromContext(ctx)
			if jsonOut {
				return p.JSON(mergeResponse{
					OK:          true,
					Branch:      result.Branch.String(),
					Mainline:    result.Mainline,
					CleanedUp:   result.CleanedUp,
					RemovedPath: result.RemovedPath,
					Pushed:      result.Pushed,
					Warnings:    warnings,
				})
			}
			p.Printf("merged %s into %s\n", result.Branch, result.Mainline)
			if result.CleanedUp {
				p.Printf("removed %s\n", result.RemovedPath)
			}
			if result.Pushed {
				p.Printf("pushed %s to %s\n", result.Mainline, cfg.Remote)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&push, "push", false, "Push the mainline to the remote after merging")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Keep the worktree and branch after merging")
	cmd.Flags().StringVar(&mainline, "mainline", "", "Mainline branch to merge into (default: auto-detect)")
	return cmd
}
