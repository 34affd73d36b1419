package main

import (
	"github.com/spf13/cobra"

	"github.com/kioku/wt/internal/branch"
	"github.com/kioku/wt/internal/hooks"
	"github.com/kioku/wt/internal/log"
	"github.com/kioku/wt/internal/output"
)

type removeResponse struct {
	OK          bool     `json:"ok"`
	Branch      string   `json:"branch"`
	RemovedPath string   `json:"removed_path"`
	Warnings    []string `json:"warnings,omitempty"`
}

func newRemoveCmd() *cobra.Command {
	var (
		jsonOut    bool
		force      bool
		printPaths bool
	)

	cmd := &cobra.Command{
		Use:     "remove [branch]",
		Short:   "Remove a worktree and delete its branch",
		Aliases: []string{"rm"},
		Long: `Remove the worktree for a branch and delete the branch.

Without a branch argument the worktree containing the current directory
is removed, or a picker opens on a terminal. Removal fails on
uncommitted changes or an unmerged branch unless --force is given.`,
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
			} else if interactive() && !jsonOut {
				worktrees, err := engine.List(ctx)
				if err != nil {
					return err
				}
				target, err = pickBranch("Remove worktree:", nonMain(worktrees))
				if err != nil {
					return err
				}
			}
			// An empty target falls through to cwd inference.

			result, err := engine.Remove(ctx, target, workDir, force)
			if err != nil {
				return err
			}

			warnings := []string{}
			if result.Warning != "" {
				warnings = append(warnings, result.Warning)
			}

			matches := hooks.Select(cfg.Hooks, hooks.TriggerRemove)
			warnings = append(warnings, hooks.RunAll(ctx, matches, hooks.Context{
				Path:    result.RemovedPath,
				Branch:  result.Branch.String(),
				Repo:    result.RepoRoot,
				Trigger: hooks.TriggerRemove,
			}, result.RepoRoot)...)

			l := log.FromContext(ctx)
			for _, w := range warnings {
				l.Warnf("%s", w)
			}

			p := output.FromContext(ctx)
			switch {
			case jsonOut:
				return p.JSON(removeResponse{
					OK:          true,
					Branch:      result.Branch.String(),
					RemovedPath: result.RemovedPath,
					Warnings:    warnings,
				})
			case printPaths:
				p.Println(result.RemovedPath)
			default:
				p.Printf("removed %s (%s)\n", result.Branch, result.RemovedPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove despite uncommitted changes; delete unmerged branches")
	cmd.Flags().BoolVar(&printPaths, "print-paths", false, "Print only the removed path (for scripting)")
	return cmd
}
