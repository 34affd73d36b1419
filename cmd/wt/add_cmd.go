package main

import (
	"github.com/spf13/cobra"

	"github.com/kioku/wt/internal/branch"
	"github.com/kioku/wt/internal/hooks"
	"github.com/kioku/wt/internal/log"
	"github.com/kioku/wt/internal/output"
)

type addResponse struct {
	OK           bool     `json:"ok"`
	Branch       string   `json:"branch"`
	WorktreePath string   `json:"worktree_path"`
	RepoRoot     string   `json:"repo_root"`
	Tracking     bool     `json:"tracking"`
	Warnings     []string `json:"warnings,omitempty"`
}

func newAddCmd() *cobra.Command {
	var (
		jsonOut     bool
		printCdPath bool
		base        string
	)

	cmd := &cobra.Command{
		Use:   "add <branch>",
		Short: "Create a worktree on a new branch",
		Long: `Create a new branch and check it out in a fresh worktree under
.worktrees/.

The branch starts from --base, or from the remote branch of the same
name when one exists (setting up tracking), or from HEAD.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, err := resolveEngine(ctx)
			if err != nil {
				return err
			}

			result, err := engine.Add(ctx, branch.Name(args[0]), base)
			if err != nil {
				return err
			}

			matches := hooks.Select(cfg.Hooks, hooks.TriggerAdd)
			warnings := hooks.RunAll(ctx, matches, hooks.Context{
				Path:    result.Path,
				Branch:  result.Branch.String(),
				Repo:    result.RepoRoot,
				Trigger: hooks.TriggerAdd,
			}, result.Path)

			l := log.FromContext(ctx)
			for _, w := range warnings {
				l.Warnf("%s", w)
			}

			p := output.FromContext(ctx)
			switch {
			case jsonOut:
				return p.JSON(addResponse{
					OK:           true,
					Branch:       result.Branch.String(),
					WorktreePath: result.Path,
					RepoRoot:     result.RepoRoot,
					Tracking:     result.Tracking,
					Warnings:     warnings,
				})
			case printCdPath:
				p.Println(result.Path)
			default:
				if result.Tracking {
					l.Printf("branch '%s' tracks %s/%s\n", result.Branch, cfg.Remote, result.Branch)
				}
				p.Println(result.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&printCdPath, "print-cd-path", false, "Print only the worktree path (for shell integration)")
	cmd.Flags().StringVar(&base, "base", "", "Revision to branch from (default: remote branch or HEAD)")
	return cmd
}
