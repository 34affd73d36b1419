package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kioku/wt/internal/git"
	"github.com/kioku/wt/internal/output"
)

type listEntry struct {
	Branch string `json:"branch"`
	Path   string `json:"path"`
	Commit string `json:"commit"`
	IsMain bool   `json:"is_main"`
}

type listResponse struct {
	RepoRoot  string      `json:"repo_root"`
	Worktrees []listEntry `json:"worktrees"`
}

func newListCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List all worktrees",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, err := resolveEngine(ctx)
			if err != nil {
				return err
			}
			worktrees, err := engine.List(ctx)
			if err != nil {
				return err
			}

			p := output.FromContext(ctx)
			if jsonOut {
				resp := listResponse{RepoRoot: engine.Root(), Worktrees: []listEntry{}}
				for _, wt := range worktrees {
					resp.Worktrees = append(resp.Worktrees, listEntry{
						Branch: wt.Branch,
						Path:   wt.Path,
						Commit: wt.Commit,
						IsMain: wt.IsMain,
					})
				}
				return p.JSON(resp)
			}

			printWorktreeTable(p, worktrees)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func printWorktreeTable(p *output.Printer, worktrees []git.Worktree) {
	tw := tabwriter.NewWriter(p.Writer(), 2, 4, 2, ' ', 0)
	for _, wt := range worktrees {
		branchName := wt.Branch
		if branchName == "" {
			branchName = "(detached)"
		}
		marker := ""
		if wt.IsMain {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", marker, branchName, wt.Commit, wt.Path)
	}
	tw.Flush()
}
