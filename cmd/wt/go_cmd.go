package main

import (
	"github.com/spf13/cobra"

	"github.com/kioku/wt/internal/apperr"
	"github.com/kioku/wt/internal/branch"
	"github.com/kioku/wt/internal/history"
	"github.com/kioku/wt/internal/output"
)

type goResponse struct {
	OK     bool   `json:"ok"`
	Branch string `json:"branch"`
	CdPath string `json:"cd_path"`
}

func newGoCmd() *cobra.Command {
	var (
		jsonOut          bool
		printCdPath      bool
		forceInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "go [branch]",
		Short: "Print the path of a worktree",
		Long: `Locate the worktree for a branch.

Without a branch argument an interactive picker opens. 'wt go -' jumps
to the previously visited worktree. The shell function installed by
'wt init' wraps this command to actually change directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, err := resolveEngine(ctx)
			if err != nil {
				return err
			}
			hist := history.Load()

			var target branch.Name
			switch {
			case len(args) == 1 && args[0] == "-":
				last := hist.Last(engine.Root())
				if last == "" {
					return apperr.Usage("no previous worktree to go back to")
				}
				target = branch.Name(last)
			case len(args) == 1:
				target = branch.Name(args[0])
			default:
				worktrees, err := engine.List(ctx)
				if err != nil {
					return err
				}
				candidates := nonMain(worktrees)
				switch {
				case len(candidates) == 1 && candidates[0].Branch != "" && !forceInteractive:
					target = branch.Name(candidates[0].Branch)
				case !interactive() || jsonOut:
					return apperr.Usage("no branch specified")
				default:
					target, err = pickBranch("Go to worktree:", candidates)
					if err != nil {
						return err
					}
				}
			}

			result, err := engine.Go(ctx, target)
			if err != nil {
				return err
			}
			hist.Record(engine.Root(), result.Branch.String())

			p := output.FromContext(ctx)
			if jsonOut && !printCdPath {
				return p.JSON(goResponse{OK: true, Branch: result.Branch.String(), CdPath: result.Path})
			}
			p.Println(result.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&printCdPath, "print-cd-path", false, "Print only the worktree path (for shell integration)")
	cmd.Flags().BoolVarP(&forceInteractive, "interactive", "i", false, "Always show the picker, even with a single candidate")
	return cmd
}
