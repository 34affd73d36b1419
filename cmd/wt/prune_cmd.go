package main

import (
	"github.com/spf13/cobra"

	"github.com/kioku/wt/internal/hooks"
	"github.com/kioku/wt/internal/log"
	"github.com/kioku/wt/internal/output"
	"github.com/kioku/wt/internal/worktree"
)

type pruneEntryJSON struct {
	Branch string `json:"branch"`
	Path   string `json:"path"`
	Status string `json:"status"`
	Method string `json:"method,omitempty"`
}

type pruneSkippedJSON struct {
	Branch string `json:"branch"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type pruneDryRunResponse struct {
	Mainline string           `json:"mainline"`
	DryRun   bool             `json:"dry_run"`
	Entries  []pruneEntryJSON `json:"entries"`
}

type pruneExecuteResponse struct {
	OK       bool               `json:"ok"`
	Mainline string             `json:"mainline"`
	Pruned   []pruneEntryJSON   `json:"pruned"`
	Skipped  []pruneSkippedJSON `json:"skipped"`
	Warnings []string           `json:"warnings,omitempty"`
}

func newPruneCmd() *cobra.Command {
	var (
		jsonOut  bool
		execute  bool
		force    bool
		mainline string
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove worktrees whose branches are integrated",
		Long: `Classify every worktree against the mainline and remove the
integrated ones.

A branch counts as integrated when its commits are reachable from the
mainline, or when every commit has a patch-identical equivalent there
(rebase merges). Squash merges are not detected. The default is a dry
run; pass --execute to remove.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, err := resolveEngine(ctx)
			if err != nil {
				return err
			}

			if mainline == "" {
				mainline = cfg.Mainline
			}

			p := output.FromContext(ctx)
			if !execute {
				plan, err := engine.PruneDryRun(ctx, mainline)
				if err != nil {
					return err
				}
				if jsonOut {
					resp := pruneDryRunResponse{Mainline: plan.Mainline, DryRun: true, Entries: []pruneEntryJSON{}}
					for _, e := range plan.Entries {
						resp.Entries = append(resp.Entries, pruneEntryJSON{
							Branch: e.Branch.String(),
							Path:   e.Path,
							Status: e.Status.String(),
							Method: e.Status.Method(),
						})
					}
					return p.JSON(resp)
				}
				printPrunePlan(p, plan)
				return nil
			}

			result, err := engine.PruneExecute(ctx, mainline, force)
			if err != nil {
				return err
			}

			matches := hooks.Select(cfg.Hooks, hooks.TriggerPrune)
			warnings := result.Warnings
			for _, pruned := range result.Pruned {
				warnings = append(warnings, hooks.RunAll(ctx, matches, hooks.Context{
					Path:    pruned.Path,
					Branch:  pruned.Branch.String(),
					Repo:    engine.Root(),
					Trigger: hooks.TriggerPrune,
				}, engine.Root())...)
			}

			l := log.FromContext(ctx)
			for _, w := range warnings {
				l.Warnf("%s", w)
			}

			if jsonOut {
				resp := pruneExecuteResponse{
					OK:       true,
					Mainline: result.Mainline,
					Pruned:   []pruneEntryJSON{},
					Skipped:  []pruneSkippedJSON{},
					Warnings: warnings,
				}
				for _, e := range result.Pruned {
					resp.Pruned = append(resp.Pruned, pruneEntryJSON{
						Branch: e.Branch.String(),
						Path:   e.Path,
						Status: e.Status.String(),
						Method: e.Status.Method(),
					})
				}
				for _, s := range result.Skipped {
					resp.Skipped = append(resp.Skipped, pruneSkippedJSON{
						Branch: s.Branch.String(),
						Path:   s.Path,
						Reason: s.Reason,
					})
				}
				return p.JSON(resp)
			}

			for _, e := range result.Pruned {
				p.Printf("pruned %s (%s)\n", e.Branch, e.Status.Method())
			}
			for _, s := range result.Skipped {
				p.Printf("skipped %s (%s)\n", displayBranch(s.Branch.String()), s.Reason)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&execute, "execute", false, "Actually remove integrated worktrees")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force worktree removal and branch deletion")
	cmd.Flags().StringVar(&mainline, "mainline", "", "Mainline branch to classify against (default: auto-detect)")
	return cmd
}

func printPrunePlan(p *output.Printer, plan *worktree.PrunePlan) {
	p.Printf("mainline: %s\n", plan.Mainline)
	for _, e := range plan.Entries {
		status := e.Status.String()
		if m := e.Status.Method(); m != "" {
			status += " (" + m + ")"
		}
		p.Printf("  %s\t%s\n", displayBranch(e.Branch.String()), status)
	}
	if len(plan.Entries) == 0 {
		p.Println("no worktrees to prune")
	}
}

func displayBranch(b string) string {
	if b == "" {
		return "(detached)"
	}
	return b
}
