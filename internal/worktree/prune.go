package worktree

import (
	"context"
	"fmt"

	"github.com/kioku/wt/internal/branch"
)

// PruneEntry is one candidate worktree and its classification.
type PruneEntry struct {
	Path   string
	Branch branch.Name
	Status Integration
}

// PrunePlan is the dry-run view of a prune: every non-main worktree
// with its classification, and the mainline it was classified against.
type PrunePlan struct {
	Mainline string
	Entries  []PruneEntry
}

// PruneDryRun classifies every non-main worktree against the mainline
// without touching anything.
func (e *Engine) PruneDryRun(ctx context.Context, mainlineOverride string) (*PrunePlan, error) {
	mainline, err := e.resolveMainline(ctx, mainlineOverride)
	if err != nil {
		return nil, err
	}

	worktrees, err := e.git.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	plan := &PrunePlan{Mainline: mainline}
	for _, wt := range worktrees {
		if wt.IsMain {
			continue
		}
		entry := PruneEntry{Path: wt.Path, Branch: branch.Name(wt.Branch)}
		if wt.Branch == "" {
			entry.Status = NoBranch
		} else {
			entry.Status = e.classifyIntegration(ctx, wt.Branch, mainline)
		}
		plan.Entries = append(plan.Entries, entry)
	}
	return plan, nil
}

// SkippedEntry is a worktree a prune left alone, and why.
type SkippedEntry struct {
	Path   string
	Branch branch.Name
	Reason string
}

// PruneResult reports what an executed prune did.
type PruneResult struct {
	Mainline string
	Pruned   []PruneEntry
	Skipped  []SkippedEntry
	Warnings []string
}

// PruneExecute removes every integrated worktree and deletes its
// branch. Entries are independent: one failure is recorded and the rest
// still proceed. Rebase-integrated branches need a forced delete
// because git's own merged-ness check only understands ancestry.
func (e *Engine) PruneExecute(ctx context.Context, mainlineOverride string, force bool) (*PruneResult, error) {
	plan, err := e.PruneDryRun(ctx, mainlineOverride)
	if err != nil {
		return nil, err
	}

	result := &PruneResult{Mainline: plan.Mainline}
	for _, entry := range plan.Entries {
		switch {
		case entry.Status.Integrated():
			if err := e.git.RemoveWorktree(ctx, entry.Path, force); err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("failed to remove worktree for '%s': %v", entry.Branch, err))
				result.Skipped = append(result.Skipped,
					SkippedEntry{Path: entry.Path, Branch: entry.Branch, Reason: "removal_failed"})
				continue
			}
			forceBranch := force || entry.Status == IntegratedRebase
			if err := e.git.DeleteBranch(ctx, entry.Branch, forceBranch); err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("worktree removed but branch deletion failed for '%s': %v", entry.Branch, err))
			}
			result.Pruned = append(result.Pruned, entry)
		case entry.Status == NoBranch:
			result.Skipped = append(result.Skipped,
				SkippedEntry{Path: entry.Path, Branch: entry.Branch, Reason: "no_branch"})
		default:
			result.Skipped = append(result.Skipped,
				SkippedEntry{Path: entry.Path, Branch: entry.Branch, Reason: "not_integrated"})
		}
	}
	return result, nil
}
