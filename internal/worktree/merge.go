package worktree

import (
	"context"

	"github.com/kioku/wt/internal/apperr"
	"github.com/kioku/wt/internal/branch"
)

// MergeResult reports a completed merge and its aftermath.
type MergeResult struct {
	Branch   branch.Name
	Mainline string
	RepoRoot string
	// WorktreePath is where the branch was checked out. It no longer
	// exists when CleanedUp is set.
	WorktreePath string
	// CleanedUp is set when the worktree and branch were removed after
	// the merge.
	CleanedUp   bool
	RemovedPath string
	Pushed      bool
	Warnings    []string
}

// MergeOptions controls post-merge behavior.
type MergeOptions struct {
	// Mainline overrides mainline auto-detection.
	Mainline string
	// Push pushes the mainline to the remote after a successful merge.
	Push bool
	// NoCleanup keeps the worktree and branch after the merge.
	NoCleanup bool
}

// Merge merges branchName into the mainline with a merge commit,
// running the merge in the main worktree. An empty branchName resolves
// the target from cwd. The main worktree must already have the mainline
// checked out; the engine never switches branches on the user's behalf.
//
// A conflicted merge is aborted and reported; nothing is cleaned up.
// After a successful merge, cleanup and push failures are warnings
// rather than errors, the merge itself already happened.
func (e *Engine) Merge(ctx context.Context, branchName branch.Name, cwd string, opts MergeOptions) (*MergeResult, error) {
	worktrees, err := e.git.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	target := branchName
	if target == "" {
		target, err = ResolveFromCwd(worktrees, cwd)
		if err != nil {
			return nil, err
		}
	}

	found := false
	targetIsMain := false
	targetPath := ""
	mainBranch := ""
	for _, wt := range worktrees {
		if wt.IsMain {
			mainBranch = wt.Branch
		}
		if wt.Branch == target.String() {
			found = true
			targetIsMain = wt.IsMain
			targetPath = wt.Path
		}
	}
	if !found {
		return nil, apperr.Usage("no worktree found for branch '%s'", target)
	}
	if targetIsMain {
		return nil, apperr.Invariant("refusing to merge the main worktree")
	}

	mainline, err := e.resolveMainline(ctx, opts.Mainline)
	if err != nil {
		return nil, err
	}
	if mainBranch != mainline {
		if mainBranch == "" {
			mainBranch = "(detached)"
		}
		return nil, apperr.Invariant(
			"main worktree is on '%s', expected '%s': check out the mainline first",
			mainBranch, mainline)
	}

	if err := e.git.MergeNoFF(ctx, target.String()); err != nil {
		e.git.MergeAbort(ctx)
		return nil, apperr.Conflict(
			"merge of '%s' into '%s' has conflicts: aborted; run git merge in the main worktree to resolve",
			target, mainline)
	}

	result := &MergeResult{Branch: target, Mainline: mainline, RepoRoot: e.root, WorktreePath: targetPath}

	if !opts.NoCleanup {
		removed, err := e.Remove(ctx, target, cwd, false)
		if err != nil {
			result.Warnings = append(result.Warnings, "merge succeeded but cleanup failed: "+err.Error())
		} else {
			result.CleanedUp = true
			result.RemovedPath = removed.RemovedPath
			if removed.Warning != "" {
				result.Warnings = append(result.Warnings, removed.Warning)
			}
		}
	}

	if opts.Push {
		if err := e.git.Push(ctx, mainline); err != nil {
			result.Warnings = append(result.Warnings, "merge succeeded but push failed: "+err.Error())
		} else {
			result.Pushed = true
		}
	}
	return result, nil
}
