package worktree

import "context"

// Integration is the classification of a branch against the mainline.
type Integration int

const (
	NotIntegrated Integration = iota
	// IntegratedMerged means every commit is reachable from the
	// mainline (merge commit or fast-forward).
	IntegratedMerged
	// IntegratedRebase means every commit has a patch-identical
	// equivalent in the mainline under different ids.
	IntegratedRebase
	// NoBranch marks a detached worktree that cannot be classified.
	NoBranch
)

// Integrated reports whether the branch's work is contained in the
// mainline by either method.
func (s Integration) Integrated() bool {
	return s == IntegratedMerged || s == IntegratedRebase
}

func (s Integration) String() string {
	switch s {
	case IntegratedMerged, IntegratedRebase:
		return "integrated"
	case NoBranch:
		return "no_branch"
	default:
		return "not_integrated"
	}
}

// Method names how the branch was integrated, or "" when it was not.
func (s Integration) Method() string {
	switch s {
	case IntegratedMerged:
		return "merged"
	case IntegratedRebase:
		return "rebase"
	default:
		return ""
	}
}

// classifyIntegration checks ancestry first because it is cheap and
// covers ordinary merges; the cherry pass only runs for branches whose
// commits are not directly reachable. Squash merges rewrite patches
// into a single new commit, so they classify as not integrated.
func (e *Engine) classifyIntegration(ctx context.Context, branchName, mainline string) Integration {
	if e.git.IsAncestor(ctx, branchName, mainline) {
		return IntegratedMerged
	}
	if e.git.Cherry(ctx, mainline, branchName) {
		return IntegratedRebase
	}
	return NotIntegrated
}
