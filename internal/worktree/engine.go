// Package worktree implements the lifecycle operations behind the wt
// commands: creating, locating, removing, pruning and merging the
// worktrees kept under the repository's .worktrees directory.
package worktree

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/kioku/wt/internal/apperr"
	"github.com/kioku/wt/internal/branch"
	"github.com/kioku/wt/internal/git"
)

// Git is the subset of git operations the engine needs. The concrete
// implementation shells out; tests substitute an in-memory fake.
type Git interface {
	Remote() string
	ListWorktrees(ctx context.Context) ([]git.Worktree, error)
	AddWorktree(ctx context.Context, dir string, b branch.Name, base string) error
	RemoveWorktree(ctx context.Context, dir string, force bool) error
	DeleteBranch(ctx context.Context, b branch.Name, force bool) error
	BranchExists(ctx context.Context, b branch.Name) bool
	RemoteBranchExists(ctx context.Context, b branch.Name) bool
	RevExists(ctx context.Context, rev string) bool
	IsAncestor(ctx context.Context, branchRef, mainline string) bool
	Cherry(ctx context.Context, mainline, branchRef string) bool
	ResolveMainline(ctx context.Context) (string, error)
	SetUpstream(ctx context.Context, b branch.Name) error
	MergeNoFF(ctx context.Context, branchName string) error
	MergeAbort(ctx context.Context)
	Push(ctx context.Context, branchName string) error
}

const worktreesDirName = ".worktrees"

// Engine runs worktree operations for a single repository root.
type Engine struct {
	git  Git
	root string
}

func New(g Git, root string) *Engine {
	return &Engine{git: g, root: root}
}

// Root returns the main repository root.
func (e *Engine) Root() string { return e.root }

// WorktreesDir returns the directory all managed worktrees live under.
func (e *Engine) WorktreesDir() string {
	return filepath.Join(e.root, worktreesDirName)
}

// List returns all registered worktrees, main first.
func (e *Engine) List(ctx context.Context) ([]git.Worktree, error) {
	return e.git.ListWorktrees(ctx)
}

// AddResult describes a freshly created worktree.
type AddResult struct {
	Path     string
	Branch   branch.Name
	RepoRoot string
	// Tracking is set when the branch was created from, and now tracks,
	// its remote counterpart.
	Tracking bool
}

// Add creates a new worktree on a new branch named b.
//
// When base is empty and the remote already has a branch of the same
// name, the worktree starts from that remote branch and tracks it.
// Otherwise the branch starts from base, or HEAD when no base is given.
func (e *Engine) Add(ctx context.Context, b branch.Name, base string) (*AddResult, error) {
	if e.git.BranchExists(ctx, b) {
		return nil, apperr.Conflict("branch '%s' already exists", b)
	}
	if base != "" && !e.git.RevExists(ctx, base) {
		return nil, apperr.Git("revision '%s' not found", base)
	}

	dir := filepath.Join(e.WorktreesDir(), b.DirName())
	if _, err := os.Stat(dir); err == nil {
		return nil, apperr.Conflict("worktree directory already exists: %s", dir)
	}

	tracking := base == "" && e.git.RemoteBranchExists(ctx, b)
	effectiveBase := base
	if tracking {
		effectiveBase = e.git.Remote() + "/" + b.String()
	}

	if err := e.git.AddWorktree(ctx, dir, b, effectiveBase); err != nil {
		return nil, err
	}
	if tracking {
		if err := e.git.SetUpstream(ctx, b); err != nil {
			return nil, err
		}
	}

	return &AddResult{Path: dir, Branch: b, RepoRoot: e.root, Tracking: tracking}, nil
}

// GoResult locates an existing worktree.
type GoResult struct {
	Path     string
	Branch   branch.Name
	RepoRoot string
}

// Go returns the worktree checked out on branch b.
func (e *Engine) Go(ctx context.Context, b branch.Name) (*GoResult, error) {
	worktrees, err := e.git.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}
	for _, wt := range worktrees {
		if wt.Branch == b.String() {
			return &GoResult{Path: wt.Path, Branch: b, RepoRoot: e.root}, nil
		}
	}
	return nil, apperr.Usage("no worktree found for branch '%s'", b)
}

// RemoveResult describes a completed removal.
type RemoveResult struct {
	RemovedPath string
	Branch      branch.Name
	RepoRoot    string
	// Warning is set when the worktree was removed but its branch was
	// not.
	Warning string
}

// Remove removes the worktree for branchName and deletes the branch.
// An empty branchName resolves the target from cwd. Branch deletion
// failure downgrades to a warning; the worktree itself is already gone.
func (e *Engine) Remove(ctx context.Context, branchName branch.Name, cwd string, force bool) (*RemoveResult, error) {
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

	var entry *git.Worktree
	for i := range worktrees {
		if worktrees[i].Branch == target.String() {
			entry = &worktrees[i]
			break
		}
	}
	if entry == nil {
		return nil, apperr.Usage("no worktree found for branch '%s'", target)
	}
	if entry.IsMain {
		return nil, apperr.Invariant("refusing to remove the main worktree")
	}

	if err := e.git.RemoveWorktree(ctx, entry.Path, force); err != nil {
		return nil, err
	}

	result := &RemoveResult{RemovedPath: entry.Path, Branch: target, RepoRoot: e.root}
	if err := e.git.DeleteBranch(ctx, target, force); err != nil {
		result.Warning = "worktree removed but branch deletion failed: " + err.Error()
	}
	return result, nil
}

// ResolveFromCwd finds the branch of the worktree containing cwd. The
// longest matching worktree path wins, so a worktree nested under the
// main checkout resolves to itself rather than its parent.
func ResolveFromCwd(worktrees []git.Worktree, cwd string) (branch.Name, error) {
	cwd = filepath.Clean(cwd)

	var match *git.Worktree
	for i := range worktrees {
		p := filepath.Clean(worktrees[i].Path)
		if cwd != p && !strings.HasPrefix(cwd, p+string(filepath.Separator)) {
			continue
		}
		if match == nil || len(p) > len(filepath.Clean(match.Path)) {
			match = &worktrees[i]
		}
	}

	if match == nil {
		return "", apperr.Usage("no branch specified and cwd is not inside a worktree")
	}
	if match.Branch == "" {
		return "", apperr.Usage("current worktree has no branch")
	}
	return branch.Name(match.Branch), nil
}

// resolveMainline validates an explicit override or falls back to
// auto-detection.
func (e *Engine) resolveMainline(ctx context.Context, override string) (string, error) {
	if override != "" {
		if !e.git.RevExists(ctx, override) {
			return "", apperr.Usage("mainline branch '%s' does not exist", override)
		}
		return override, nil
	}
	return e.git.ResolveMainline(ctx)
}
