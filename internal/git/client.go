package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kioku/wt/internal/apperr"
	"github.com/kioku/wt/internal/branch"
	"github.com/kioku/wt/internal/cmd"
)

// gitEnvOverrides are environment variables that can leak from parent
// git processes (e.g. hooks) and redirect our subprocess calls to the
// wrong repository.
var gitEnvOverrides = []string{
	"GIT_DIR",
	"GIT_WORK_TREE",
	"GIT_INDEX_FILE",
	"GIT_OBJECT_DIRECTORY",
	"GIT_ALTERNATE_OBJECT_DIRECTORIES",
	"GIT_PREFIX",
}

var runner = cmd.Runner{DropEnv: gitEnvOverrides}

// Client runs git commands against a single repository root.
type Client struct {
	root   string
	remote string
}

// NewClient creates a client for the repository rooted at root,
// consulting the named remote for tracking and mainline decisions.
func NewClient(root, remote string) *Client {
	return &Client{root: root, remote: remote}
}

// Remote returns the configured remote name.
func (c *Client) Remote() string { return c.remote }

func (c *Client) run(ctx context.Context, args ...string) error {
	if err := runner.Run(ctx, c.root, "git", args...); err != nil {
		return classify(err.Error())
	}
	return nil
}

func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	out, err := runner.Output(ctx, c.root, "git", args...)
	if err != nil {
		return "", classify(err.Error())
	}
	return out, nil
}

func (c *Client) succeeds(ctx context.Context, args ...string) bool {
	return runner.Succeeds(ctx, c.root, "git", args...)
}

// ResolveRoot resolves the main repository root from a starting path.
//
// `--git-common-dir` points at the shared .git directory even when
// invoked from inside a linked worktree, so the root is its parent.
// The path git prints can be relative to the process cwd, so it is
// resolved against start before use.
func ResolveRoot(ctx context.Context, start string) (string, error) {
	toplevel, err := runner.Output(ctx, start, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", apperr.NotARepo("not a git repository: %s", start)
	}

	common, err := runner.Output(ctx, start, "git", "rev-parse", "--git-common-dir")
	if err != nil {
		common = ".git"
	}
	if !filepath.IsAbs(common) {
		common = filepath.Join(start, common)
	}
	if resolved, err := filepath.EvalSymlinks(common); err == nil {
		common = resolved
	}

	root := filepath.Dir(filepath.Clean(common))
	if root == "." {
		root = toplevel
	}
	return root, nil
}

// ListWorktrees returns all non-bare worktrees registered for the
// repository. Stale registrations are pruned first so removed
// directories do not linger in the listing.
func (c *Client) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	// Best effort; listing proceeds even if prune fails.
	_ = c.run(ctx, "worktree", "prune")

	raw, err := c.output(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseWorktrees(raw), nil
}

// AddWorktree creates a worktree at dir on a new branch starting from
// base (HEAD when base is empty).
func (c *Client) AddWorktree(ctx context.Context, dir string, b branch.Name, base string) error {
	if base == "" {
		base = "HEAD"
	}
	return c.run(ctx, "worktree", "add", "-b", b.String(), dir, base)
}

// RemoveWorktree removes the worktree directory at dir.
func (c *Client) RemoveWorktree(ctx context.Context, dir string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	return c.run(ctx, append(args, dir)...)
}

// DeleteBranch deletes a local branch. force uses -D, which skips git's
// own merged-ness check.
func (c *Client) DeleteBranch(ctx context.Context, b branch.Name, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	return c.run(ctx, "branch", flag, b.String())
}

// BranchExists reports whether a local branch exists.
func (c *Client) BranchExists(ctx context.Context, b branch.Name) bool {
	return c.succeeds(ctx, "rev-parse", "--verify", "refs/heads/"+b.String())
}

// RemoteBranchExists reports whether the configured remote has a branch
// of the same name.
func (c *Client) RemoteBranchExists(ctx context.Context, b branch.Name) bool {
	return c.succeeds(ctx, "rev-parse", "--verify", fmt.Sprintf("refs/remotes/%s/%s", c.remote, b))
}

// RevExists reports whether a revision resolves.
func (c *Client) RevExists(ctx context.Context, rev string) bool {
	return c.succeeds(ctx, "rev-parse", "--verify", rev)
}

// IsAncestor reports whether every commit reachable from branchRef is
// also reachable from mainline (ordinary merges and fast-forwards).
func (c *Client) IsAncestor(ctx context.Context, branchRef, mainline string) bool {
	return c.succeeds(ctx, "merge-base", "--is-ancestor", branchRef, mainline)
}

// Cherry reports whether every commit on branchRef has a patch-identical
// equivalent in mainline. `git cherry` prefixes such commits with "-";
// a single "+" line means something is missing. Recovers rebase-merged
// branches whose commit ids changed but whose patches did not.
func (c *Client) Cherry(ctx context.Context, mainline, branchRef string) bool {
	out, err := c.output(ctx, "cherry", mainline, branchRef)
	if err != nil || out == "" {
		return false
	}
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "-") {
			return false
		}
	}
	return true
}

// ResolveMainline auto-detects the mainline branch.
//
// Resolution order: the remote's symbolic HEAD, a local "main", a local
// "master", then the main worktree's current branch.
func (c *Client) ResolveMainline(ctx context.Context) (string, error) {
	symref, err := c.output(ctx, "symbolic-ref", "--short", "refs/remotes/"+c.remote+"/HEAD")
	if err == nil {
		return strings.TrimPrefix(symref, c.remote+"/"), nil
	}

	for _, name := range []string{"main", "master"} {
		if c.BranchExists(ctx, branch.Name(name)) {
			return name, nil
		}
	}

	worktrees, err := c.ListWorktrees(ctx)
	if err != nil {
		return "", err
	}
	for _, wt := range worktrees {
		if wt.IsMain && wt.Branch != "" {
			return wt.Branch, nil
		}
	}
	return "", apperr.Git("could not determine mainline branch; use --mainline to specify")
}

// SetUpstream points the branch at its remote counterpart so plain
// `git pull`/`git push` work inside the worktree.
func (c *Client) SetUpstream(ctx context.Context, b branch.Name) error {
	upstream := fmt.Sprintf("%s/%s", c.remote, b)
	return c.run(ctx, "branch", "--set-upstream-to="+upstream, b.String())
}

// MergeNoFF merges branchName into the currently checked out branch,
// always creating a merge commit.
func (c *Client) MergeNoFF(ctx context.Context, branchName string) error {
	return c.run(ctx, "merge", "--no-ff", "--no-edit", branchName)
}

// MergeAbort aborts an in-progress merge, restoring a clean tree.
// Failure is ignored; there is nothing further to do with it.
func (c *Client) MergeAbort(ctx context.Context) {
	_ = c.run(ctx, "merge", "--abort")
}

// Push pushes branchName to the configured remote.
func (c *Client) Push(ctx context.Context, branchName string) error {
	return c.run(ctx, "push", c.remote, branchName)
}

