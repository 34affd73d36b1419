package worktree

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kioku/wt/internal/apperr"
	"github.com/kioku/wt/internal/branch"
	"github.com/kioku/wt/internal/git"
)

func TestAddCreatesWorktree(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	root := t.TempDir()
	e := New(f, root)

	got, err := e.Add(context.Background(), "feat-x", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	wantDir := filepath.Join(root, ".worktrees", branch.Name("feat-x").DirName())
	if got.Path != wantDir {
		t.Errorf("path = %q, want %q", got.Path, wantDir)
	}
	if got.Tracking {
		t.Error("tracking should be false without a remote branch")
	}
	if len(f.added) != 1 || f.added[0] != wantDir+"|feat-x|" {
		t.Errorf("recorded add = %v", f.added)
	}
	if len(f.upstreams) != 0 {
		t.Errorf("upstream set without tracking: %v", f.upstreams)
	}
}

func TestAddExistingBranchIsConflict(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.branches["feat-x"] = true
	e := New(f, t.TempDir())

	_, err := e.Add(context.Background(), "feat-x", "")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want KindConflict", apperr.KindOf(err))
	}
	if len(f.added) != 0 {
		t.Error("no worktree should be created")
	}
}

func TestAddUnknownBaseFails(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	e := New(f, t.TempDir())

	_, err := e.Add(context.Background(), "feat-x", "nope")
	if apperr.KindOf(err) != apperr.KindGit {
		t.Fatalf("kind = %v, want KindGit", apperr.KindOf(err))
	}
	if !strings.Contains(err.Error(), "'nope' not found") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestAddExistingDirIsConflict(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	root := t.TempDir()
	dir := filepath.Join(root, ".worktrees", branch.Name("feat-x").DirName())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	e := New(f, root)

	_, err := e.Add(context.Background(), "feat-x", "")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want KindConflict", apperr.KindOf(err))
	}
}

func TestAddTracksRemoteBranch(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.remoteBranches["feat-x"] = true
	root := t.TempDir()
	e := New(f, root)

	got, err := e.Add(context.Background(), "feat-x", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !got.Tracking {
		t.Error("tracking should be true")
	}
	if !strings.HasSuffix(f.added[0], "|feat-x|origin/feat-x") {
		t.Errorf("base should be the remote branch: %v", f.added)
	}
	if len(f.upstreams) != 1 || f.upstreams[0] != "feat-x" {
		t.Errorf("upstream calls = %v", f.upstreams)
	}
}

func TestAddExplicitBaseSkipsTracking(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.remoteBranches["feat-x"] = true
	f.revs["v1.0"] = true
	e := New(f, t.TempDir())

	got, err := e.Add(context.Background(), "feat-x", "v1.0")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.Tracking {
		t.Error("explicit base must not set up tracking")
	}
	if !strings.HasSuffix(f.added[0], "|feat-x|v1.0") {
		t.Errorf("recorded add = %v", f.added)
	}
}

func TestGoFindsWorktree(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.worktrees = []git.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo/.worktrees/feat-x--11111111", Branch: "feat-x"},
	}
	e := New(f, "/repo")

	got, err := e.Go(context.Background(), "feat-x")
	if err != nil {
		t.Fatalf("Go: %v", err)
	}
	if got.Path != "/repo/.worktrees/feat-x--11111111" {
		t.Errorf("path = %q", got.Path)
	}
}

func TestGoUnknownBranchIsUsage(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.worktrees = []git.Worktree{{Path: "/repo", Branch: "main", IsMain: true}}
	e := New(f, "/repo")

	_, err := e.Go(context.Background(), "nope")
	if apperr.KindOf(err) != apperr.KindUsage {
		t.Fatalf("kind = %v, want KindUsage", apperr.KindOf(err))
	}
}

func TestRemoveDeletesWorktreeAndBranch(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.worktrees = []git.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo/.worktrees/feat-x--11111111", Branch: "feat-x"},
	}
	e := New(f, "/repo")

	got, err := e.Remove(context.Background(), "feat-x", "/repo", false)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got.RemovedPath != "/repo/.worktrees/feat-x--11111111" {
		t.Errorf("removed path = %q", got.RemovedPath)
	}
	if got.Warning != "" {
		t.Errorf("unexpected warning %q", got.Warning)
	}
	if len(f.removed) != 1 || len(f.deleted) != 1 {
		t.Errorf("removed=%v deleted=%v", f.removed, f.deleted)
	}
	if f.deleted[0] != "feat-x|force=false" {
		t.Errorf("deleted = %v", f.deleted)
	}
}

func TestRemoveMainWorktreeRefused(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.worktrees = []git.Worktree{{Path: "/repo", Branch: "main", IsMain: true}}
	e := New(f, "/repo")

	_, err := e.Remove(context.Background(), "main", "/repo", false)
	if apperr.KindOf(err) != apperr.KindInvariant {
		t.Fatalf("kind = %v, want KindInvariant", apperr.KindOf(err))
	}
	if len(f.removed) != 0 {
		t.Error("nothing should be removed")
	}
}

func TestRemoveResolvesFromCwd(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.worktrees = []git.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo/.worktrees/feat-x--11111111", Branch: "feat-x"},
	}
	e := New(f, "/repo")

	got, err := e.Remove(context.Background(), "", "/repo/.worktrees/feat-x--11111111/src", false)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got.Branch != "feat-x" {
		t.Errorf("branch = %q, want feat-x", got.Branch)
	}
}

func TestRemoveBranchDeleteFailureIsWarning(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.worktrees = []git.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo/.worktrees/feat-x--11111111", Branch: "feat-x"},
	}
	f.deleteErr["feat-x"] = apperr.Conflict("the branch 'feat-x' is not fully merged")
	e := New(f, "/repo")

	got, err := e.Remove(context.Background(), "feat-x", "/repo", false)
	if err != nil {
		t.Fatalf("Remove should succeed with warning, got %v", err)
	}
	if !strings.Contains(got.Warning, "branch deletion failed") {
		t.Errorf("warning = %q", got.Warning)
	}
}

func TestRemoveWorktreeFailurePropagates(t *testing.T) {
	t.Parallel()

	f := newFakeGit()
	f.worktrees = []git.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo/.worktrees/feat-x--11111111", Branch: "feat-x"},
	}
	f.removeErr["/repo/.worktrees/feat-x--11111111"] = apperr.Conflict("dirty worktree")
	e := New(f, "/repo")

	_, err := e.Remove(context.Background(), "feat-x", "/repo", false)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want KindConflict", apperr.KindOf(err))
	}
	if len(f.deleted) != 0 {
		t.Error("branch must survive a failed worktree removal")
	}
}

func TestResolveFromCwdLongestPrefixWins(t *testing.T) {
	t.Parallel()

	worktrees := []git.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo/.worktrees/feat-x--11111111", Branch: "feat-x"},
	}

	got, err := ResolveFromCwd(worktrees, "/repo/.worktrees/feat-x--11111111/deep/dir")
	if err != nil {
		t.Fatalf("ResolveFromCwd: %v", err)
	}
	if got != "feat-x" {
		t.Errorf("branch = %q, want feat-x", got)
	}

	got, err = ResolveFromCwd(worktrees, "/repo/src")
	if err != nil {
		t.Fatalf("ResolveFromCwd: %v", err)
	}
	if got != "main" {
		t.Errorf("branch = %q, want main", got)
	}
}

func TestResolveFromCwdOutsideAnyWorktree(t *testing.T) {
	t.Parallel()

	worktrees := []git.Worktree{{Path: "/repo", Branch: "main", IsMain: true}}

	_, err := ResolveFromCwd(worktrees, "/elsewhere")
	if apperr.KindOf(err) != apperr.KindUsage {
		t.Fatalf("kind = %v, want KindUsage", apperr.KindOf(err))
	}

	// Sibling with a shared string prefix is not a path prefix.
	_, err = ResolveFromCwd(worktrees, "/repo-other")
	if apperr.KindOf(err) != apperr.KindUsage {
		t.Fatalf("kind = %v, want KindUsage for sibling dir", apperr.KindOf(err))
	}
}

func TestResolveFromCwdDetachedWorktree(t *testing.T) {
	t.Parallel()

	worktrees := []git.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo/.worktrees/d--22222222", Branch: ""},
	}

	_, err := ResolveFromCwd(worktrees, "/repo/.worktrees/d--22222222")
	if err == nil || !strings.Contains(err.Error(), "no branch") {
		t.Fatalf("err = %v, want no-branch usage error", err)
	}
}
