package worktree

import (
	"context"
	"fmt"

	"github.com/kioku/wt/internal/branch"
	"github.com/kioku/wt/internal/git"
)

// fakeGit is an in-memory Git implementation. Maps answer queries;
// slices record mutating calls for assertions.
type fakeGit struct {
	remote    string
	worktrees []git.Worktree
	listErr   error

	branches       map[string]bool
	remoteBranches map[string]bool
	revs           map[string]bool
	ancestors      map[string]bool // "branch->mainline"
	cherryEq       map[string]bool // "mainline<-branch"
	mainline       string
	mainlineErr    error

	addErr      error
	removeErr   map[string]error // keyed by dir
	deleteErr   map[string]error // keyed by branch
	upstreamErr error
	mergeErr    error
	pushErr     error

	added     []string
	removed   []string
	deleted   []string
	upstreams []string
	merges    []string
	aborts    int
	pushes    []string
}

func newFakeGit() *fakeGit {
	return &fakeGit{
		remote:         "origin",
		branches:       map[string]bool{},
		remoteBranches: map[string]bool{},
		revs:           map[string]bool{},
		ancestors:      map[string]bool{},
		cherryEq:       map[string]bool{},
		removeErr:      map[string]error{},
		deleteErr:      map[string]error{},
		mainline:       "main",
	}
}

func (f *fakeGit) Remote() string { return f.remote }

func (f *fakeGit) ListWorktrees(context.Context) ([]git.Worktree, error) {
	return f.worktrees, f.listErr
}

func (f *fakeGit) AddWorktree(_ context.Context, dir string, b branch.Name, base string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, fmt.Sprintf("%s|%s|%s", dir, b, base))
	return nil
}

func (f *fakeGit) RemoveWorktree(_ context.Context, dir string, force bool) error {
	if err := f.removeErr[dir]; err != nil {
		return err
	}
	f.removed = append(f.removed, fmt.Sprintf("%s|force=%t", dir, force))
	return nil
}

func (f *fakeGit) DeleteBranch(_ context.Context, b branch.Name, force bool) error {
	if err := f.deleteErr[b.String()]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, fmt.Sprintf("%s|force=%t", b, force))
	return nil
}

func (f *fakeGit) BranchExists(_ context.Context, b branch.Name) bool {
	return f.branches[b.String()]
}

func (f *fakeGit) RemoteBranchExists(_ context.Context, b branch.Name) bool {
	return f.remoteBranches[b.String()]
}

func (f *fakeGit) RevExists(_ context.Context, rev string) bool {
	return f.revs[rev]
}

func (f *fakeGit) IsAncestor(_ context.Context, branchRef, mainline string) bool {
	return f.ancestors[branchRef+"->"+mainline]
}

func (f *fakeGit) Cherry(_ context.Context, mainline, branchRef string) bool {
	return f.cherryEq[mainline+"<-"+branchRef]
}

func (f *fakeGit) ResolveMainline(context.Context) (string, error) {
	return f.mainline, f.mainlineErr
}

func (f *fakeGit) SetUpstream(_ context.Context, b branch.Name) error {
	if f.upstreamErr != nil {
		return f.upstreamErr
	}
	f.upstreams = append(f.upstreams, b.String())
	return nil
}

func (f *fakeGit) MergeNoFF(_ context.Context, branchName string) error {
	if f.mergeErr != nil {
		return f.mergeErr
	}
	f.merges = append(f.merges, branchName)
	return nil
}

func (f *fakeGit) MergeAbort(context.Context) { f.aborts++ }

func (f *fakeGit) Push(_ context.Context, branchName string) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushes = append(f.pushes, branchName)
	return nil
}
