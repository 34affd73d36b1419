package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiagLevel grades a doctor finding.
type DiagLevel int

const (
	LevelOk DiagLevel = iota
	LevelWarn
	LevelError
)

func (l DiagLevel) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "ok"
	}
}

// Diagnostic is one doctor finding.
type Diagnostic struct {
	Level   DiagLevel
	Message string
}

// Doctor inspects the .worktrees directory for drift between the
// filesystem and git's worktree registry: directories git no longer
// tracks, and worktrees stuck on a detached HEAD.
func (e *Engine) Doctor(ctx context.Context) ([]Diagnostic, error) {
	dir := e.WorktreesDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []Diagnostic{{LevelOk, "no .worktrees directory (no worktrees created yet)"}}, nil
	}

	worktrees, err := e.git.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	tracked := make(map[string]bool, len(worktrees))
	for _, wt := range worktrees {
		tracked[filepath.Clean(wt.Path)] = true
	}

	var diags []Diagnostic

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if !tracked[filepath.Clean(p)] {
			diags = append(diags, Diagnostic{
				LevelWarn, fmt.Sprintf("orphaned directory not tracked by git: %s", p)})
		}
	}

	for _, wt := range worktrees {
		if !wt.IsMain && wt.Branch == "" {
			diags = append(diags, Diagnostic{
				LevelWarn, fmt.Sprintf("worktree has no branch (detached HEAD): %s", wt.Path)})
		}
	}

	if len(diags) == 0 {
		diags = append(diags, Diagnostic{LevelOk, "all worktrees healthy"})
	}
	return diags, nil
}
