// Package hooks runs user-configured shell commands after worktree
// lifecycle events.
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kioku/wt/internal/config"
	"github.com/kioku/wt/internal/log"
)

// Trigger identifies the command firing the hook.
type Trigger string

const (
	TriggerAdd    Trigger = "add"
	TriggerRemove Trigger = "remove"
	TriggerMerge  Trigger = "merge"
	TriggerPrune  Trigger = "prune"
)

// Context holds the values substituted into hook commands and exported
// to the hook's environment.
type Context struct {
	// Path is the absolute worktree path.
	Path    string
	Branch  string
	Repo    string
	Trigger Trigger
}

// Match is a configured hook selected to run.
type Match struct {
	Name string
	Hook config.Hook
}

// Select returns the hooks whose "on" list contains the trigger. The
// value "all" matches every trigger; a hook without an "on" list never
// fires.
func Select(hooks map[string]config.Hook, trigger Trigger) []Match {
	var matches []Match
	for name, hook := range hooks {
		if matchesTrigger(hook, trigger) {
			matches = append(matches, Match{Name: name, Hook: hook})
		}
	}
	return matches
}

func matchesTrigger(hook config.Hook, trigger Trigger) bool {
	for _, on := range hook.On {
		if on == "all" || on == string(trigger) {
			return true
		}
	}
	return false
}

// RunAll runs every matched hook with workDir as the working
// directory. For add that is the new worktree; removal-style triggers
// pass the repository root because the worktree directory is gone.
// Hook failures never fail the triggering command; they come back as
// warnings.
func RunAll(ctx context.Context, matches []Match, hctx Context, workDir string) []string {
	var warnings []string
	for _, match := range matches {
		log.FromContext(ctx).Printf("running hook '%s'\n", match.Name)
		if err := run(match, hctx, workDir); err != nil {
			warnings = append(warnings, fmt.Sprintf("hook '%s' failed: %v", match.Name, err))
		}
	}
	return warnings
}

func run(match Match, hctx Context, workDir string) error {
	command := substitute(match.Hook.Command, hctx)

	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = workDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		"WT_BRANCH="+hctx.Branch,
		"WT_WORKTREE_DIR="+hctx.Path,
		"WT_REPO_DIR="+hctx.Repo,
		"WT_TRIGGER="+string(hctx.Trigger),
	)
	return cmd.Run()
}

// substitute expands {path}, {branch}, {repo} and {trigger}
// placeholders. Values are shell-quoted so branch names and paths with
// spaces or quotes cannot break out of the command.
func substitute(command string, hctx Context) string {
	replacements := [][2]string{
		{"{path}", shellQuote(hctx.Path)},
		{"{branch}", shellQuote(hctx.Branch)},
		{"{repo}", shellQuote(hctx.Repo)},
		{"{trigger}", shellQuote(string(hctx.Trigger))},
	}
	for _, r := range replacements {
		command = strings.ReplaceAll(command, r[0], r[1])
	}
	return command
}

// shellQuote single-quotes s for sh. Embedded single quotes close the
// string, emit an escaped quote and reopen: it's -> 'it'\''s'.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
