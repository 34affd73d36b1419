package git

import "strings"

// Worktree is one entry from `git worktree list --porcelain`.
type Worktree struct {
	Path string
	// Branch is empty for a detached HEAD.
	Branch string
	// Commit is the short (7 char) head commit id.
	Commit string
	IsMain bool
}

// rawEntry is a porcelain block before bare filtering and main marking.
type rawEntry struct {
	path   string
	commit string
	branch string
	bare   bool
}

// parseWorktrees parses `git worktree list --porcelain` output.
//
// Blocks are separated by blank lines; the final block may lack a
// trailing separator. Bare entries are dropped. The first surviving
// entry is the main worktree by git's own contract (it always lists the
// main worktree first), so IsMain comes from position rather than path
// comparison, which breaks under symlink canonicalization differences.
func parseWorktrees(raw string) []Worktree {
	var worktrees []Worktree
	for _, block := range strings.Split(raw, "\n\n") {
		entry, ok := parseBlock(block)
		if !ok || entry.bare {
			continue
		}
		worktrees = append(worktrees, Worktree{
			Path:   entry.path,
			Branch: entry.branch,
			Commit: entry.commit,
			IsMain: len(worktrees) == 0,
		})
	}
	return worktrees
}

// parseBlock classifies each line of a block by its prefix tag.
// A block without a worktree line is not an entry.
func parseBlock(block string) (rawEntry, bool) {
	var entry rawEntry
	seenPath := false

	for _, line := range strings.Split(block, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			entry.path = strings.TrimPrefix(line, "worktree ")
			seenPath = true
		case strings.HasPrefix(line, "HEAD "):
			head := strings.TrimPrefix(line, "HEAD ")
			if len(head) > 7 {
				head = head[:7]
			}
			entry.commit = head
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			entry.branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "bare":
			entry.bare = true
		}
	}
	return entry, seenPath
}
