// Package branch converts free-form git branch names into collision-safe
// directory names for the .worktrees/ layout.
package branch

import "fmt"

// Name is a git branch name. It may contain path separators
// (e.g. "feature/auth").
type Name string

func (n Name) String() string { return string(n) }

// DirName returns the on-disk directory name for the branch.
//
// Format: <slug>--<8 hex>, e.g. "feature/auth" -> "feature-auth--a1b2c3d4".
// The hash is computed over the original name, so two branches that
// slugify identically still get distinct directories. A name consisting
// entirely of non-alphanumeric characters slugifies to the empty string
// and yields "--<8 hex>"; the hash alone keeps it unique.
func (n Name) DirName() string {
	return fmt.Sprintf("%s--%s", slugify(string(n)), hash8(string(n)))
}

// slugify lowercases ASCII alphanumerics and collapses every other run
// of characters into a single hyphen, trimming hyphens at both edges.
func slugify(input string) string {
	out := make([]byte, 0, len(input))
	prevHyphen := true // suppress leading hyphen
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			out = append(out, c)
			prevHyphen = false
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
			prevHyphen = false
		default:
			if !prevHyphen {
				out = append(out, '-')
				prevHyphen = true
			}
		}
	}
	if len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}

// hash8 returns the low 32 bits of the FNV-1a hash of input as 8 hex
// digits. FNV is stable across runs and platforms, which is all that is
// needed here; collisions only matter for equal slugs, where the full
// name already differs.
func hash8(input string) string {
	h := uint64(0xcbf29ce484222325)
	for i := 0; i < len(input); i++ {
		h ^= uint64(input[i])
		h *= 0x100000001b3
	}
	return fmt.Sprintf("%08x", uint32(h))
}
