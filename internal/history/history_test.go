package history

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileStartsFresh(t *testing.T) {
	t.Parallel()

	h := LoadFrom(filepath.Join(t.TempDir(), "history.json"))
	if h.Last("/repo") != "" {
		t.Errorf("fresh history returned %q", h.Last("/repo"))
	}
}

func TestRecordAndReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wt", "history.json")

	h := LoadFrom(path)
	h.Record("/repo", "feat-x")
	h.Record("/other", "fix-y")

	reloaded := LoadFrom(path)
	if got := reloaded.Last("/repo"); got != "feat-x" {
		t.Errorf("Last(/repo) = %q, want feat-x", got)
	}
	if got := reloaded.Last("/other"); got != "fix-y" {
		t.Errorf("Last(/other) = %q, want fix-y", got)
	}
}

func TestRecordOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	h := LoadFrom(path)
	h.Record("/repo", "feat-x")
	h.Record("/repo", "feat-y")

	if got := LoadFrom(path).Last("/repo"); got != "feat-y" {
		t.Errorf("Last = %q, want feat-y", got)
	}
}

func TestLoadCorruptedFileStartsFresh(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := LoadFrom(path)
	if h.Last("/repo") != "" {
		t.Error("corrupted file should start fresh")
	}
	h.Record("/repo", "feat-x")
	if got := LoadFrom(path).Last("/repo"); got != "feat-x" {
		t.Errorf("Last = %q after recovery, want feat-x", got)
	}
}
