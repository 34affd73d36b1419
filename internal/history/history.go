// Package history remembers the last branch visited with `wt go`,
// per repository, so `wt go -` can jump back.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// History maps repository roots to the branch last visited there.
type History struct {
	LastVisited map[string]string `json:"last_visited"`

	path string
}

func defaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wt", "history.json"), nil
}

// Load reads the history file. A missing or corrupted file starts
// fresh; history is a convenience, never an error source.
func Load() *History {
	path, err := defaultPath()
	if err != nil {
		return &History{LastVisited: map[string]string{}}
	}
	return LoadFrom(path)
}

// LoadFrom reads history from an explicit path.
func LoadFrom(path string) *History {
	h := &History{LastVisited: map[string]string{}, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return h
	}
	if err := json.Unmarshal(data, h); err != nil || h.LastVisited == nil {
		h.LastVisited = map[string]string{}
	}
	h.path = path
	return h
}

// Last returns the branch last visited in the repository at root.
func (h *History) Last(root string) string {
	return h.LastVisited[root]
}

// Record stores branchName as the last visited branch for root and
// saves. Save errors are swallowed for the same reason load errors are.
func (h *History) Record(root, branchName string) {
	h.LastVisited[root] = branchName
	_ = h.save()
}

// save writes via a temp file and rename so a crash cannot leave a
// half-written history.
func (h *History) save() error {
	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}

	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, h.path)
}
