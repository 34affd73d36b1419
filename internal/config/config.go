// Package config loads the wt configuration file.
//
// The file lives at $XDG_CONFIG_HOME/wt/config.toml (or the platform
// equivalent reported by os.UserConfigDir). A missing file is not an
// error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Hook defines a user command run after a lifecycle operation.
type Hook struct {
	Command string   `toml:"command"`
	On      []string `toml:"on"` // operations this hook runs after ("add", "remove", "all")
}

// Config holds the wt configuration.
type Config struct {
	// Remote is the remote used for tracking detection, mainline
	// resolution and push. Multi-remote priority is out of scope; wt
	// consults exactly one remote.
	Remote string `toml:"remote"`
	// Mainline, when set, overrides automatic mainline detection for
	// prune and merge (the --mainline flag still wins).
	Mainline string          `toml:"mainline"`
	Hooks    map[string]Hook `toml:"hooks"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{Remote: "origin"}
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config dir: %w", err)
	}
	return filepath.Join(dir, "wt", "config.toml"), nil
}

// Load reads the config file, falling back to defaults when it does not
// exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	return cfg, nil
}
