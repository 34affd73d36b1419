// Package cmd provides helpers for executing external commands with
// proper error handling and verbose logging.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/kioku/wt/internal/log"
)

// Runner executes external commands. The zero value is usable.
type Runner struct {
	// DropEnv lists environment variables removed from child processes.
	// Used to keep inherited GIT_* variables (e.g. from git hooks) from
	// redirecting operations to the wrong repository.
	DropEnv []string
}

func (r Runner) command(ctx context.Context, dir, name string, args ...string) *exec.Cmd {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	if len(r.DropEnv) > 0 {
		c.Env = scrubEnv(os.Environ(), r.DropEnv)
	}
	return c
}

// Run executes a command, returning stderr in the error message if it fails.
func (r Runner) Run(ctx context.Context, dir, name string, args ...string) error {
	log.FromContext(ctx).Command(name, args...)

	c := r.command(ctx, dir, name, args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return err
	}
	return nil
}

// Output executes a command and returns trimmed stdout, with stderr in
// the error if it fails.
func (r Runner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	log.FromContext(ctx).Command(name, args...)

	c := r.command(ctx, dir, name, args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	out, err := c.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Succeeds executes a command and reports whether it exited zero.
// Used for commands like `git merge-base --is-ancestor` that communicate
// their result via exit code.
func (r Runner) Succeeds(ctx context.Context, dir, name string, args ...string) bool {
	log.FromContext(ctx).Command(name, args...)

	return r.command(ctx, dir, name, args...).Run() == nil
}

// scrubEnv returns env without any of the listed variables.
func scrubEnv(env, drop []string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		name, _, _ := strings.Cut(kv, "=")
		if !slices.Contains(drop, name) {
			out = append(out, kv)
		}
	}
	return out
}
