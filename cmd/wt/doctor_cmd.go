package main

import (
	"github.com/spf13/cobra"

	"github.com/kioku/wt/internal/output"
)

type diagnosticJSON struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type doctorResponse struct {
	RepoRoot    string           `json:"repo_root"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

func newDoctorCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check worktree health",
		Long: `Check for drift between the .worktrees directory and git's worktree
registry: orphaned directories git no longer tracks, and worktrees
stuck on a detached HEAD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, err := resolveEngine(ctx)
			if err != nil {
				return err
			}
			diags, err := engine.Doctor(ctx)
			if err != nil {
				return err
			}

			p := output.FromContext(ctx)
			if jsonOut {
				resp := doctorResponse{RepoRoot: engine.Root(), Diagnostics: []diagnosticJSON{}}
				for _, d := range diags {
					resp.Diagnostics = append(resp.Diagnostics, diagnosticJSON{
						Level:   d.Level.String(),
						Message: d.Message,
					})
				}
				return p.JSON(resp)
			}
			for _, d := range diags {
				p.Printf("[%s] %s\n", d.Level, d.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
