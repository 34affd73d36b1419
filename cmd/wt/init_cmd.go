package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kioku/wt/internal/output"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Output shell wrapper function",
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.ExactArgs(1),
		Long: `Output a shell wrapper function that makes 'wt go' change directories.

A subprocess cannot change its parent shell's directory, so 'wt go'
only prints the path. The wrapper intercepts 'wt go' and performs the
actual cd.`,
		Example: `  eval "$(wt init bash)"           # add to ~/.bashrc
  eval "$(wt init zsh)"            # add to ~/.zshrc
  wt init fish | source            # add to ~/.config/fish/config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := output.FromContext(cmd.Context())
			switch args[0] {
			case "bash":
				p.Print(bashInit)
			case "zsh":
				p.Print(zshInit)
			case "fish":
				p.Print(fishInit)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", args[0])
			}
			return nil
		},
	}

	return cmd
}

const bashInit = `# wt shell wrapper
# Install: eval "$(wt init bash)"

wt() {
    if [[ "$1" == "go" ]]; then
        shift
        local dir
        dir="$(command wt go --print-cd-path "$@")" && cd "$dir"
    else
        command wt "$@"
    fi
}
`

const zshInit = `# wt shell wrapper
# Install: eval "$(wt init zsh)"

wt() {
    if [[ "$1" == "go" ]]; then
        shift
        local dir
        dir="$(command wt go --print-cd-path "$@")" && cd "$dir"
    else
        command wt "$@"
    fi
}
`

const fishInit = `# wt shell wrapper
# Install: wt init fish | source
# Or add to config.fish: wt init fish | source

function wt --wraps=wt --description 'Git worktree manager'
    if test (count $argv) -gt 0 -a "$argv[1]" = "go"
        set -e argv[1]
        set -l dir (command wt go --print-cd-path $argv)
        and cd $dir
    else
        command wt $argv
    end
end
`
