package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cdd/internal/profile"
	"github.com/fakeyudi/cdd/internal/shell"
)

func newInitCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init [bash|zsh|cmd]",
		Short: "Print the shell wrapper that lets cdd change directories",
		Long: `Print the shell wrapper for the given shell (default: the current one).

  bash:  eval "$(cdd init bash)"
  zsh:   eval "$(cdd init zsh)"`,
		Args: cobra.MaximumNArgs(1),
		// The wrapper is printed before any configuration exists.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), o.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := profile.DetectShell()
			if len(args) == 1 {
				sh = args[0]
			}
			src, err := shell.Plugin(sh)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), src)
			return nil
		},
	}
}
