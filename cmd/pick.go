package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cdd/internal/config"
	"github.com/fakeyudi/cdd/internal/direction"
	"github.com/fakeyudi/cdd/internal/tui"
)

func newPickCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a directory from history interactively",
		Long: `Open a full-screen picker over the backwards, forwards and most
visited views. The picker is drawn on the terminal, so the chosen directory
is still printed as a shell command on stdout for the wrapper to evaluate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newRunEnv(cmd, o.debugInput, o.cfg)
			if err != nil {
				return err
			}
			var d direction.State
			if o.cfg.Direction != "" {
				if err := d.Assign(o.cfg.Direction); err != nil {
					return optionsError(err)
				}
			}
			d.Fallback(config.DefaultDirection)

			chosen, err := tui.Run(tui.New(env.resolver, d))
			if err != nil {
				return err
			}
			if err := env.renderer.Change(env.stdout, chosen); err != nil {
				return err
			}
			fmt.Fprintf(env.stderr, "cdd: %s\n", chosen)
			return nil
		},
	}
}
