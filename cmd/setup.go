package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cdd/internal/config"
	"github.com/fakeyudi/cdd/internal/profile"
	"github.com/fakeyudi/cdd/internal/shell"
)

func newSetupCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure cdd defaults and install the shell wrapper (re-run anytime to edit)",
		Args:  cobra.NoArgs,
		// Bypass the root PersistentPreRunE so setup can repair a broken config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), o.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runSetup runs the interactive setup wizard and saves the global config.
func runSetup(in io.Reader, out io.Writer) error {
	existing, err := config.LoadGlobal()
	if err != nil {
		slog.Warn("ignoring unreadable config", "err", err)
		existing = nil
	}

	prof, err := profile.RunSetup(in, out, existing)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	path, err := config.SaveGlobal(&prof.Config)
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(out, "  ✓ Config saved to %s\n", path)

	if prof.InstallPlugin && prof.Shell != "" {
		if _, err := shell.Install(out, prof.Shell); err != nil {
			fmt.Fprintf(out, "  ⚠ Plugin install failed: %v\n", err)
			fmt.Fprintln(out, "    You can retry with: cdd setup")
		}
	}

	fmt.Fprintln(out, "  Setup complete. Run 'cdd ?' to see your directory history.")
	fmt.Fprintln(out)
	return nil
}
