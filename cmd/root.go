package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cdd/internal/config"
)

// Version is stamped at build time with -ldflags "-X github.com/fakeyudi/cdd/cmd.Version=...".
var Version = "dev"

const helpTip = "Use --help to see possible options"

const longHelp = `cdd navigates the shell's pushd/popd directory stack. The shell wrapper
(see "cdd init") pipes "dirs -l -p" into cdd and evaluates the commands it
prints on stdout; history and diagnostics go to stderr.

FREEFORM_OPTIONS:

  {-|+|,|?}?              Show directory history (backwards '-', forwards '+',
                          most common ',' or '?')
  {-|+|,|?}? n            Show history limited to n entries (0 shows all)
  PATH_SPEC               Change to PATH_SPEC using the default direction
  {-|+|,} PATH_SPEC       Change to PATH_SPEC using the given direction

PATH_SPEC is an existing directory or file, an offset (-N, +N, ,N or a bare
number), a run of '-', '+' or ',' characters, or a case-insensitive regular
expression matched against the history.

Default options can be set in the CDD_OPTIONS environment variable, for
example CDD_OPTIONS="--direction=, --limit-common=20".`

// rootOptions holds the root command's flags and the merged configuration,
// populated in PersistentPreRunE.
type rootOptions struct {
	history    bool
	path       string
	gc         bool
	del        bool
	reset      bool
	debugInput string
	verbose    bool

	cfg config.Resolved
}

// NewRootCmd builds the cdd command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:           "cdd [NAMED_OPTIONS] [FREEFORM_OPTIONS]",
		Short:         "Navigate and manage the shell's directory history",
		Long:          longHelp,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), o.verbose)
			return o.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	f := root.Flags()
	f.BoolVar(&o.history, "history", false, "show directory history depending on the direction")
	f.StringVar(&o.path, "path", "", "change to PATH_SPEC (number or regular expression pattern)")
	f.BoolVar(&o.gc, "gc", false, "garbage collect by minimizing the directory stack")
	f.BoolVar(&o.del, "del", false, "remove the directory matching PATH_SPEC from history")
	f.BoolVar(&o.del, "delete", false, "same as --del")
	f.BoolVar(&o.reset, "reset", false, "reset the directory stack, clearing all history")

	pf := root.PersistentFlags()
	config.RegisterFlags(pf)
	pf.StringVar(&o.debugInput, "debug-input", "", "read the directory stack from `file` instead of stdin")
	pf.BoolVar(&o.verbose, "verbose", false, "log debug information to stderr")

	root.AddCommand(newInitCmd(o), newSetupCmd(o), newPickCmd(o))
	return root
}

// loadConfig merges the global config file, CDD_OPTIONS and the command line.
func (o *rootOptions) loadConfig(cmd *cobra.Command) error {
	global, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	env, err := config.ParseOptions(os.Getenv(config.EnvOptions))
	if err != nil {
		return optionsError(err)
	}
	flags, err := config.FromFlags(cmd.Flags())
	if err != nil {
		return optionsError(&config.OptionsError{Source: "on command line", Err: err})
	}

	o.cfg = config.Merge(global, env, flags).Resolve()
	slog.Debug("configuration loaded",
		"direction", o.cfg.Direction,
		"limits", o.cfg.Limits,
		"all", o.cfg.All,
		"shell", o.cfg.Shell,
		"format", o.cfg.Format)
	return nil
}

func optionsError(err error) error {
	return fmt.Errorf("** %w\n%s", err, helpTip)
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	root := NewRootCmd()
	root.SetArgs(prepareArgs(root, os.Args[1:]))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
