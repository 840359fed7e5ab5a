package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/cdd/internal/config"
	"github.com/fakeyudi/cdd/internal/format"
	"github.com/fakeyudi/cdd/internal/history"
	"github.com/fakeyudi/cdd/internal/pathnorm"
	"github.com/fakeyudi/cdd/internal/render"
	"github.com/fakeyudi/cdd/internal/resolve"
	"github.com/fakeyudi/cdd/internal/stack"
)

// errNoDeletePath is returned for --del without a path specification.
var errNoDeletePath = errors.New("** No path indicated for delete")

// run interprets the freeform words and performs the requested action:
// gc, delete, reset, change directory or show history, in that order.
func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	req := &request{limits: o.cfg.Limits, all: o.cfg.All, history: o.history}
	if o.cfg.Direction != "" {
		if err := req.dir.Assign(o.cfg.Direction); err != nil {
			return optionsError(err)
		}
	}
	if o.path != "" {
		req.setPath(o.path)
	}

	words := args
	if o.del && req.path == "" && len(words) == 0 {
		return errNoDeletePath
	}
	if len(words) == 0 && !o.history && req.path == "" && !o.gc && !o.del && !o.reset {
		words = strings.Fields(o.cfg.Action)
	}
	if err := req.interpret(words); err != nil {
		return err
	}
	req.dir.Fallback(config.DefaultDirection)

	env, err := newRunEnv(cmd, o.debugInput, o.cfg)
	if err != nil {
		return err
	}
	opts := resolve.Options{Direction: req.dir, Limits: req.limits, ShowAll: req.all}
	slog.Debug("request", "direction", req.dir.String(), "path", req.path, "history", req.history)

	switch {
	case o.gc:
		return env.gc()
	case o.del:
		return env.delete(req.path, opts)
	case o.reset:
		return env.reset()
	case req.path != "":
		return env.change(req.path, opts)
	default:
		return env.history(opts)
	}
}

// runEnv is everything one invocation works with: the history built from the
// shell's stack and the renderer for that shell.
type runEnv struct {
	cfg      config.Resolved
	norm     pathnorm.Normalizer
	model    *history.Model
	resolver *resolve.Resolver
	renderer render.Renderer
	current  string
	pushed   int // entries read from the shell, before the current directory is added
	stdout   io.Writer
	stderr   io.Writer
}

func newRunEnv(cmd *cobra.Command, debugInput string, cfg config.Resolved) (*runEnv, error) {
	renderer, err := render.ForShell(cfg.Shell)
	if err != nil {
		return nil, optionsError(err)
	}
	dirs, err := readStack(cmd.InOrStdin(), debugInput)
	if err != nil {
		return nil, err
	}
	current, err := os.Getwd()
	if err != nil {
		slog.Warn("cannot determine working directory", "err", err)
		current = ""
	}

	e := &runEnv{
		cfg:      cfg,
		norm:     pathnorm.Default().WithSeparator(cfg.Separator),
		renderer: renderer,
		current:  current,
		pushed:   len(dirs),
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
	}
	// cmd.exe lists only the pushed directories, not the current one.
	if e.isCmd() && current != "" {
		dirs = append([]string{current}, dirs...)
	}
	e.model = history.Build(dirs, current, e.norm)
	e.resolver = resolve.New(e.model, e.norm)
	slog.Debug("directory stack loaded", "entries", len(dirs), "current", current)
	return e, nil
}

// readStack reads the directory stack from debugInput when set, otherwise
// from in. A terminal on stdin means no stack was piped in.
func readStack(in io.Reader, debugInput string) ([]string, error) {
	if debugInput != "" {
		slog.Debug("using file instead of stdin", "path", debugInput)
		return stack.ReadFile(debugInput)
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(f.Fd()) {
		slog.Debug("stdin is a terminal, no directory stack")
		return nil, nil
	}
	return stack.Read(in)
}

func (e *runEnv) isCmd() bool {
	_, ok := e.renderer.(render.Cmd)
	return ok
}

func (e *runEnv) plan(dirs []string, skip string) render.Plan {
	p := render.Plan{Dirs: dirs, Skip: skip}
	if e.isCmd() {
		p.Current = e.norm.ToNative(e.current)
		p.PopCount = e.pushed
	}
	return p
}

func (e *runEnv) change(spec string, opts resolve.Options) error {
	res, err := e.resolver.Resolve(spec, opts)
	if err != nil {
		return err
	}
	slog.Debug("resolved", "spec", spec, "kind", res.Spec.Kind.String(), "target", res.Target)
	if err := e.renderer.Change(e.stdout, res.Target); err != nil {
		return err
	}
	if res.Target != spec || len(res.Alternates) > 0 {
		fmt.Fprintf(e.stderr, "cdd: %s\n", res.Target)
	}
	return format.WriteLines(e.stderr, res.Lines())
}

func (e *runEnv) gc() error {
	if err := e.renderer.Rebuild(e.stdout, e.plan(e.model.ForwardPaths(), "")); err != nil {
		return err
	}
	fmt.Fprintln(e.stderr, "cdd gc")
	return nil
}

func (e *runEnv) delete(spec string, opts resolve.Options) error {
	target, err := e.resolver.ResolveDelete(spec, opts)
	if err != nil {
		return err
	}
	if err := e.renderer.Rebuild(e.stdout, e.plan(e.model.Reversed(), target)); err != nil {
		return err
	}
	fmt.Fprintf(e.stderr, "cdd del: %s\n", target)
	return nil
}

func (e *runEnv) reset() error {
	if err := e.renderer.Rebuild(e.stdout, e.plan(nil, "")); err != nil {
		return err
	}
	fmt.Fprintln(e.stderr, "cdd reset")
	return nil
}

func (e *runEnv) history(opts resolve.Options) error {
	return format.WriteListing(e.stderr, e.resolver.History(opts), e.cfg.Format)
}
