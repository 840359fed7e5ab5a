// Package render writes the shell commands that move the caller's shell to a
// directory or rebuild its directory stack.
package render

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
)

// ErrUnknownShell is returned by ForShell for a shell without a renderer.
var ErrUnknownShell = errors.New("unknown shell")

// Plan describes a rebuilt directory stack.
type Plan struct {
	Dirs     []string // pushed in order, so the last one ends up on top
	Skip     string   // entry to leave out, used when deleting
	Current  string   // re-entered after Dirs; cmd.exe only
	PopCount int      // entries to pop before rebuilding; cmd.exe only
}

// Renderer emits commands for one shell family.
type Renderer interface {
	Change(w io.Writer, dir string) error
	Rebuild(w io.Writer, p Plan) error
}

// ForShell returns the renderer for the named shell. An empty name picks the
// platform default.
func ForShell(name string) (Renderer, error) {
	switch strings.ToLower(name) {
	case "":
		if runtime.GOOS == "windows" {
			return Cmd{}, nil
		}
		return Bash{}, nil
	case "bash", "zsh", "sh", "ksh":
		return Bash{}, nil
	case "cmd", "cmd.exe":
		return Cmd{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShell, name)
}

// Bash renders for bash and other shells with a pushd builtin.
type Bash struct{}

func (Bash) Change(w io.Writer, dir string) error {
	_, err := fmt.Fprintf(w, "pushd %s\n", Quote(dir))
	return err
}

// Rebuild clears the stack, cds into the first directory and pushes the rest.
func (Bash) Rebuild(w io.Writer, p Plan) error {
	var sb strings.Builder
	sb.WriteString("dirs -c\n")
	first := true
	for _, dir := range p.Dirs {
		if dir == p.Skip && p.Skip != "" {
			continue
		}
		verb := "pushd"
		if first {
			verb = `\cd`
			first = false
		}
		fmt.Fprintf(&sb, "%s %s\n", verb, Quote(dir))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Quote wraps s in single quotes for a POSIX shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Cmd renders for cmd.exe batch wrappers.
type Cmd struct{}

func (Cmd) Change(w io.Writer, dir string) error {
	_, err := fmt.Fprintf(w, "pushd %s\n", dir)
	return err
}

// Rebuild pops the old stack, then changes into the first directory and
// pushes the rest, ending in the current directory. Missing directories are
// skipped silently.
func (Cmd) Rebuild(w io.Writer, p Plan) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "for /l %%%%i in (1,1,%d) do popd\n", p.PopCount)
	count := 0
	for _, dir := range p.Dirs {
		if dir == p.Skip && p.Skip != "" {
			continue
		}
		fmt.Fprintf(&sb, "%s %s 2>nul\n", cmdVerb(count), dir)
		count++
	}
	if p.Current != "" {
		fmt.Fprintf(&sb, "%s %s\n", cmdVerb(count), p.Current)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func cmdVerb(n int) string {
	if n == 0 {
		return "chdir/d"
	}
	return "pushd"
}
