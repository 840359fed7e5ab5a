// Package profile runs the interactive setup wizard that writes the user's
// global cdd configuration and optionally installs the shell wrapper.
package profile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fakeyudi/cdd/internal/config"
	"github.com/fakeyudi/cdd/internal/direction"
	"github.com/fakeyudi/cdd/internal/resolve"
)

// noDirection is the answer that leaves the default direction unset.
const noDirection = "none"

// Profile is the outcome of the setup wizard.
type Profile struct {
	Config        config.Config
	Shell         string // "zsh" | "bash" | "cmd"
	InstallPlugin bool
}

// RunSetup asks the setup questions on out, reading answers from in.
// If existing is non-nil, its values are the defaults for each prompt.
func RunSetup(in io.Reader, out io.Writer, existing *config.Config) (*Profile, error) {
	r := bufio.NewReader(in)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Fprintf(out, "%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Fprintf(out, "%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	askBool := func(prompt string, defaultVal bool) (bool, error) {
		def := "n"
		if defaultVal {
			def = "y"
		}
		ans, err := ask(prompt+" (y/n)", def)
		if err != nil {
			return false, err
		}
		return strings.ToLower(ans) == "y" || strings.ToLower(ans) == "yes", nil
	}

	prof := &Profile{InstallPlugin: true}
	if existing != nil {
		prof.Config = *existing
	}
	cfg := &prof.Config

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  ┌─────────────────────────────────┐")
	fmt.Fprintln(out, "  │      cdd  first-time setup      │")
	fmt.Fprintln(out, "  └─────────────────────────────────┘")
	fmt.Fprintln(out)

	// "none" stores no direction, so a bare number or "?" picks its own view.
	for {
		dir, err := ask("  Default direction (- recent, + oldest, , most visited, none)", orDefault(cfg.Direction, noDirection))
		if err != nil {
			return nil, err
		}
		if dir == noDirection {
			cfg.Direction = ""
			break
		}
		if direction.Valid(dir) {
			cfg.Direction = dir
			break
		}
		fmt.Fprintf(out, "  ✗ %q is not one of - + , none\n", dir)
	}

	for {
		def := resolve.DefaultLimit
		if cfg.LimitBackwards != nil {
			def = *cfg.LimitBackwards
		}
		ans, err := ask("  Directories to show per view (0 = all)", strconv.Itoa(def))
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(ans)
		if convErr == nil && n >= 0 {
			b, f, c := n, n, n
			cfg.LimitBackwards, cfg.LimitForwards, cfg.LimitCommon = &b, &f, &c
			break
		}
		fmt.Fprintf(out, "  ✗ %q is not a number\n", ans)
	}

	var err error
	prof.InstallPlugin, err = askBool("  Install the cdd shell wrapper", prof.InstallPlugin)
	if err != nil {
		return nil, err
	}

	if prof.InstallPlugin {
		prof.Shell, err = ask("  Shell (zsh/bash/cmd)", orDefault(cfg.Shell, DetectShell()))
		if err != nil {
			return nil, err
		}
		cfg.Shell = prof.Shell
	}

	fmt.Fprintln(out)
	return prof, nil
}

// DetectShell returns the base name of the current shell.
func DetectShell() string {
	shell := filepath.Base(os.Getenv("SHELL"))
	if shell == "zsh" || shell == "bash" {
		return shell
	}
	if os.Getenv("ComSpec") != "" {
		return "cmd"
	}
	return "bash"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
