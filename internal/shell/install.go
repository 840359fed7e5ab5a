// Package shell installs the wrapper that lets cdd change the calling shell's
// directory.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrUnsupportedShell is returned for a shell without a plugin.
var ErrUnsupportedShell = errors.New("unsupported shell for plugin")

// Plugin returns the plugin source for shell.
func Plugin(shell string) (string, error) {
	switch shell {
	case "zsh":
		return ZshPlugin, nil
	case "bash":
		return BashPlugin, nil
	case "cmd":
		return CmdPlugin, nil
	}
	return "", fmt.Errorf("%w: %s (supported: zsh, bash, cmd)", ErrUnsupportedShell, shell)
}

// Dir returns the directory plugins are written to.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cdd"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cdd"), nil
}

// PluginPath returns the path where the plugin file should be written.
func PluginPath(shell string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	name := "cdd.plugin." + shell
	if shell == "cmd" {
		name = "cdd.cmd"
	}
	return filepath.Join(dir, name), nil
}

// Install writes the plugin file for the given shell and prints to w the
// instruction the user needs to activate it.
func Install(w io.Writer, shell string) (string, error) {
	content, err := Plugin(shell)
	if err != nil {
		return "", err
	}
	path, err := PluginPath(shell)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing plugin file: %w", err)
	}

	fmt.Fprintf(w, "\n  ✓ Plugin written to %s\n", path)
	if shell == "cmd" {
		fmt.Fprintf(w, "\n  Add %s to your PATH ahead of cdd.exe.\n\n", filepath.Dir(path))
		return path, nil
	}
	rcFile := rcFileName(shell)
	fmt.Fprintf(w, "\n  Add this line to your %s:\n", rcFile)
	fmt.Fprintf(w, "    source %s\n", path)
	fmt.Fprintf(w, "\n  Then reload: source %s\n\n", rcFile)
	return path, nil
}

// IsInstalled reports whether the plugin file exists on disk.
func IsInstalled(shell string) bool {
	path, err := PluginPath(shell)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func rcFileName(shell string) string {
	switch shell {
	case "zsh":
		return "~/.zshrc"
	case "bash":
		return "~/.bashrc"
	default:
		return "~/." + shell + "rc"
	}
}
