package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPluginsDefineWrapper(t *testing.T) {
	for _, sh := range []string{"bash", "zsh"} {
		src, err := Plugin(sh)
		if err != nil {
			t.Fatalf("Plugin(%q): %v", sh, err)
		}
		for _, want := range []string{"cdd() {", "dirs -l -p", "command cdd --shell " + sh, "eval"} {
			if !strings.Contains(src, want) {
				t.Errorf("%s plugin missing %q", sh, want)
			}
		}
	}
	src, err := Plugin("cmd")
	if err != nil || !strings.Contains(src, "cdd.exe --shell cmd") {
		t.Errorf("cmd plugin: %v", err)
	}
}

func TestPluginUnsupported(t *testing.T) {
	if _, err := Plugin("fish"); !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("expected ErrUnsupportedShell, got %v", err)
	}
}

func TestInstall(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	if IsInstalled("bash") {
		t.Fatal("plugin should not exist yet")
	}

	var out bytes.Buffer
	path, err := Install(&out, "bash")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(tmp, "cdd", "cdd.plugin.bash"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != BashPlugin {
		t.Errorf("plugin content mismatch: %v", err)
	}
	if !IsInstalled("bash") {
		t.Error("IsInstalled should report true after Install")
	}
	if !strings.Contains(out.String(), "~/.bashrc") || !strings.Contains(out.String(), "source "+path) {
		t.Errorf("unexpected instructions:\n%s", out.String())
	}
}

func TestInstallCmd(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	var out bytes.Buffer
	path, err := Install(&out, "cmd")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "cdd.cmd" {
		t.Errorf("path = %q", path)
	}
	if !strings.Contains(out.String(), "PATH") {
		t.Errorf("unexpected instructions:\n%s", out.String())
	}
}

func TestInstallUnsupported(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := Install(&bytes.Buffer{}, "fish"); !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("expected ErrUnsupportedShell, got %v", err)
	}
}
