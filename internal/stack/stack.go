// Package stack reads a shell directory stack, one path per line, in the
// order `dirs -l -p` prints it.
package stack

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxLine bounds a single stack entry.
const maxLine = 64 * 1024

// Read returns the non-blank lines of r with carriage returns trimmed and a
// leading "~" expanded to the home directory.
func Read(r io.Reader) ([]string, error) {
	home, _ := os.UserHomeDir()

	var dirs []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		dirs = append(dirs, expandHome(line, home))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read directory stack: %w", err)
	}
	return dirs, nil
}

// ReadFile reads a stack saved to path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open directory stack: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func expandHome(p, home string) string {
	if home == "" || !strings.HasPrefix(p, "~") {
		return p
	}
	if p == "~" {
		return home
	}
	if p[1] == '/' || p[1] == filepath.Separator {
		return home + p[1:]
	}
	return p
}
