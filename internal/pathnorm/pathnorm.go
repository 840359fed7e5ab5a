// Package pathnorm canonicalizes directory paths so that textually different
// spellings of the same directory compare equal.
package pathnorm

import (
	"runtime"
	"strings"
)

// Normalizer holds the path policy for a run. The policy is fixed at
// construction time; nothing about it varies per call.
type Normalizer struct {
	Separator    byte         // native separator, '/' or '\\'
	FoldCase     bool         // compare paths case-insensitively
	DriveLetters bool         // "C:" style paths are their own parent
	Identify     IdentityFunc // nil when the platform has no identity lookup
}

// Default returns the Normalizer for the running platform.
func Default() Normalizer {
	if runtime.GOOS == "windows" {
		return Normalizer{Separator: '\\', FoldCase: true, DriveLetters: true, Identify: Stat}
	}
	return Normalizer{Separator: '/', Identify: Stat}
}

// WithSeparator returns a copy of n using sep as the native separator.
func (n Normalizer) WithSeparator(sep byte) Normalizer {
	if sep != 0 {
		n.Separator = sep
	}
	return n
}

func (n Normalizer) isSep(c byte) bool {
	return c == '/' || c == n.Separator
}

// Key returns the de-duplication key for path. Separators become '/', case is
// folded when the policy asks for it, and one trailing separator is dropped
// unless the whole path is a single-character root.
func (n Normalizer) Key(path string) string {
	var sb strings.Builder
	sb.Grow(len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		if n.isSep(c) {
			c = '/'
		}
		if n.FoldCase && c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if i == len(path)-1 && c == '/' && len(path) > 1 {
			break
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// Identity looks up the filesystem identity of path.
func (n Normalizer) Identity(path string) Identity {
	if n.Identify == nil {
		return Identity{}
	}
	return n.Identify(path)
}

// Equal reports whether the directory with key a and identity aID is the same
// directory as key b. Identities win when both sides have one; otherwise the
// keys are compared as strings.
func (n Normalizer) Equal(a string, aID Identity, b string) bool {
	bID := n.Identity(b)
	if aID.Valid() && bID.Valid() {
		return aID == bID
	}
	return a == b
}

// ToNative rewrites every '/' in path to the native separator.
func (n Normalizer) ToNative(path string) string {
	if n.Separator == '/' || n.Separator == 0 {
		return path
	}
	return strings.ReplaceAll(path, "/", string(n.Separator))
}

// ParentDir returns the directory containing path. A file directly under the
// root yields the root itself; a bare drive-relative name yields the drive.
// A path with no separator is returned unchanged.
func (n Normalizer) ParentDir(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	switch {
	case i == 0:
		return path[:1]
	case i > 0:
		return path[:i]
	}
	if n.DriveLetters && len(path) >= 2 && path[1] == ':' {
		return path[:2]
	}
	return path
}

// ExpandEllipsis rewrites each run of three or more dots that forms a whole
// path segment into parent steps, one fewer than the number of dots:
// "..." becomes "../.." and "a/..../b" becomes "a/../../../b".
func (n Normalizer) ExpandEllipsis(path string) string {
	sep := n.Separator
	if sep == 0 {
		sep = '/'
	}

	var sb strings.Builder
	i := 0
	for i < len(path) {
		if path[i] != '.' || (i > 0 && !n.isSep(path[i-1])) {
			sb.WriteByte(path[i])
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] == '.' {
			j++
		}
		dots := j - i
		if dots < 3 || (j < len(path) && !n.isSep(path[j])) {
			sb.WriteString(path[i:j])
			i = j
			continue
		}
		sb.WriteString("..")
		for k := 2; k < dots; k++ {
			sb.WriteByte(sep)
			sb.WriteString("..")
		}
		i = j
	}
	return sb.String()
}
