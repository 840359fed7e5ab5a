package resolve

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the shape of a path specification.
type Kind int

const (
	KindDir       Kind = iota // an existing directory
	KindFile                  // an existing file; its parent is the target
	KindNumeric               // bare digits, view chosen by the direction
	KindBackwards             // -N or a run of dashes
	KindForwards              // +N or a run of pluses
	KindCommon                // ,N or a run of commas
	KindPattern               // anything else, searched as a regex
)

var kindNames = [...]string{"dir", "file", "numeric", "backwards", "forwards", "common", "pattern"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Spec is a classified path specification.
type Spec struct {
	Kind Kind
	Text string // the path spec as classified
	N    int    // offset for the numeric and symbolic kinds
}

// Classify sorts spec into its Kind. Filesystem lookups come first, so an
// existing directory named "-" or "2" is always taken literally.
func Classify(spec string, fs FS) Spec {
	if fs.IsDir(spec) {
		return Spec{Kind: KindDir, Text: spec}
	}
	if fs.IsFile(spec) {
		return Spec{Kind: KindFile, Text: spec}
	}
	return classifyToken(spec)
}

func classifyToken(spec string) Spec {
	s := Spec{Kind: KindPattern, Text: spec}
	if spec == "" {
		return s
	}
	if isDigits(spec) {
		s.Kind, s.N = KindNumeric, atoi(spec)
		return s
	}

	head, rest := spec[0], spec[1:]
	var kind Kind
	switch head {
	case '-':
		kind = KindBackwards
	case '+':
		kind = KindForwards
	case ',':
		kind = KindCommon
	default:
		return s
	}

	switch {
	case isDigits(rest):
		s.Kind, s.N = kind, atoi(rest)
	case allOf(spec, head):
		// A run of dashes counts from one; pluses and commas from zero.
		s.Kind, s.N = kind, len(spec)
		if kind != KindBackwards {
			s.N--
		}
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allOf(s string, c byte) bool {
	return strings.Trim(s, string(c)) == ""
}

// atoi parses a digit string, saturating instead of failing on overflow so
// that a huge offset is simply out of range.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt
	}
	return n
}
