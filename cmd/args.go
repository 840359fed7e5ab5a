package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fakeyudi/cdd/internal/direction"
	"github.com/fakeyudi/cdd/internal/resolve"
)

// prepareArgs rearranges args so flag parsing leaves freeform tokens such as
// "-3", "--" or "-?" alone: they are moved behind a "--" terminator in their
// original order. Invocations of a subcommand are passed through untouched.
func prepareArgs(root *cobra.Command, args []string) []string {
	var flags, freeform []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case strings.HasPrefix(a, "--") && strings.Trim(a, "-") != "":
			flags = append(flags, a)
			if !strings.Contains(a, "=") && takesValue(lookupFlag(root, a[2:])) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		case len(a) >= 2 && a[0] == '-' && isLetter(a[1]):
			flags = append(flags, a)
			if len(a) == 2 && takesValue(lookupShorthand(root, a[1:])) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			freeform = append(freeform, a)
		}
	}

	if len(freeform) == 0 {
		return flags
	}
	if isSubcommand(root, freeform[0]) {
		return append(flags, freeform...)
	}
	return append(append(flags, "--"), freeform...)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func lookupFlag(c *cobra.Command, name string) *pflag.Flag {
	if f := c.Flags().Lookup(name); f != nil {
		return f
	}
	return c.PersistentFlags().Lookup(name)
}

func lookupShorthand(c *cobra.Command, name string) *pflag.Flag {
	if f := c.Flags().ShorthandLookup(name); f != nil {
		return f
	}
	return c.PersistentFlags().ShorthandLookup(name)
}

func takesValue(f *pflag.Flag) bool {
	return f != nil && f.NoOptDefVal == ""
}

func isSubcommand(root *cobra.Command, name string) bool {
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// request is the action a run was asked to perform.
type request struct {
	dir     direction.State
	history bool
	path    string
	limits  resolve.Limits
	all     bool
}

// setPath records the path specification. A spec starting with an integer
// picks the direction itself unless one was given: forwards when
// non-negative, backwards otherwise. Text after the digits is ignored, so
// "2proj" searches forwards.
func (r *request) setPath(spec string) {
	r.path = spec
	if r.dir.IsAssigned() {
		return
	}
	negative, ok := leadingInt(spec)
	if !ok {
		return
	}
	if negative {
		r.dir.MustAssign(direction.Backwards)
	} else {
		r.dir.MustAssign(direction.Forwards)
	}
}

// leadingInt reports whether s starts with an optionally signed integer,
// after leading spaces, and whether that integer is below zero.
func leadingInt(s string) (negative, ok bool) {
	s = strings.TrimLeft(s, " \t")
	sign := byte('+')
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[0], s[1:]
	}
	nonzero := false
	i := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		nonzero = nonzero || s[i] != '0'
	}
	if i == 0 {
		return false, false
	}
	return sign == '-' && nonzero, true
}

// setHistoryDirection handles the history tokens "?", "??", "-?", "+?" and
// ",?". A lone "?" means forwards unless a direction was already chosen.
func (r *request) setHistoryDirection(token string) bool {
	switch {
	case token == "?":
		if !r.dir.IsAssigned() {
			r.dir.MustAssign(direction.Forwards)
		}
		return true
	case token == "??":
		r.dir.MustAssign(direction.Common)
		return true
	case len(token) == 2 && token[1] == '?' && direction.Valid(token[:1]):
		r.dir.MustAssign(token[:1])
		return true
	}
	return false
}

func (r *request) setLimit(n int) {
	switch {
	case r.dir.IsBackwards():
		r.limits.Backwards = n
	case r.dir.IsForwards():
		r.limits.Forwards = n
	case r.dir.IsCommon():
		r.limits.Common = n
	}
	r.all = false
}

// interpret applies the freeform words to r.
func (r *request) interpret(words []string) error {
	switch len(words) {
	case 0:
		return nil
	case 1:
		if r.setHistoryDirection(words[0]) {
			r.history = true
		} else {
			r.setPath(words[0])
		}
		return nil
	case 2:
		if direction.Valid(words[0]) {
			r.dir.MustAssign(words[0])
			r.setPath(words[1])
			return nil
		}
		if r.setHistoryDirection(words[0]) {
			r.history = true
			n, err := strconv.Atoi(words[1])
			if err != nil || n < 0 {
				return fmt.Errorf("** Options error: expecting number for second option: %s %s\n%s", words[0], words[1], helpTip)
			}
			r.setLimit(n)
			return nil
		}
		return fmt.Errorf("** Options error: unable to interpret options\n%s", helpTip)
	}
	return fmt.Errorf("** Options error: too many options specified\n%s", helpTip)
}
