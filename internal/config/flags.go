package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/pflag"
)

// Flag names shared by the command line and CDD_OPTIONS.
const (
	FlagDirection      = "direction"
	FlagLimitBackwards = "limit-backwards"
	FlagLimitForwards  = "limit-forwards"
	FlagLimitCommon    = "limit-common"
	FlagPathSeparator  = "path-separator"
	FlagAll            = "all"
	FlagAction         = "action"
	FlagShell          = "shell"
	FlagFormat         = "format"
)

// RegisterFlags adds the configurable flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagDirection, "", "direction for history and PATH_SPEC: - (backwards), + (forwards) or , (most common)")
	fs.Int(FlagLimitBackwards, 0, "show at most n directories for last to first history (default 10, 0 = all)")
	fs.Int(FlagLimitForwards, 0, "show at most n directories for first to last history (default 10, 0 = all)")
	fs.Int(FlagLimitCommon, 0, "show at most n directories for most to least visited (default 10, 0 = all)")
	fs.String(FlagPathSeparator, "", "force the path separator to a specific character")
	fs.Bool(FlagAll, false, "show all directories, overriding any limit")
	fs.String(FlagAction, "", "freeform options to use when none are given")
	fs.String(FlagShell, "", "shell to emit commands for: bash, zsh or cmd")
	fs.String(FlagFormat, "", "history listing format: plain, table or json")
}

// FromFlags builds a layer from the flags explicitly set on fs.
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	c := &Config{}
	var err error
	str := func(name string, dst *string) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetString(name)
		}
	}
	num := func(name string, dst **int) {
		if err == nil && fs.Changed(name) {
			var v int
			v, err = fs.GetInt(name)
			*dst = &v
		}
	}

	str(FlagDirection, &c.Direction)
	num(FlagLimitBackwards, &c.LimitBackwards)
	num(FlagLimitForwards, &c.LimitForwards)
	num(FlagLimitCommon, &c.LimitCommon)
	str(FlagPathSeparator, &c.PathSeparator)
	str(FlagAction, &c.Action)
	str(FlagShell, &c.Shell)
	str(FlagFormat, &c.Format)
	if err == nil && fs.Changed(FlagAll) {
		var all bool
		all, err = fs.GetBool(FlagAll)
		c.All = &all
	}
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseOptions parses an option string such as the value of CDD_OPTIONS.
// Words are split the way a POSIX shell would.
func ParseOptions(s string) (*Config, error) {
	if strings.TrimSpace(s) == "" {
		return &Config{}, nil
	}
	args, err := shlex.Split(s)
	if err != nil {
		return nil, &OptionsError{Source: "in environment variable", Err: err}
	}

	fs := pflag.NewFlagSet(EnvOptions, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, &OptionsError{Source: "in environment variable", Err: err}
	}
	if fs.NArg() > 0 {
		return nil, &OptionsError{Source: "in environment variable", Err: fmt.Errorf("unexpected argument %q", fs.Arg(0))}
	}
	c, err := FromFlags(fs)
	if err != nil {
		return nil, &OptionsError{Source: "in environment variable", Err: err}
	}
	return c, nil
}

// OptionsError reports a malformed option and where it came from.
type OptionsError struct {
	Source string // "in environment variable" or "on command line"
	Err    error
}

func (e *OptionsError) Error() string {
	return "Options error " + e.Source + ": " + e.Err.Error()
}

func (e *OptionsError) Unwrap() error {
	return e.Err
}
