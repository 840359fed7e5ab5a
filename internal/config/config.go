// Package config layers cdd's settings: built-in defaults, the global JSON
// file, the CDD_OPTIONS environment string and the command line.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fakeyudi/cdd/internal/direction"
	"github.com/fakeyudi/cdd/internal/resolve"
)

// EnvOptions names the environment variable holding default options.
const EnvOptions = "CDD_OPTIONS"

// DefaultDirection is used when no layer picks a direction.
const DefaultDirection = direction.Backwards

// Listing formats.
const (
	FormatPlain = "plain"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds all configurable cdd settings. Empty strings and nil pointers
// mean "not set in this layer".
type Config struct {
	Direction      string `json:"direction,omitempty"`
	LimitBackwards *int   `json:"limit_backwards,omitempty"`
	LimitForwards  *int   `json:"limit_forwards,omitempty"`
	LimitCommon    *int   `json:"limit_common,omitempty"`
	All            *bool  `json:"all,omitempty"`
	PathSeparator  string `json:"path_separator,omitempty"`
	Action         string `json:"action,omitempty"` // freeform words used when none are given
	Shell          string `json:"shell,omitempty"`  // "bash", "zsh" or "cmd"; empty for the platform default
	Format         string `json:"format,omitempty"` // "plain", "table" or "json"
}

// Defaults returns the built-in configuration. Direction is left empty so a
// bare number can still pick its own view.
func Defaults() Config {
	limit := resolve.DefaultLimit
	all := false
	return Config{
		LimitBackwards: &limit,
		LimitForwards:  &limit,
		LimitCommon:    &limit,
		All:            &all,
		Format:         FormatPlain,
	}
}

// Validate checks the values set in c.
func (c *Config) Validate() error {
	if c.Direction != "" && !direction.Valid(c.Direction) {
		return fmt.Errorf("%w: %q (expected one of - + ,)", direction.ErrInvalidDirection, c.Direction)
	}
	for name, v := range map[string]*int{
		FlagLimitBackwards: c.LimitBackwards,
		FlagLimitForwards:  c.LimitForwards,
		FlagLimitCommon:    c.LimitCommon,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("--%s must not be negative, got %d", name, *v)
		}
	}
	if len(c.PathSeparator) > 1 {
		return fmt.Errorf("--%s must be a single character, got %q", FlagPathSeparator, c.PathSeparator)
	}
	switch c.Format {
	case "", FormatPlain, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (expected plain, table or json)", c.Format)
	}
	return nil
}

// Path returns the location of the global config file:
// $XDG_CONFIG_HOME/cdd/config.json, or ~/.config/cdd/config.json.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cdd", "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cdd", "config.json"), nil
}

// LoadGlobal reads the global config file. A missing file is an empty layer.
func LoadGlobal() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFile(path)
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// SaveGlobal writes cfg to the global config file, creating its directory.
func SaveGlobal(cfg *Config) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	if err := writeAtomic(path, append(data, '\n')); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// writeAtomic writes data to a temp file next to path and renames it over
// path, so a reader never sees a half-written config.
func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Merge overlays layers onto the defaults, later layers taking precedence.
// Nil layers are skipped.
func Merge(layers ...*Config) Config {
	result := Defaults()
	for _, l := range layers {
		if l == nil {
			continue
		}
		if l.Direction != "" {
			result.Direction = l.Direction
		}
		if l.LimitBackwards != nil {
			result.LimitBackwards = l.LimitBackwards
		}
		if l.LimitForwards != nil {
			result.LimitForwards = l.LimitForwards
		}
		if l.LimitCommon != nil {
			result.LimitCommon = l.LimitCommon
		}
		if l.All != nil {
			result.All = l.All
		}
		if l.PathSeparator != "" {
			result.PathSeparator = l.PathSeparator
		}
		if l.Action != "" {
			result.Action = l.Action
		}
		if l.Shell != "" {
			result.Shell = l.Shell
		}
		if l.Format != "" {
			result.Format = l.Format
		}
	}
	return result
}

// Resolved is a merged Config with every value concrete.
type Resolved struct {
	Direction string // "" when no layer chose one
	Limits    resolve.Limits
	All       bool
	Separator byte // 0 for the platform default
	Action    string
	Shell     string
	Format    string
}

// Resolve flattens a merged Config. Unset values take their defaults.
func (c Config) Resolve() Resolved {
	d := Defaults()
	r := Resolved{
		Direction: c.Direction,
		Limits: resolve.Limits{
			Backwards: deref(c.LimitBackwards, *d.LimitBackwards),
			Forwards:  deref(c.LimitForwards, *d.LimitForwards),
			Common:    deref(c.LimitCommon, *d.LimitCommon),
		},
		All:    c.All != nil && *c.All,
		Action: c.Action,
		Shell:  c.Shell,
		Format: c.Format,
	}
	if r.Format == "" {
		r.Format = FormatPlain
	}
	if c.PathSeparator != "" {
		r.Separator = c.PathSeparator[0]
	}
	return r
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
