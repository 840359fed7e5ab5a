// Package resolve turns a path specification into a target directory, either
// straight from the filesystem or by looking it up in the history views.
package resolve

import (
	"github.com/fakeyudi/cdd/internal/direction"
	"github.com/fakeyudi/cdd/internal/history"
	"github.com/fakeyudi/cdd/internal/pathnorm"
)

// DefaultLimit is the number of rows shown per view unless configured.
const DefaultLimit = 10

// Limits caps how many rows each view lists. Zero means unlimited.
type Limits struct {
	Backwards int
	Forwards  int
	Common    int
}

// DefaultLimits returns DefaultLimit for every view.
func DefaultLimits() Limits {
	return Limits{Backwards: DefaultLimit, Forwards: DefaultLimit, Common: DefaultLimit}
}

// Options are the per-run settings a resolution depends on.
type Options struct {
	Direction direction.State
	Limits    Limits
	ShowAll   bool // ignore Limits
}

// limitFor returns the effective cap for the view with the given sign, 0 when
// uncapped.
func (o Options) limitFor(sign string) int {
	if o.ShowAll {
		return 0
	}
	switch sign {
	case direction.Forwards:
		return o.Limits.Forwards
	case direction.Common:
		return o.Limits.Common
	default:
		return o.Limits.Backwards
	}
}

// Resolver resolves specifications against one history model.
type Resolver struct {
	Model *history.Model
	FS    FS
	Norm  pathnorm.Normalizer
}

// New returns a Resolver over m using the real filesystem.
func New(m *history.Model, n pathnorm.Normalizer) *Resolver {
	return &Resolver{Model: m, FS: OSFS{}, Norm: n}
}

func (r *Resolver) fs() FS {
	if r.FS == nil {
		return OSFS{}
	}
	return r.FS
}

// Resolve finds the directory spec refers to. Existing directories and files
// win over everything else; history lookups need a non-empty stack.
func (r *Resolver) Resolve(spec string, opts Options) (Result, error) {
	spec = r.Norm.ToNative(r.Norm.ExpandEllipsis(spec))
	s := Classify(spec, r.fs())
	res := Result{Spec: s}

	switch s.Kind {
	case KindDir:
		res.Target = spec
		return res, nil
	case KindFile:
		res.Target = r.Norm.ParentDir(spec)
		return res, nil
	}
	if r.Model.Empty() {
		return res, ErrNoHistory
	}

	var err error
	switch s.Kind {
	case KindNumeric:
		switch {
		case opts.Direction.IsBackwards():
			res.Target, err = r.GoBackwards(s.N)
		case opts.Direction.IsForwards():
			res.Target, err = r.GoForwards(s.N)
		case opts.Direction.IsCommon():
			res.Target, err = r.GoCommon(s.N)
		default:
			err = ErrDirectionUnset
		}
	case KindBackwards:
		res.Target, err = r.GoBackwards(s.N)
	case KindForwards:
		res.Target, err = r.GoForwards(s.N)
	case KindCommon:
		res.Target, err = r.GoCommon(s.N)
	default:
		return r.search(s, opts)
	}
	return res, err
}

// GoBackwards returns the nth most recent directory, counting from 1.
func (r *Resolver) GoBackwards(n int) (string, error) {
	view := r.Model.Backwards()
	if n < 1 || n > len(view) {
		return "", &OffsetError{Sign: direction.Backwards, Offset: n}
	}
	return view[n-1].Path, nil
}

// GoForwards returns the nth oldest directory, counting from 0.
func (r *Resolver) GoForwards(n int) (string, error) {
	view := r.Model.Forwards()
	if n < 0 || n >= len(view) {
		return "", &OffsetError{Sign: direction.Forwards, Offset: n}
	}
	return view[n].Path, nil
}

// GoCommon returns the nth most visited directory, counting from 0.
func (r *Resolver) GoCommon(n int) (string, error) {
	view := r.Model.Common()
	if n < 0 || n >= len(view) {
		return "", &OffsetError{Sign: direction.Common, Offset: n}
	}
	return view[n].Path, nil
}

// ResolveDelete resolves spec like Resolve and then checks that the target is
// literally one of the raw stack entries, since only those can be removed.
func (r *Resolver) ResolveDelete(spec string, opts Options) (string, error) {
	res, err := r.Resolve(spec, opts)
	if err != nil {
		return "", err
	}
	if !r.Model.Contains(res.Target) {
		return "", &DeleteError{Path: res.Target}
	}
	return res.Target, nil
}
