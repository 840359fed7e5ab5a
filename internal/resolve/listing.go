package resolve

import (
	"fmt"

	"github.com/fakeyudi/cdd/internal/direction"
)

// Row is one numbered line of a view.
type Row struct {
	Index  int    `json:"index"`
	Count  int    `json:"count,omitempty"` // visits, common view only
	Path   string `json:"path"`
	Common bool   `json:"-"`
}

func (r Row) String() string {
	if !r.Common {
		return fmt.Sprintf("%3d: %s", r.Index, r.Path)
	}
	pad := ""
	if r.Index < 10 {
		pad = " "
	}
	return fmt.Sprintf("%s,%d: (%2d) %s", pad, r.Index, r.Count, r.Path)
}

// Listing is the history shown when no path is given.
type Listing struct {
	Sign  string `json:"direction"`
	Rows  []Row  `json:"rows"`
	Total int    `json:"total"`
}

// Empty reports whether there is nothing to show.
func (l Listing) Empty() bool { return l.Total == 0 }

// Summary returns the truncation line, or "" when every row is shown.
func (l Listing) Summary() string {
	if len(l.Rows) >= l.Total {
		return ""
	}
	return fmt.Sprintf(" ... showing %s %d of %d", viewWord(l.Sign), len(l.Rows), l.Total)
}

// Lines renders the listing the way it is written to stderr.
func (l Listing) Lines() []string {
	if l.Empty() && l.Sign == direction.Backwards {
		return []string{"No history of other directories"}
	}
	lines := make([]string, 0, len(l.Rows)+1)
	for _, row := range l.Rows {
		lines = append(lines, row.String())
	}
	if s := l.Summary(); s != "" {
		lines = append(lines, s)
	}
	return lines
}

// Result is a resolved path specification.
type Result struct {
	Spec       Spec
	Target     string
	Sign       string // view searched, pattern matches only
	Alternates []Row  // further pattern matches after Target
	Matched    int    // total pattern matches, Target included
	Limit      int
	Truncated  bool
}

// Lines renders the alternates plus a truncation summary when some were cut.
func (r Result) Lines() []string {
	lines := make([]string, 0, len(r.Alternates)+1)
	for _, row := range r.Alternates {
		lines = append(lines, row.String())
	}
	if r.Truncated {
		lines = append(lines, fmt.Sprintf(" ... showing %s %d matching of %d", viewWord(r.Sign), r.Limit, r.Matched))
	}
	return lines
}

func viewWord(sign string) string {
	switch sign {
	case direction.Forwards:
		return "first"
	case direction.Common:
		return "top"
	default:
		return "last"
	}
}

// History lists the view selected by opts.Direction, backwards when unset.
func (r *Resolver) History(opts Options) Listing {
	sign := viewSign(opts.Direction)
	rows := r.rows(sign)
	l := Listing{Sign: sign, Total: len(rows)}
	if limit := opts.limitFor(sign); limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	l.Rows = rows
	return l
}

func viewSign(d direction.State) string {
	if !d.IsSet() {
		return direction.Backwards
	}
	return d.Sign()
}

// rows numbers every entry of a view: backwards from -1 downwards, the
// others from 0 upwards.
func (r *Resolver) rows(sign string) []Row {
	switch sign {
	case direction.Forwards:
		view := r.Model.Forwards()
		rows := make([]Row, len(view))
		for i, e := range view {
			rows[i] = Row{Index: i, Path: e.Path}
		}
		return rows
	case direction.Common:
		view := r.Model.Common()
		rows := make([]Row, len(view))
		for i, e := range view {
			rows[i] = Row{Index: i, Count: e.Count, Path: e.Path, Common: true}
		}
		return rows
	default:
		view := r.Model.Backwards()
		rows := make([]Row, len(view))
		for i, e := range view {
			rows[i] = Row{Index: -1 - i, Path: e.Path}
		}
		return rows
	}
}
