package resolve

import (
	"errors"
	"log/slog"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single regex evaluation.
var matchTimeout = time.Second

// Compile compiles a case-insensitive, unanchored search pattern.
func Compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase|regexp2.ECMAScript)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: ErrInvalidPattern, Cause: err}
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}

// search scans the view picked by the direction in its natural order. The
// first match is the target; later ones become alternates, capped at the
// view's limit.
func (r *Resolver) search(s Spec, opts Options) (Result, error) {
	res := Result{Spec: s}
	if !opts.Direction.IsSet() {
		return res, ErrDirectionUnset
	}
	re, err := Compile(s.Text)
	if err != nil {
		return res, err
	}

	res.Sign = opts.Direction.Sign()
	res.Limit = opts.limitFor(res.Sign)
	var matchErr error
	for _, row := range r.rows(res.Sign) {
		ok, err := re.MatchString(row.Path)
		if err != nil {
			slog.Debug("pattern evaluation failed", "pattern", s.Text, "path", row.Path, "err", err)
			matchErr = errors.Join(matchErr, err)
			continue
		}
		if !ok {
			continue
		}
		res.Matched++
		switch {
		case res.Matched == 1:
			res.Target = row.Path
		case res.Limit == 0 || len(res.Alternates) < res.Limit:
			res.Alternates = append(res.Alternates, row)
		default:
			res.Truncated = true
		}
	}
	switch {
	case res.Matched == 0 && matchErr != nil:
		return res, &PatternError{Pattern: s.Text, Err: ErrPatternTimeout, Cause: matchErr}
	case res.Matched == 0:
		return res, &PatternError{Pattern: s.Text, Err: ErrNoPatternMatch}
	}
	return res, nil
}
