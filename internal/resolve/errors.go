package resolve

import (
	"errors"
	"strconv"
)

// Sentinel errors for every way a resolution can fail. Messages match what
// shell integrations already parse from stderr.
var (
	ErrNoHistory           = errors.New("No history of directories")
	ErrNoDirectoryAtOffset = errors.New("no directory at offset")
	ErrNoPatternMatch      = errors.New("no directory matches pattern")
	ErrInvalidPattern      = errors.New("invalid pattern")
	ErrPatternTimeout      = errors.New("pattern timed out")
	ErrDirectionUnset      = errors.New("no direction selected for history lookup")
	ErrNotFoundForDelete   = errors.New("directory not in history")
)

// OffsetError is returned when an offset falls outside its view.
type OffsetError struct {
	Sign   string // "-", "+" or ","
	Offset int
}

func (e *OffsetError) Error() string {
	return "No directory at " + e.Sign + strconv.Itoa(e.Offset)
}

func (e *OffsetError) Unwrap() error {
	return ErrNoDirectoryAtOffset
}

// PatternError is returned when a pattern fails to compile, matches nothing
// or times out on every entry it could not rule out.
type PatternError struct {
	Pattern string
	Err     error // ErrInvalidPattern, ErrNoPatternMatch or ErrPatternTimeout
	Cause   error // compile or match error, if any
}

func (e *PatternError) Error() string {
	if errors.Is(e.Err, ErrInvalidPattern) {
		msg := "Cannot process pattern: '" + e.Pattern + "'"
		if e.Cause != nil {
			msg += "\n" + e.Cause.Error()
		}
		return msg
	}
	if errors.Is(e.Err, ErrPatternTimeout) {
		return "Cannot match pattern: '" + e.Pattern + "' (timed out)"
	}
	return "Cannot match pattern: '" + e.Pattern + "'"
}

func (e *PatternError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// DeleteError is returned when a resolved directory is not literally present
// in the raw stack and so cannot be removed from it.
type DeleteError struct {
	Path string
}

func (e *DeleteError) Error() string {
	return "** Could not delete from history: " + e.Path
}

func (e *DeleteError) Unwrap() error {
	return ErrNotFoundForDelete
}
