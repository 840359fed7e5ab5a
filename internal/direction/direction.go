// Package direction tracks which history view a run navigates: backwards
// ("-"), forwards ("+") or most common (",").
package direction

import (
	"errors"
	"fmt"
)

// Tokens accepted by Assign.
const (
	Backwards = "-"
	Forwards  = "+"
	Common    = ","
)

// ErrInvalidDirection is returned when a direction token is not one of
// "-", "+" or ",".
var ErrInvalidDirection = errors.New("invalid direction")

// State is the direction for a run. The zero value is unset. A State records
// whether its value came from the user (Assign) or from a default (Fallback),
// because an unassigned direction lets a bare number pick its own view.
type State struct {
	value    string
	assigned bool
}

// Valid reports whether token names a direction.
func Valid(token string) bool {
	return token == Backwards || token == Forwards || token == Common
}

// Assign sets the direction explicitly. The last assignment wins.
func (s *State) Assign(token string) error {
	if !Valid(token) {
		return fmt.Errorf("%w: %q (expected one of - + ,)", ErrInvalidDirection, token)
	}
	s.value = token
	s.assigned = true
	return nil
}

// MustAssign is Assign for tokens known to be valid. It panics otherwise.
func (s *State) MustAssign(token string) {
	if err := s.Assign(token); err != nil {
		panic(err)
	}
}

// Fallback sets the direction when nothing has set it yet, without marking it
// as assigned. Invalid tokens are ignored.
func (s *State) Fallback(token string) {
	if s.value == "" && Valid(token) {
		s.value = token
	}
}

// IsBackwards reports whether the most-recent-first view is selected.
func (s State) IsBackwards() bool { return s.value == Backwards }

// IsForwards reports whether the oldest-first view is selected.
func (s State) IsForwards() bool { return s.value == Forwards }

// IsCommon reports whether the most-visited view is selected.
func (s State) IsCommon() bool { return s.value == Common }

// IsAssigned reports whether the direction was set with Assign.
func (s State) IsAssigned() bool { return s.assigned }

// IsSet reports whether any direction is in effect.
func (s State) IsSet() bool { return s.value != "" }

// Sign returns the direction token, or "" when unset.
func (s State) Sign() string { return s.value }

func (s State) String() string {
	switch s.value {
	case Backwards:
		return "backwards"
	case Forwards:
		return "forwards"
	case Common:
		return "common"
	}
	return "unset"
}
