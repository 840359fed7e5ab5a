// Package history turns a shell's raw directory stack into the three views
// cdd navigates: most recent first, oldest first, and most visited first.
package history

import (
	"sort"

	"github.com/fakeyudi/cdd/internal/pathnorm"
)

// Entry is one logical directory in a view.
type Entry struct {
	Path string // first raw spelling met in the view's scan order
	Key  string // normalized key, never displayed
}

// CommonEntry is one directory in the frequency view.
type CommonEntry struct {
	Path      string
	Key       string
	Count     int // occurrences in the raw stack
	FirstSeen int // index among distinct keys, used as the tie-break
}

// Model holds the raw stack and the views derived from it. A Model is built
// once per run and never modified afterwards.
type Model struct {
	raw       []string
	current   string
	backwards []Entry
	forwards  []Entry
	common    []CommonEntry
}

// Build derives the views from raw, whose first element is the most recently
// pushed directory, and current, the working directory (may be empty).
//
// Only the backwards view drops current. The check against current consults
// filesystem identity so that a symlinked spelling of the working directory is
// dropped too.
func Build(raw []string, current string, n pathnorm.Normalizer) *Model {
	m := &Model{
		raw:     append([]string(nil), raw...),
		current: current,
	}

	keys := make([]string, len(raw))
	for i, dir := range raw {
		keys[i] = n.Key(dir)
	}

	currentKey := n.Key(current)
	currentID := n.Identity(currentKey)

	seen := make(map[string]bool, len(raw))
	for i, dir := range raw {
		if seen[keys[i]] {
			continue
		}
		// Identity lookups are the expensive part, so they only happen for
		// keys not already seen.
		if n.Equal(currentKey, currentID, keys[i]) {
			continue
		}
		m.backwards = append(m.backwards, Entry{Path: dir, Key: keys[i]})
		seen[keys[i]] = true
	}

	seen = make(map[string]bool, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		if seen[keys[i]] {
			continue
		}
		m.forwards = append(m.forwards, Entry{Path: raw[i], Key: keys[i]})
		seen[keys[i]] = true
	}

	index := make(map[string]int, len(raw))
	for i, dir := range raw {
		if at, ok := index[keys[i]]; ok {
			m.common[at].Count++
			continue
		}
		index[keys[i]] = len(m.common)
		m.common = append(m.common, CommonEntry{
			Path:      dir,
			Key:       keys[i],
			Count:     1,
			FirstSeen: len(m.common),
		})
	}
	sort.SliceStable(m.common, func(i, j int) bool {
		if m.common[i].Count != m.common[j].Count {
			return m.common[i].Count > m.common[j].Count
		}
		return m.common[i].FirstSeen < m.common[j].FirstSeen
	})

	return m
}

// Raw returns the stack exactly as supplied.
func (m *Model) Raw() []string { return m.raw }

// Current returns the working directory the model was built with.
func (m *Model) Current() string { return m.current }

// Empty reports whether the raw stack has no entries at all.
func (m *Model) Empty() bool { return len(m.raw) == 0 }

// Backwards lists directories most recent first, excluding the current one.
func (m *Model) Backwards() []Entry { return m.backwards }

// Forwards lists directories oldest first.
func (m *Model) Forwards() []Entry { return m.forwards }

// Common lists directories by descending visit count.
func (m *Model) Common() []CommonEntry { return m.common }

// Contains reports whether path appears verbatim in the raw stack.
func (m *Model) Contains(path string) bool {
	for _, dir := range m.raw {
		if dir == path {
			return true
		}
	}
	return false
}

// Reversed returns the raw stack oldest first.
func (m *Model) Reversed() []string {
	out := make([]string, len(m.raw))
	for i, dir := range m.raw {
		out[len(m.raw)-1-i] = dir
	}
	return out
}

// ForwardPaths returns the display paths of the forwards view.
func (m *Model) ForwardPaths() []string {
	out := make([]string, len(m.forwards))
	for i, e := range m.forwards {
		out[i] = e.Path
	}
	return out
}
