package sequence

import (
	"sort"
	"strings"

	"github.com/dshills/keychord/internal/input/key"
)

// Handler is invoked when a binding's full sequence has been matched.
type Handler func(e *key.Event, d *Dispatch)

// Binding is a parsed shortcut bound to a handler.
type Binding struct {
	// Shortcut is the serialized sequence, chords separated by spaces.
	Shortcut string

	// Chords is the parsed sequence.
	Chords []key.Chord

	// Handler runs on a full match.
	Handler Handler
}

// Len returns the number of chords in the sequence.
func (b Binding) Len() int {
	return len(b.Chords)
}

// BindingSet maps serialized shortcuts to handlers. Insertion order is kept;
// re-adding an existing shortcut replaces its handler in place.
type BindingSet struct {
	platform key.Platform
	index    map[string]int
	bindings []Binding
}

// NewBindingSet creates an empty set resolving "$mod" for the given platform.
func NewBindingSet(p key.Platform) *BindingSet {
	return &BindingSet{
		platform: p,
		index:    make(map[string]int),
	}
}

// Serialize joins shortcut definitions into the set's key form.
func Serialize(chords []string) string {
	return strings.Join(strings.Fields(strings.Join(chords, " ")), " ")
}

// Add binds a serialized shortcut to a handler. It returns true when an
// existing binding for the same shortcut was replaced. Blank shortcuts are
// ignored.
func (s *BindingSet) Add(shortcut string, h Handler) (replaced bool) {
	shortcut = Serialize([]string{shortcut})
	if shortcut == "" || h == nil {
		return false
	}

	b := Binding{
		Shortcut: shortcut,
		Chords:   key.ParseSequence(shortcut, s.platform),
		Handler:  h,
	}

	if i, ok := s.index[shortcut]; ok {
		s.bindings[i] = b
		return true
	}
	s.index[shortcut] = len(s.bindings)
	s.bindings = append(s.bindings, b)
	return false
}

// Len returns the number of bindings.
func (s *BindingSet) Len() int {
	return len(s.bindings)
}

// Has reports whether the shortcut is bound.
func (s *BindingSet) Has(shortcut string) bool {
	_, ok := s.index[Serialize([]string{shortcut})]
	return ok
}

// Platform returns the platform the set parses chords for.
func (s *BindingSet) Platform() key.Platform {
	return s.platform
}

// Sorted returns a copy of the bindings ordered by descending serialized
// length. Ties keep insertion order.
func (s *BindingSet) Sorted() []Binding {
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Shortcut) > len(out[j].Shortcut)
	})
	return out
}
