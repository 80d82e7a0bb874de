// Package input is the root of keychord's keystroke handling.
//
// The work is split across subpackages, lowest layer first:
//
//   - key: chords, modifiers, the $mod alias and shortcut parsing
//   - sequence: per-binding progress and the longest-first matcher
//   - target: the listener registry that key events are dispatched through
//   - focus: the focused-element check that suppresses shortcuts in text fields
//   - action: actions, the resolver that binds them, and activations
//   - terminal: tcell key conversion and the terminal host
//   - fuzzy and palette: searchable access to every action
//
// # Key Sequences
//
// A shortcut such as "g g" or "$mod+k $mod+s" is a sequence of chords.
// Keys accumulate until a sequence completes, a key breaks it, or the
// timeout between two keys elapses.
package input
