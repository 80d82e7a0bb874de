// Package action maps application actions onto keyboard shortcuts.
//
// A Resolver takes a set of actions, each with an identifier and one or more
// chord tokens, and turns them into a priority-ordered binding set. Activating
// the resolver on a target attaches a listener with its own sequence matcher;
// when a sequence completes, the action's callback runs unless the user is
// typing into a text field.
//
// Only one action fires per physical keystroke. When "t s" and "s" are both
// bound, pressing t then s selects the "t s" action alone, because longer
// shortcuts are evaluated first and the first handler to run marks the event
// handled.
//
//	r, err := action.NewResolver(map[string]action.Action{
//		"search": {ID: "search", Shortcut: []string{"$mod+k"}},
//	}, func(a action.Action) {
//		fmt.Println("selected", a.ID)
//	}, action.Options{Timeout: 400 * time.Millisecond})
//	deactivate := r.Activate(dispatcher).Deactivate
//	defer deactivate()
package action

import "github.com/dshills/keychord/internal/input/sequence"

// Action is an application-level command reachable by keyboard shortcut.
type Action struct {
	// ID uniquely identifies the action.
	ID string

	// Name is a display label.
	Name string

	// Shortcut lists the chords of the action's sequence:
	// ["$mod+k"], ["y", "e", "e", "t"] or ["g g"].
	Shortcut []string

	// Description documents the action.
	Description string

	// Section groups actions for display.
	Section string

	// Script is an optional Lua snippet run by hosts that support it.
	Script string
}

// Serialized returns the action's shortcut in binding-set form, chords
// separated by single spaces. It is empty when the action has no shortcut.
func (a Action) Serialized() string {
	return sequence.Serialize(a.Shortcut)
}

// HasShortcut reports whether the action can be bound.
func (a Action) HasShortcut() bool {
	return a.Serialized() != ""
}

// Label returns Name, or ID when Name is empty.
func (a Action) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}
