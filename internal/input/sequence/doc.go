// Package sequence implements the keystroke sequence matcher.
//
// A Matcher consumes key events one at a time and tracks, for every binding of
// a BindingSet, how many chords of its sequence have been matched so far. A
// binding whose next chord does not match the incoming event falls back to the
// start, independently of every other binding. When a binding completes, its
// handler runs.
//
// Bindings are always evaluated longest-serialized-first, so when a long
// sequence ("t s") and a short one ("s") complete on the same event, the long
// one's handler runs first. All handlers fired by one event share a single
// Dispatch value; a handler marks it consumed so later handlers can stand down.
//
// Partial progress expires lazily: a binding that has waited longer than the
// timeout since its last matched chord is reset when the next event arrives.
// No timers are used.
package sequence
