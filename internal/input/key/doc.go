// Package key normalizes raw key press events and parses chord specifications.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Modifier: a bitmask of Control, Alt, Shift and Meta
//   - Platform: decides what the "$mod" alias resolves to
//   - Event: a single key press, named the way browsers name KeyboardEvent.key
//   - Chord: one "+"-joined token of a shortcut, such as "$mod+k" or "Shift+d"
//
// # Chord Specifications
//
// Chords are written as zero or more modifier names joined to a base key:
//
//   - Simple keys: "a", "K", "Enter", "Escape", "ArrowUp"
//   - With modifiers: "Control+s", "Alt+F4", "Control+Shift+p"
//   - Platform alias: "$mod+k" is Meta+k on Apple platforms, Control+k elsewhere
//   - Physical codes: "KeyK" matches the event code regardless of layout
//
// Sequences separate chords with whitespace: "g g", "y e e t", "$mod+k $mod+s".
//
// Parsing never fails for matching purposes: unknown key names are kept as
// literals and a chord with an unknown modifier simply never matches.
// ParseChordStrict reports those problems for configuration validation.
package key
