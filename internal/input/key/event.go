package key

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Event represents a single key press.
//
// Key and Code follow the browser KeyboardEvent naming: Key is the produced
// value ("k", "K", "Enter", " ", "Shift") and Code the physical key ("KeyK").
type Event struct {
	// Key is the logical key value.
	Key string

	// Code is the physical key code. Optional.
	Code string

	// Modifiers contains the modifier keys held during the press.
	Modifiers Modifier

	// Timestamp is when the event occurred. A zero timestamp makes
	// consumers fall back to their own clock.
	Timestamp time.Time

	prevented bool
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(k string, mods Modifier) *Event {
	return &Event{
		Key:       k,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewEventAt creates a key event with an explicit timestamp.
func NewEventAt(k string, mods Modifier, at time.Time) *Event {
	return &Event{
		Key:       k,
		Modifiers: mods,
		Timestamp: at,
	}
}

// WithCode sets the physical key code and returns the event.
func (e *Event) WithCode(code string) *Event {
	e.Code = code
	return e
}

// PreventDefault marks the event so the host suppresses its default behavior.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// IsModifierPress reports whether the pressed key is itself a modifier that
// is currently held, such as the keydown of Shift before typing "D".
func (e *Event) IsModifierPress() bool {
	mod := modifierForKey(e.Key)
	return mod != ModNone && e.Modifiers.Has(mod)
}

// Matches checks if this event matches a chord specification.
func (e *Event) Matches(spec string, p Platform) bool {
	return ParseChord(spec, p).Matches(e)
}

// String returns the canonical chord token for the event.
func (e *Event) String() string {
	return Normalize(e)
}

// GoString implements fmt.GoStringer for debugging.
func (e *Event) GoString() string {
	return fmt.Sprintf("Event{Key: %q, Code: %q, Modifiers: %s}",
		e.Key, e.Code, e.Modifiers.String())
}

// Normalize produces the canonical chord token for an event: modifiers in
// fixed order joined by "+" with the lower-cased key. Shift is omitted for
// single characters that have no case, since the character already encodes it.
func Normalize(e *Event) string {
	if e == nil {
		return ""
	}
	return formatChord(e.Modifiers, e.Key)
}

func formatChord(mods Modifier, k string) string {
	if isCaseless(k) {
		mods = mods.Without(ModShift)
	}
	name := canonicalKeyName(k)
	if mods.IsEmpty() {
		return name
	}
	return mods.String() + "+" + name
}

// canonicalKeyName lower-cases a key for comparison and display.
func canonicalKeyName(k string) string {
	if k == " " {
		return "space"
	}
	return strings.ToLower(k)
}

// singleRune returns the only rune of s, if s is exactly one rune long.
func singleRune(s string) (rune, bool) {
	if s == "" || utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

// isCaseless reports whether k is a single printable character with no case
// distinction, like "?", "1" or "+".
func isCaseless(k string) bool {
	r, ok := singleRune(k)
	if !ok || r == ' ' {
		return false
	}
	return unicode.IsPrint(r) && unicode.ToUpper(r) == unicode.ToLower(r)
}

// isUpperLetter reports whether k is a single upper-case letter.
func isUpperLetter(k string) bool {
	r, ok := singleRune(k)
	return ok && unicode.IsUpper(r) && unicode.ToLower(r) != r
}
