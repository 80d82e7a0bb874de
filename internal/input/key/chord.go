package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec       = errors.New("empty key specification")
	ErrUnknownModifier = errors.New("unknown modifier")
)

// Chord is one instant of one or more keys pressed together.
type Chord struct {
	// Modifiers that must be held.
	Modifiers Modifier

	// Key is the base key as declared. It is compared case-insensitively
	// against Event.Key and exactly against Event.Code.
	Key string

	// name is Key with aliases resolved ("esc" -> "Escape").
	name string

	// invalid is set when the spec named an unknown modifier; such a chord
	// is kept as a literal that never matches.
	invalid bool
}

// ParseChord parses a single chord token like "$mod+k" or "Shift+D".
// It never fails: unknown keys are literals, unknown modifiers make the chord
// unmatchable.
func ParseChord(token string, p Platform) Chord {
	c, _ := parseChord(token, p)
	return c
}

// ParseChordStrict parses a chord and reports empty tokens and unknown modifiers.
func ParseChordStrict(token string, p Platform) (Chord, error) {
	return parseChord(token, p)
}

func parseChord(token string, p Platform) (Chord, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Chord{invalid: true}, ErrEmptySpec
	}

	// The key is whatever follows the last "+" that is not the final
	// character, so "Control++" is Control with the "+" key.
	keyPart, modPart := token, ""
	if i := strings.LastIndex(token[:len(token)-1], "+"); i >= 0 {
		modPart, keyPart = token[:i], token[i+1:]
	}

	c := Chord{Key: keyPart, name: resolveKeyName(keyPart)}

	var err error
	if modPart != "" {
		for _, part := range strings.Split(modPart, "+") {
			part = strings.TrimSpace(part)
			if part == ModAlias {
				c.Modifiers = c.Modifiers.With(p.ModAliasTarget())
				continue
			}
			mod := ModifierFromName(part)
			if mod == ModNone {
				c.invalid = true
				if err == nil {
					err = fmt.Errorf("%w %q in %q", ErrUnknownModifier, part, token)
				}
				continue
			}
			c.Modifiers = c.Modifiers.With(mod)
		}
	}

	// Upper-case letters require Shift.
	if isUpperLetter(keyPart) {
		c.Modifiers = c.Modifiers.With(ModShift)
	}

	return c, err
}

// Valid reports whether the chord can ever match.
func (c Chord) Valid() bool {
	return !c.invalid
}

// String returns the canonical chord token.
func (c Chord) String() string {
	return formatChord(c.Modifiers, c.name)
}

// Matches reports whether the event satisfies this chord.
//
// The key must equal Event.Key ignoring case, or Event.Code exactly. Every
// modifier of the chord must be held and no other modifier may be held,
// except the one the chord key itself names ("Shift" as a key) and Shift on
// caseless characters like "?" that are typed with it.
func (c Chord) Matches(e *Event) bool {
	if c.invalid || e == nil {
		return false
	}
	if !strings.EqualFold(c.name, e.Key) && c.Key != e.Code {
		return false
	}

	self := modifierForKey(c.name)
	for _, mod := range canonicalOrder {
		held := e.Modifiers.Has(mod)
		if c.Modifiers.Has(mod) {
			if !held {
				return false
			}
			continue
		}
		if !held || mod == self {
			continue
		}
		if mod == ModShift && isCaseless(c.name) {
			continue
		}
		return false
	}
	return true
}

// ParseSequence parses whitespace-separated chords: "g g", "$mod+k $mod+s".
func ParseSequence(s string, p Platform) []Chord {
	fields := strings.Fields(s)
	chords := make([]Chord, 0, len(fields))
	for _, f := range fields {
		chords = append(chords, ParseChord(f, p))
	}
	return chords
}

// ParseSequenceStrict parses a sequence and returns the first chord error.
func ParseSequenceStrict(s string, p Platform) ([]Chord, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}
	chords := make([]Chord, 0, len(fields))
	for _, f := range fields {
		c, err := ParseChordStrict(f, p)
		if err != nil {
			return nil, err
		}
		chords = append(chords, c)
	}
	return chords, nil
}

// FormatSequence returns the canonical form of a chord sequence.
func FormatSequence(chords []Chord) string {
	parts := make([]string, len(chords))
	for i, c := range chords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
