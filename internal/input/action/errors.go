package action

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCallback is returned when no selection callback is supplied.
	ErrNoCallback = errors.New("action: selection callback is required")

	// ErrDuplicateShortcut is returned when two actions share a shortcut
	// and Options.RejectDuplicates is set.
	ErrDuplicateShortcut = errors.New("action: duplicate shortcut")
)

// DuplicateError describes a shortcut claimed by more than one action.
type DuplicateError struct {
	Shortcut string
	Previous string
	Current  string
}

// Error implements error.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%v %q: bound to %q and %q", ErrDuplicateShortcut, e.Shortcut, e.Previous, e.Current)
}

// Unwrap returns ErrDuplicateShortcut.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateShortcut
}
