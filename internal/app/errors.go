package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoConfig indicates no keyset path was given.
	ErrNoConfig = errors.New("no keyset path")

	// ErrScriptQueueFull indicates a script was dropped because earlier
	// scripts were still running.
	ErrScriptQueueFull = errors.New("script queue full")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
