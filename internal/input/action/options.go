package action

import (
	"time"

	"github.com/dshills/keychord/internal/input/focus"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/sequence"
	"github.com/dshills/keychord/internal/logging"
)

// Options configures a Resolver.
type Options struct {
	// Timeout is the maximum gap between chords of a sequence.
	// Default: 400ms
	Timeout time.Duration

	// IgnoreWhenFocused lists extra tag names treated as text inputs.
	IgnoreWhenFocused []string

	// Focus reports the focused element. Nil never suppresses.
	Focus focus.Source

	// ShouldReject replaces the Focus-based predicate when set.
	ShouldReject focus.Predicate

	// Platform resolves "$mod". The zero value detects the running platform.
	Platform key.Platform

	// RejectDuplicates makes duplicate shortcuts an error instead of
	// letting the last action win.
	RejectDuplicates bool

	// Logger receives registration and match logs.
	Logger *logging.Logger

	// Clock is used for events without a timestamp. Default: time.Now
	Clock func() time.Time
}

// DefaultOptions returns options with the default timeout.
func DefaultOptions() Options {
	return Options{
		Timeout: sequence.DefaultTimeout,
	}
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = sequence.DefaultTimeout
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	o.Logger = logging.OrNop(o.Logger)
	if o.ShouldReject == nil {
		o.ShouldReject = focus.NewPredicate(o.Focus, o.IgnoreWhenFocused)
	}
	return o
}
