package sequence

import (
	"sync"
	"time"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/logging"
)

// DefaultTimeout is the maximum gap between two chords of one sequence.
const DefaultTimeout = 400 * time.Millisecond

// progress is the partial match state of one binding.
type progress struct {
	cursor      int
	lastAdvance time.Time
}

func (p *progress) reset() {
	p.cursor = 0
	p.lastAdvance = time.Time{}
}

// Pending describes a binding with a partially matched sequence.
type Pending struct {
	Shortcut string
	Matched  int
	Total    int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithTimeout sets the sequence timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(m *Matcher) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithClock sets the clock used for events without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger used for match traces.
func WithLogger(l *logging.Logger) Option {
	return func(m *Matcher) {
		m.logger = logging.OrNop(l)
	}
}

// Matcher is the per-listener sequence state machine.
type Matcher struct {
	mu sync.Mutex

	bindings []Binding
	state    map[string]*progress

	timeout time.Duration
	now     func() time.Time
	logger  *logging.Logger
}

// NewMatcher creates a matcher over the set's bindings, longest first.
func NewMatcher(set *BindingSet, opts ...Option) *Matcher {
	m := &Matcher{
		state:   make(map[string]*progress),
		timeout: DefaultTimeout,
		now:     time.Now,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if set != nil {
		m.bindings = set.Sorted()
	}
	for _, b := range m.bindings {
		m.state[b.Shortcut] = &progress{}
	}
	return m
}

// Timeout returns the configured sequence timeout.
func (m *Matcher) Timeout() time.Duration {
	return m.timeout
}

// Bindings returns the bindings in evaluation order.
func (m *Matcher) Bindings() []Binding {
	out := make([]Binding, len(m.bindings))
	copy(out, m.bindings)
	return out
}

// HandleEvent advances every binding against the event and runs the handlers
// of the bindings it completes. It returns the dispatch used for the event.
func (m *Matcher) HandleEvent(e *key.Event) *Dispatch {
	d := &Dispatch{}
	if e == nil {
		return d
	}

	completed := m.advance(e)

	// Handlers run outside the lock so they may deactivate or query the
	// matcher that fired them.
	for _, b := range completed {
		d.fired = append(d.fired, b.Shortcut)
		b.Handler(e, d)
	}
	return d
}

func (m *Matcher) advance(e *key.Event) []Binding {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := e.Timestamp
	if t.IsZero() {
		t = m.now()
	}

	var completed []Binding
	for _, b := range m.bindings {
		p := m.state[b.Shortcut]
		if len(b.Chords) == 0 {
			continue
		}

		if p.cursor > 0 && t.Sub(p.lastAdvance) > m.timeout {
			m.logger.Debug("sequence %q expired after %d of %d", b.Shortcut, p.cursor, len(b.Chords))
			p.reset()
		}

		if !b.Chords[p.cursor].Matches(e) {
			// Holding a modifier down on its way to a chord is not a mismatch.
			if !e.IsModifierPress() {
				p.reset()
			}
			continue
		}

		p.cursor++
		p.lastAdvance = t
		if p.cursor == len(b.Chords) {
			p.reset()
			completed = append(completed, b)
		}
	}

	if len(completed) > 0 {
		m.logger.Debug("key %s completed %d binding(s)", key.Normalize(e), len(completed))
	}
	return completed
}

// Pending returns the bindings with partial progress, in evaluation order.
// Progress that has already timed out at the current clock is not reported.
func (m *Matcher) Pending() []Pending {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var out []Pending
	for _, b := range m.bindings {
		p := m.state[b.Shortcut]
		if p.cursor == 0 || now.Sub(p.lastAdvance) > m.timeout {
			continue
		}
		out = append(out, Pending{
			Shortcut: b.Shortcut,
			Matched:  p.cursor,
			Total:    len(b.Chords),
		})
	}
	return out
}

// Reset discards all partial progress.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.state {
		p.reset()
	}
}
