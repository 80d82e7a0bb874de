package action

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/sequence"
	"github.com/dshills/keychord/internal/input/target"
	"github.com/dshills/keychord/internal/logging"
)

// Entry is one bound shortcut, in match priority order.
type Entry struct {
	Shortcut string
	Action   Action
}

// Resolver owns the binding set built from a group of actions.
type Resolver struct {
	opts     Options
	onSelect func(Action)
	set      *sequence.BindingSet
	entries  []Entry
	logger   *logging.Logger
}

// NewResolver builds a resolver from actions keyed by identifier. Actions are
// taken in key order so equally long shortcuts have a stable priority. An
// action with an empty ID takes its map key.
func NewResolver(actions map[string]Action, onSelect func(Action), opts Options) (*Resolver, error) {
	ids := make([]string, 0, len(actions))
	for id := range actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	list := make([]Action, 0, len(ids))
	for _, id := range ids {
		a := actions[id]
		if a.ID == "" {
			a.ID = id
		}
		list = append(list, a)
	}
	return NewResolverFromList(list, onSelect, opts)
}

// NewResolverFromList builds a resolver keeping the caller's order as the
// tie-break between equally long shortcuts.
func NewResolverFromList(actions []Action, onSelect func(Action), opts Options) (*Resolver, error) {
	if onSelect == nil {
		return nil, ErrNoCallback
	}
	opts = opts.withDefaults()

	r := &Resolver{
		opts:     opts,
		onSelect: onSelect,
		set:      sequence.NewBindingSet(opts.Platform.Resolve()),
		logger:   opts.Logger.WithComponent("action"),
	}

	bound := make([]Action, 0, len(actions))
	for _, a := range actions {
		if !a.HasShortcut() {
			continue
		}
		bound = append(bound, a)
	}
	sort.SliceStable(bound, func(i, j int) bool {
		return len(bound[i].Serialized()) > len(bound[j].Serialized())
	})

	owner := make(map[string]int, len(bound))
	for _, a := range bound {
		shortcut := a.Serialized()
		if i, dup := owner[shortcut]; dup {
			prev := r.entries[i].Action.ID
			if opts.RejectDuplicates {
				return nil, &DuplicateError{Shortcut: shortcut, Previous: prev, Current: a.ID}
			}
			r.logger.Warn("shortcut %q of %q replaces %q", shortcut, a.ID, prev)
			r.entries[i].Action = a
		} else {
			owner[shortcut] = len(r.entries)
			r.entries = append(r.entries, Entry{Shortcut: shortcut, Action: a})
		}
		r.set.Add(shortcut, r.handlerFor(a))
	}

	r.logger.Debug("bound %d of %d action(s)", len(r.entries), len(actions))
	return r, nil
}

// handlerFor wraps the selection of a with the handled-event check: a
// keystroke already consumed by a longer sequence does nothing, and the
// first handler to see a keystroke consumes it whether or not focus
// suppressed the selection.
func (r *Resolver) handlerFor(a Action) sequence.Handler {
	return func(e *key.Event, d *sequence.Dispatch) {
		if d.Consumed() {
			return
		}
		r.selectAction(e, a)
		d.Consume()
	}
}

func (r *Resolver) selectAction(e *key.Event, a Action) {
	if r.opts.ShouldReject() {
		r.logger.Debug("ignoring %q while a text input is focused", a.ID)
		return
	}
	e.PreventDefault()
	r.logger.Debug("selected %q via %s", a.ID, key.Normalize(e))
	r.onSelect(a)
}

// Bindings returns the bound shortcuts in match priority order.
func (r *Resolver) Bindings() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Timeout returns the effective sequence timeout.
func (r *Resolver) Timeout() time.Duration {
	return r.opts.Timeout
}

// Activate starts listening on t with fresh sequence state.
func (r *Resolver) Activate(t target.Target) *Activation {
	id := uuid.New().String()
	logger := r.logger.WithField("activation", id)

	a := &Activation{
		id: id,
		matcher: sequence.NewMatcher(r.set,
			sequence.WithTimeout(r.opts.Timeout),
			sequence.WithClock(r.opts.Clock),
			sequence.WithLogger(logger),
		),
		logger: logger,
	}
	a.remove = t.AddKeyListener(a.handle)
	logger.Debug("activated")
	return a
}

// Activator returns a function that activates r on t and yields the
// matching deactivation function.
func (r *Resolver) Activator(t target.Target) func() func() {
	return func() func() {
		return r.Activate(t).Deactivate
	}
}

// Activation is one live registration of a resolver on a target.
type Activation struct {
	id      string
	matcher *sequence.Matcher
	remove  func()
	logger  *logging.Logger

	stopped atomic.Bool
	once    sync.Once
}

func (a *Activation) handle(e *key.Event) {
	if a.stopped.Load() {
		return
	}
	a.matcher.HandleEvent(e)
}

// ID returns the activation's identifier.
func (a *Activation) ID() string {
	return a.id
}

// Pending returns the sequences currently in progress.
func (a *Activation) Pending() []sequence.Pending {
	if a.stopped.Load() {
		return nil
	}
	return a.matcher.Pending()
}

// Active reports whether the activation still receives events.
func (a *Activation) Active() bool {
	return !a.stopped.Load()
}

// Deactivate detaches the listener and drops all sequence state. Events
// delivered after it returns are ignored. Calling it again is a no-op.
func (a *Activation) Deactivate() {
	a.once.Do(func() {
		a.stopped.Store(true)
		a.remove()
		a.matcher.Reset()
		a.logger.Debug("deactivated")
	})
}
