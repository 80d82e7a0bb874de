// Package target defines where key events come from.
//
// A Target is anything that can deliver key presses to listeners: a terminal
// screen, a browser window bridge, or the in-memory Dispatcher used by tests
// and embedding hosts.
package target

import (
	"sync"

	"github.com/dshills/keychord/internal/input/key"
)

// Listener receives key presses.
type Listener func(e *key.Event)

// Target delivers key events to listeners.
type Target interface {
	// AddKeyListener attaches l and returns a function that detaches it.
	// The returned function is safe to call more than once.
	AddKeyListener(l Listener) (remove func())
}

type entry struct {
	id uint64
	fn Listener
}

// Dispatcher is an in-memory Target. Listeners are called synchronously in
// the order they were added.
type Dispatcher struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners []entry
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddKeyListener implements Target.
func (d *Dispatcher) AddKeyListener(l Listener) func() {
	if l == nil {
		return func() {}
	}

	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, entry{id: id, fn: l})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *Dispatcher) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, e := range d.listeners {
		if e.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached listeners.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// Dispatch delivers e to every listener attached when the call starts.
func (d *Dispatcher) Dispatch(e *key.Event) {
	d.mu.RLock()
	snapshot := make([]entry, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.RUnlock()

	for _, l := range snapshot {
		l.fn(e)
	}
}
