package terminal

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/focus"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/target"
	"github.com/dshills/keychord/internal/logging"
)

// ErrClosed is returned by Run after the host has been closed.
var ErrClosed = errors.New("terminal: host closed")

// Host delivers terminal key presses to registered listeners.
//
// Host is a target.Target. Its embedded focus.Tracker lets callers mark a
// text field as focused while they read free-form input, so shortcuts stand
// down for that duration.
type Host struct {
	*focus.Tracker

	screen     tcell.Screen
	dispatcher *target.Dispatcher
	logger     *logging.Logger

	mu       sync.Mutex
	onResize func(width, height int)
	onKey    func(e *key.Event)
	started  bool
	closed   bool
}

// NewHost creates a host around screen. The screen is initialized by Start.
func NewHost(screen tcell.Screen, logger *logging.Logger) *Host {
	return &Host{
		Tracker:    focus.NewTracker(),
		screen:     screen,
		dispatcher: target.NewDispatcher(),
		logger:     logging.OrNop(logger).WithComponent("terminal"),
	}
}

// NewDefaultHost creates a host on the current terminal.
func NewDefaultHost(logger *logging.Logger) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewHost(screen, logger), nil
}

// Start initializes the screen.
func (h *Host) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	if h.started {
		return nil
	}
	if err := h.screen.Init(); err != nil {
		return err
	}
	h.screen.Clear()
	h.started = true
	return nil
}

// Close restores the terminal. It is safe to call more than once.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	if h.started {
		h.screen.Fini()
	}
}

// Screen returns the underlying screen.
func (h *Host) Screen() tcell.Screen {
	return h.screen
}

// OnResize sets the resize callback.
func (h *Host) OnResize(fn func(width, height int)) {
	h.mu.Lock()
	h.onResize = fn
	h.mu.Unlock()
}

// OnKey sets a callback that runs after every listener has seen a key.
func (h *Host) OnKey(fn func(e *key.Event)) {
	h.mu.Lock()
	h.onKey = fn
	h.mu.Unlock()
}

// AddKeyListener implements target.Target.
func (h *Host) AddKeyListener(l target.Listener) func() {
	return h.dispatcher.AddKeyListener(l)
}

// Listeners returns the number of registered listeners.
func (h *Host) Listeners() int {
	return h.dispatcher.Len()
}

// Run polls the screen and dispatches key events until ctx is done or the
// screen is finalized.
func (h *Host) Run(ctx context.Context) error {
	if err := h.Start(); err != nil {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			h.HandleKey(e)
		case *tcell.EventResize:
			w, ht := e.Size()
			h.mu.Lock()
			fn := h.onResize
			h.mu.Unlock()
			if fn != nil {
				fn(w, ht)
			}
			h.screen.Sync()
		}
	}
}

// HandleKey converts and dispatches a single key event. It returns the
// converted event so callers can inspect DefaultPrevented.
func (h *Host) HandleKey(ev *tcell.EventKey) *key.Event {
	e := ConvertEvent(ev)
	h.logger.Debug("key %s", e)
	h.dispatcher.Dispatch(e)

	h.mu.Lock()
	fn := h.onKey
	h.mu.Unlock()
	if fn != nil {
		fn(e)
	}
	return e
}

// Draw writes lines from the top-left corner, clearing the rest of the screen.
func (h *Host) Draw(lines []string) {
	h.screen.Clear()
	style := tcell.StyleDefault
	width, height := h.screen.Size()
	for y, line := range lines {
		if y >= height {
			break
		}
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			h.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	h.screen.Show()
}
