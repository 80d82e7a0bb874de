package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/input/focus"
	"github.com/dshills/keychord/internal/input/key"
)

func newTestHost(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	h := NewHost(screen, nil)
	require.NoError(t, h.Start())
	t.Cleanup(h.Close)
	return h, screen
}

func TestHostDispatchesInjectedKeys(t *testing.T) {
	h, screen := newTestHost(t)

	got := make(chan string, 4)
	remove := h.AddKeyListener(func(e *key.Event) {
		got <- e.String()
	})
	defer remove()

	screen.InjectKey(tcell.KeyRune, 'g', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlK, 0, tcell.ModCtrl)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	for _, want := range []string{"g", "Control+k"} {
		select {
		case s := <-got:
			assert.Equal(t, want, s)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestHostIsFocusSource(t *testing.T) {
	h, _ := newTestHost(t)

	var src focus.Source = h
	assert.False(t, focus.ShouldReject(src, nil))

	h.Focus(focus.NewNode("input"))
	assert.True(t, focus.ShouldReject(src, nil))

	h.Blur()
	assert.False(t, focus.ShouldReject(src, nil))
}

func TestHostListenerRemoval(t *testing.T) {
	h, _ := newTestHost(t)

	calls := 0
	remove := h.AddKeyListener(func(*key.Event) { calls++ })
	assert.Equal(t, 1, h.Listeners())

	h.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	remove()
	remove()
	h.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, h.Listeners())
}

func TestHostDraw(t *testing.T) {
	h, screen := newTestHost(t)

	h.Draw([]string{"hello", "world"})

	cells, width, _ := screen.GetContents()
	row := func(y int) string {
		var rs []rune
		for x := 0; x < 5; x++ {
			rs = append(rs, cells[y*width+x].Runes...)
		}
		return string(rs)
	}
	assert.Equal(t, "hello", row(0))
	assert.Equal(t, "world", row(1))
}

func TestHostCloseIsIdempotent(t *testing.T) {
	h, _ := newTestHost(t)
	h.Close()
	h.Close()
	assert.ErrorIs(t, h.Start(), ErrClosed)
}

func TestHostOnKeyRunsAfterListeners(t *testing.T) {
	h, _ := newTestHost(t)

	var order []string
	h.AddKeyListener(func(e *key.Event) {
		order = append(order, "listener")
		e.PreventDefault()
	})
	h.OnKey(func(e *key.Event) {
		order = append(order, "after")
		assert.True(t, e.DefaultPrevented())
	})

	e := h.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, []string{"listener", "after"}, order)
	assert.Equal(t, "Enter", e.Key)
}
