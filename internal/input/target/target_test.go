package target

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/keychord/internal/input/key"
)

func TestDispatcherOrderAndRemoval(t *testing.T) {
	d := NewDispatcher()
	var got []string

	removeA := d.AddKeyListener(func(e *key.Event) { got = append(got, "a:"+e.Key) })
	removeB := d.AddKeyListener(func(e *key.Event) { got = append(got, "b:"+e.Key) })
	assert.Equal(t, 2, d.Len())

	d.Dispatch(key.NewEvent("x", key.ModNone))
	assert.Equal(t, []string{"a:x", "b:x"}, got)

	removeA()
	removeA()
	assert.Equal(t, 1, d.Len())

	got = nil
	d.Dispatch(key.NewEvent("y", key.ModNone))
	assert.Equal(t, []string{"b:y"}, got)

	removeB()
	got = nil
	d.Dispatch(key.NewEvent("z", key.ModNone))
	assert.Empty(t, got)
}

func TestDispatcherRemoveDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var remove func()
	remove = d.AddKeyListener(func(*key.Event) {
		calls++
		remove()
	})

	d.Dispatch(key.NewEvent("a", key.ModNone))
	d.Dispatch(key.NewEvent("a", key.ModNone))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.Len())
}

func TestDispatcherNilListener(t *testing.T) {
	d := NewDispatcher()
	remove := d.AddKeyListener(nil)
	assert.Equal(t, 0, d.Len())
	assert.NotPanics(t, remove)
}
