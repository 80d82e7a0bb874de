package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/input/action"
	"github.com/dshills/keychord/internal/input/key"
)

var testActions = []action.Action{
	{ID: "top", Name: "Go to top", Shortcut: []string{"g g"}},
	{ID: "bottom", Name: "Go to bottom", Shortcut: []string{"G"}},
	{ID: "theme", Name: "Toggle theme"},
	{ID: "search", Name: "Search", Shortcut: []string{"$mod+k"}},
}

func newPalette(t *testing.T) *Palette {
	t.Helper()
	p := New(0)
	p.SetActions(testActions)
	p.Open()
	return p
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Action.ID
	}
	return out
}

func typeText(p *Palette, s string) {
	for _, r := range s {
		p.HandleKey(key.NewEvent(string(r), key.ModNone))
	}
}

func TestEmptyQueryListsAlphabetically(t *testing.T) {
	p := newPalette(t)
	results, selected := p.Results()
	assert.Equal(t, []string{"bottom", "top", "search", "theme"}, ids(results))
	assert.Equal(t, 0, selected)
}

func TestTypingFilters(t *testing.T) {
	p := newPalette(t)
	typeText(p, "gtt")
	assert.Equal(t, "gtt", p.Query())

	results, _ := p.Results()
	assert.Equal(t, []string{"top", "bottom"}, ids(results))

	outcome, _ := p.HandleKey(key.NewEvent("Backspace", key.ModNone))
	assert.Equal(t, Updated, outcome)
	assert.Equal(t, "gt", p.Query())
}

func TestChooseRecordsHistory(t *testing.T) {
	p := newPalette(t)
	typeText(p, "theme")

	outcome, a := p.HandleKey(key.NewEvent("Enter", key.ModNone))
	require.Equal(t, Chosen, outcome)
	assert.Equal(t, "theme", a.ID)
	assert.False(t, p.IsOpen())
	assert.Equal(t, 0, p.History().Position("theme"))

	p.Open()
	results, _ := p.Results()
	assert.Equal(t, "theme", results[0].Action.ID, "recent actions come first")
}

func TestNavigationWraps(t *testing.T) {
	p := newPalette(t)

	p.HandleKey(key.NewEvent("ArrowUp", key.ModNone))
	a, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "theme", a.ID)

	p.HandleKey(key.NewEvent("Tab", key.ModNone))
	a, _ = p.Selected()
	assert.Equal(t, "bottom", a.ID)

	p.HandleKey(key.NewEvent("Tab", key.ModShift))
	a, _ = p.Selected()
	assert.Equal(t, "theme", a.ID)
}

func TestEscapeAndIgnoredKeys(t *testing.T) {
	p := newPalette(t)

	outcome, _ := p.HandleKey(key.NewEvent("k", key.ModCtrl))
	assert.Equal(t, Ignored, outcome)
	outcome, _ = p.HandleKey(key.NewEvent("F5", key.ModNone))
	assert.Equal(t, Ignored, outcome)
	assert.Empty(t, p.Query())

	outcome, _ = p.HandleKey(key.NewEvent("Escape", key.ModNone))
	assert.Equal(t, Closed, outcome)
	assert.False(t, p.IsOpen())

	outcome, _ = p.HandleKey(key.NewEvent("a", key.ModNone))
	assert.Equal(t, Ignored, outcome)
}

func TestEnterWithoutResults(t *testing.T) {
	p := newPalette(t)
	typeText(p, "zzz")
	outcome, _ := p.HandleKey(key.NewEvent("Enter", key.ModNone))
	assert.Equal(t, Closed, outcome)
	assert.Zero(t, p.History().Len())
}

func TestLimit(t *testing.T) {
	p := New(2)
	p.SetActions(testActions)
	p.Open()
	results, _ := p.Results()
	assert.Len(t, results, 2)
}

func TestHistory(t *testing.T) {
	h := NewHistory(2)
	h.Add("a")
	h.Add("b")
	h.Add("a")
	h.Add("c")
	assert.Equal(t, []string{"c", "a"}, h.Recent(0))
	assert.Equal(t, -1, h.Position("b"))
	assert.Equal(t, []string{"c"}, h.Recent(1))
	assert.Equal(t, map[string]int{"c": 0, "a": 1}, h.Ranks())
	assert.Equal(t, 2, h.Len())
}
