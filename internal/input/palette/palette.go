package palette

import (
	"sort"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/keychord/internal/input/action"
	"github.com/dshills/keychord/internal/input/fuzzy"
	"github.com/dshills/keychord/internal/input/key"
)

// DefaultLimit is the number of results shown.
const DefaultLimit = 8

// Result is one ranked action.
type Result struct {
	Action action.Action
	Score  int

	// Matches holds the rune indices of the label that matched the query.
	Matches []int
}

// Outcome reports what HandleKey did.
type Outcome int

const (
	// Ignored means the key was not for the palette.
	Ignored Outcome = iota
	// Updated means the query or selection changed.
	Updated
	// Closed means the palette closed without a choice.
	Closed
	// Chosen means an action was picked; the palette closed.
	Chosen
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Updated:
		return "updated"
	case Closed:
		return "closed"
	case Chosen:
		return "chosen"
	default:
		return "unknown"
	}
}

// Palette is a searchable action list.
type Palette struct {
	mu       sync.RWMutex
	actions  []action.Action
	history  *History
	limit    int
	open     bool
	query    []rune
	selected int
	results  []Result
}

// New creates a closed palette showing up to limit results.
func New(limit int) *Palette {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Palette{
		history: NewHistory(0),
		limit:   limit,
	}
}

// SetActions replaces the listed actions. Actions are listed whether or not
// they have a shortcut.
func (p *Palette) SetActions(actions []action.Action) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions = append([]action.Action(nil), actions...)
	p.refresh()
}

// History returns the palette's history.
func (p *Palette) History() *History {
	return p.history
}

// Record marks id as recently chosen.
func (p *Palette) Record(id string) {
	p.history.Add(id)
	p.mu.Lock()
	p.refresh()
	p.mu.Unlock()
}

// Open shows the palette with an empty query.
func (p *Palette) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
	p.query = p.query[:0]
	p.refresh()
}

// Close hides the palette.
func (p *Palette) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
}

// IsOpen reports whether the palette is shown.
func (p *Palette) IsOpen() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.open
}

// Query returns the typed text.
func (p *Palette) Query() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return string(p.query)
}

// SetQuery replaces the typed text.
func (p *Palette) SetQuery(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = []rune(q)
	p.refresh()
}

// Results returns the current results and the selected index.
func (p *Palette) Results() ([]Result, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Result(nil), p.results...), p.selected
}

// Selected returns the selected action.
func (p *Palette) Selected() (action.Action, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.selected < 0 || p.selected >= len(p.results) {
		return action.Action{}, false
	}
	return p.results[p.selected].Action, true
}

// Move moves the selection by delta, wrapping around.
func (p *Palette) Move(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.results)
	if n == 0 {
		return
	}
	p.selected = ((p.selected+delta)%n + n) % n
}

// HandleKey applies a key press to an open palette. On Chosen the picked
// action is returned and recorded in the history.
func (p *Palette) HandleKey(e *key.Event) (Outcome, action.Action) {
	if !p.IsOpen() {
		return Ignored, action.Action{}
	}

	mods := e.Modifiers
	switch {
	case e.Key == "Escape":
		p.Close()
		return Closed, action.Action{}
	case e.Key == "Enter":
		a, ok := p.Selected()
		p.Close()
		if !ok {
			return Closed, action.Action{}
		}
		p.Record(a.ID)
		return Chosen, a
	case e.Key == "ArrowDown" || (e.Key == "Tab" && !mods.HasShift()):
		p.Move(1)
		return Updated, action.Action{}
	case e.Key == "ArrowUp" || (e.Key == "Tab" && mods.HasShift()):
		p.Move(-1)
		return Updated, action.Action{}
	case e.Key == "Backspace":
		p.mu.Lock()
		if n := len(p.query); n > 0 {
			p.query = p.query[:n-1]
			p.refresh()
		}
		p.mu.Unlock()
		return Updated, action.Action{}
	}

	if mods.HasCtrl() || mods.HasAlt() || mods.HasMeta() {
		return Ignored, action.Action{}
	}
	r, size := utf8.DecodeRuneInString(e.Key)
	if size == 0 || size != len(e.Key) || !unicode.IsPrint(r) {
		return Ignored, action.Action{}
	}

	p.mu.Lock()
	p.query = append(p.query, r)
	p.refresh()
	p.mu.Unlock()
	return Updated, action.Action{}
}

// refresh recomputes results and resets the selection. Callers hold mu.
func (p *Palette) refresh() {
	p.selected = 0

	items := make([]fuzzy.Item, len(p.actions))
	for i, a := range p.actions {
		items[i] = fuzzy.Item{Text: a.Label(), Data: a}
	}

	query := string(p.query)
	ranked := fuzzy.Rank(query, items, 0)
	recent := p.history.Ranks()

	results := make([]Result, len(ranked))
	for i, r := range ranked {
		a := r.Item.Data.(action.Action)
		score := r.Score
		if pos, ok := recent[a.ID]; ok {
			if query == "" {
				score = 1000 - pos
			} else {
				score += 100 - pos
			}
		}
		results[i] = Result{Action: a, Score: score, Matches: r.Matches}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Action.Label() < results[j].Action.Label()
	})
	if len(results) > p.limit {
		results = results[:p.limit]
	}
	p.results = results
}
