package palette

import (
	"sort"
	"sync"
)

const defaultHistorySize = 50

// History remembers when each action was last chosen. Only the most recent
// entries up to its capacity are kept.
type History struct {
	mu    sync.Mutex
	clock uint64
	used  map[string]uint64
	size  int
}

// NewHistory creates a history holding up to size actions.
func NewHistory(size int) *History {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &History{used: make(map[string]uint64), size: size}
}

// Add marks id as the most recently chosen action.
func (h *History) Add(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clock++
	h.used[id] = h.clock
	if len(h.used) <= h.size {
		return
	}

	oldest, stamp := "", h.clock
	for k, v := range h.used {
		if v < stamp {
			oldest, stamp = k, v
		}
	}
	delete(h.used, oldest)
}

// Position returns how many actions were chosen after id, or -1 when id is
// not in the history.
func (h *History) Position(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	stamp, ok := h.used[id]
	if !ok {
		return -1
	}
	n := 0
	for _, v := range h.used {
		if v > stamp {
			n++
		}
	}
	return n
}

// Ranks returns the Position of every remembered action.
func (h *History) Ranks() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := h.ordered()
	out := make(map[string]int, len(ids))
	for i, id := range ids {
		out[id] = i
	}
	return out
}

// Recent returns up to limit IDs, most recent first. A limit of 0 returns all.
func (h *History) Recent(limit int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := h.ordered()
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}

// ordered lists IDs by descending stamp. Callers hold mu.
func (h *History) ordered() []string {
	ids := make([]string, 0, len(h.used))
	for id := range h.used {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return h.used[ids[i]] > h.used[ids[j]] })
	return ids
}

// Len returns the number of remembered actions.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.used)
}
