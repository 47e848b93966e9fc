package panel

import (
	"net/url"
	"sync"
)

// History models a browser-style navigation stack of query strings.
// Push drops any forward entries, Back and Forward move the cursor
// without modifying the stack.
type History struct {
	mu      sync.Mutex
	entries []url.Values
	cursor  int
}

// NewHistory creates a history seeded with the given initial query
func NewHistory(initial url.Values) *History {
	return &History{
		entries: []url.Values{cloneValues(initial)},
		cursor:  0,
	}
}

// Current returns a copy of the query at the cursor
func (h *History) Current() url.Values {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneValues(h.entries[h.cursor])
}

// Push appends a new entry after the cursor, discarding forward entries
func (h *History) Push(query url.Values) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.cursor+1], cloneValues(query))
	h.cursor = len(h.entries) - 1
}

// Back moves the cursor one entry back. Returns the query at the new
// position and false if already at the oldest entry.
func (h *History) Back() (url.Values, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor == 0 {
		return cloneValues(h.entries[h.cursor]), false
	}
	h.cursor--
	return cloneValues(h.entries[h.cursor]), true
}

// Forward moves the cursor one entry forward. Returns the query at the
// new position and false if already at the newest entry.
func (h *History) Forward() (url.Values, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor == len(h.entries)-1 {
		return cloneValues(h.entries[h.cursor]), false
	}
	h.cursor++
	return cloneValues(h.entries[h.cursor]), true
}

// Len returns the number of entries on the stack
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, vals := range v {
		cp := make([]string, len(vals))
		copy(cp, vals)
		out[key] = cp
	}
	return out
}
