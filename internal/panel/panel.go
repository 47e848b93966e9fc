package panel

import (
	"sync"

	"github.com/google/uuid"
)

// State is the panel lifecycle state
type State int

const (
	// StateClosed means the panel's query key is absent
	StateClosed State = iota
	// StateOpen means the query key holds a well-formed id
	StateOpen
)

// Panel tracks one detail panel bound to a single query parameter key.
// The query string is the source of truth: every transition goes
// through SetFromQuery with the value of the bound key.
//
// Each transition bumps a generation counter. Loads started for an
// earlier generation are stale and must be discarded, which prevents a
// slow fetch for a superseded id from clobbering the current panel.
type Panel struct {
	key string

	mu         sync.Mutex
	state      State
	id         uuid.UUID
	missing    bool
	generation uint64
}

// New creates a closed panel bound to the given query parameter key
func New(key string) *Panel {
	return &Panel{key: key}
}

// Key returns the query parameter key the panel is bound to
func (p *Panel) Key() string {
	return p.key
}

// SetFromQuery applies the raw value of the panel's query key. An empty
// or malformed value closes the panel. Returns the generation of the
// resulting state.
func (p *Panel) SetFromQuery(raw string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if raw == "" {
		return p.transitionLocked(StateClosed, uuid.Nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		// Malformed ids behave like an absent key
		return p.transitionLocked(StateClosed, uuid.Nil)
	}
	return p.transitionLocked(StateOpen, id)
}

func (p *Panel) transitionLocked(state State, id uuid.UUID) uint64 {
	if p.state == state && p.id == id {
		return p.generation
	}
	p.state = state
	p.id = id
	p.missing = false
	p.generation++
	return p.generation
}

// Snapshot returns the current state, id and generation atomically
func (p *Panel) Snapshot() (State, uuid.UUID, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.id, p.generation
}

// IsOpen reports whether the panel is open
func (p *Panel) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StateOpen
}

// ID returns the open id, or uuid.Nil when closed
func (p *Panel) ID() uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// Missing reports whether the open id resolved to no resource
func (p *Panel) Missing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.missing
}

// ResolveLoad records the outcome of a fetch started at generation gen.
// A result for a superseded generation is ignored and false is
// returned. A current result marks the panel missing when the resource
// was not found; the panel stays open but renders nothing.
func (p *Panel) ResolveLoad(gen uint64, found bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return false
	}
	if p.state == StateOpen {
		p.missing = !found
	}
	return true
}
