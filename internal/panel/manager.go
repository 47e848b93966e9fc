package panel

import (
	"net/url"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/events"
)

// Standard panel query keys
const (
	KeyTask     = "taskId"
	KeyActivity = "activityId"
	KeyUser     = "userId"
	KeyFile     = "fileId"
)

// DefaultKeys lists the panel keys a session starts with
var DefaultKeys = []string{KeyTask, KeyActivity, KeyUser, KeyFile}

// Manager binds a set of panels to one shared navigation history.
// Panels with different keys are independent: several may be open at
// once when the query string carries several keys.
//
// Programmatic opens and closes push a new history entry and then
// re-apply the resulting query to every panel, the same path taken by
// Back and Forward. Mount applies the initial query without touching
// history.
type Manager struct {
	mu      sync.Mutex
	panels  map[string]*Panel
	history *History
	bus     *events.Bus
	logger  *zap.Logger
}

// NewManager creates a manager with panels for the given query keys
func NewManager(keys []string, bus *events.Bus, logger *zap.Logger) *Manager {
	panels := make(map[string]*Panel, len(keys))
	for _, key := range keys {
		panels[key] = New(key)
	}
	return &Manager{
		panels:  panels,
		history: NewHistory(url.Values{}),
		bus:     bus,
		logger:  logger,
	}
}

// Mount parses the initial raw query and applies it to every panel.
// A panel whose key is absent mounts closed.
func (m *Manager) Mount(rawQuery string) error {
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = NewHistory(query)
	m.applyLocked(query)
	return nil
}

// Panel returns the panel bound to the given key, or nil
func (m *Manager) Panel(key string) *Panel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.panels[key]
}

// Open opens the panel for key with the given id. The new state is
// pushed onto history before panels re-parse it, so a later Back
// returns to the previous panel state.
func (m *Manager) Open(key string, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.panels[key]; !ok {
		if m.logger != nil {
			m.logger.Warn("open requested for unknown panel key", zap.String("key", key))
		}
		return
	}

	query := m.history.Current()
	query.Set(key, id.String())
	m.history.Push(query)
	m.applyLocked(query)

	if m.bus != nil {
		m.bus.Publish(events.PanelOpened{Key: key, ID: id})
	}
}

// Close closes the panel for key by removing its query parameter and
// pushing the resulting query as a new history entry
func (m *Manager) Close(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.panels[key]; !ok {
		return
	}

	query := m.history.Current()
	if query.Get(key) == "" {
		// Already closed, nothing to push
		return
	}
	query.Del(key)
	m.history.Push(query)
	m.applyLocked(query)
}

// Back steps the shared history back one entry and re-applies the
// query to every panel. Returns false at the oldest entry.
func (m *Manager) Back() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	query, moved := m.history.Back()
	if moved {
		m.applyLocked(query)
	}
	return moved
}

// Forward steps the shared history forward one entry
func (m *Manager) Forward() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	query, moved := m.history.Forward()
	if moved {
		m.applyLocked(query)
	}
	return moved
}

// CurrentQuery returns the query string at the history cursor
func (m *Manager) CurrentQuery() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Current().Encode()
}

func (m *Manager) applyLocked(query url.Values) {
	for key, p := range m.panels {
		p.SetFromQuery(query.Get(key))
	}
}
