package console

import (
	"fmt"
	"sync"

	"github.com/andyrewlee/conscroll/internal/logging"
)

// Manager owns one surface per display target. Surfaces are explicit
// handles: nothing here is process-wide state, and independent managers
// never share storage.
type Manager struct {
	mu       sync.Mutex
	surfaces []*Surface
	byID     map[string]*Surface
	active   int
	nextID   int

	defaultWidth  int
	defaultHeight int
}

// NewManager creates a manager whose new surfaces start at the given
// shape. Non-positive dimensions fall back to the 80x24 default.
func NewManager(defaultWidth, defaultHeight int) *Manager {
	return &Manager{
		byID:          make(map[string]*Surface),
		defaultWidth:  defaultWidth,
		defaultHeight: defaultHeight,
	}
}

// Open creates and registers a new surface. The first surface opened
// becomes the active one.
func (m *Manager) Open(title string) (*Surface, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := fmt.Sprintf("surface-%d", m.nextID)
	s, err := NewSurface(id, title, m.defaultWidth, m.defaultHeight)
	if err != nil {
		return nil, err
	}
	m.surfaces = append(m.surfaces, s)
	m.byID[id] = s
	logging.Debug("opened %s (%q)", id, title)
	return s, nil
}

// Get returns the surface with the given ID, or nil.
func (m *Manager) Get(id string) *Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id]
}

// List returns the surfaces in tab order.
func (m *Manager) List() []*Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Surface, len(m.surfaces))
	copy(out, m.surfaces)
	return out
}

// Active returns the active surface, or nil when none are open.
func (m *Manager) Active() *Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active < 0 || m.active >= len(m.surfaces) {
		return nil
	}
	return m.surfaces[m.active]
}

// SetActive makes the surface with the given ID active. Returns false
// if no such surface exists.
func (m *Manager) SetActive(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.surfaces {
		if s.ID == id {
			m.active = i
			return true
		}
	}
	return false
}

// Cycle advances the active surface by delta (negative cycles back).
func (m *Manager) Cycle(delta int) *Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.surfaces)
	if n == 0 {
		return nil
	}
	m.active = ((m.active+delta)%n + n) % n
	return m.surfaces[m.active]
}

// Close tears down and removes one surface.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.surfaces {
		if s.ID != id {
			continue
		}
		s.Close()
		m.surfaces = append(m.surfaces[:i], m.surfaces[i+1:]...)
		delete(m.byID, id)
		if m.active >= len(m.surfaces) && m.active > 0 {
			m.active = len(m.surfaces) - 1
		}
		logging.Debug("closed %s", id)
		return
	}
}

// CloseAll tears down every surface.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.surfaces {
		s.Close()
	}
	m.surfaces = nil
	m.byID = make(map[string]*Surface)
	m.active = 0
}
