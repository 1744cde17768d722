package waverb

import "sync"

// EmitterID is an opaque handle identifying a registered sound emitter.
type EmitterID uint64

// EmissionManager maps emitter handles to world positions. The engine never
// stores handles itself; consumers register emitters here and pass handles to
// the descriptor query. Safe for concurrent use.
type EmissionManager struct {
	mu       sync.RWMutex
	next     EmitterID
	emitters map[EmitterID]Vec2
}

// NewEmissionManager returns an empty registry.
func NewEmissionManager() *EmissionManager {
	return &EmissionManager{emitters: make(map[EmitterID]Vec2)}
}

// Add registers an emitter at a world position and returns its handle.
func (m *EmissionManager) Add(pos Vec2) EmitterID {
	m.mu.Lock()
	m.next++
	id := m.next
	m.emitters[id] = pos
	m.mu.Unlock()
	return id
}

// Update moves a registered emitter. It reports whether the handle was known.
func (m *EmissionManager) Update(id EmitterID, pos Vec2) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, known := m.emitters[id]; !known {
		return false
	}
	m.emitters[id] = pos
	return true
}

// Remove unregisters an emitter. Removing an unknown handle is a no-op.
func (m *EmissionManager) Remove(id EmitterID) {
	m.mu.Lock()
	delete(m.emitters, id)
	m.mu.Unlock()
}

// Position resolves a handle to its world position.
func (m *EmissionManager) Position(id EmitterID) (Vec2, bool) {
	m.mu.RLock()
	pos, known := m.emitters[id]
	m.mu.RUnlock()
	return pos, known
}

// Count returns the number of registered emitters.
func (m *EmissionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.emitters)
}
