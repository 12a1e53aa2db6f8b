package battle

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Manager tracks active battles, at most one per user.
// Thread-safe for concurrent access.
type Manager struct {
	mu     sync.RWMutex
	byUser map[int64]*Battle
	byID   map[uuid.UUID]int64
}

// NewManager creates a new battle manager.
func NewManager() *Manager {
	return &Manager{
		byUser: make(map[int64]*Battle, 16),
		byID:   make(map[uuid.UUID]int64, 16),
	}
}

// Start registers b as the active battle of its player.
// Fails if the user already has an unfinished battle.
func (m *Manager) Start(b *Battle) error {
	userID := b.Player().UserID()

	m.mu.Lock()
	defer m.mu.Unlock()

	if cur, ok := m.byUser[userID]; ok {
		if !cur.IsOver() {
			return fmt.Errorf("user %d already in battle %s", userID, cur.ID())
		}
		delete(m.byID, cur.ID())
	}
	m.byUser[userID] = b
	m.byID[b.ID()] = userID

	slog.Debug("battle registered",
		"battleID", b.ID(),
		"userID", userID)
	return nil
}

// Get returns the battle of a user.
func (m *Manager) Get(userID int64) (*Battle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.byUser[userID]
	return b, ok
}

// ByID returns a battle by its identifier.
func (m *Manager) ByID(id uuid.UUID) (*Battle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	userID, ok := m.byID[id]
	if !ok {
		return nil, false
	}
	return m.byUser[userID], true
}

// End removes the user's battle, abandoning it if unfinished.
// Abandoning is always safe: no state change spans two actions.
func (m *Manager) End(userID int64) (*Battle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.byUser[userID]
	if !ok {
		return nil, false
	}
	delete(m.byUser, userID)
	delete(m.byID, b.ID())

	slog.Debug("battle removed",
		"battleID", b.ID(),
		"userID", userID,
		"state", b.State())
	return b, true
}

// Count returns the number of tracked battles.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byUser)
}
