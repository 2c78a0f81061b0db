package session

import (
	"sync"
	"time"
)

// MemoryStore keeps the session record in memory. Used by the processor
// and by tests.
type MemoryStore struct {
	mu      sync.Mutex
	session Session
	present bool
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored session, if any.
func (m *MemoryStore) Get() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, m.present
}

// Set replaces the session record.
func (m *MemoryStore) Set(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.present = true
	return nil
}

// Clear removes the session record.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	m.present = false
	return nil
}

// IsValid reports whether a session is present and not expired.
func (m *MemoryStore) IsValid(now time.Time) bool {
	s, ok := m.Get()
	return ok && !s.Expired(now)
}
