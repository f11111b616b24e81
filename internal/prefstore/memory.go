package prefstore

import (
	"sync"

	"github.com/starford/vitalog/internal/apperr"
)

// Memory is an in-memory Provider used by tests and ephemeral sessions.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load returns the raw value for key, or apperr.ErrNotFound.
func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// Save stores raw under key.
func (m *Memory) Save(key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(raw))
	copy(cp, raw)
	m.data[key] = cp
	return nil
}

// Close is a no-op for the memory provider.
func (m *Memory) Close() error {
	return nil
}
