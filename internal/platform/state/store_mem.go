package state

import (
	"context"
	"sync"
)

// MemStore keeps slots in memory. Used by tests and as a throwaway backend
// for local experiments; nothing survives a restart.
type MemStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{slots: make(map[string][]byte)}
}

func (m *MemStore) Read(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[key]
	return data, ok, nil
}

func (m *MemStore) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.slots[key] = cp
	return nil
}
