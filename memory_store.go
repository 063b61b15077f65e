package featureflags

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process FlagStore. It's useful for testing and for
// running a service without the flag service.
type MemoryStore struct {
	mu    sync.RWMutex
	flags map[string]FlagRecord
}

var _ FlagStore = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding the given records.
func NewMemoryStore(records ...FlagRecord) *MemoryStore {
	m := &MemoryStore{flags: make(map[string]FlagRecord, len(records))}
	for _, r := range records {
		m.flags[r.Key] = r
	}
	return m
}

// NewMemoryStoreFromCatalog seeds a store with the enabled state of every
// catalog flag.
func NewMemoryStoreFromCatalog(c *Catalog) *MemoryStore {
	m := NewMemoryStore()
	now := time.Now()
	for _, f := range c.Flags() {
		m.flags[f.Key] = FlagRecord{Key: f.Key, Enabled: f.Enabled, UpdatedAt: now}
	}
	return m
}

func (m *MemoryStore) GetFlag(_ context.Context, key string) (FlagRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.flags[key]
	if !ok {
		return FlagRecord{}, missingError(key)
	}
	return r, nil
}

// Set stores the enabled state of key.
func (m *MemoryStore) Set(key string, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = FlagRecord{Key: key, Enabled: enabled, UpdatedAt: time.Now()}
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flags, key)
}
