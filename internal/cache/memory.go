package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store used in tests and when no backing
// store is configured. Same upsert semantics as the durable tiers.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	payload  []byte
	storedAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}

	return entry.payload, entry.storedAt, true
}

func (m *MemoryStore) Put(_ context.Context, key string, payload []byte, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{payload: payload, storedAt: now}
}

// Len reports the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
