package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// memoryStore is an in-process Service used in tests and in environments
// without Redis. Values expire lazily on read.
type memoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// NewMemory creates an in-memory store
func NewMemory() Service {
	return &memoryStore{items: make(map[string]memoryItem)}
}

func (m *memoryStore) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return ErrNotFound
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		delete(m.items, key)
		return ErrNotFound
	}

	if err := json.Unmarshal(item.data, dest); err != nil {
		return fmt.Errorf("store unmarshal error: %w", err)
	}
	return nil
}

func (m *memoryStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store marshal error: %w", err)
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = memoryItem{data: data, expiresAt: expiresAt}
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *memoryStore) Exists(ctx context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return false
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		delete(m.items, key)
		return false
	}
	return true
}

func (m *memoryStore) Ping(ctx context.Context) error {
	return nil
}
