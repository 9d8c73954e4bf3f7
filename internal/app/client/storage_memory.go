package client

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/exp/slog"
)

// MemoryStore хранилище в памяти, используется если SQLite недоступен
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
	log  *slog.Logger
}

func NewMemoryStore(log *slog.Logger) *MemoryStore {
	return &MemoryStore{
		docs: make(map[string][]byte),
		log:  log.With("component", "memory-store"),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.docs[storageKey(key)]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return decode(m.log, key, raw, dst), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		m.log.Error("Не удалось сохранить документ", "key", key, "error", err)
		return err
	}

	m.mu.Lock()
	m.docs[storageKey(key)] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.docs, storageKey(key))
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.docs {
		if strings.HasPrefix(k, keyPrefix) {
			delete(m.docs, k)
		}
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
