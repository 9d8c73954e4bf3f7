package client

import (
	"context"
	"time"
)

// setRaw кладет в хранилище строку как есть, минуя сериализацию
func (s *SQLiteStore) setRaw(ctx context.Context, key, raw string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (key, value, version, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, storageKey(key), raw, storeVersion, time.Now().UTC())
	return err
}

func (m *MemoryStore) setRaw(_ context.Context, key, raw string) error {
	m.mu.Lock()
	m.docs[storageKey(key)] = []byte(raw)
	m.mu.Unlock()
	return nil
}
