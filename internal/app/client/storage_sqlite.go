package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSQLiteStore(path string, log *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	store := &SQLiteStore{db: db, log: log.With("component", "sqlite")}

	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			version TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM documents WHERE key = ?", storageKey(key),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка чтения документа %s: %w", key, err)
	}

	return decode(s.log, key, []byte(raw), dst), nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		s.log.Error("Не удалось сохранить документ", "key", key, "error", err)
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, value, version, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = excluded.version,
			updated_at = excluded.updated_at
	`, storageKey(key), string(raw), storeVersion, time.Now().UTC())
	if err != nil {
		s.log.Error("Не удалось сохранить документ", "key", key, "error", err)
		return fmt.Errorf("ошибка сохранения документа %s: %w", key, err)
	}

	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE key = ?", storageKey(key)); err != nil {
		return fmt.Errorf("ошибка удаления документа %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE key LIKE ?", keyPrefix+"%"); err != nil {
		return fmt.Errorf("ошибка очистки хранилища: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
