package client

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"golang.org/x/exp/slog"
)

const (
	keyPrefix    = "mindful-steps-"
	storeVersion = "1.0"

	KeyWalkLogs  = "walk-logs"
	KeyGoals     = "goals"
	KeyStreak    = "streak"
	KeyPhotos    = "photos"
	KeySyncQueue = "sync-queue"
)

// Store локальное хранилище документов устройства
type Store interface {
	// Get читает документ в dst. Отсутствующий или поврежденный документ дает false.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
	// Clear удаляет все ключи приложения
	Clear(ctx context.Context) error
	Close() error
}

func storageKey(key string) string {
	return keyPrefix + key
}

func encode(value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации документа: %w", err)
	}
	return raw, nil
}

// decode разбирает сохраненный документ; битый JSON логируется и считается
// отсутствующим. dst меняется только при успешном разборе.
func decode(log *slog.Logger, key string, raw []byte, dst any) bool {
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		log.Error("Документ нельзя прочитать в значение, не являющееся указателем", "key", key)
		return false
	}

	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		log.Warn("Поврежденный документ в локальном хранилище", "key", key, "error", err)
		return false
	}
	target.Elem().Set(fresh.Elem())
	return true
}
