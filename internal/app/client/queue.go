package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind тип отложенной мутации
type Kind string

const (
	KindWalkLog       Kind = "walk-logs"
	KindWalkLogDelete Kind = "walk-log-delete"
	KindGoals         Kind = "goals"
	KindStreak        Kind = "streak"
	KindPhoto         Kind = "photos"
	KindPhotoDelete   Kind = "photo-delete"
)

// QueueItem мутация, ожидающая отправки на сервер
type QueueItem struct {
	ID       string          `json:"id"`
	Kind     Kind            `json:"kind"`
	Payload  json.RawMessage `json:"payload"`
	QueuedAt int64           `json:"queued_at"`
}

// Queue очередь мутаций поверх локального хранилища под ключом sync-queue.
// Порядок элементов совпадает с порядком постановки.
type Queue struct {
	store Store
	mu    sync.Mutex
	now   func() time.Time
}

func NewQueue(store Store) *Queue {
	return &Queue{store: store, now: time.Now}
}

func (q *Queue) Enqueue(ctx context.Context, kind Kind, payload any) (QueueItem, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return QueueItem{}, fmt.Errorf("ошибка сериализации мутации: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.load(ctx)
	if err != nil {
		return QueueItem{}, err
	}

	item := QueueItem{
		ID:       uuid.NewString(),
		Kind:     kind,
		Payload:  raw,
		QueuedAt: q.now().UnixMilli(),
	}
	items = append(items, item)

	if err := q.store.Set(ctx, KeySyncQueue, items); err != nil {
		return QueueItem{}, err
	}
	return item, nil
}

func (q *Queue) Items(ctx context.Context) ([]QueueItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

// Remove убирает элементы с указанными ID, остальные сохраняют порядок
func (q *Queue) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if _, ok := drop[it.ID]; !ok {
			kept = append(kept, it)
		}
	}

	if len(kept) == 0 {
		return q.store.Remove(ctx, KeySyncQueue)
	}
	return q.store.Set(ctx, KeySyncQueue, kept)
}

func (q *Queue) Len(ctx context.Context) (int, error) {
	items, err := q.Items(ctx)
	return len(items), err
}

func (q *Queue) load(ctx context.Context) ([]QueueItem, error) {
	var items []QueueItem
	if _, err := q.store.Get(ctx, KeySyncQueue, &items); err != nil {
		return nil, err
	}
	return items, nil
}
