package streak

import "context"

type Repository interface {
	// Get возвращает серию владельца; found=false если записи еще нет
	Get(ctx context.Context, owner string) (WalkStreak, bool, error)
	// Save записывает серию; ненулевая устаревшая версия дает ErrVersionConflict
	Save(ctx context.Context, owner string, s WalkStreak) (WalkStreak, error)
}

// DocumentCache кэш документа серии
type DocumentCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
