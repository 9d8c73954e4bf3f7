package goal

import "context"

type Repository interface {
	// Get возвращает цели владельца; found=false если цели еще не заданы
	Get(ctx context.Context, owner string) (StepGoal, bool, error)
	// Save заменяет документ целиком; ненулевая устаревшая версия дает ErrVersionConflict
	Save(ctx context.Context, owner string, g StepGoal) (StepGoal, error)
}

type DocumentCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
