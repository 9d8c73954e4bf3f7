package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindfulsteps/internal/app/server/config"
)

const keyPrefix = "mindful-steps:"

// Connect возвращает nil, если адрес Redis не задан
func Connect(cfg config.Redis) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Documents JSON-кэш документов целей и серий с общим TTL
type Documents struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDocuments(client *redis.Client, ttl time.Duration) *Documents {
	return &Documents{
		client: client,
		ttl:    ttl,
	}
}

func (d *Documents) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := d.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		// битую запись просто выбрасываем
		_ = d.client.Del(ctx, keyPrefix+key).Err()
		return false, nil
	}
	return true, nil
}

func (d *Documents) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return d.client.Set(ctx, keyPrefix+key, raw, d.ttl).Err()
}

func (d *Documents) Delete(ctx context.Context, key string) error {
	return d.client.Del(ctx, keyPrefix+key).Err()
}
