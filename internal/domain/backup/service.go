package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

var (
	ErrInvalidSnapshot = errors.New("invalid backup snapshot")
	ErrStorageDisabled = errors.New("object storage is not configured")
)

type Putter interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Servicer interface {
	Store(ctx context.Context, owner string, raw []byte) (Result, error)
}

type Service struct {
	blobs Putter
	now   func() time.Time
	log   *slog.Logger
}

func NewService(blobs Putter, log *slog.Logger) *Service {
	return &Service{
		blobs: blobs,
		now:   time.Now,
		log:   log.With("component", "backup"),
	}
}

func Key(owner string, at time.Time) string {
	owner = strings.NewReplacer("/", "_", "\\", "_").Replace(owner)
	return fmt.Sprintf("backup/%s/%d.json", owner, at.UnixMilli())
}

// Store проверяет снимок и кладет его в хранилище без изменений
func (s *Service) Store(ctx context.Context, owner string, raw []byte) (Result, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if s.blobs == nil {
		return Result{}, ErrStorageDisabled
	}

	key := Key(owner, s.now())
	url, err := s.blobs.Put(ctx, key, "application/json", raw)
	if err != nil {
		return Result{}, fmt.Errorf("store backup: %w", err)
	}

	s.log.Info("backup stored", "owner", owner, "key", key, "walk_logs", len(snap.WalkLogs))
	return Result{Key: key, URL: url}, nil
}
