package walklog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, owner string) ([]WalkLog, error)
	Save(ctx context.Context, owner string, log WalkLog) (WalkLog, error)
	Delete(ctx context.Context, owner, id string) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "walklog"),
	}
}

func (s *Service) List(ctx context.Context, owner string) ([]WalkLog, error) {
	logs, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list walk logs: %w", err)
	}
	if logs == nil {
		logs = []WalkLog{}
	}
	Sort(logs)
	return logs, nil
}

// Save создает или заменяет прогулку; пустой ID заменяется новым UUID
func (s *Service) Save(ctx context.Context, owner string, log WalkLog) (WalkLog, error) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Date == "" && log.StartTime > 0 {
		log.Date = time.UnixMilli(log.StartTime).UTC().Format(dateLayout)
	}
	if err := log.Validate(); err != nil {
		return WalkLog{}, err
	}

	saved, err := s.repo.Save(ctx, owner, log)
	if err != nil {
		return WalkLog{}, fmt.Errorf("save walk log: %w", err)
	}

	s.log.Debug("walk log saved", "owner", owner, "id", saved.ID, "active", saved.IsActive())
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return fmt.Errorf("delete walk log %s: %w", id, err)
	}
	return nil
}
