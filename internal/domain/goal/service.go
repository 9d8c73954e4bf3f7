package goal

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Get(ctx context.Context, owner string) (StepGoal, error)
	Save(ctx context.Context, owner string, g StepGoal) (StepGoal, error)
}

type Service struct {
	repo  Repository
	cache DocumentCache
	log   *slog.Logger
}

func NewService(repo Repository, cache DocumentCache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log.With("component", "goal"),
	}
}

func cacheKey(owner string) string {
	return "goals:" + owner
}

// Get возвращает цели владельца или цели по умолчанию
func (s *Service) Get(ctx context.Context, owner string) (StepGoal, error) {
	var g StepGoal
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, cacheKey(owner), &g)
		if err != nil {
			s.log.Warn("cache read failed", "owner", owner, "error", err)
		} else if ok {
			return g, nil
		}
	}

	g, found, err := s.repo.Get(ctx, owner)
	if err != nil {
		return StepGoal{}, fmt.Errorf("get goals: %w", err)
	}
	if !found {
		return Default(), nil
	}

	s.remember(ctx, owner, g)
	return g, nil
}

func (s *Service) Save(ctx context.Context, owner string, g StepGoal) (StepGoal, error) {
	if g.Daily < 0 || g.Weekly < 0 || g.Monthly < 0 {
		return StepGoal{}, fmt.Errorf("%w: targets must not be negative", ErrInvalidGoal)
	}

	saved, err := s.repo.Save(ctx, owner, g)
	if err != nil {
		s.forget(ctx, owner)
		return StepGoal{}, fmt.Errorf("save goals: %w", err)
	}

	s.remember(ctx, owner, saved)
	return saved, nil
}

func (s *Service) forget(ctx context.Context, owner string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(owner)); err != nil {
		s.log.Warn("cache invalidation failed", "owner", owner, "error", err)
	}
}

func (s *Service) remember(ctx context.Context, owner string, g StepGoal) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(owner), g); err != nil {
		s.log.Warn("cache write failed", "owner", owner, "error", err)
	}
}
