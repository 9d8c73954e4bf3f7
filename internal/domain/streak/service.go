package streak

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Get(ctx context.Context, owner string) (WalkStreak, error)
	Update(ctx context.Context, owner, walkDate string) (WalkStreak, error)
}

type Service struct {
	repo  Repository
	cache DocumentCache
	clock Clock
	log   *slog.Logger
}

func NewService(repo Repository, cache DocumentCache, clock Clock, log *slog.Logger) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		repo:  repo,
		cache: cache,
		clock: clock,
		log:   log.With("component", "streak"),
	}
}

func cacheKey(owner string) string {
	return "streak:" + owner
}

func (s *Service) Get(ctx context.Context, owner string) (WalkStreak, error) {
	var st WalkStreak
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, cacheKey(owner), &st); err == nil && ok {
			return st, nil
		} else if err != nil {
			s.log.Warn("cache read failed", "owner", owner, "error", err)
		}
	}

	st, _, err := s.repo.Get(ctx, owner)
	if err != nil {
		return WalkStreak{}, fmt.Errorf("get streak: %w", err)
	}

	s.remember(ctx, owner, st)
	return st, nil
}

// Update продвигает серию датой прогулки относительно текущей даты сервера
func (s *Service) Update(ctx context.Context, owner, walkDate string) (WalkStreak, error) {
	if !ValidDate(walkDate) {
		return WalkStreak{}, fmt.Errorf("%w: %q", ErrInvalidDate, walkDate)
	}

	current, _, err := s.repo.Get(ctx, owner)
	if err != nil {
		return WalkStreak{}, fmt.Errorf("get streak: %w", err)
	}

	next := Advance(current, walkDate, s.clock.Today())
	if next == current {
		return current, nil
	}

	saved, err := s.repo.Save(ctx, owner, next)
	if err != nil {
		return WalkStreak{}, fmt.Errorf("save streak: %w", err)
	}

	s.log.Debug("streak advanced", "owner", owner, "current", saved.Current, "longest", saved.Longest)
	s.remember(ctx, owner, saved)
	return saved, nil
}

func (s *Service) remember(ctx context.Context, owner string, st WalkStreak) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(owner), st); err != nil {
		s.log.Warn("cache write failed", "owner", owner, "error", err)
	}
}
