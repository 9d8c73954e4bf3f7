package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/domain/streak"
)

type StreakRepository struct {
	db  Querier
	log *slog.Logger
}

func NewStreakRepository(db Querier, log *slog.Logger) *StreakRepository {
	return &StreakRepository{
		db:  db,
		log: log,
	}
}

func (r *StreakRepository) Get(ctx context.Context, owner string) (streak.WalkStreak, bool, error) {
	var s streak.WalkStreak
	err := r.db.QueryRow(ctx,
		`SELECT current, longest, last_walk_date, version FROM streaks WHERE owner = $1`, owner).
		Scan(&s.Current, &s.Longest, &s.LastWalkDate, &s.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return streak.WalkStreak{}, false, nil
	}
	if err != nil {
		return streak.WalkStreak{}, false, err
	}
	return s, true, nil
}

func (r *StreakRepository) Save(ctx context.Context, owner string, s streak.WalkStreak) (streak.WalkStreak, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO streaks (owner, current, longest, last_walk_date, version, updated_at)
         VALUES ($1, $2, $3, $4, 1, NOW())
         ON CONFLICT (owner) DO UPDATE
         SET current = EXCLUDED.current,
             longest = EXCLUDED.longest,
             last_walk_date = EXCLUDED.last_walk_date,
             version = streaks.version + 1,
             updated_at = NOW()
         WHERE $5::int = 0 OR streaks.version = $5::int
         RETURNING version`,
		owner, s.Current, s.Longest, s.LastWalkDate, s.Version).Scan(&s.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return streak.WalkStreak{}, streak.ErrVersionConflict
	}
	if err != nil {
		return streak.WalkStreak{}, err
	}
	return s, nil
}
