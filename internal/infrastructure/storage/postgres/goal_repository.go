package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/domain/goal"
)

type GoalRepository struct {
	db  Querier
	log *slog.Logger
}

func NewGoalRepository(db Querier, log *slog.Logger) *GoalRepository {
	return &GoalRepository{
		db:  db,
		log: log,
	}
}

func (r *GoalRepository) Get(ctx context.Context, owner string) (goal.StepGoal, bool, error) {
	var g goal.StepGoal
	err := r.db.QueryRow(ctx,
		`SELECT daily, weekly, monthly, version FROM goals WHERE owner = $1`, owner).
		Scan(&g.Daily, &g.Weekly, &g.Monthly, &g.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return goal.StepGoal{}, false, nil
	}
	if err != nil {
		return goal.StepGoal{}, false, err
	}
	return g, true, nil
}

// Save версия 0 перезаписывает безусловно, иначе должна совпасть с текущей
func (r *GoalRepository) Save(ctx context.Context, owner string, g goal.StepGoal) (goal.StepGoal, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO goals (owner, daily, weekly, monthly, version, updated_at)
         VALUES ($1, $2, $3, $4, 1, NOW())
         ON CONFLICT (owner) DO UPDATE
         SET daily = EXCLUDED.daily,
             weekly = EXCLUDED.weekly,
             monthly = EXCLUDED.monthly,
             version = goals.version + 1,
             updated_at = NOW()
         WHERE $5::int = 0 OR goals.version = $5::int
         RETURNING version`,
		owner, g.Daily, g.Weekly, g.Monthly, g.Version).Scan(&g.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return goal.StepGoal{}, goal.ErrVersionConflict
	}
	if err != nil {
		return goal.StepGoal{}, err
	}
	return g, nil
}
