package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mindfulsteps/internal/domain/goal"
	"mindfulsteps/internal/domain/streak"
	"mindfulsteps/internal/domain/walklog"
)

// WalkEnd завершенная прогулка и обновленная серия
type WalkEnd struct {
	Log    walklog.WalkLog   `json:"log" yaml:"log"`
	Streak streak.WalkStreak `json:"streak" yaml:"streak"`
}

// StartWalk начинает новую прогулку; место старта необязательно
func (a *App) StartWalk(ctx context.Context, start *walklog.Location) Result[walklog.WalkLog] {
	return a.syncer.SaveLog(ctx, walklog.Start(uuid.NewString(), a.now(), start))
}

// ActiveWalk возвращает первую незавершенную прогулку
func (a *App) ActiveWalk(ctx context.Context) Result[walklog.WalkLog] {
	res := a.syncer.GetAllLogs(ctx)
	if res.Status == StatusLocalError {
		return failed[walklog.WalkLog](res.Err)
	}

	active := walklog.Active(res.Value)
	if len(active) == 0 {
		return failed[walklog.WalkLog](ErrNoActiveWalk)
	}
	return Result[walklog.WalkLog]{Value: active[0], Status: res.Status, Err: res.Err}
}

// RecordProgress добавляет шаги и дистанцию к активной прогулке
func (a *App) RecordProgress(ctx context.Context, id string, steps int, distanceKm float64) Result[walklog.WalkLog] {
	log, res := a.findWalk(ctx, id)
	if res.Status == StatusLocalError {
		return res
	}
	if err := log.AddProgress(steps, distanceKm, a.now()); err != nil {
		return failed[walklog.WalkLog](err)
	}
	return a.syncer.SaveLog(ctx, log)
}

// CompleteBreak засчитывает осознанную паузу в активной прогулке
func (a *App) CompleteBreak(ctx context.Context, id string) Result[walklog.WalkLog] {
	log, res := a.findWalk(ctx, id)
	if res.Status == StatusLocalError {
		return res
	}
	if err := log.CompleteBreak(); err != nil {
		return failed[walklog.WalkLog](err)
	}
	return a.syncer.SaveLog(ctx, log)
}

// EndWalk завершает прогулку и продлевает серию датой прогулки
func (a *App) EndWalk(ctx context.Context, id string, end *walklog.Location, mood *walklog.Mood, notes string) Result[WalkEnd] {
	log, res := a.findWalk(ctx, id)
	if res.Status == StatusLocalError {
		return failed[WalkEnd](res.Err)
	}
	if err := log.Finish(a.now(), end, mood, notes); err != nil {
		return failed[WalkEnd](err)
	}

	saved := a.syncer.SaveLog(ctx, log)
	if saved.Status == StatusLocalError {
		return failed[WalkEnd](saved.Err)
	}

	st := a.syncer.UpdateStreak(ctx, log.Date)
	out := WalkEnd{Log: saved.Value, Streak: st.Value}
	return merge(out, saved.Status, saved.Err, st.Status, st.Err)
}

// Stats сводка прогулок за период относительно целей
func (a *App) Stats(ctx context.Context, period string) Result[walklog.Summary] {
	p, err := walklog.ParsePeriod(period)
	if err != nil {
		return failed[walklog.Summary](err)
	}

	logs := a.syncer.GetAllLogs(ctx)
	if logs.Status == StatusLocalError {
		return failed[walklog.Summary](logs.Err)
	}
	goals := a.syncer.GetGoals(ctx)
	if goals.Status == StatusLocalError {
		return failed[walklog.Summary](goals.Err)
	}

	from, to := walklog.PeriodRange(p, a.now().UTC())
	summary := walklog.Summarize(p, logs.Value, from, to, goalFor(p, goals.Value))
	return merge(summary, logs.Status, logs.Err, goals.Status, goals.Err)
}

func (a *App) findWalk(ctx context.Context, id string) (walklog.WalkLog, Result[walklog.WalkLog]) {
	res := a.syncer.GetAllLogs(ctx)
	if res.Status == StatusLocalError {
		return walklog.WalkLog{}, failed[walklog.WalkLog](res.Err)
	}

	log, found := walklog.Find(res.Value, id)
	if !found {
		return walklog.WalkLog{}, failed[walklog.WalkLog](fmt.Errorf("%w: %s", ErrWalkNotFound, id))
	}
	return log, Result[walklog.WalkLog]{Value: log, Status: res.Status, Err: res.Err}
}

func goalFor(p walklog.Period, g goal.StepGoal) int {
	switch p {
	case walklog.PeriodWeek:
		return g.Weekly
	case walklog.PeriodMonth:
		return g.Monthly
	}
	return g.Daily
}

// merge собирает результат из двух операций с худшим из статусов
func merge[T any](v T, s1 Status, e1 error, s2 Status, e2 error) Result[T] {
	if s2 > s1 {
		return Result[T]{Value: v, Status: s2, Err: e2}
	}
	return Result[T]{Value: v, Status: s1, Err: e1}
}
