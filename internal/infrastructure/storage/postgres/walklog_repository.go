package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slog"

	"mindfulsteps/internal/domain/walklog"
)

type WalkLogRepository struct {
	db  Querier
	log *slog.Logger
}

func NewWalkLogRepository(db Querier, log *slog.Logger) *WalkLogRepository {
	return &WalkLogRepository{
		db:  db,
		log: log,
	}
}

func (r *WalkLogRepository) List(ctx context.Context, owner string) ([]walklog.WalkLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT document FROM walk_logs WHERE owner = $1 ORDER BY start_time DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]walklog.WalkLog, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var l walklog.WalkLog
		if err := json.Unmarshal(doc, &l); err != nil {
			r.log.Error("skipping corrupt walk log", "owner", owner, "error", err)
			continue
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

func (r *WalkLogRepository) Save(ctx context.Context, owner string, l walklog.WalkLog) (walklog.WalkLog, error) {
	doc, err := json.Marshal(l)
	if err != nil {
		return walklog.WalkLog{}, fmt.Errorf("marshal walk log: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO walk_logs (owner, id, date, start_time, end_time, document, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, NOW())
         ON CONFLICT (owner, id) DO UPDATE
         SET date = EXCLUDED.date,
             start_time = EXCLUDED.start_time,
             end_time = EXCLUDED.end_time,
             document = EXCLUDED.document,
             updated_at = NOW()`,
		owner, l.ID, l.Date, l.StartTime, l.EndTime, doc)
	if err != nil {
		return walklog.WalkLog{}, err
	}

	return l, nil
}

func (r *WalkLogRepository) Delete(ctx context.Context, owner, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM walk_logs WHERE owner = $1 AND id = $2`, owner, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return walklog.ErrNotFound
	}
	return nil
}
