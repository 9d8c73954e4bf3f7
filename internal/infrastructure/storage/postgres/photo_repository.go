package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/domain/photo"
)

type PhotoRepository struct {
	db  Querier
	log *slog.Logger
}

func NewPhotoRepository(db Querier, log *slog.Logger) *PhotoRepository {
	return &PhotoRepository{
		db:  db,
		log: log,
	}
}

func (r *PhotoRepository) List(ctx context.Context, owner string) ([]photo.Photo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT document FROM photos WHERE owner = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]photo.Photo, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p photo.Photo
		if err := json.Unmarshal(doc, &p); err != nil {
			r.log.Error("skipping corrupt photo", "owner", owner, "error", err)
			continue
		}
		photos = append(photos, p)
	}

	return photos, rows.Err()
}

func (r *PhotoRepository) Save(ctx context.Context, owner string, p photo.Photo) (photo.Photo, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return photo.Photo{}, fmt.Errorf("marshal photo: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO photos (owner, id, walk_id, image_url, document)
         VALUES ($1, $2, $3, $4, $5)
         ON CONFLICT (owner, id) DO UPDATE
         SET walk_id = EXCLUDED.walk_id,
             image_url = EXCLUDED.image_url,
             document = EXCLUDED.document`,
		owner, p.ID, p.WalkID, p.ImageURL, doc)
	if err != nil {
		return photo.Photo{}, err
	}

	return p, nil
}

func (r *PhotoRepository) Delete(ctx context.Context, owner, id string) (photo.Photo, error) {
	var doc []byte
	err := r.db.QueryRow(ctx,
		`DELETE FROM photos WHERE owner = $1 AND id = $2 RETURNING document`, owner, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return photo.Photo{}, photo.ErrNotFound
	}
	if err != nil {
		return photo.Photo{}, err
	}

	var p photo.Photo
	if err := json.Unmarshal(doc, &p); err != nil {
		r.log.Warn("deleted photo document is corrupt", "owner", owner, "id", id, "error", err)
		return photo.Photo{ID: id}, nil
	}
	return p, nil
}
