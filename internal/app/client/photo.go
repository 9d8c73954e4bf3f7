package client

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"mindfulsteps/internal/domain/photo"
	"mindfulsteps/internal/domain/walklog"
)

// Capture сохраняет снимок из файла. Изображение загружается в хранилище
// сервера, без сервера встраивается как data URL. Если задан walkID, ссылка
// добавляется в прогулку. loc необязательна.
func (a *App) Capture(ctx context.Context, path string, prompt photo.Prompt, note, walkID string, loc *photo.GeoPoint) Result[photo.Photo] {
	data, err := os.ReadFile(path)
	if err != nil {
		return failed[photo.Photo](fmt.Errorf("ошибка чтения файла: %w", err))
	}
	if prompt.Type == "" {
		prompt.Type = photo.PromptPhoto
	}

	ts := a.now().UnixMilli()
	up := photo.Upload{
		Data:        data,
		ContentType: http.DetectContentType(data),
		Filename:    filepath.Base(path),
		Meta: photo.UploadMetadata{
			WalkID:      walkID,
			PromptID:    prompt.ID,
			PromptTitle: prompt.Title,
			PromptType:  prompt.Type,
			Note:        note,
			Timestamp:   ts,
			Location:    loc,
		},
	}

	uploaded := a.syncer.UploadPhoto(ctx, up)
	if uploaded.Status == StatusLocalError {
		return failed[photo.Photo](uploaded.Err)
	}

	var res Result[photo.Photo]
	if uploaded.Status == StatusOK && uploaded.Value.PhotoID != "" {
		// сервер уже создал запись о снимке
		res = Result[photo.Photo]{Value: photo.Photo{
			ID:          uploaded.Value.PhotoID,
			WalkID:      walkID,
			ImageURL:    uploaded.Value.URL,
			PromptID:    prompt.ID,
			PromptTitle: prompt.Title,
			PromptType:  prompt.Type,
			Timestamp:   ts,
			Note:        note,
			Location:    loc,
		}}
	} else {
		res = a.syncer.SavePhoto(ctx, photo.Photo{
			WalkID:      walkID,
			ImageURL:    uploaded.Value.URL,
			PromptID:    prompt.ID,
			PromptTitle: prompt.Title,
			PromptType:  prompt.Type,
			Timestamp:   ts,
			Note:        note,
			Location:    loc,
			Metadata:    &photo.Metadata{FileSize: int64(len(data)), ContentType: up.ContentType},
		})
		if res.Status == StatusLocalError {
			return res
		}
	}

	if walkID != "" {
		if attached := a.attachPhoto(ctx, walkID, res.Value.ImageURL); attached.Status > res.Status {
			res.Status, res.Err = attached.Status, attached.Err
		}
	}
	return res
}

func (a *App) attachPhoto(ctx context.Context, walkID, ref string) Result[walklog.WalkLog] {
	log, res := a.findWalk(ctx, walkID)
	if res.Status == StatusLocalError {
		return res
	}
	log.Photos = append(log.Photos, ref)
	return a.syncer.SaveLog(ctx, log)
}
