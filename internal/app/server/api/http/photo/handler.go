package photo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/response"
	"mindfulsteps/internal/domain/photo"
)

const (
	fileField     = "photo"
	metadataField = "metadata"
)

type Handler struct {
	service    photo.Servicer
	maxUpload  int64
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service photo.Servicer, maxUpload int64, log *slog.Logger, mws huma.Middlewares) *Handler {
	if maxUpload <= 0 {
		maxUpload = photo.DefaultMaxUploadBytes
	}
	return &Handler{
		service:    service,
		maxUpload:  maxUpload,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.saveOp(), h.save)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.uploadOp(), h.upload)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*response.Output[[]photo.Photo], error) {
	owner, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	photos, err := h.service.List(ctx, owner)
	if err != nil {
		return nil, h.mapError(err)
	}
	return response.OK(photos), nil
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*response.Output[photo.Photo], error) {
	owner, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	saved, err := h.service.Save(ctx, owner, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}
	return response.OK(saved), nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*response.StatusOutput, error) {
	owner, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.service.Delete(ctx, owner, input.ID); err != nil {
		return nil, h.mapError(err)
	}
	return response.Done(), nil
}

func (h *Handler) upload(ctx context.Context, input *uploadInput) (*response.Output[photo.UploadResult], error) {
	owner, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	up, err := h.readUpload(input)
	if err != nil {
		return nil, err
	}

	res, err := h.service.Upload(ctx, owner, up)
	if err != nil {
		return nil, h.mapError(err)
	}
	return response.OK(res), nil
}

// readUpload достает файл и JSON метаданные из multipart формы
func (h *Handler) readUpload(input *uploadInput) (photo.Upload, error) {
	files := input.RawBody.File[fileField]
	if len(files) == 0 {
		return photo.Upload{}, huma.Error400BadRequest("No photo file provided")
	}
	fh := files[0]
	if fh.Size > h.maxUpload {
		return photo.Upload{}, huma.NewError(http.StatusRequestEntityTooLarge, photo.ErrTooLarge.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return photo.Upload{}, huma.Error400BadRequest("cannot read photo file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		return photo.Upload{}, huma.Error400BadRequest("cannot read photo file")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	var meta photo.UploadMetadata
	if values := input.RawBody.Value[metadataField]; len(values) > 0 && values[0] != "" {
		if err := json.Unmarshal([]byte(values[0]), &meta); err != nil {
			return photo.Upload{}, huma.Error400BadRequest(fmt.Sprintf("invalid metadata: %v", err))
		}
	}

	return photo.Upload{
		Data:        data,
		ContentType: contentType,
		Filename:    fh.Filename,
		Meta:        meta,
	}, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, photo.ErrNotFound):
		return huma.Error404NotFound(photo.ErrNotFound.Error())
	case errors.Is(err, photo.ErrTooLarge):
		return huma.NewError(http.StatusRequestEntityTooLarge, photo.ErrTooLarge.Error())
	case errors.Is(err, photo.ErrUnsupportedType):
		return huma.Error415UnsupportedMediaType(err.Error())
	case errors.Is(err, photo.ErrStorageDisabled):
		return huma.Error503ServiceUnavailable(photo.ErrStorageDisabled.Error())
	case errors.Is(err, photo.ErrInvalidPhoto), errors.Is(err, photo.ErrInvalidDataURL):
		return huma.Error400BadRequest(err.Error())
	default:
		h.log.Error("photo request failed", slog.Any("error", err))
		return huma.Error500InternalServerError("internal error")
	}
}
