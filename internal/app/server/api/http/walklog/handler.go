package walklog

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/response"
	"mindfulsteps/internal/domain/walklog"
)

type Handler struct {
	service    walklog.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service walklog.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.saveOp(), h.save)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*response.Output[[]walklog.WalkLog], error) {
	owner, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := h.service.List(ctx, owner)
	if err != nil {
		return nil, h.mapError(err)
	}
	return response.OK(logs), nil
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*response.Output[walklog.WalkLog], error) {
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

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, walklog.ErrNotFound):
		return huma.Error404NotFound(walklog.ErrNotFound.Error())
	case errors.Is(err, walklog.ErrInvalidData):
		return huma.Error400BadRequest(err.Error())
	default:
		h.log.Error("walk log request failed", slog.Any("error", err))
		return huma.Error500InternalServerError("internal error")
	}
}
