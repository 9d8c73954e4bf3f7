package streak

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/response"
	"mindfulsteps/internal/domain/streak"
)

type Handler struct {
	service    streak.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service streak.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
}

func (h *Handler) get(ctx context.Context, _ *struct{}) (*response.Output[streak.WalkStreak], error) {
	owner, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	st, err := h.service.Get(ctx, owner)
	if err != nil {
		return nil, h.mapError(err)
	}
	return response.OK(st), nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*response.Output[streak.WalkStreak], error) {
	owner, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	st, err := h.service.Update(ctx, owner, input.Body.WalkDate)
	if err != nil {
		return nil, h.mapError(err)
	}
	return response.OK(st), nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, streak.ErrInvalidDate):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, streak.ErrVersionConflict):
		return huma.Error409Conflict(streak.ErrVersionConflict.Error())
	default:
		h.log.Error("streak request failed", slog.Any("error", err))
		return huma.Error500InternalServerError("internal error")
	}
}
