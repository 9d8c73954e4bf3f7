package goal

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/response"
	"mindfulsteps/internal/domain/goal"
)

type Handler struct {
	service    goal.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service goal.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.saveOp(), h.save)
}

func (h *Handler) get(ctx context.Context, _ *struct{}) (*response.Output[goal.StepGoal], error) {
	owner, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	g, err := h.service.Get(ctx, owner)
	if err != nil {
		return nil, h.mapError(err)
	}
	return response.OK(g), nil
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*response.Output[goal.StepGoal], error) {
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

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, goal.ErrInvalidGoal):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, goal.ErrVersionConflict):
		return huma.Error409Conflict(goal.ErrVersionConflict.Error())
	default:
		h.log.Error("goals request failed", slog.Any("error", err))
		return huma.Error500InternalServerError("internal error")
	}
}
