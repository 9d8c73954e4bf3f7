package backup

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/response"
	"mindfulsteps/internal/domain/backup"
)

type Handler struct {
	service    backup.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service backup.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.storeOp(), h.store)
}

func (h *Handler) store(ctx context.Context, input *storeInput) (*response.Output[backup.Result], error) {
	owner, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.service.Store(ctx, owner, input.RawBody)
	if err != nil {
		switch {
		case errors.Is(err, backup.ErrInvalidSnapshot):
			return nil, huma.Error400BadRequest(err.Error())
		case errors.Is(err, backup.ErrStorageDisabled):
			return nil, huma.Error503ServiceUnavailable(backup.ErrStorageDisabled.Error())
		}
		h.log.Error("backup failed", slog.String("owner", owner), slog.Any("error", err))
		return nil, huma.Error500InternalServerError("internal error")
	}
	return response.OK(res), nil
}
