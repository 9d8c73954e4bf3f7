package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Pinger проверка зависимостей сервиса (база данных)
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db         Pinger
	now        func() time.Time
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(db Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		db:         db,
		now:        time.Now,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			h.log.Error("database ping failed", slog.Any("error", err))
			return nil, huma.Error503ServiceUnavailable("database unavailable")
		}
	}

	return &Output{
		Body: Response{
			Status:    "OK",
			Timestamp: h.now().UTC().Format(time.RFC3339),
		},
	}, nil
}
