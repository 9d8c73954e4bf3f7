package user

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/response"
	"mindfulsteps/internal/domain/session"
	"mindfulsteps/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) register(ctx context.Context, input *credentialsInput) (*response.Output[Session], error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			return nil, huma.Error409Conflict(user.ErrAlreadyExists.Error())
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("register failed", slog.Any("error", err))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return h.openSession(ctx, userID)
}

func (h *Handler) login(ctx context.Context, input *credentialsInput) (*response.Output[Session], error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAuth) {
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		h.log.Error("login failed", slog.Any("error", err))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return h.openSession(ctx, u.ID)
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*response.StatusOutput, error) {
	token, ok := strings.CutPrefix(input.Authorization, "Bearer ")
	if !ok || token == "" {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.session.Revoke(ctx, token); err != nil {
		h.log.Error("logout failed", slog.Any("error", err))
		return nil, huma.Error500InternalServerError("internal error")
	}
	return response.Done(), nil
}

func (h *Handler) openSession(ctx context.Context, userID int) (*response.Output[Session], error) {
	token, err := h.session.Create(ctx, userID)
	if err != nil {
		h.log.Error("create session", slog.Int("user_id", userID), slog.Any("error", err))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return response.OK(Session{
		UserID: userID,
		Token:  token,
		Owner:  user.Owner(userID),
	}), nil
}
