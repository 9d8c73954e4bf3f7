package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/response"
	"mindfulsteps/internal/domain/user"
)

const (
	DeviceHeader = "X-Device-ID"

	maxDeviceIDLen = 128
)

type TokenValidator interface {
	Validate(ctx context.Context, token string) (int, error)
}

// Identity определяет владельца документов запроса: ID устройства
// или user:<id>, если передан действующий bearer токен.
type Identity struct {
	sessions TokenValidator
	log      *slog.Logger
}

func New(sessions TokenValidator, log *slog.Logger) *Identity {
	return &Identity{
		sessions: sessions,
		log:      log.With(slog.String("component", "identity")),
	}
}

type contextKey string

const ownerKey contextKey = "owner"

func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

func GetOwner(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey).(string)
	return owner, ok && owner != ""
}

func (i *Identity) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		deviceID := strings.TrimSpace(ctx.Header(DeviceHeader))
		if deviceID == "" || len(deviceID) > maxDeviceIDLen {
			i.log.Debug("bad device id", slog.String("path", ctx.URL().Path))
			i.reject(ctx, http.StatusBadRequest, "X-Device-ID header is required")
			return
		}

		owner := deviceID
		if authz := ctx.Header("Authorization"); authz != "" {
			token, ok := strings.CutPrefix(authz, "Bearer ")
			if !ok || token == "" {
				i.reject(ctx, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userID, err := i.sessions.Validate(ctx.Context(), token)
			if err != nil {
				i.log.Warn("token rejected", slog.String("device_id", deviceID), slog.Any("error", err))
				i.reject(ctx, http.StatusUnauthorized, "Unauthorized")
				return
			}
			owner = user.Owner(userID)
		}

		next(huma.WithContext(ctx, WithOwner(ctx.Context(), owner)))
	}
}

func (i *Identity) reject(ctx huma.Context, status int, msg string) {
	if err := response.Write(ctx, status, msg); err != nil {
		i.log.Error("write response", slog.Any("error", err))
	}
}

// Require владелец запроса для обработчиков; без identity middleware это 400
func Require(ctx context.Context) (string, error) {
	owner, ok := GetOwner(ctx)
	if !ok {
		return "", huma.Error400BadRequest("X-Device-ID header is required")
	}
	return owner, nil
}
