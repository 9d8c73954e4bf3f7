// GET    /health              # Проверка доступности (публичный)
// POST   /auth/register       # Регистрация (публичный)
// POST   /auth/login          # Логин (публичный)
// POST   /auth/logout         # Завершение сессии
// GET    /walk-logs           # Список прогулок
// POST   /walk-logs           # Сохранить прогулку
// DELETE /walk-logs/{id}      # Удалить прогулку
// GET    /goals               # Цели
// PUT    /goals               # Сохранить цели
// GET    /streak              # Серия
// POST   /streak              # Продвинуть серию
// GET    /photos              # Список фото
// POST   /photos              # Сохранить фото
// DELETE /photos/{id}         # Удалить фото
// POST   /storage/upload      # Загрузить изображение
// POST   /migration/backup    # Резервная копия локальных данных
//
// Все операции с документами требуют X-Device-ID; bearer токен необязателен.

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/backup"
	"mindfulsteps/internal/app/server/api/http/goal"
	"mindfulsteps/internal/app/server/api/http/health"
	"mindfulsteps/internal/app/server/api/http/middleware"
	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/middleware/logger"
	"mindfulsteps/internal/app/server/api/http/middleware/ratelimit"
	"mindfulsteps/internal/app/server/api/http/photo"
	"mindfulsteps/internal/app/server/api/http/streak"
	userAPI "mindfulsteps/internal/app/server/api/http/user"
	"mindfulsteps/internal/app/server/api/http/walklog"
	"mindfulsteps/internal/app/server/config"
	backupDomain "mindfulsteps/internal/domain/backup"
	goalDomain "mindfulsteps/internal/domain/goal"
	photoDomain "mindfulsteps/internal/domain/photo"
	"mindfulsteps/internal/domain/session"
	streakDomain "mindfulsteps/internal/domain/streak"
	"mindfulsteps/internal/domain/user"
	walklogDomain "mindfulsteps/internal/domain/walklog"
	"mindfulsteps/internal/infrastructure/storage/postgres"
)

// Cache кэш документов целей и серии
type Cache interface {
	goalDomain.DocumentCache
	streakDomain.DocumentCache
}

// Deps внешние зависимости API. Cache и Blobs необязательны: nil интерфейс
// отключает кэш и объектное хранилище.
type Deps struct {
	DB     postgres.Querier
	Health health.Pinger
	Cache  Cache
	Blobs  photoDomain.BlobStore
	Clock  streakDomain.Clock
	Server config.Server
}

type Handlers struct {
	Health  *health.Handler
	User    *userAPI.Handler
	WalkLog *walklog.Handler
	Goal    *goal.Handler
	Streak  *streak.Handler
	Photo   *photo.Handler
	Backup  *backup.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(deps Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)

	cfg := huma.DefaultConfig("Mindful Steps API", "1.0.0")
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	api := humachi.New(mux, cfg)

	h := handlers(deps, log)
	h.Health.SetupRoutes(api)
	h.User.SetupRoutes(api)
	h.WalkLog.SetupRoutes(api)
	h.Goal.SetupRoutes(api)
	h.Streak.SetupRoutes(api)
	h.Photo.SetupRoutes(api)
	h.Backup.SetupRoutes(api)

	return mux
}

func handlers(deps Deps, log *slog.Logger) *Handlers {
	clock := deps.Clock
	if clock == nil {
		clock = streakDomain.SystemClock{}
	}

	sessionRepo := postgres.NewSessionRepository(deps.DB, log)
	sessionService := session.NewService(sessionRepo, session.DefaultTTL, log)

	loggerMW := logger.New(log)
	identityMW := identity.New(sessionService, log)
	limiter := ratelimit.New(deps.Server.RateLimit, deps.Server.RateBurst, log)
	middlewares := middleware.NewContainer()

	// документы владельца: лог, identity, лимит
	owned := func() huma.Middlewares {
		middlewares.Add(loggerMW.Middleware())
		middlewares.Add(identityMW.Middleware())
		middlewares.Add(limiter.Middleware())
		return middlewares.GetAllAndClear()
	}

	middlewares.Add(loggerMW.Middleware())
	healthHandler := health.NewHandler(deps.Health, log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(deps.DB, log)
	userService := user.NewService(userRepo, nil, log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	walkService := walklogDomain.NewService(postgres.NewWalkLogRepository(deps.DB, log), log)
	walkHandler := walklog.NewHandler(walkService, log, owned())

	var goalCache goalDomain.DocumentCache
	var streakCache streakDomain.DocumentCache
	if deps.Cache != nil {
		goalCache, streakCache = deps.Cache, deps.Cache
	}

	goalService := goalDomain.NewService(postgres.NewGoalRepository(deps.DB, log), goalCache, log)
	goalHandler := goal.NewHandler(goalService, log, owned())

	streakService := streakDomain.NewService(postgres.NewStreakRepository(deps.DB, log), streakCache, clock, log)
	streakHandler := streak.NewHandler(streakService, log, owned())

	photoService := photoDomain.NewService(postgres.NewPhotoRepository(deps.DB, log), deps.Blobs, deps.Server.MaxUploadBytes, log)
	photoHandler := photo.NewHandler(photoService, deps.Server.MaxUploadBytes, log, owned())

	var putter backupDomain.Putter
	if deps.Blobs != nil {
		putter = deps.Blobs
	}
	backupService := backupDomain.NewService(putter, log)
	backupHandler := backup.NewHandler(backupService, log, owned())

	return &Handlers{
		Health:  healthHandler,
		User:    userHandler,
		WalkLog: walkHandler,
		Goal:    goalHandler,
		Streak:  streakHandler,
		Photo:   photoHandler,
		Backup:  backupHandler,
	}
}
