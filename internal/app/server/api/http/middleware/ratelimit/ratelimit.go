package ratelimit

import (
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"

	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/response"
)

// Limiter ограничивает частоту запросов отдельно для каждого владельца.
// Должен стоять после identity, иначе ключом будет адрес клиента.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	log      *slog.Logger
}

// New с rps <= 0 не ограничивает запросы
func New(rps float64, burst int, log *slog.Logger) *Limiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      limit,
		burst:    burst,
		log:      log.With(slog.String("component", "rate_limit")),
	}
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

func (l *Limiter) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key, ok := identity.GetOwner(ctx.Context())
		if !ok {
			key = ctx.RemoteAddr()
		}

		if !l.get(key).Allow() {
			l.log.Warn("rate limit exceeded", slog.String("key", key))
			ctx.SetHeader("Retry-After", "1")
			if err := response.Write(ctx, http.StatusTooManyRequests, "too many requests"); err != nil {
				l.log.Error("write response", slog.Any("error", err))
			}
			return
		}

		next(ctx)
	}
}
