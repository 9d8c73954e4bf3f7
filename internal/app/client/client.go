package client

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/client/config"
)

type App struct {
	config *config.Config
	log    *slog.Logger
	remote *RemoteClient
	store  Store
	syncer *SyncService

	deviceID string
	now      func() time.Time
	mu       sync.Mutex
}

// New собирает клиентское приложение: идентификатор устройства, локальное
// хранилище, HTTP-клиент и сервис синхронизации.
func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, err
	}

	deviceID, err := loadDeviceID(cfg.DeviceIDPath)
	if err != nil {
		return nil, err
	}

	var store Store
	sqliteStore, err := NewSQLiteStore(cfg.DataPath, log)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		store = NewMemoryStore(log)
	} else {
		store = sqliteStore
	}

	remote := NewRemoteClient(cfg.BaseURL(), deviceID, cfg.Timeout(), log, WithRateLimit(cfg.RateLimit, cfg.RateBurst))

	app := &App{
		config:   cfg,
		log:      log,
		remote:   remote,
		store:    store,
		deviceID: deviceID,
		now:      time.Now,
	}

	if token, err := app.loadToken(); err == nil {
		remote.SetToken(token)
	}

	opts = append([]Option{WithInterval(cfg.Interval())}, opts...)
	app.syncer = NewSyncService(remote, store, deviceID, log, opts...)

	return app, nil
}

func (a *App) DeviceID() string {
	return a.deviceID
}

func (a *App) Sync() *SyncService {
	return a.syncer
}

// Run опрашивает сервер и отправляет очередь, пока не отменен ctx
func (a *App) Run(ctx context.Context) {
	a.syncer.Watch(ctx)
}

func (a *App) Close() error {
	return a.store.Close()
}

// IsAuthenticated проверяет, сохранен ли токен
func (a *App) IsAuthenticated() bool {
	return a.remote.Token() != ""
}

// Register создает учетную запись и сохраняет выданный токен
func (a *App) Register(ctx context.Context, login, password string) (Session, error) {
	s, err := a.remote.Register(ctx, login, password)
	if err != nil {
		return Session{}, fmt.Errorf("ошибка регистрации: %w", err)
	}
	return s, a.saveToken(s.Token)
}

func (a *App) Login(ctx context.Context, login, password string) (Session, error) {
	s, err := a.remote.Login(ctx, login, password)
	if err != nil {
		return Session{}, fmt.Errorf("ошибка входа: %w", err)
	}
	return s, a.saveToken(s.Token)
}

// Logout отзывает токен на сервере и удаляет его локально.
// Локальный токен удаляется даже если сервер недоступен.
func (a *App) Logout(ctx context.Context) error {
	if !a.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := a.remote.Logout(ctx); err != nil {
		a.log.Warn("Не удалось отозвать токен на сервере", "error", err)
	}
	return a.clearToken()
}

func (a *App) loadToken() (string, error) {
	raw, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

func (a *App) saveToken(token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.WriteFile(a.config.TokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}
	a.remote.SetToken(token)
	return nil
}

func (a *App) clearToken() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.remote.SetToken("")
	if err := os.Remove(a.config.TokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}
	return nil
}

// loadDeviceID читает идентификатор устройства, при первом запуске создает новый
func loadDeviceID(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("ошибка чтения идентификатора устройства: %w", err)
	}

	id, err := NewDeviceID(time.Now())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id), 0600); err != nil {
		return "", fmt.Errorf("ошибка сохранения идентификатора устройства: %w", err)
	}
	return id, nil
}

// NewDeviceID формирует идентификатор вида device_<random>_<unix ms>
func NewDeviceID(now time.Time) (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("ошибка генерации идентификатора устройства: %w", err)
	}
	return "device_" + hex.EncodeToString(buf) + "_" + strconv.FormatInt(now.UnixMilli(), 10), nil
}
