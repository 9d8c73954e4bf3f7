package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"

	"mindfulsteps/internal/domain/backup"
	"mindfulsteps/internal/domain/goal"
	"mindfulsteps/internal/domain/photo"
	"mindfulsteps/internal/domain/streak"
	"mindfulsteps/internal/domain/walklog"
)

const (
	deviceHeader = "X-Device-ID"
	userAgent    = "MindfulSteps-Client/1.0"

	// чуть ниже лимита сервера по умолчанию (5 rps, burst 10)
	DefaultRateLimit = 4
	DefaultRateBurst = 8

	maxRetries    = 3
	maxRetryAfter = 10 * time.Second
)

// RemoteError ответ сервера со статусом ошибки или success=false
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
	}
	return fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Message)
}

// Session выданный сервером токен
type Session struct {
	UserID int    `json:"userId"`
	Token  string `json:"token"`
	Owner  string `json:"owner"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// RemoteClient HTTP-клиент REST API сервера
type RemoteClient struct {
	client   *http.Client
	log      *slog.Logger
	limiter  *rate.Limiter
	baseURL  string
	deviceID string

	mu    sync.RWMutex
	token string
}

type RemoteOption func(*RemoteClient)

// WithRateLimit ограничивает частоту запросов к API; rps <= 0 снимает ограничение
func WithRateLimit(rps float64, burst int) RemoteOption {
	return func(h *RemoteClient) {
		if rps <= 0 {
			h.limiter = nil
			return
		}
		h.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

func NewRemoteClient(baseURL, deviceID string, timeout time.Duration, log *slog.Logger, opts ...RemoteOption) *RemoteClient {
	h := &RemoteClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:      log.With("component", "remote"),
		limiter:  rate.NewLimiter(DefaultRateLimit, DefaultRateBurst),
		baseURL:  baseURL,
		deviceID: deviceID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetToken устанавливает токен аутентификации; пустая строка его сбрасывает
func (h *RemoteClient) SetToken(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *RemoteClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// HealthCheck проверяет доступность сервера
func (h *RemoteClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &RemoteError{Status: resp.StatusCode}
	}
	return nil
}

func (h *RemoteClient) ListWalkLogs(ctx context.Context) ([]walklog.WalkLog, error) {
	var logs []walklog.WalkLog
	err := h.call(ctx, http.MethodGet, "/walk-logs", nil, &logs)
	return logs, err
}

func (h *RemoteClient) SaveWalkLog(ctx context.Context, log walklog.WalkLog) (walklog.WalkLog, error) {
	var saved walklog.WalkLog
	err := h.call(ctx, http.MethodPost, "/walk-logs", log, &saved)
	return saved, err
}

func (h *RemoteClient) DeleteWalkLog(ctx context.Context, id string) error {
	return h.call(ctx, http.MethodDelete, "/walk-logs/"+id, nil, nil)
}

func (h *RemoteClient) GetGoals(ctx context.Context) (goal.StepGoal, error) {
	var g goal.StepGoal
	err := h.call(ctx, http.MethodGet, "/goals", nil, &g)
	return g, err
}

func (h *RemoteClient) SaveGoals(ctx context.Context, g goal.StepGoal) (goal.StepGoal, error) {
	var saved goal.StepGoal
	err := h.call(ctx, http.MethodPut, "/goals", g, &saved)
	return saved, err
}

func (h *RemoteClient) GetStreak(ctx context.Context) (streak.WalkStreak, error) {
	var s streak.WalkStreak
	err := h.call(ctx, http.MethodGet, "/streak", nil, &s)
	return s, err
}

func (h *RemoteClient) UpdateStreak(ctx context.Context, walkDate string) (streak.WalkStreak, error) {
	var s streak.WalkStreak
	err := h.call(ctx, http.MethodPost, "/streak", streak.UpdateRequest{WalkDate: walkDate}, &s)
	return s, err
}

func (h *RemoteClient) ListPhotos(ctx context.Context) ([]photo.Photo, error) {
	var photos []photo.Photo
	err := h.call(ctx, http.MethodGet, "/photos", nil, &photos)
	return photos, err
}

func (h *RemoteClient) SavePhoto(ctx context.Context, p photo.Photo) (photo.Photo, error) {
	var saved photo.Photo
	err := h.call(ctx, http.MethodPost, "/photos", p, &saved)
	return saved, err
}

func (h *RemoteClient) DeletePhoto(ctx context.Context, id string) error {
	return h.call(ctx, http.MethodDelete, "/photos/"+id, nil, nil)
}

// UploadPhoto отправляет изображение multipart-формой с полями photo и metadata
func (h *RemoteClient) UploadPhoto(ctx context.Context, up photo.Upload) (photo.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="photo"; filename=%q`, up.Filename)},
		"Content-Type":        {up.ContentType},
	})
	if err != nil {
		return photo.UploadResult{}, fmt.Errorf("ошибка формирования запроса: %w", err)
	}
	if _, err := part.Write(up.Data); err != nil {
		return photo.UploadResult{}, fmt.Errorf("ошибка формирования запроса: %w", err)
	}

	meta, err := json.Marshal(up.Meta)
	if err != nil {
		return photo.UploadResult{}, fmt.Errorf("ошибка сериализации метаданных: %w", err)
	}
	if err := mw.WriteField("metadata", string(meta)); err != nil {
		return photo.UploadResult{}, fmt.Errorf("ошибка формирования запроса: %w", err)
	}
	if err := mw.Close(); err != nil {
		return photo.UploadResult{}, fmt.Errorf("ошибка формирования запроса: %w", err)
	}

	var result photo.UploadResult
	resp, err := h.send(ctx, http.MethodPost, "/storage/upload", buf.Bytes(), mw.FormDataContentType())
	if err != nil {
		return result, err
	}
	err = h.parseResponse(resp, &result)
	return result, err
}

// Backup сохраняет снимок локальных данных на сервере
func (h *RemoteClient) Backup(ctx context.Context, snap backup.Snapshot) (backup.Result, error) {
	var result backup.Result
	err := h.call(ctx, http.MethodPost, "/migration/backup", snap, &result)
	return result, err
}

func (h *RemoteClient) Register(ctx context.Context, login, password string) (Session, error) {
	var s Session
	err := h.call(ctx, http.MethodPost, "/auth/register", credentials{login, password}, &s)
	return s, err
}

func (h *RemoteClient) Login(ctx context.Context, login, password string) (Session, error) {
	var s Session
	err := h.call(ctx, http.MethodPost, "/auth/login", credentials{login, password}, &s)
	return s, err
}

func (h *RemoteClient) Logout(ctx context.Context) error {
	return h.call(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *RemoteClient) call(ctx context.Context, method, path string, body, result any) error {
	var reqBody []byte
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = jsonData
		contentType = "application/json"
	}

	resp, err := h.send(ctx, method, path, reqBody, contentType)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, result)
}

// send выполняет запрос с учетом лимита частоты. На 429 запрос повторяется
// не более maxRetries раз после паузы из Retry-After.
func (h *RemoteClient) send(ctx context.Context, method, path string, body []byte, contentType string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if h.limiter != nil {
			if err := h.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("ожидание лимита запросов: %w", err)
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания запроса: %w", err)
		}

		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set(deviceHeader, h.deviceID)
		if token := h.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		h.log.Debug("Отправка запроса", "method", method, "url", req.URL.String(), "attempt", attempt+1)

		resp, err := h.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := retryAfter(resp.Header.Get("Retry-After"))
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		h.log.Warn("Превышен лимит запросов, повтор", "path", path, "wait", wait, "attempt", attempt+1)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryAfter разбирает Retry-After в секундах; без заголовка ждем секунду
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return time.Second
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}

func (h *RemoteClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ", "status", resp.StatusCode, "size", len(body))

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode >= 400 {
		msg := ""
		if decodeErr == nil {
			msg = env.Error
		}
		return &RemoteError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("ошибка парсинга ответа: %w", decodeErr)
	}
	if !env.Success {
		return &RemoteError{Status: resp.StatusCode, Message: env.Error}
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("ошибка парсинга данных: %w", err)
		}
	}
	return nil
}
