package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/domain/backup"
	"mindfulsteps/internal/domain/goal"
	"mindfulsteps/internal/domain/photo"
	"mindfulsteps/internal/domain/streak"
	"mindfulsteps/internal/domain/walklog"
)

const defaultInterval = 30 * time.Second

// Remote операции сервера, которыми пользуется синхронизация
type Remote interface {
	HealthCheck(ctx context.Context) error
	ListWalkLogs(ctx context.Context) ([]walklog.WalkLog, error)
	SaveWalkLog(ctx context.Context, log walklog.WalkLog) (walklog.WalkLog, error)
	DeleteWalkLog(ctx context.Context, id string) error
	GetGoals(ctx context.Context) (goal.StepGoal, error)
	SaveGoals(ctx context.Context, g goal.StepGoal) (goal.StepGoal, error)
	GetStreak(ctx context.Context) (streak.WalkStreak, error)
	UpdateStreak(ctx context.Context, walkDate string) (streak.WalkStreak, error)
	ListPhotos(ctx context.Context) ([]photo.Photo, error)
	SavePhoto(ctx context.Context, p photo.Photo) (photo.Photo, error)
	DeletePhoto(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, up photo.Upload) (photo.UploadResult, error)
	Backup(ctx context.Context, snap backup.Snapshot) (backup.Result, error)
	Token() string
}

// ReplayReport итог отправки очереди
type ReplayReport struct {
	Replayed  int `json:"replayed" yaml:"replayed"`
	Remaining int `json:"remaining" yaml:"remaining"`
}

// MigrationReport итог переноса локальных данных на сервер
type MigrationReport struct {
	BackupKey string `json:"backupKey" yaml:"backupKey"`
	WalkLogs  int    `json:"walkLogs" yaml:"walkLogs"`
	Photos    int    `json:"photos" yaml:"photos"`
	Goals     bool   `json:"goals" yaml:"goals"`
	Streak    bool   `json:"streak" yaml:"streak"`
}

// SyncService выбирает между сервером и локальным хранилищем.
// Перед каждой операцией проверяется доступность сервера; при отказе данные
// пишутся локально, а мутация ставится в очередь.
type SyncService struct {
	remote   Remote
	store    Store
	queue    *Queue
	clock    streak.Clock
	log      *slog.Logger
	deviceID string
	interval time.Duration
	onStatus func(online bool)
	now      func() time.Time

	mu       sync.Mutex
	online   bool
	observed bool

	replayMu sync.Mutex
}

type Option func(*SyncService)

// WithInterval задает период опроса доступности сервера
func WithInterval(d time.Duration) Option {
	return func(s *SyncService) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithStatusHandler вызывается при смене доступности сервера
func WithStatusHandler(fn func(online bool)) Option {
	return func(s *SyncService) {
		s.onStatus = fn
	}
}

func WithClock(c streak.Clock) Option {
	return func(s *SyncService) {
		s.clock = c
	}
}

func NewSyncService(remote Remote, store Store, deviceID string, log *slog.Logger, opts ...Option) *SyncService {
	s := &SyncService{
		remote:   remote,
		store:    store,
		queue:    NewQueue(store),
		clock:    streak.SystemClock{},
		log:      log.With("component", "sync"),
		deviceID: deviceID,
		interval: defaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetStatusHandler заменяет обработчик смены доступности; вызывать до Watch
func (s *SyncService) SetStatusHandler(fn func(online bool)) {
	s.onStatus = fn
}

// Online последнее известное состояние сервера
func (s *SyncService) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *SyncService) checkRemote(ctx context.Context) error {
	err := s.remote.HealthCheck(ctx)
	s.setOnline(err == nil)
	return err
}

func (s *SyncService) setOnline(online bool) {
	s.mu.Lock()
	changed := !s.observed || s.online != online
	s.online = online
	s.observed = true
	s.mu.Unlock()

	if !changed {
		return
	}
	if online {
		s.log.Info("Сервер доступен")
	} else {
		s.log.Warn("Сервер недоступен, работаем офлайн")
	}
	if s.onStatus != nil {
		s.onStatus(online)
	}
}

// enqueue ставит мутацию в очередь; ошибка очереди только логируется
func (s *SyncService) enqueue(ctx context.Context, kind Kind, payload any) {
	if _, err := s.queue.Enqueue(ctx, kind, payload); err != nil {
		s.log.Error("Не удалось поставить мутацию в очередь", "kind", kind, "error", err)
	}
}

// GetAllLogs возвращает прогулки от новых к старым
func (s *SyncService) GetAllLogs(ctx context.Context) Result[[]walklog.WalkLog] {
	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		logs, err := s.remote.ListWalkLogs(ctx)
		if err == nil {
			walklog.Sort(logs)
			return ok(logs)
		}
		remoteErr = err
	}

	logs, err := s.localLogs(ctx)
	if err != nil {
		return failed[[]walklog.WalkLog](err)
	}
	walklog.Sort(logs)
	return offline(logs, remoteErr)
}

// SaveLog сохраняет прогулку. Локальная копия обновляется всегда.
// Документ не проверяется: некорректный сохраняется локально как есть,
// а сервер отклонит его при отправке.
func (s *SyncService) SaveLog(ctx context.Context, log walklog.WalkLog) Result[walklog.WalkLog] {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	localErr := s.mirrorLog(ctx, log)

	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		saved, err := s.remote.SaveWalkLog(ctx, log)
		if err == nil {
			return ok(saved)
		}
		remoteErr = err
	}

	if localErr != nil {
		return failed[walklog.WalkLog](fmt.Errorf("%w; %v", localErr, remoteErr))
	}
	s.enqueue(ctx, KindWalkLog, log)
	return offline(log, remoteErr)
}

// DeleteLog удаляет прогулку. 404 от сервера считается успехом.
func (s *SyncService) DeleteLog(ctx context.Context, id string) Result[bool] {
	logs, localErr := s.localLogs(ctx)
	if localErr == nil {
		if rest, found := walklog.Remove(logs, id); found {
			localErr = s.store.Set(ctx, KeyWalkLogs, rest)
		}
	}

	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		err := s.remote.DeleteWalkLog(ctx, id)
		if err == nil || isNotFound(err) {
			return ok(true)
		}
		remoteErr = err
	}

	if localErr != nil {
		return failed[bool](localErr)
	}
	s.enqueue(ctx, KindWalkLogDelete, id)
	return offline(true, remoteErr)
}

func (s *SyncService) GetGoals(ctx context.Context) Result[goal.StepGoal] {
	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		g, err := s.remote.GetGoals(ctx)
		if err == nil {
			return ok(g)
		}
		remoteErr = err
	}

	g := goal.Default()
	if _, err := s.store.Get(ctx, KeyGoals, &g); err != nil {
		return failed[goal.StepGoal](err)
	}
	return offline(g, remoteErr)
}

func (s *SyncService) SaveGoals(ctx context.Context, g goal.StepGoal) Result[goal.StepGoal] {
	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		saved, err := s.remote.SaveGoals(ctx, g)
		if err == nil {
			return ok(saved)
		}
		remoteErr = err
	}

	if err := s.store.Set(ctx, KeyGoals, g); err != nil {
		return failed[goal.StepGoal](err)
	}
	s.enqueue(ctx, KindGoals, g)
	return offline(g, remoteErr)
}

func (s *SyncService) GetStreak(ctx context.Context) Result[streak.WalkStreak] {
	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		st, err := s.remote.GetStreak(ctx)
		if err == nil {
			return ok(st)
		}
		remoteErr = err
	}

	var st streak.WalkStreak
	if _, err := s.store.Get(ctx, KeyStreak, &st); err != nil {
		return failed[streak.WalkStreak](err)
	}
	return offline(st, remoteErr)
}

// UpdateStreak учитывает прогулку от walkDate. Офлайн серия считается локально.
func (s *SyncService) UpdateStreak(ctx context.Context, walkDate string) Result[streak.WalkStreak] {
	if !streak.ValidDate(walkDate) {
		return failed[streak.WalkStreak](fmt.Errorf("%w: %q", streak.ErrInvalidDate, walkDate))
	}

	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		st, err := s.remote.UpdateStreak(ctx, walkDate)
		if err == nil {
			return ok(st)
		}
		remoteErr = err
	}

	var st streak.WalkStreak
	if _, err := s.store.Get(ctx, KeyStreak, &st); err != nil {
		return failed[streak.WalkStreak](err)
	}
	st = streak.Advance(st, walkDate, s.clock.Today())
	if err := s.store.Set(ctx, KeyStreak, st); err != nil {
		return failed[streak.WalkStreak](err)
	}

	s.enqueue(ctx, KindStreak, streak.UpdateRequest{WalkDate: walkDate})
	return offline(st, remoteErr)
}

func (s *SyncService) GetPhotos(ctx context.Context) Result[[]photo.Photo] {
	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		photos, err := s.remote.ListPhotos(ctx)
		if err == nil {
			return ok(photos)
		}
		remoteErr = err
	}

	photos, err := s.localPhotos(ctx)
	if err != nil {
		return failed[[]photo.Photo](err)
	}
	return offline(photos, remoteErr)
}

func (s *SyncService) SavePhoto(ctx context.Context, p photo.Photo) Result[photo.Photo] {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Timestamp == 0 {
		p.Timestamp = s.now().UnixMilli()
	}

	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		saved, err := s.remote.SavePhoto(ctx, p)
		if err == nil {
			return ok(saved)
		}
		remoteErr = err
	}

	photos, err := s.localPhotos(ctx)
	if err != nil {
		return failed[photo.Photo](err)
	}
	if err := s.store.Set(ctx, KeyPhotos, upsertPhoto(photos, p)); err != nil {
		return failed[photo.Photo](err)
	}
	s.enqueue(ctx, KindPhoto, p)
	return offline(p, remoteErr)
}

func (s *SyncService) DeletePhoto(ctx context.Context, id string) Result[bool] {
	photos, localErr := s.localPhotos(ctx)
	if localErr == nil {
		if rest, found := removePhoto(photos, id); found {
			localErr = s.store.Set(ctx, KeyPhotos, rest)
		}
	}

	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		err := s.remote.DeletePhoto(ctx, id)
		if err == nil || isNotFound(err) {
			return ok(true)
		}
		remoteErr = err
	}

	if localErr != nil {
		return failed[bool](localErr)
	}
	s.enqueue(ctx, KindPhotoDelete, id)
	return offline(true, remoteErr)
}

// UploadPhoto загружает изображение в хранилище сервера.
// Без сервера изображение возвращается как data URL.
func (s *SyncService) UploadPhoto(ctx context.Context, up photo.Upload) Result[photo.UploadResult] {
	if !photo.IsImage(up.ContentType) {
		return failed[photo.UploadResult](fmt.Errorf("%w: %s", photo.ErrUnsupportedType, up.ContentType))
	}

	remoteErr := s.checkRemote(ctx)
	if remoteErr == nil {
		res, err := s.remote.UploadPhoto(ctx, up)
		if err == nil {
			return ok(res)
		}
		remoteErr = err
	}

	return offline(photo.UploadResult{URL: photo.EncodeDataURL(up.ContentType, up.Data)}, remoteErr)
}

func (s *SyncService) PendingCount(ctx context.Context) Result[int] {
	n, err := s.queue.Len(ctx)
	if err != nil {
		return failed[int](err)
	}
	return ok(n)
}

// ReplayQueue отправляет отложенные мутации в порядке постановки.
// Из очереди убираются только успешно отправленные элементы.
func (s *SyncService) ReplayQueue(ctx context.Context) Result[ReplayReport] {
	s.replayMu.Lock()
	defer s.replayMu.Unlock()

	items, err := s.queue.Items(ctx)
	if err != nil {
		return failed[ReplayReport](err)
	}
	if len(items) == 0 {
		return ok(ReplayReport{})
	}

	if err := s.checkRemote(ctx); err != nil {
		return offline(ReplayReport{Remaining: len(items)}, err)
	}

	done := make([]string, 0, len(items))
	var lastErr error
	for _, item := range items {
		if err := s.apply(ctx, item); err != nil {
			s.log.Warn("Мутация не отправлена, остается в очереди",
				"id", item.ID, "kind", item.Kind, "error", err)
			lastErr = err
			continue
		}
		done = append(done, item.ID)
	}

	if err := s.queue.Remove(ctx, done...); err != nil {
		return failed[ReplayReport](err)
	}

	report := ReplayReport{Replayed: len(done), Remaining: len(items) - len(done)}
	s.log.Info("Очередь синхронизации отправлена", "replayed", report.Replayed, "remaining", report.Remaining)

	if report.Remaining > 0 {
		return offline(report, lastErr)
	}
	return ok(report)
}

func (s *SyncService) apply(ctx context.Context, item QueueItem) error {
	switch item.Kind {
	case KindWalkLog:
		var log walklog.WalkLog
		if err := json.Unmarshal(item.Payload, &log); err != nil {
			return s.dropCorrupt(item, err)
		}
		_, err := s.remote.SaveWalkLog(ctx, log)
		return err
	case KindWalkLogDelete:
		var id string
		if err := json.Unmarshal(item.Payload, &id); err != nil {
			return s.dropCorrupt(item, err)
		}
		if err := s.remote.DeleteWalkLog(ctx, id); err != nil && !isNotFound(err) {
			return err
		}
		return nil
	case KindGoals:
		var g goal.StepGoal
		if err := json.Unmarshal(item.Payload, &g); err != nil {
			return s.dropCorrupt(item, err)
		}
		// последняя запись побеждает
		g.Version = 0
		_, err := s.remote.SaveGoals(ctx, g)
		return err
	case KindStreak:
		var req streak.UpdateRequest
		if err := json.Unmarshal(item.Payload, &req); err != nil {
			return s.dropCorrupt(item, err)
		}
		_, err := s.remote.UpdateStreak(ctx, req.WalkDate)
		return err
	case KindPhoto:
		var p photo.Photo
		if err := json.Unmarshal(item.Payload, &p); err != nil {
			return s.dropCorrupt(item, err)
		}
		_, err := s.remote.SavePhoto(ctx, p)
		return err
	case KindPhotoDelete:
		var id string
		if err := json.Unmarshal(item.Payload, &id); err != nil {
			return s.dropCorrupt(item, err)
		}
		if err := s.remote.DeletePhoto(ctx, id); err != nil && !isNotFound(err) {
			return err
		}
		return nil
	}

	s.log.Warn("Неизвестный тип мутации, удаляем из очереди", "id", item.ID, "kind", item.Kind)
	return nil
}

// dropCorrupt логирует нечитаемую мутацию; такой элемент удаляется из очереди
func (s *SyncService) dropCorrupt(item QueueItem, err error) error {
	s.log.Warn("Поврежденная мутация, удаляем из очереди", "id", item.ID, "kind", item.Kind, "error", err)
	return nil
}

// Watch опрашивает сервер с заданным интервалом и при появлении связи
// отправляет очередь. Завершается при отмене ctx.
func (s *SyncService) Watch(ctx context.Context) {
	s.log.Info("Запуск опроса сервера", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Опрос сервера остановлен")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *SyncService) tick(ctx context.Context) {
	if err := s.checkRemote(ctx); err != nil {
		return
	}

	n, err := s.queue.Len(ctx)
	if err != nil {
		s.log.Error("Не удалось прочитать очередь", "error", err)
		return
	}
	if n > 0 {
		s.ReplayQueue(ctx)
	}
}

// MigrateLocal переносит локальные данные устройства в учетную запись.
// Сначала на сервере сохраняется резервная копия; локальные данные
// удаляются только если перенос прошел целиком.
func (s *SyncService) MigrateLocal(ctx context.Context) Result[MigrationReport] {
	if s.remote.Token() == "" {
		return Result[MigrationReport]{Status: StatusRemoteUnavailable, Err: ErrNotAuthenticated}
	}
	if err := s.checkRemote(ctx); err != nil {
		return offline(MigrationReport{}, err)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return failed[MigrationReport](err)
	}

	var report MigrationReport
	saved, err := s.remote.Backup(ctx, snap)
	if err != nil {
		return offline(report, fmt.Errorf("резервная копия не сохранена: %w", err))
	}
	report.BackupKey = saved.Key

	var errs []error
	for _, log := range snap.WalkLogs {
		if _, err := s.remote.SaveWalkLog(ctx, log); err != nil {
			errs = append(errs, fmt.Errorf("прогулка %s: %w", log.ID, err))
			continue
		}
		report.WalkLogs++
	}
	if snap.Goals != nil {
		g := *snap.Goals
		g.Version = 0
		if _, err := s.remote.SaveGoals(ctx, g); err != nil {
			errs = append(errs, fmt.Errorf("цели: %w", err))
		} else {
			report.Goals = true
		}
	}
	if snap.Streak != nil && snap.Streak.LastWalkDate != "" {
		if _, err := s.remote.UpdateStreak(ctx, snap.Streak.LastWalkDate); err != nil {
			errs = append(errs, fmt.Errorf("серия: %w", err))
		} else {
			report.Streak = true
		}
	}
	for _, p := range snap.Photos {
		if _, err := s.remote.SavePhoto(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("фото %s: %w", p.ID, err))
			continue
		}
		report.Photos++
	}

	if len(errs) > 0 {
		return offline(report, errors.Join(errs...))
	}

	for _, key := range []string{KeyWalkLogs, KeyGoals, KeyStreak, KeyPhotos} {
		if err := s.store.Remove(ctx, key); err != nil {
			s.log.Error("Не удалось очистить локальные данные", "key", key, "error", err)
		}
	}
	s.log.Info("Локальные данные перенесены", "walk_logs", report.WalkLogs, "photos", report.Photos)
	return ok(report)
}

func (s *SyncService) snapshot(ctx context.Context) (backup.Snapshot, error) {
	snap := backup.Snapshot{
		Timestamp: s.now().UnixMilli(),
		DeviceID:  s.deviceID,
	}

	logs, err := s.localLogs(ctx)
	if err != nil {
		return snap, err
	}
	snap.WalkLogs = logs
	if snap.WalkLogs == nil {
		snap.WalkLogs = []walklog.WalkLog{}
	}

	var g goal.StepGoal
	found, err := s.store.Get(ctx, KeyGoals, &g)
	if err != nil {
		return snap, err
	}
	if found {
		snap.Goals = &g
	}

	var st streak.WalkStreak
	found, err = s.store.Get(ctx, KeyStreak, &st)
	if err != nil {
		return snap, err
	}
	if found {
		snap.Streak = &st
	}

	snap.Photos, err = s.localPhotos(ctx)
	return snap, err
}

func (s *SyncService) localLogs(ctx context.Context) ([]walklog.WalkLog, error) {
	var logs []walklog.WalkLog
	if _, err := s.store.Get(ctx, KeyWalkLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *SyncService) mirrorLog(ctx context.Context, log walklog.WalkLog) error {
	logs, err := s.localLogs(ctx)
	if err != nil {
		s.log.Error("Не удалось прочитать локальные прогулки", "error", err)
		return err
	}
	return s.store.Set(ctx, KeyWalkLogs, walklog.Upsert(logs, log))
}

func (s *SyncService) localPhotos(ctx context.Context) ([]photo.Photo, error) {
	var photos []photo.Photo
	if _, err := s.store.Get(ctx, KeyPhotos, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

func upsertPhoto(photos []photo.Photo, p photo.Photo) []photo.Photo {
	for i := range photos {
		if photos[i].ID == p.ID {
			photos[i] = p
			return photos
		}
	}
	return append(photos, p)
}

func removePhoto(photos []photo.Photo, id string) ([]photo.Photo, bool) {
	out := photos[:0:0]
	found := false
	for _, p := range photos {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	return out, found
}
