package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"golang.org/x/exp/slog"

	"mindfulsteps/internal/domain/backup"
	"mindfulsteps/internal/domain/goal"
	"mindfulsteps/internal/domain/photo"
	"mindfulsteps/internal/domain/streak"
	"mindfulsteps/internal/domain/walklog"
)

var errConnRefused = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRemote сервер в памяти с переключаемой доступностью
type fakeRemote struct {
	mu       sync.Mutex
	down     bool
	failSave map[string]bool
	token    string

	logs    map[string]walklog.WalkLog
	goals   *goal.StepGoal
	streaks []string
	photos  map[string]photo.Photo
	backups []backup.Snapshot
	calls   []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		failSave: map[string]bool{},
		logs:     map[string]walklog.WalkLog{},
		photos:   map[string]photo.Photo{},
	}
}

func (f *fakeRemote) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func (f *fakeRemote) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) HealthCheck(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errConnRefused
	}
	return nil
}

func (f *fakeRemote) ListWalkLogs(context.Context) ([]walklog.WalkLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]walklog.WalkLog, 0, len(f.logs))
	for _, l := range f.logs {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeRemote) SaveWalkLog(_ context.Context, log walklog.WalkLog) (walklog.WalkLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "save:"+log.ID)
	if f.failSave[log.ID] {
		return walklog.WalkLog{}, &RemoteError{Status: http.StatusInternalServerError, Message: "internal error"}
	}
	f.logs[log.ID] = log
	return log, nil
}

func (f *fakeRemote) DeleteWalkLog(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete:"+id)
	if _, ok := f.logs[id]; !ok {
		return &RemoteError{Status: http.StatusNotFound, Message: "walk log not found"}
	}
	delete(f.logs, id)
	return nil
}

func (f *fakeRemote) GetGoals(context.Context) (goal.StepGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.goals == nil {
		return goal.Default(), nil
	}
	return *f.goals, nil
}

func (f *fakeRemote) SaveGoals(_ context.Context, g goal.StepGoal) (goal.StepGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "goals")
	g.Version++
	f.goals = &g
	return g, nil
}

func (f *fakeRemote) GetStreak(context.Context) (streak.WalkStreak, error) {
	return streak.WalkStreak{}, nil
}

func (f *fakeRemote) UpdateStreak(_ context.Context, walkDate string) (streak.WalkStreak, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "streak:"+walkDate)
	f.streaks = append(f.streaks, walkDate)
	return streak.WalkStreak{Current: 1, Longest: 1, LastWalkDate: walkDate}, nil
}

func (f *fakeRemote) ListPhotos(context.Context) ([]photo.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]photo.Photo, 0, len(f.photos))
	for _, p := range f.photos {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRemote) SavePhoto(_ context.Context, p photo.Photo) (photo.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "photo:"+p.ID)
	f.photos[p.ID] = p
	return p, nil
}

func (f *fakeRemote) DeletePhoto(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.photos[id]; !ok {
		return &RemoteError{Status: http.StatusNotFound}
	}
	delete(f.photos, id)
	return nil
}

func (f *fakeRemote) UploadPhoto(_ context.Context, up photo.Upload) (photo.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := "uploaded-" + up.Filename
	url := "https://blobs.example.com/photos/" + up.Filename
	f.photos[id] = photo.Photo{ID: id, ImageURL: url, WalkID: up.Meta.WalkID}
	return photo.UploadResult{URL: url, PhotoID: id}, nil
}

func (f *fakeRemote) Backup(_ context.Context, snap backup.Snapshot) (backup.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.backups = append(f.backups, snap)
	return backup.Result{Key: "backup/" + snap.DeviceID + ".json"}, nil
}

func (f *fakeRemote) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}
