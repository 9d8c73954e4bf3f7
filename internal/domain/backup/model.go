package backup

import (
	"mindfulsteps/internal/domain/goal"
	"mindfulsteps/internal/domain/photo"
	"mindfulsteps/internal/domain/streak"
	"mindfulsteps/internal/domain/walklog"
)

// Snapshot снимок локальных данных устройства перед миграцией на сервер
type Snapshot struct {
	WalkLogs  []walklog.WalkLog  `json:"walkLogs"`
	Goals     *goal.StepGoal     `json:"goals,omitempty"`
	Streak    *streak.WalkStreak `json:"streak,omitempty"`
	Photos    []photo.Photo      `json:"photos,omitempty"`
	Timestamp int64              `json:"timestamp"`
	DeviceID  string             `json:"deviceId"`
}

type Result struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
