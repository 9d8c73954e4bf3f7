package walklog

import "sort"

// WalkLog одна прогулка. Пока EndTime не задан, прогулка считается активной.
// Время хранится в миллисекундах Unix.
type WalkLog struct {
	ID                     string    `json:"id"`
	Date                   string    `json:"date"`
	StartTime              int64     `json:"startTime"`
	EndTime                *int64    `json:"endTime,omitempty"`
	Steps                  int       `json:"steps"`
	Distance               float64   `json:"distance"`
	Duration               float64   `json:"duration"`
	AveragePace            *float64  `json:"averagePace,omitempty"`
	StartLocation          *Location `json:"startLocation,omitempty"`
	EndLocation            *Location `json:"endLocation,omitempty"`
	Photos                 []string  `json:"photos,omitempty"`
	Mood                   *Mood     `json:"mood,omitempty"`
	Weather                *Weather  `json:"weather,omitempty"`
	Notes                  string    `json:"notes,omitempty"`
	MindfulBreaksCompleted int       `json:"mindfulBreaksCompleted"`
}

// Location точка на карте в градусах WGS 84
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Mood самочувствие по шкале 1-5
type Mood struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

type Weather struct {
	Condition   string   `json:"condition"`
	Temperature float64  `json:"temperature"`
	Humidity    *float64 `json:"humidity,omitempty"`
}

// Valid проверяет диапазоны широты и долготы
func (loc Location) Valid() bool {
	return loc.Lat >= -90 && loc.Lat <= 90 && loc.Lng >= -180 && loc.Lng <= 180
}

func (l WalkLog) IsActive() bool {
	return l.EndTime == nil
}

// Sort упорядочивает прогулки от новых к старым
func Sort(logs []WalkLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].StartTime > logs[j].StartTime
	})
}

// Upsert заменяет прогулку с тем же ID или добавляет новую
func Upsert(logs []WalkLog, log WalkLog) []WalkLog {
	for i := range logs {
		if logs[i].ID == log.ID {
			logs[i] = log
			return logs
		}
	}
	return append(logs, log)
}

// Remove убирает прогулку по ID; второй результат сообщает, была ли она найдена
func Remove(logs []WalkLog, id string) ([]WalkLog, bool) {
	out := logs[:0:0]
	found := false
	for _, l := range logs {
		if l.ID == id {
			found = true
			continue
		}
		out = append(out, l)
	}
	return out, found
}

// Active возвращает все незавершенные прогулки.
// Несколько активных прогулок одновременно допустимы.
func Active(logs []WalkLog) []WalkLog {
	var out []WalkLog
	for _, l := range logs {
		if l.IsActive() {
			out = append(out, l)
		}
	}
	return out
}

// Find ищет прогулку по ID
func Find(logs []WalkLog, id string) (WalkLog, bool) {
	for _, l := range logs {
		if l.ID == id {
			return l, true
		}
	}
	return WalkLog{}, false
}
