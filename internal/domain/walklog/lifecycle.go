package walklog

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// Start создает активную прогулку, дата берется из момента старта в UTC.
// loc необязательна.
func Start(id string, at time.Time, loc *Location) WalkLog {
	return WalkLog{
		ID:            id,
		Date:          at.UTC().Format(dateLayout),
		StartTime:     at.UnixMilli(),
		StartLocation: loc,
	}
}

// AddProgress добавляет приращения шагов и дистанции и пересчитывает длительность
func (l *WalkLog) AddProgress(steps int, distanceKm float64, now time.Time) error {
	if !l.IsActive() {
		return fmt.Errorf("%w: %s", ErrNotActive, l.ID)
	}
	if steps < 0 || distanceKm < 0 {
		return fmt.Errorf("%w: negative progress", ErrInvalidData)
	}

	l.Steps += steps
	l.Distance += distanceKm
	l.Duration = minutesSince(l.StartTime, now)
	return nil
}

// Finish завершает прогулку: фиксирует время и место окончания, длительность и темп
func (l *WalkLog) Finish(now time.Time, loc *Location, mood *Mood, notes string) error {
	if !l.IsActive() {
		return fmt.Errorf("%w: %s", ErrNotActive, l.ID)
	}

	end := now.UnixMilli()
	l.EndTime = &end
	if loc != nil {
		l.EndLocation = loc
	}
	l.Duration = minutesSince(l.StartTime, now)
	if l.Distance > 0 {
		pace := round2(l.Duration / l.Distance)
		l.AveragePace = &pace
	}
	if mood != nil {
		l.Mood = mood
	}
	if notes != "" {
		l.Notes = notes
	}
	return nil
}

// CompleteBreak отмечает осознанную паузу во время прогулки
func (l *WalkLog) CompleteBreak() error {
	if !l.IsActive() {
		return fmt.Errorf("%w: %s", ErrNotActive, l.ID)
	}
	l.MindfulBreaksCompleted++
	return nil
}

// Validate минимальная проверка документа перед сохранением
func (l WalkLog) Validate() error {
	if l.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidData)
	}
	if _, err := time.Parse(dateLayout, l.Date); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidData, l.Date)
	}
	if l.EndTime != nil && *l.EndTime < l.StartTime {
		return fmt.Errorf("%w: endTime before startTime", ErrInvalidData)
	}
	return nil
}

func minutesSince(startMs int64, now time.Time) float64 {
	d := now.UnixMilli() - startMs
	if d < 0 {
		return 0
	}
	return round2(float64(d) / float64(time.Minute/time.Millisecond))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
