package walklog

import (
	"fmt"
	"time"
)

type Period string

const (
	PeriodDay   Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Summary сводка прогулок за период
type Summary struct {
	Period         Period  `json:"period" yaml:"period"`
	From           string  `json:"from" yaml:"from"`
	To             string  `json:"to" yaml:"to"`
	TotalSteps     int     `json:"totalSteps" yaml:"totalSteps"`
	TotalDistance  float64 `json:"totalDistance" yaml:"totalDistance"`
	TotalDuration  float64 `json:"totalDuration" yaml:"totalDuration"`
	WalksCompleted int     `json:"walksCompleted" yaml:"walksCompleted"`
	GoalProgress   float64 `json:"goalProgress" yaml:"goalProgress"`
}

// ParsePeriod разбирает название периода
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s), nil
	case "day":
		return PeriodDay, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// PeriodRange возвращает границы периода включительно.
// Неделя начинается с воскресенья.
func PeriodRange(p Period, now time.Time) (string, string) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch p {
	case PeriodWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start.Format(dateLayout), start.AddDate(0, 0, 6).Format(dateLayout)
	case PeriodMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start.Format(dateLayout), start.AddDate(0, 1, -1).Format(dateLayout)
	default:
		return day.Format(dateLayout), day.Format(dateLayout)
	}
}

// Summarize суммирует прогулки с датой в [from, to]; goalSteps задает 100% прогресса
func Summarize(p Period, logs []WalkLog, from, to string, goalSteps int) Summary {
	s := Summary{Period: p, From: from, To: to}
	for _, l := range logs {
		if l.Date < from || l.Date > to {
			continue
		}
		s.TotalSteps += l.Steps
		s.TotalDistance += l.Distance
		s.TotalDuration += l.Duration
		if !l.IsActive() {
			s.WalksCompleted++
		}
	}

	s.TotalDistance = round2(s.TotalDistance)
	s.TotalDuration = round2(s.TotalDuration)
	if goalSteps > 0 {
		s.GoalProgress = round2(float64(s.TotalSteps) / float64(goalSteps) * 100)
	}
	return s
}
