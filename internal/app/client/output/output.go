// Package output печатает результаты команд клиента в текстовом, JSON или YAML виде
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"mindfulsteps/internal/app/client"
	"mindfulsteps/internal/domain/goal"
	"mindfulsteps/internal/domain/photo"
	"mindfulsteps/internal/domain/streak"
	"mindfulsteps/internal/domain/walklog"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("неизвестный формат вывода %q (text, json, yaml)", s)
}

type Printer struct {
	out    io.Writer
	errOut io.Writer
	format Format
	loc    *time.Location
}

type Option func(*Printer)

// WithLocation часовой пояс для отображения времени
func WithLocation(loc *time.Location) Option {
	return func(p *Printer) {
		p.loc = loc
	}
}

func New(out, errOut io.Writer, format Format, opts ...Option) *Printer {
	p := &Printer{out: out, errOut: errOut, format: format, loc: time.Local}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Status сообщает о работе офлайн и превращает локальную ошибку в ошибку команды
func (p *Printer) Status(s client.Status, err error) error {
	switch s {
	case client.StatusRemoteUnavailable:
		msg := "Сервер недоступен: данные сохранены локально и будут отправлены позже"
		if err != nil {
			msg += fmt.Sprintf(" (%v)", err)
		}
		fmt.Fprintln(p.errOut, color.YellowString("⚠ %s", msg))
	case client.StatusLocalError:
		return err
	}
	return nil
}

// Connectivity баннер смены доступности сервера
func (p *Printer) Connectivity(online bool) {
	if online {
		fmt.Fprintln(p.errOut, color.GreenString("● Сервер доступен"))
		return
	}
	fmt.Fprintln(p.errOut, color.YellowString("● Работаем офлайн"))
}

func (p *Printer) Message(format string, args ...any) {
	fmt.Fprintln(p.out, color.GreenString("✓ ")+fmt.Sprintf(format, args...))
}

func (p *Printer) Walks(logs []walklog.WalkLog) error {
	return p.render(logs, func(w io.Writer) {
		if len(logs) == 0 {
			fmt.Fprintln(w, "Прогулок пока нет")
			return
		}
		fmt.Fprintf(w, "Прогулок: %d\n", len(logs))
		for _, l := range logs {
			state := "завершена"
			if l.IsActive() {
				state = "в процессе"
			}
			fmt.Fprintf(w, "%s  %s  %6d шагов  %5.2f км  %5.1f мин  %s\n",
				l.ID, l.Date, l.Steps, l.Distance, l.Duration, state)
		}
	})
}

func (p *Printer) Walk(l walklog.WalkLog) error {
	return p.render(l, func(w io.Writer) {
		p.walkText(w, l)
	})
}

func (p *Printer) WalkEnd(end client.WalkEnd) error {
	return p.render(end, func(w io.Writer) {
		p.walkText(w, end.Log)
		fmt.Fprintln(w)
		streakText(w, end.Streak)
	})
}

func (p *Printer) walkText(w io.Writer, l walklog.WalkLog) {
	fmt.Fprintf(w, "Прогулка %s\n", l.ID)
	field(w, "Дата", l.Date)
	field(w, "Начало", p.clock(l.StartTime))
	if l.EndTime != nil {
		field(w, "Окончание", p.clock(*l.EndTime))
	} else {
		field(w, "Окончание", "в процессе")
	}
	field(w, "Шаги", fmt.Sprintf("%d", l.Steps))
	field(w, "Дистанция", fmt.Sprintf("%.2f км", l.Distance))
	field(w, "Длительность", fmt.Sprintf("%.1f мин", l.Duration))
	if l.AveragePace != nil {
		field(w, "Темп", fmt.Sprintf("%.2f мин/км", *l.AveragePace))
	}
	if l.Mood != nil {
		field(w, "Настроение", fmt.Sprintf("%d -> %d", l.Mood.Before, l.Mood.After))
	}
	if l.MindfulBreaksCompleted > 0 {
		field(w, "Паузы", fmt.Sprintf("%d", l.MindfulBreaksCompleted))
	}
	if len(l.Photos) > 0 {
		field(w, "Фото", fmt.Sprintf("%d", len(l.Photos)))
	}
	if l.StartLocation != nil {
		field(w, "Откуда", place(*l.StartLocation))
	}
	if l.EndLocation != nil {
		field(w, "Куда", place(*l.EndLocation))
	}
	if l.Notes != "" {
		field(w, "Заметки", l.Notes)
	}
}

func place(loc walklog.Location) string {
	coords := fmt.Sprintf("%.5f, %.5f", loc.Lat, loc.Lng)
	if loc.Address == "" {
		return coords
	}
	return loc.Address + " (" + coords + ")"
}

func (p *Printer) Summary(s walklog.Summary) error {
	return p.render(s, func(w io.Writer) {
		fmt.Fprintf(w, "Период: %s (%s..%s)\n", s.Period, s.From, s.To)
		field(w, "Шаги", fmt.Sprintf("%d", s.TotalSteps))
		field(w, "Дистанция", fmt.Sprintf("%.2f км", s.TotalDistance))
		field(w, "Длительность", fmt.Sprintf("%.1f мин", s.TotalDuration))
		field(w, "Прогулок", fmt.Sprintf("%d", s.WalksCompleted))
		field(w, "Цель", fmt.Sprintf("%.1f%%", s.GoalProgress))
	})
}

func (p *Printer) Goals(g goal.StepGoal) error {
	return p.render(g, func(w io.Writer) {
		fmt.Fprintln(w, "Цели по шагам")
		field(w, "День", fmt.Sprintf("%d", g.Daily))
		field(w, "Неделя", fmt.Sprintf("%d", g.Weekly))
		field(w, "Месяц", fmt.Sprintf("%d", g.Monthly))
	})
}

func (p *Printer) Streak(s streak.WalkStreak) error {
	return p.render(s, func(w io.Writer) {
		streakText(w, s)
	})
}

func streakText(w io.Writer, s streak.WalkStreak) {
	fmt.Fprintf(w, "Серия: %d дн. (рекорд %d)\n", s.Current, s.Longest)
	if s.LastWalkDate != "" {
		fmt.Fprintf(w, "Последняя прогулка: %s\n", s.LastWalkDate)
	}
}

func (p *Printer) Photos(photos []photo.Photo) error {
	return p.render(photos, func(w io.Writer) {
		if len(photos) == 0 {
			fmt.Fprintln(w, "Снимков пока нет")
			return
		}
		fmt.Fprintf(w, "Снимков: %d\n", len(photos))
		for _, ph := range photos {
			fmt.Fprintf(w, "%s  %s  %s  %s\n", ph.ID, p.clock(ph.Timestamp), ph.PromptType, imageRef(ph.ImageURL))
		}
	})
}

func (p *Printer) Photo(ph photo.Photo) error {
	return p.render(ph, func(w io.Writer) {
		fmt.Fprintf(w, "Снимок %s\n", ph.ID)
		field(w, "Подсказка", strings.TrimSpace(string(ph.PromptType)+" "+ph.PromptTitle))
		field(w, "Изображение", imageRef(ph.ImageURL))
		if ph.WalkID != "" {
			field(w, "Прогулка", ph.WalkID)
		}
		if ph.Note != "" {
			field(w, "Заметка", ph.Note)
		}
	})
}

func (p *Printer) Prompts(prompts []photo.Prompt) error {
	return p.render(prompts, func(w io.Writer) {
		for _, pr := range prompts {
			fmt.Fprintf(w, "%-22s %-10s %s\n", pr.ID, pr.Type, pr.Title)
		}
	})
}

func (p *Printer) Prompt(pr photo.Prompt) error {
	return p.render(pr, func(w io.Writer) {
		promptText(w, pr)
	})
}

func promptText(w io.Writer, pr photo.Prompt) {
	fmt.Fprintf(w, "%s (%s)\n", pr.Title, pr.Type)
	if pr.Description != "" {
		fmt.Fprintf(w, "  %s\n", pr.Description)
	}
	fmt.Fprintf(w, "  %s\n", pr.Instruction)
}

// BreakPlan засчитанная пауза, упражнение на нее и шаги до следующей
type BreakPlan struct {
	Walk      walklog.WalkLog `json:"walk" yaml:"walk"`
	Prompt    photo.Prompt    `json:"prompt" yaml:"prompt"`
	NextAfter int             `json:"nextBreakInSteps" yaml:"nextBreakInSteps"`
}

func (p *Printer) Break(b BreakPlan) error {
	return p.render(b, func(w io.Writer) {
		fmt.Fprintf(w, "Пауза %d засчитана\n\n", b.Walk.MindfulBreaksCompleted)
		promptText(w, b.Prompt)
		fmt.Fprintf(w, "\nСледующая пауза через %d шагов\n", b.NextAfter)
	})
}

func (p *Printer) Replay(r client.ReplayReport) error {
	return p.render(r, func(w io.Writer) {
		fmt.Fprintf(w, "Отправлено: %d, осталось в очереди: %d\n", r.Replayed, r.Remaining)
	})
}

func (p *Printer) Migration(r client.MigrationReport) error {
	return p.render(r, func(w io.Writer) {
		field(w, "Копия", r.BackupKey)
		field(w, "Прогулки", fmt.Sprintf("%d", r.WalkLogs))
		field(w, "Снимки", fmt.Sprintf("%d", r.Photos))
		field(w, "Цели", yesNo(r.Goals))
		field(w, "Серия", yesNo(r.Streak))
	})
}

// SyncState состояние соединения и очереди
type SyncState struct {
	DeviceID      string `json:"deviceId" yaml:"deviceId"`
	Online        bool   `json:"online" yaml:"online"`
	Authenticated bool   `json:"authenticated" yaml:"authenticated"`
	Pending       int    `json:"pending" yaml:"pending"`
}

func (p *Printer) SyncState(s SyncState) error {
	return p.render(s, func(w io.Writer) {
		field(w, "Устройство", s.DeviceID)
		if s.Online {
			field(w, "Сервер", color.GreenString("доступен"))
		} else {
			field(w, "Сервер", color.YellowString("недоступен"))
		}
		field(w, "Вход", yesNo(s.Authenticated))
		field(w, "В очереди", fmt.Sprintf("%d", s.Pending))
	})
}

func (p *Printer) render(v any, text func(w io.Writer)) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		return p.yaml(v)
	default:
		text(p.out)
		return nil
	}
}

// yaml печатает v с теми же ключами, что и в JSON
func (p *Printer) yaml(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return err
	}

	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func (p *Printer) clock(ms int64) string {
	return time.UnixMilli(ms).In(p.loc).Format("2006-01-02 15:04")
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-13s %s\n", label+":", value)
}

func imageRef(url string) string {
	if photo.IsDataURL(url) {
		return "(встроено в запись)"
	}
	return url
}

func yesNo(b bool) string {
	if b {
		return "да"
	}
	return "нет"
}
