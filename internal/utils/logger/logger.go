package logger

import (
	"io"
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/natefinch/lumberjack.v2"

	"mindfulsteps/internal/app/server/config"
	"mindfulsteps/internal/utils/logger/slogpretty"
)

type options struct {
	out        io.Writer
	file       string
	maxSizeMB  int
	maxBackups int
}

// Option настраивает логгер
type Option func(*options)

// WithFile дублирует JSON-логи в файл с ротацией
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithOutput задает поток консольного вывода вместо stdout
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// New создает логгер в зависимости от окружения:
// local: цветной вывод, dev: JSON с уровнем debug, prod: JSON с уровнем info.
func New(env string, opts ...Option) *slog.Logger {
	o := options{out: os.Stdout, maxSizeMB: 50, maxBackups: 5}
	for _, opt := range opts {
		opt(&o)
	}

	switch env {
	case config.EnvLocal:
		return setupPrettySlog(o.writer(o.out))
	case config.EnvDev:
		return slog.New(
			slog.NewJSONHandler(o.writer(o.out), &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(o.writer(o.out), &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
}

func (o options) writer(out io.Writer) io.Writer {
	if o.file == "" {
		return out
	}

	return io.MultiWriter(out, &lumberjack.Logger{
		Filename:   o.file,
		MaxSize:    o.maxSizeMB,
		MaxBackups: o.maxBackups,
		Compress:   true,
	})
}

func setupPrettySlog(out io.Writer) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	return slog.New(opts.NewPrettyHandler(out))
}
