package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api"
	"mindfulsteps/internal/app/server/config"
	"mindfulsteps/internal/infrastructure/cache"
	"mindfulsteps/internal/infrastructure/objectstore"
	"mindfulsteps/internal/infrastructure/storage/postgres"
	"mindfulsteps/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	var logOpts []logger.Option
	if cfg.Logger.File != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.Logger.File))
	}
	log := logger.New(cfg.Env, logOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(ctx, cfg.DB, log)
	if err != nil {
		log.Error("failed to init storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer storage.Close()

	deps := api.Deps{
		DB:     storage.Pool(),
		Health: storage,
		Server: cfg.Server,
	}

	if client := cache.Connect(cfg.Redis); client != nil {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, document cache disabled", slog.Any("error", err))
			_ = client.Close()
		} else {
			defer client.Close()
			deps.Cache = cache.NewDocuments(client, cfg.Redis.TTL)
		}
	}

	blobs, err := objectstore.New(cfg.Storage, log)
	if err != nil {
		log.Error("failed to init object storage", slog.Any("error", err))
		os.Exit(1)
	}
	if blobs != nil {
		if err := blobs.EnsureBucket(ctx); err != nil {
			log.Warn("object storage unavailable, images stay embedded", slog.Any("error", err))
		} else {
			deps.Blobs = blobs
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(deps, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", slog.String("addr", cfg.Server.RunAddress), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
	}
	log.Info("server stopped")
}
