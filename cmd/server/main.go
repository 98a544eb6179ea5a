package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/unmatched/taskboard/internal/api"
	"github.com/unmatched/taskboard/internal/core/ports"
	"github.com/unmatched/taskboard/internal/core/service"
	"github.com/unmatched/taskboard/internal/infrastructure/chat"
	mongodb "github.com/unmatched/taskboard/internal/infrastructure/db/mongo"
	redisdb "github.com/unmatched/taskboard/internal/infrastructure/db/redis"
	"github.com/unmatched/taskboard/internal/notify"
	"github.com/unmatched/taskboard/internal/pkg/config"
	"github.com/unmatched/taskboard/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	taskRepo := mongodb.NewTaskRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	if err := taskRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("task index bootstrap failed")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index bootstrap failed")
	}

	// --- Notifications ---
	var sink ports.ChatSink
	if cfg.Discord.BotToken != "" && cfg.Discord.ChannelID != "" {
		sink = chat.NewDiscordSink(chat.DiscordConfig{
			BotToken:  cfg.Discord.BotToken,
			ChannelID: cfg.Discord.ChannelID,
		})
	} else {
		log.Warn().Msg("discord not configured, notifications disabled")
		sink = chat.NoopSink{}
	}

	// The dispatcher outlives the signal context so queued notifications can
	// still drain during shutdown.
	dispatcher := notify.NewDispatcher(cfg.NotifyWorkers, sink, redisdb.NewNotificationDedup(rdb), log)
	dispatcher.Start(context.Background())

	// --- Services ---
	taskService := service.NewTaskService(taskRepo, userRepo, dispatcher, log)
	userService := service.NewUserService(userRepo, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	e := api.NewRouter(api.Deps{
		Logger:    log,
		JWTSecret: cfg.JWTSecret,
		Tasks:     taskService,
		Users:     userService,
		Auth:      authService,
		Mongo:     db,
		Redis:     rdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Drain queued notifications before closing the clients they rely on.
	dispatcher.Stop()
	log.Info().Msg("shutdown complete")
}
