package main

import (
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/voxgate/voxgate/internal/audio"
	"github.com/voxgate/voxgate/internal/audio/providers"
	"github.com/voxgate/voxgate/internal/cache"
	"github.com/voxgate/voxgate/internal/config"
	"github.com/voxgate/voxgate/internal/queue"
	"github.com/voxgate/voxgate/internal/queue/workers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	registry := providers.NewRegistry(cfg.Audio)
	svc := audio.NewService(registry, audio.SettingsFromEnv())
	jobs := queue.NewJobStore(cache.NewCache(rdb))

	handlers := queue.NewHandlersRegistry()
	handlers.Register(queue.TypeAudioTranscribe, asynq.HandlerFunc(workers.NewTranscribeWorker(svc, jobs).ProcessTask))

	slog.Info("starting worker", "concurrency", 10)
	if err := srv.Run(handlers.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
