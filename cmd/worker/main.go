package main

import (
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"cinema-booking-platform/internal/cinema"
	"cinema-booking-platform/internal/config"
	"cinema-booking-platform/internal/repositories"
	"cinema-booking-platform/internal/tasks"
	"cinema-booking-platform/pkg/logger"
)

// The worker drains the task queues: food-order reconciliation after a
// paid reservation, and the periodic sweep of expired booking drafts.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	api := cinema.NewClient(cinema.Config{
		BaseURL:    cfg.CinemaAPI.BaseURL,
		Timeout:    cfg.CinemaAPI.Timeout,
		RetryDelay: cfg.CinemaAPI.RetryDelay,
	}, log)

	progressRepo := repositories.NewProgressRepository(redisClient, log)
	handlers := tasks.NewHandlers(api, progressRepo, log)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("@every 10m", asynq.NewTask(tasks.TypeProgressSweep, nil)); err != nil {
		log.Fatal("failed to register progress sweep", "error", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatal("scheduler failed", "error", err)
		}
	}()

	log.Info("worker starting", "redis", cfg.Redis.Addr)
	if err := srv.Run(handlers.NewMux()); err != nil {
		log.Fatal("worker failed", "error", err)
	}
}
