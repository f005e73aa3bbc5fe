package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"cinema-booking-platform/internal/cinema"
	"cinema-booking-platform/internal/config"
	"cinema-booking-platform/internal/database"
	"cinema-booking-platform/internal/events"
	"cinema-booking-platform/internal/handlers"
	"cinema-booking-platform/internal/middleware"
	"cinema-booking-platform/internal/repositories"
	"cinema-booking-platform/internal/services"
	"cinema-booking-platform/internal/tasks"
	"cinema-booking-platform/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	var publisher services.EventPublisher = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		conn, err := amqp.Dial(cfg.AMQP.URL)
		if err != nil {
			log.Fatal("failed to connect to amqp", "error", err)
		}
		defer conn.Close()

		p, err := events.NewPublisher(conn)
		if err != nil {
			log.Fatal("failed to set up event publisher", "error", err)
		}
		defer p.Close()
		publisher = p
	}

	taskClient := tasks.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer taskClient.Close()

	api := cinema.NewClient(cinema.Config{
		BaseURL:    cfg.CinemaAPI.BaseURL,
		Timeout:    cfg.CinemaAPI.Timeout,
		RetryDelay: cfg.CinemaAPI.RetryDelay,
	}, log)

	cartRepo := repositories.NewCartRepository(db.DB, log)
	progressRepo := repositories.NewProgressRepository(redisClient, log)
	ticketRepo := repositories.NewGuestTicketRepository(db.DB, log)

	router := handlers.NewRouter(handlers.RouterDeps{
		API:      api,
		Cart:     services.NewCartService(cartRepo, log),
		Booking:  services.NewBookingService(api, progressRepo, ticketRepo, taskClient, log),
		Checkout: services.NewCheckoutService(api, cartRepo, progressRepo, publisher, cfg.Checkout.RedirectDelay, log),
		Guest:    services.NewGuestService(api, cfg.Guest.TokenSecret, cfg.Guest.TokenTTL, log),
		Session:  middleware.NewSessionManager(cfg.Session.Secret),
		Log:      log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
