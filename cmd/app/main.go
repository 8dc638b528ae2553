package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/travelbook/flightbooking/config"
	"github.com/travelbook/flightbooking/internal/auth"
	"github.com/travelbook/flightbooking/internal/bootstrap"
	"github.com/travelbook/flightbooking/internal/cache"
	"github.com/travelbook/flightbooking/internal/clients/aviationstack"
	"github.com/travelbook/flightbooking/internal/kafka"
	"github.com/travelbook/flightbooking/internal/logger"
	"github.com/travelbook/flightbooking/internal/repository"
	"github.com/travelbook/flightbooking/internal/service/booking"
	"github.com/travelbook/flightbooking/internal/service/flights"
	"github.com/travelbook/flightbooking/internal/service/user"
)

func main() {
	config.LoadEnv()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.ToContext(ctx, zlog)

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zlog.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		zlog.Fatalf("migrate: %v", err)
	}

	var searchCache flights.SearchCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Flights.CacheTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			zlog.Warnf("redis unavailable, flight search cache disabled: %v", err)
		} else {
			searchCache = redisCache
		}
	}

	bookingOpts := []booking.BookingServiceOption{booking.WithCancelledRetention(cfg.Booking.CancelledRetention)}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts, booking.WithEvents(producer, cfg.Kafka.BookingEventsTopic))
	}

	apiURL, err := url.Parse(cfg.Flights.APIURL)
	if err != nil {
		zlog.Fatalf("parse flights api url: %v", err)
	}
	provider := aviationstack.NewClient(&http.Client{Timeout: cfg.Flights.Timeout()}, *apiURL, cfg.Flights.AccessKey, cfg.Flights.ResultLimit)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL())
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	userRepo := repository.NewUserRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	services := bootstrap.Services{
		Bookings: booking.NewBookingService(bookingRepo, bookingOpts...),
		Users:    user.NewUserService(userRepo, hasher, tokens),
		Flights:  flights.NewFlightService(provider, searchCache),
		Tokens:   tokens,
	}

	if err := bootstrap.Run(ctx, cfg, zlog, services); err != nil {
		zlog.Fatalf("server error: %v", err)
	}
}
