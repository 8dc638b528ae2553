package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/travelbook/flightbooking/config"
	"github.com/travelbook/flightbooking/internal/kafka"
	"github.com/travelbook/flightbooking/internal/logger"
	"github.com/travelbook/flightbooking/internal/notify"
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
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatalf("kafka.brokers (or KAFKA_BROKERS) is required for the worker")
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.ToContext(ctx, zlog)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	notifier := notify.NewNotifier(zlog.With("component", "notifier"))

	zlog.Infow("worker consuming booking events", "topic", cfg.Kafka.BookingEventsTopic, "group", cfg.Kafka.GroupID)
	if err := consumer.Consume(ctx, kafka.DecodeBookingEvents(notifier.Send)); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Errorf("consumer stopped: %v", err)
		return
	}
	zlog.Info("worker stopped")
}
