package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"openinterview/internal/notifier/service"
	"openinterview/pkg/contracts"
	"openinterview/pkg/kafka"
	kafka_config "openinterview/pkg/kafka/config"
	"openinterview/pkg/logger"
)

const (
	ServiceName   = "notifier"
	ConsumerGroup = "notifier"
)

func main() {
	log := logger.New(logger.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  logger.JSON,
		Service: ServiceName,
	})

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(func(msg string, args ...any) {
		log.Info(msg, args...)
	})

	notifier := service.NewNotifier(log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		contracts.TopicBookingEvents,
		ConsumerGroup,
		contracts.TopicBookingEventsDLQ,
		notifier.HandleMessage,
		log,
	)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Error("Failed to close Kafka consumer", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	log.Info("Notifier started, consuming booking events", "topic", contracts.TopicBookingEvents)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Consumer stopped with error", "error", err)
	}
	log.Info("Notifier stopped")
}
