package main

import (
	"openinterview/internal/bookings/handler"
	"openinterview/internal/bookings/repository"
	"openinterview/internal/bookings/service"
	"openinterview/internal/bookings/validator"
	"openinterview/pkg/app"
	"openinterview/pkg/client"
	"openinterview/pkg/config"
	"openinterview/pkg/contracts"
	"openinterview/pkg/kafka"
	kafka_config "openinterview/pkg/kafka/config"
	"openinterview/pkg/sealer"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	producer := initProducer(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	bookingService := initServices(cfg, producer)

	serverApp := app.NewApplication(ServiceName)
	serverApp.SetApp(cfg, handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(func(msg string, args ...any) {
		cfg.Log.Info(msg, args...)
	})

	producer, err := kafka.NewProducer(kafkaCfg, contracts.TopicBookingEvents, contracts.TopicBookingEventsDLQ, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.BookingService {
	seal, err := sealer.NewSealer(cfg.SealerKey)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize manage token sealer", "error", err)
	}

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)
	availabilityClient := client.NewAvailabilityClient(cfg.AvailabilityServiceURL)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		cfg,
		seal,
		availabilityClient,
		producer,
	)

	cfg.Log.Info("Booking service initialized",
		"database", cfg.MongoDatabaseName,
		"availability_url", cfg.AvailabilityServiceURL,
	)
	return bookingService
}
