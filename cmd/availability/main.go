package main

import (
	"openinterview/internal/availability/handler"
	"openinterview/internal/availability/repository"
	"openinterview/internal/availability/service"
	"openinterview/pkg/app"
	"openinterview/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Availability service")
	availabilityService := initServices(cfg)

	serverApp := app.NewApplication(ServiceName)
	serverApp.SetApp(cfg, handler.NewAvailabilityHandler(availabilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	availabilityRepo := repository.NewMongoAvailabilityRepository(cfg)
	availabilityService := service.NewAvailabilityService(availabilityRepo, cfg)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}
