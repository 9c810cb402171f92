package main

import (
	"openinterview/internal/profiles/handler"
	"openinterview/internal/profiles/repository"
	"openinterview/internal/profiles/service"
	"openinterview/internal/profiles/validator"
	"openinterview/pkg/app"
	"openinterview/pkg/config"
)

const ServiceName = "profiles"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Profiles service")
	profileService := initServices(cfg)

	serverApp := app.NewApplication(ServiceName)
	serverApp.SetApp(cfg, handler.NewProfileHandler(profileService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ProfileService {
	profileValidator := validator.NewProfileValidator(cfg.Log)
	profileRepo := repository.NewMongoProfileRepository(cfg)
	profileService := service.NewProfileService(profileRepo, profileValidator, cfg)

	cfg.Log.Info("Profile service initialized", "database", cfg.MongoDatabaseName)
	return profileService
}
