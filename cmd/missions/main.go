package main

import (
	"festivol/internal/missions/handler"
	"festivol/internal/missions/repository"
	"festivol/internal/missions/service"
	"festivol/internal/missions/validator"
	"festivol/internal/notify"
	"festivol/pkg/app"
	"festivol/pkg/config"
	"festivol/pkg/kafka"
)

const ServiceName = "missions"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Missions service")

	notifier := initNotifier(cfg)
	missionService, volunteerService := initServices(cfg, notifier)

	api := &handler.API{
		Missions:    handler.NewMissionHandler(cfg, missionService),
		Assignments: handler.NewAssignmentHandler(missionService, cfg.Log),
		Volunteers:  handler.NewVolunteerHandler(volunteerService, cfg.Log),
	}

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, api)
	serverApp.OnShutdown(func() {
		if err := notifier.Close(); err != nil {
			cfg.Log.Error("Failed to close notifier", "error", err)
		}
	})
	serverApp.Run()
}

func initNotifier(cfg *config.Config) notify.Notifier {
	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.NotificationsTopic,
		MaxAttempts:  cfg.ProducerMaxAttempts,
		BatchTimeout: cfg.ProducerBatchTimeout,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Notification producer initialized", "topic", cfg.NotificationsTopic)
	return notify.NewKafkaNotifier(producer, cfg.NotificationTimeout, cfg.Log)
}

func initServices(cfg *config.Config, notifier notify.Notifier) (*service.MissionService, *service.VolunteerService) {
	missionValidator := validator.NewMissionValidator(cfg.Log)
	volunteerValidator := validator.NewVolunteerValidator(cfg.Log)

	missionRepo := repository.NewMongoMissionRepository(cfg)
	volunteerRepo := repository.NewMongoVolunteerRepository(cfg)

	missionService := service.NewMissionService(cfg, missionRepo, missionValidator, notifier)
	volunteerService := service.NewVolunteerService(cfg, volunteerRepo, missionRepo, volunteerValidator)

	cfg.Log.Info("Mission services initialized", "database", cfg.MongoDatabaseName)
	return missionService, volunteerService
}
