package app

import (
	"log"

	"feedblog/internal/config"
	"feedblog/internal/database"
	"feedblog/internal/repository"
	"feedblog/internal/service"
	"feedblog/internal/storage"
	"feedblog/internal/ws"
)

// App wires the process-wide dependencies: database, blob storage, the
// notification hub and the services on top of them.
func App(cfg *config.Config) (*database.DB, *service.Service, *ws.Hub) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, ws.NewHubNotifier(hub))

	return db, services, hub
}
