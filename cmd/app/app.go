package app

import (
	"github.com/slashrage/jalapeno-business/internal/config"
	"github.com/slashrage/jalapeno-business/internal/database"
	"github.com/slashrage/jalapeno-business/internal/logger"
	"github.com/slashrage/jalapeno-business/internal/repository"
	"github.com/slashrage/jalapeno-business/internal/service"
	"github.com/slashrage/jalapeno-business/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("Не удалось подключиться к БД", "error", err)
	}

	// blob storage (disk or MinIO)
	store, err := storage.NewStorage(cfg)
	if err != nil {
		logger.Fatal("Не удалось инициализировать хранилище файлов", "error", err)
	}

	repo := repository.NewRepository(db)

	services := service.NewService(repo, cfg, store)

	return db, repo, services
}
