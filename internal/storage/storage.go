package storage

import (
	"context"
	"fmt"

	"github.com/slashrage/jalapeno-business/internal/config"
)

type StoredFile struct {
	Filename string
	Path     string
	MimeType string
	Size     int64
}

// blob storage boundary. Uploads always land on local disk first (see
// Spool), Store publishes them to the final storage
type Storage interface {
	// publishes a local file, returns the final path and size
	Store(ctx context.Context, localPath, mimeType string) (string, int64, error)
	// a missing file is not an error
	Delete(ctx context.Context, path string) error
}

func NewStorage(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "", "disk":
		return NewDiskStorage(cfg.UploadsDir)
	case "minio":
		return NewMinIOStorage(cfg)
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища: %s", cfg.StorageDriver)
	}
}
