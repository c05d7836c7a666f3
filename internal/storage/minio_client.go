package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/slashrage/jalapeno-business/internal/config"
	"github.com/slashrage/jalapeno-business/internal/logger"
)

type MinIOStorage struct {
	client *minio.Client
	bucket string
}

func NewMinIOStorage(cfg *config.Config) (*MinIOStorage, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке бакета: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("не удалось создать бакет: %w", err)
		}
	}

	return &MinIOStorage{client: client, bucket: cfg.MinIO.BucketName}, nil
}

// Store uploads the local file under its relative path as the object key
// and removes the local copy
func (s *MinIOStorage) Store(ctx context.Context, localPath, mimeType string) (string, int64, error) {
	objectName := filepath.ToSlash(localPath)

	info, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath,
		minio.PutObjectOptions{
			ContentType: mimeType,
			UserMetadata: map[string]string{
				"uploaded-at": time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", 0, fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		logger.Warn("не удалось удалить локальную копию после загрузки в MinIO",
			"path", localPath, "error", err)
	}

	return objectName, info.Size, nil
}

func (s *MinIOStorage) Delete(ctx context.Context, path string) error {
	err := s.client.RemoveObject(ctx, s.bucket, filepath.ToSlash(path),
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}
