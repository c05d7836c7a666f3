package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type DiskStorage struct {
	baseDir string
}

func NewDiskStorage(baseDir string) (*DiskStorage, error) {
	for _, sub := range []string{"images", "videos", "audio"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать каталог загрузок: %w", err)
		}
	}
	return &DiskStorage{baseDir: baseDir}, nil
}

// the file is already on disk after Spool, only the size is left to read
func (s *DiskStorage) Store(ctx context.Context, localPath, mimeType string) (string, int64, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return "", 0, fmt.Errorf("файл загрузки не найден: %w", err)
	}
	return localPath, info.Size(), nil
}

func (s *DiskStorage) Delete(ctx context.Context, path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка при удалении файла %s: %w", path, err)
	}
	return nil
}
