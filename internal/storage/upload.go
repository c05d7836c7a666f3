package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowed file types per slot
var (
	imageTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	videoTypes = map[string]bool{
		"video/mp4":       true,
		"video/mpeg":      true,
		"video/quicktime": true,
		"video/webm":      true,
	}
	audioTypes = map[string]bool{
		"audio/mpeg": true,
		"audio/mp3":  true,
		"audio/wav":  true,
		"audio/ogg":  true,
		"audio/mp4":  true,
	}
)

// AllowedType checks the upload MIME type for the slot
func AllowedType(slot, mimeType string) bool {
	switch slot {
	case "thumbnail":
		return imageTypes[mimeType]
	case "video":
		return videoTypes[mimeType]
	case "audio":
		return audioTypes[mimeType]
	}
	return false
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func subdirForMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "images"
	case strings.HasPrefix(mimeType, "video/"):
		return "videos"
	case strings.HasPrefix(mimeType, "audio/"):
		return "audio"
	}
	return "other"
}

// Spool takes the multipart file and puts it on local disk under a
// unique name <slot>-<uuid><ext>
func Spool(baseDir, slot string, file multipart.File, header *multipart.FileHeader) (StoredFile, error) {
	mimeType := header.Header.Get("Content-Type")

	name := fmt.Sprintf("%s-%s%s",
		slot,
		uuid.New().String(),
		strings.ToLower(filepath.Ext(header.Filename)),
	)

	dir := filepath.Join(baseDir, subdirForMime(mimeType))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("не удалось создать каталог загрузок: %w", err)
	}

	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return StoredFile{}, fmt.Errorf("не удалось сохранить файл загрузки: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(path)
		return StoredFile{}, fmt.Errorf("ошибка при записи файла загрузки: %w", err)
	}

	return StoredFile{
		Filename: name,
		Path:     path,
		MimeType: mimeType,
		Size:     size,
	}, nil
}
