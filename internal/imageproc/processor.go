package imageproc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/slashrage/jalapeno-business/internal/apperrors"
	"github.com/slashrage/jalapeno-business/internal/logger"
)

type Options struct {
	MaxWidth int
	Quality  int
	Format   string
}

type Result struct {
	Path string
	Size int64
}

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = 1200
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = 80
	}
	if o.Format == "" {
		o.Format = "jpeg"
	}
	return o
}

// Process resizes the image down to MaxWidth (never up), re-encodes it
// into Format and deletes the raw input. Output lands next to the input
// with an -optimized suffix
func Process(inputPath string, opts Options) (Result, error) {
	opts = opts.withDefaults()

	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return Result{}, apperrors.ImageProcessing("не удалось прочитать изображение", err)
	}

	if img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	ext := inputPath[len(inputPath)-len(filepath.Ext(inputPath)):]
	name := strings.TrimSuffix(filepath.Base(inputPath), ext)
	outputPath := filepath.Join(filepath.Dir(inputPath),
		fmt.Sprintf("%s-optimized.%s", name, opts.Format))

	err = imaging.Save(img, outputPath, imaging.JPEGQuality(opts.Quality))
	if err != nil {
		return Result{}, apperrors.ImageProcessing("не удалось сохранить изображение", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return Result{}, apperrors.ImageProcessing("не удалось прочитать обработанный файл", err)
	}

	// the raw input is no longer needed if the paths differ
	if inputPath != outputPath {
		if err := os.Remove(inputPath); err != nil {
			logger.Warn("не удалось удалить исходное изображение", "path", inputPath, "error", err)
		}
	}

	return Result{Path: outputPath, Size: info.Size()}, nil
}
