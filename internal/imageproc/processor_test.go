package imageproc

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashrage/jalapeno-business/internal/apperrors"
)

// writeTestPNG создает временный PNG заданного размера
func writeTestPNG(t *testing.T, dir string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}

	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	return path
}

func TestProcess(t *testing.T) {
	t.Run("Широкое изображение уменьшается до MaxWidth", func(t *testing.T) {
		dir := t.TempDir()
		input := writeTestPNG(t, dir, 2000, 400)

		result, err := Process(input, Options{MaxWidth: 1200, Quality: 80, Format: "jpeg"})
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(result.Path, "input-optimized.jpeg"))
		assert.Greater(t, result.Size, int64(0))

		out, err := imaging.Open(result.Path)
		require.NoError(t, err)
		assert.Equal(t, 1200, out.Bounds().Dx())
		// пропорции сохраняются
		assert.Equal(t, 240, out.Bounds().Dy())

		// исходник удален
		_, err = os.Stat(input)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Маленькое изображение не увеличивается", func(t *testing.T) {
		dir := t.TempDir()
		input := writeTestPNG(t, dir, 300, 200)

		result, err := Process(input, Options{MaxWidth: 1200})
		require.NoError(t, err)

		out, err := imaging.Open(result.Path)
		require.NoError(t, err)
		assert.Equal(t, 300, out.Bounds().Dx())
		assert.Equal(t, 200, out.Bounds().Dy())
	})

	t.Run("Нечитаемый файл дает ошибку обработки", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.png")
		require.NoError(t, os.WriteFile(path, []byte("это не изображение"), 0o644))

		_, err := Process(path, Options{})

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindImageProcessing))
	})

	t.Run("Отсутствующий файл", func(t *testing.T) {
		_, err := Process(filepath.Join(t.TempDir(), "missing.png"), Options{})

		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindImageProcessing))
	})
}
