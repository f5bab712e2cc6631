package internal

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), 128, 255})
		}
	}
	f, err := os.Create(path)
	assert.NoError(t, err)
	assert.NoError(t, png.Encode(f, img))
	assert.NoError(t, f.Close())
}

func TestNewProcessor(t *testing.T) {
	t.Run("rejects pool size below one", func(t *testing.T) {
		p, err := NewProcessor(t.TempDir(), t.TempDir(), "gaussian", DefaultFilterOptions(), 0)
		assert.Nil(t, p)
		assert.EqualError(t, err, "pool size must be at least 1")
	})

	t.Run("rejects an empty input directory", func(t *testing.T) {
		p, err := NewProcessor(t.TempDir(), t.TempDir(), "gaussian", DefaultFilterOptions(), 1)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrNoImages)
	})

	t.Run("rejects a missing input directory", func(t *testing.T) {
		p, err := NewProcessor(filepath.Join(t.TempDir(), "nope"), t.TempDir(), "gaussian", DefaultFilterOptions(), 1)
		assert.Nil(t, p)
		assert.ErrorContains(t, err, "failed to read input directory")
	})

	t.Run("only picks up image files", func(t *testing.T) {
		inputDir := t.TempDir()
		writeTestPNG(t, filepath.Join(inputDir, "a.png"), 8, 8)
		assert.NoError(t, os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("skip me"), 0644))

		p, err := NewProcessor(inputDir, t.TempDir(), "gaussian", DefaultFilterOptions(), 1)
		assert.NoError(t, err)
		assert.Equal(t, []string{"a.png"}, p.files)
	})
}

func TestProcessorEndToEnd(t *testing.T) {
	t.Run("processes every image through the pipeline", func(t *testing.T) {
		inputDir := t.TempDir()
		outputDir := t.TempDir()
		writeTestPNG(t, filepath.Join(inputDir, "one.png"), 16, 16)
		writeTestPNG(t, filepath.Join(inputDir, "two.png"), 16, 16)

		p, err := NewProcessor(inputDir, outputDir, "gaussian", DefaultFilterOptions(), 2)
		assert.NoError(t, err)

		p.StartWorkers()
		p.DispatchJobs()
		assert.Empty(t, p.Wait())

		for _, name := range []string{"one.png", "two.png"} {
			f, err := os.Open(filepath.Join(outputDir, name))
			assert.NoError(t, err)
			img, err := png.Decode(f)
			assert.NoError(t, err)
			assert.Equal(t, 16, img.Bounds().Dx())
			assert.NoError(t, f.Close())
		}
	})

	t.Run("skips files already present in the output directory", func(t *testing.T) {
		inputDir := t.TempDir()
		outputDir := t.TempDir()
		writeTestPNG(t, filepath.Join(inputDir, "done.png"), 8, 8)
		assert.NoError(t, os.WriteFile(filepath.Join(outputDir, "done.png"), []byte("existing"), 0644))

		p, err := NewProcessor(inputDir, outputDir, "gaussian", DefaultFilterOptions(), 1)
		assert.NoError(t, err)

		p.StartWorkers()
		p.DispatchJobs()
		assert.Empty(t, p.Wait())

		// untouched, so still the placeholder bytes
		data, err := os.ReadFile(filepath.Join(outputDir, "done.png"))
		assert.NoError(t, err)
		assert.Equal(t, []byte("existing"), data)
	})

	t.Run("reports undecodable files as errors", func(t *testing.T) {
		inputDir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(inputDir, "broken.png"), []byte("not a png"), 0644))

		p, err := NewProcessor(inputDir, t.TempDir(), "gaussian", DefaultFilterOptions(), 1)
		assert.NoError(t, err)

		p.StartWorkers()
		p.DispatchJobs()
		errs := p.Wait()
		assert.Len(t, errs, 1)
		assert.ErrorContains(t, errs[0], "failed to decode image")
	})
}

func TestLookupPipeline(t *testing.T) {
	t.Run("known filters resolve", func(t *testing.T) {
		for _, name := range []string{"gaussian", "sharpen", "denoise", "equalize", "edge", "smooth", "greyscale", "none"} {
			_, err := LookupPipeline(name, DefaultFilterOptions())
			assert.NoError(t, err, name)
		}
	})

	t.Run("unknown filter fails", func(t *testing.T) {
		pipeline, err := LookupPipeline("emboss", DefaultFilterOptions())
		assert.Nil(t, pipeline)
		assert.ErrorContains(t, err, `no processing pipeline defined for filter "emboss"`)
	})
}
