package cmd

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/visionpipe/preprocess/internal"
)

func TestFilter(t *testing.T) {
	t.Run("processes a file end to end", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "in.png")
		output := filepath.Join(dir, "out.png")
		assert.NoError(t, os.WriteFile(input, testPNG(t, 16, 16), 0644))

		assert.NoError(t, Filter(input, output, "gaussian", internal.DefaultFilterOptions(), ""))

		f, err := os.Open(output)
		assert.NoError(t, err)
		defer f.Close()

		img, err := png.Decode(f)
		assert.NoError(t, err)
		assert.Equal(t, 16, img.Bounds().Dx())
	})

	t.Run("writes a stage progression animation", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "in.png")
		output := filepath.Join(dir, "out.png")
		animation := filepath.Join(dir, "stages.png")
		assert.NoError(t, os.WriteFile(input, testPNG(t, 16, 16), 0644))

		assert.NoError(t, Filter(input, output, "smooth", internal.DefaultFilterOptions(), animation))

		data, err := os.ReadFile(animation)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
	})

	t.Run("missing input file fails", func(t *testing.T) {
		dir := t.TempDir()
		err := Filter(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out.png"), "gaussian", internal.DefaultFilterOptions(), "")
		assert.ErrorContains(t, err, "failed to open")
	})

	t.Run("unknown filter fails before writing output", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "in.png")
		output := filepath.Join(dir, "out.png")
		assert.NoError(t, os.WriteFile(input, testPNG(t, 8, 8), 0644))

		err := Filter(input, output, "emboss", internal.DefaultFilterOptions(), "")
		assert.ErrorContains(t, err, "no processing pipeline defined")

		_, statErr := os.Stat(output)
		assert.True(t, os.IsNotExist(statErr))
	})
}
