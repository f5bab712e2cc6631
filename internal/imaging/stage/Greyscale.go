package stage

import (
	"image"
	"image/color"

	"github.com/visionpipe/preprocess/internal/imaging"
)

type GreyscaleStage struct{}

// Process converts the image to greyscale using luminance calculation.
// Filters that operate on intensity (edge detection, equalization) expect a
// single-channel input, mirroring the grayscale conversion the capture
// pipeline applies before filtering.
func (s *GreyscaleStage) Process(p *imaging.Image) error {
	lum := imaging.Luminance(p.Img)
	gs := image.NewNRGBA(image.Rect(0, 0, lum.Cols, lum.Rows))
	for y := 0; y < lum.Rows; y++ {
		for x := 0; x < lum.Cols; x++ {
			v := lum.At(y, x)
			gs.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	p.Img = gs
	p.Bounds = gs.Bounds()
	return nil
}
