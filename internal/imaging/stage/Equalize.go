package stage

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/visionpipe/preprocess/internal/imaging"
)

type EqualizeStage struct{}

// Process performs global histogram equalization to stretch low-contrast
// images across the full intensity range. The remapping table is derived from
// the cumulative luminance histogram and applied to every color channel, so
// hue is preserved while contrast improves.
func (s *EqualizeStage) Process(p *imaging.Image) error {
	lum := imaging.Luminance(p.Img)

	grey := image.NewNRGBA(image.Rect(0, 0, lum.Cols, lum.Rows))
	for y := 0; y < lum.Rows; y++ {
		for x := 0; x < lum.Cols; x++ {
			v := lum.At(y, x)
			grey.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}

	hist := histogram.NewRGBAHistogram(grey)
	cum := hist.R.Cumulative()

	total := cum.Bins[len(cum.Bins)-1]
	cdfMin := 0
	for _, bin := range cum.Bins {
		if bin > 0 {
			cdfMin = bin
			break
		}
	}

	var lut [256]uint8
	if total == cdfMin {
		// single-intensity image, nothing to stretch
		for i := range lut {
			lut[i] = uint8(i)
		}
	} else {
		for i := range lut {
			scaled := float64(cum.Bins[i]-cdfMin) / float64(total-cdfMin) * 255
			if scaled < 0 {
				scaled = 0
			}
			lut[i] = uint8(scaled + 0.5)
		}
	}

	bounds := p.Img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.NRGBAModel.Convert(p.Img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			out.SetNRGBA(x, y, color.NRGBA{lut[c.R], lut[c.G], lut[c.B], c.A})
		}
	}

	p.Img = out
	p.Bounds = out.Bounds()
	return nil
}
