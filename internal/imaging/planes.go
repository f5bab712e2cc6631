package imaging

import (
	"image"
	"image/color"

	"github.com/visionpipe/preprocess/internal/convolve"
)

// Planes splits an image into four single-channel pixel grids, one per NRGBA
// channel. The convolution engine works on one plane at a time; callers split
// and recombine.
func Planes(img image.Image) (r, g, b, a *convolve.Grid) {
	bounds := img.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()
	r = convolve.NewGrid(rows, cols)
	g = convolve.NewGrid(rows, cols)
	b = convolve.NewGrid(rows, cols)
	a = convolve.NewGrid(rows, cols)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			r.Set(y, x, c.R)
			g.Set(y, x, c.G)
			b.Set(y, x, c.B)
			a.Set(y, x, c.A)
		}
	}
	return r, g, b, a
}

// FromPlanes recombines four channel grids of equal dimensions into an NRGBA
// image anchored at the origin.
func FromPlanes(r, g, b, a *convolve.Grid) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, r.Cols, r.Rows))
	for y := 0; y < r.Rows; y++ {
		for x := 0; x < r.Cols; x++ {
			out.SetNRGBA(x, y, color.NRGBA{
				R: r.At(y, x),
				G: g.At(y, x),
				B: b.At(y, x),
				A: a.At(y, x),
			})
		}
	}
	return out
}

// Luminance reduces an image to a single grey plane using the standard luma
// coefficients. Reference: https://en.wikipedia.org/wiki/Grayscale#Luma_coding_in_video_systems
func Luminance(img image.Image) *convolve.Grid {
	bounds := img.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()
	grid := convolve.NewGrid(rows, cols)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			grid.Set(y, x, uint8(lum))
		}
	}
	return grid
}
