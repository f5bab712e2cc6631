package stage

import (
	"github.com/visionpipe/preprocess/internal/convolve"
	"github.com/visionpipe/preprocess/internal/imaging"
)

type GaussianBlurStage struct {
	Size  int
	Sigma float64

	// Direct selects the full 2D convolution instead of the separable
	// two-pass path. Both produce the same result; separable is the fast
	// default.
	Direct bool

	// Border defaults to convolve.BorderZero, which leaves a zero band of
	// width Size/2 around the output.
	Border convolve.Border
}

// Process convolves each color plane independently with a Gaussian kernel
// built from Size and Sigma, then recombines the planes. The engine itself is
// single-plane; the split and recombine happen here.
func (s *GaussianBlurStage) Process(p *imaging.Image) error {
	r, g, b, a := imaging.Planes(p.Img)

	planes := []*convolve.Grid{r, g, b, a}
	out := make([]*convolve.Grid, len(planes))

	if s.Direct {
		kernel, err := convolve.NewKernel2D(s.Size, s.Sigma)
		if err != nil {
			return err
		}
		for i, plane := range planes {
			filtered, err := convolve.Convolve2DBorder(plane, kernel, s.Border)
			if err != nil {
				return err
			}
			out[i] = filtered
		}
	} else {
		kernel, err := convolve.NewKernel1D(s.Size, s.Sigma)
		if err != nil {
			return err
		}
		for i, plane := range planes {
			filtered, err := convolve.ConvolveSeparableBorder(plane, kernel, s.Border)
			if err != nil {
				return err
			}
			out[i] = filtered
		}
	}

	p.Img = imaging.FromPlanes(out[0], out[1], out[2], out[3])
	return nil
}
