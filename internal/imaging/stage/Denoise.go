package stage

import (
	"github.com/anthonynsimon/bild/effect"
	"github.com/visionpipe/preprocess/internal/imaging"
)

type DenoiseStage struct {
	Size float64
}

// Process reduces sensor noise with a median filter over a Size x Size
// neighborhood, which removes salt-and-pepper noise while keeping edges
// sharper than an equivalent blur would
func (s *DenoiseStage) Process(p *imaging.Image) error {
	size := s.Size
	if size <= 0 {
		size = 3
	}
	p.Img = effect.Median(p.Img, size)
	return nil
}
