package stage

import (
	"github.com/anthonynsimon/bild/effect"
	"github.com/visionpipe/preprocess/internal/imaging"
)

type SharpenStage struct{}

// Process applies a 3x3 sharpening convolution to counteract capture blur
func (s *SharpenStage) Process(p *imaging.Image) error {
	p.Img = effect.Sharpen(p.Img)
	return nil
}
