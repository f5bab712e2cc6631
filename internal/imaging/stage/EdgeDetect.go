package stage

import (
	"github.com/anthonynsimon/bild/effect"
	"github.com/visionpipe/preprocess/internal/imaging"
)

type EdgeDetectStage struct {
	Radius float64
}

// Process highlights edges using a detection kernel of the configured radius
// Larger radius values respond to broader intensity transitions
func (s *EdgeDetectStage) Process(p *imaging.Image) error {
	radius := s.Radius
	if radius <= 0 {
		radius = 1.0
	}
	p.Img = effect.EdgeDetection(p.Img, radius)
	return nil
}
