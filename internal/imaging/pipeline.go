package imaging

import (
	"image"
	_ "image/jpeg" // registered for decoding camera captures
	"image/png"
	"io"
)

type Image struct {
	Img    image.Image
	Bounds image.Rectangle
}

type Stage interface {
	Process(img *Image) error
}

func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return &Image{
		Img:    img,
		Bounds: img.Bounds(),
	}, nil
}

func (p *Image) Write(w io.Writer) error {
	return png.Encode(w, p.Img)
}

func (p *Image) Pipeline(stages ...Stage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
	}
	return nil
}

// PipelineFrames runs the stages like Pipeline but additionally returns a
// snapshot of the image before processing and after each stage, for building
// a stage-by-stage progression animation.
func (p *Image) PipelineFrames(stages ...Stage) ([]image.Image, error) {
	frames := make([]image.Image, 0, len(stages)+1)
	frames = append(frames, p.Img)
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return nil, err
		}
		frames = append(frames, p.Img)
	}
	return frames, nil
}
