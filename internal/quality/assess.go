package quality

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/visionpipe/preprocess/internal/convolve"
	"github.com/visionpipe/preprocess/internal/imaging"
	model "github.com/visionpipe/preprocess/models/quality"
)

// Heuristic thresholds for flagging quality issues. An image can trip several
// of them; the last issue found wins the filter recommendation.
const (
	blurVarianceThreshold = 100.0
	noiseLevelThreshold   = 15.0
	darkThreshold         = 50.0
	brightThreshold       = 200.0
	lowContrastThreshold  = 30.0
)

// DefaultFilter is recommended when no quality issue is detected.
const DefaultFilter = "gaussian"

// laplacian is the 3x3 second-derivative kernel used for blur estimation.
// A sharp image has strong Laplacian responses, so low variance means blur.
var laplacian = convolution.Kernel{
	Matrix: []float64{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	},
	Width:  3,
	Height: 3,
}

// Assess computes the quality heuristics for an image: variance of the
// Laplacian response (blur), mean luminance (brightness), luminance standard
// deviation (contrast), and the residual against a Gaussian-smoothed copy
// (noise). The recommended filter is derived from the thresholds above.
func Assess(img image.Image) (*model.Report, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("cannot assess quality: %w", convolve.ErrEmptyInput)
	}

	lum := imaging.Luminance(img)

	brightness, contrast := meanStddev(lum)
	blurVariance := laplacianVariance(img)
	noiseLevel, err := residualNoise(lum)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		BlurVariance: blurVariance,
		Brightness:   brightness,
		Contrast:     contrast,
		NoiseLevel:   noiseLevel,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
	}

	report.RecommendedFilter = DefaultFilter
	if blurVariance < blurVarianceThreshold {
		report.Issues = append(report.Issues, "blurry")
		report.RecommendedFilter = "sharpen"
	}
	if noiseLevel > noiseLevelThreshold {
		report.Issues = append(report.Issues, "noisy")
		report.RecommendedFilter = "denoise"
	}
	if brightness < darkThreshold {
		report.Issues = append(report.Issues, "too_dark")
		report.RecommendedFilter = "equalize"
	} else if brightness > brightThreshold {
		report.Issues = append(report.Issues, "too_bright")
		report.RecommendedFilter = "equalize"
	}
	if contrast < lowContrastThreshold {
		report.Issues = append(report.Issues, "low_contrast")
		report.RecommendedFilter = "equalize"
	}

	return report, nil
}

func meanStddev(g *convolve.Grid) (mean, stddev float64) {
	n := float64(len(g.Pix))
	sum := 0.0
	for _, v := range g.Pix {
		sum += float64(v)
	}
	mean = sum / n

	variance := 0.0
	for _, v := range g.Pix {
		d := float64(v) - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / n)
}

// laplacianVariance convolves with the Laplacian kernel, biased to mid-grey so
// negative responses survive the 8-bit clamp, and returns the variance of the
// response.
func laplacianVariance(img image.Image) float64 {
	response := convolution.Convolve(img, &laplacian, &convolution.Options{
		Bias:      128,
		Wrap:      false,
		KeepAlpha: false,
	})

	bounds := response.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	sum := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum += float64(response.RGBAAt(x, y).R)
		}
	}
	mean := sum / n

	variance := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := float64(response.RGBAAt(x, y).R) - mean
			variance += d * d
		}
	}
	return variance / n
}

// residualNoise smooths the luminance plane with a 5-tap Gaussian and returns
// the standard deviation of the residual over the interior (the smoothed
// output carries a zero border band, which would otherwise dominate the
// residual).
func residualNoise(lum *convolve.Grid) (float64, error) {
	kernel, err := convolve.NewKernel1D(5, 1.0)
	if err != nil {
		return 0, err
	}

	smoothed, err := convolve.ConvolveSeparable(lum, kernel)
	if err != nil {
		return 0, err
	}

	padding := 2
	if lum.Rows <= 2*padding || lum.Cols <= 2*padding {
		return 0, nil
	}

	n := 0.0
	sum := 0.0
	for i := padding; i < lum.Rows-padding; i++ {
		for j := padding; j < lum.Cols-padding; j++ {
			sum += float64(lum.At(i, j)) - float64(smoothed.At(i, j))
			n++
		}
	}
	mean := sum / n

	variance := 0.0
	for i := padding; i < lum.Rows-padding; i++ {
		for j := padding; j < lum.Cols-padding; j++ {
			d := float64(lum.At(i, j)) - float64(smoothed.At(i, j)) - mean
			variance += d * d
		}
	}
	return math.Sqrt(variance / n), nil
}
