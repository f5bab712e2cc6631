package convolve

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter indicates an even or non-positive kernel size, or a
	// non-positive sigma. Raised at kernel construction, before any image is touched.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyInput indicates a pixel grid with zero rows or columns.
	ErrEmptyInput = errors.New("empty input")
)

// Kernel2D is an immutable square table of normalized Gaussian weights.
// The weights always sum to 1.0 within floating-point tolerance.
type Kernel2D struct {
	size    int
	weights []float64 // row-major, size*size entries
}

// Kernel1D is an immutable normalized 1D Gaussian weight profile, one axis of
// the factored Gaussian. It is built from its own 1D sum, never sliced out of
// a Kernel2D.
type Kernel1D struct {
	size    int
	weights []float64
}

func checkKernelParams(size int, sigma float64) error {
	if size < 1 {
		return fmt.Errorf("kernel size must be positive, got %d: %w", size, ErrInvalidParameter)
	}
	if size%2 == 0 {
		return fmt.Errorf("kernel size must be odd, got %d: %w", size, ErrInvalidParameter)
	}
	if sigma <= 0 {
		return fmt.Errorf("sigma must be positive, got %g: %w", sigma, ErrInvalidParameter)
	}
	return nil
}

// NewKernel2D builds a normalized 2D Gaussian kernel of the given odd size and
// standard deviation. Each cell is the Gaussian density at its offset from the
// center, divided by the sum over all cells so the table sums to exactly 1
// (which also corrects the discretization error of the analytic constant).
func NewKernel2D(size int, sigma float64) (*Kernel2D, error) {
	if err := checkKernelParams(size, sigma); err != nil {
		return nil, err
	}

	weights := make([]float64, size*size)
	center := size / 2
	twoSigmaSq := 2 * sigma * sigma
	norm := 1 / (math.Pi * twoSigmaSq)
	sum := 0.0

	for i := 0; i < size; i++ {
		x := float64(i - center)
		for j := 0; j < size; j++ {
			y := float64(j - center)
			v := norm * math.Exp(-(x*x+y*y)/twoSigmaSq)
			weights[i*size+j] = v
			sum += v
		}
	}

	for i := range weights {
		weights[i] /= sum
	}

	return &Kernel2D{size: size, weights: weights}, nil
}

// NewKernel1D builds a normalized 1D Gaussian kernel of the given odd size and
// standard deviation. The analytic normalization constant is omitted since it
// cancels when dividing by the sum.
func NewKernel1D(size int, sigma float64) (*Kernel1D, error) {
	if err := checkKernelParams(size, sigma); err != nil {
		return nil, err
	}

	weights := make([]float64, size)
	center := size / 2
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0

	for i := 0; i < size; i++ {
		x := float64(i - center)
		v := math.Exp(-(x * x) / twoSigmaSq)
		weights[i] = v
		sum += v
	}

	for i := range weights {
		weights[i] /= sum
	}

	return &Kernel1D{size: size, weights: weights}, nil
}

// Size returns the side length of the kernel.
func (k *Kernel2D) Size() int {
	return k.size
}

// At returns the weight at row i, column j.
func (k *Kernel2D) At(i, j int) float64 {
	return k.weights[i*k.size+j]
}

// Size returns the number of taps in the kernel.
func (k *Kernel1D) Size() int {
	return k.size
}

// At returns the weight at position i.
func (k *Kernel1D) At(i int) float64 {
	return k.weights[i]
}
