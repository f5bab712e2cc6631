package convolve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKernel2D(t *testing.T) {
	t.Run("weights sum to one", func(t *testing.T) {
		for _, size := range []int{1, 3, 5, 7, 9} {
			for _, sigma := range []float64{0.5, 1.0, 2.5} {
				k, err := NewKernel2D(size, sigma)
				assert.NoError(t, err)

				sum := 0.0
				for i := 0; i < size; i++ {
					for j := 0; j < size; j++ {
						sum += k.At(i, j)
					}
				}
				assert.InDelta(t, 1.0, sum, 1e-9, "size=%d sigma=%g", size, sigma)
			}
		}
	})

	t.Run("symmetric about center", func(t *testing.T) {
		k, err := NewKernel2D(5, 1.3)
		assert.NoError(t, err)

		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				assert.Equal(t, k.At(i, j), k.At(4-i, 4-j))
				assert.Equal(t, k.At(i, j), k.At(j, i))
			}
		}
	})

	t.Run("center weight is the largest", func(t *testing.T) {
		k, err := NewKernel2D(5, 1.0)
		assert.NoError(t, err)

		center := k.At(2, 2)
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				if i == 2 && j == 2 {
					continue
				}
				assert.Less(t, k.At(i, j), center)
			}
		}
	})

	t.Run("construction is deterministic", func(t *testing.T) {
		a, err := NewKernel2D(5, 1.0)
		assert.NoError(t, err)
		b, err := NewKernel2D(5, 1.0)
		assert.NoError(t, err)

		assert.Equal(t, a.weights, b.weights)
	})

	t.Run("rejects even size", func(t *testing.T) {
		k, err := NewKernel2D(4, 1.0)
		assert.Nil(t, k)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		for _, size := range []int{0, -3} {
			k, err := NewKernel2D(size, 1.0)
			assert.Nil(t, k)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		}
	})

	t.Run("rejects non-positive sigma", func(t *testing.T) {
		for _, sigma := range []float64{0, -1.0} {
			k, err := NewKernel2D(3, sigma)
			assert.Nil(t, k)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		}
	})

	t.Run("single tap kernel is identity", func(t *testing.T) {
		k, err := NewKernel2D(1, 1.0)
		assert.NoError(t, err)
		assert.Equal(t, 1.0, k.At(0, 0))
	})
}

func TestNewKernel1D(t *testing.T) {
	t.Run("weights sum to one", func(t *testing.T) {
		for _, size := range []int{1, 3, 5, 9} {
			for _, sigma := range []float64{0.5, 1.0, 3.0} {
				k, err := NewKernel1D(size, sigma)
				assert.NoError(t, err)

				sum := 0.0
				for i := 0; i < size; i++ {
					sum += k.At(i)
				}
				assert.InDelta(t, 1.0, sum, 1e-9, "size=%d sigma=%g", size, sigma)
			}
		}
	})

	t.Run("symmetric about center", func(t *testing.T) {
		k, err := NewKernel1D(7, 1.5)
		assert.NoError(t, err)

		for i := 0; i < 7; i++ {
			assert.Equal(t, k.At(i), k.At(6-i))
		}
	})

	t.Run("outer product of 1D profile matches 2D table", func(t *testing.T) {
		// The defining factorability property: k2(i,j) == k1(i)*k1(j) once
		// both are normalized.
		k1, err := NewKernel1D(5, 1.0)
		assert.NoError(t, err)
		k2, err := NewKernel2D(5, 1.0)
		assert.NoError(t, err)

		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				assert.InDelta(t, k2.At(i, j), k1.At(i)*k1.At(j), 1e-12)
			}
		}
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		for _, tc := range []struct {
			size  int
			sigma float64
		}{
			{2, 1.0},
			{0, 1.0},
			{-1, 1.0},
			{3, 0},
			{3, -0.5},
		} {
			k, err := NewKernel1D(tc.size, tc.sigma)
			assert.Nil(t, k, "size=%d sigma=%g", tc.size, tc.sigma)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		}
	})

	t.Run("known 3x3 weights", func(t *testing.T) {
		k, err := NewKernel1D(3, 1.0)
		assert.NoError(t, err)

		// raw weights exp(-1/2), 1, exp(-1/2) normalized by their sum
		e := math.Exp(-0.5)
		sum := 2*e + 1
		assert.InDelta(t, e/sum, k.At(0), 1e-12)
		assert.InDelta(t, 1/sum, k.At(1), 1e-12)
		assert.InDelta(t, e/sum, k.At(2), 1e-12)
	})
}
