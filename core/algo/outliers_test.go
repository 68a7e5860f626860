package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFilterIQR tests the Tukey fence filter.
func TestFilterIQR(t *testing.T) {
	t.Run("removes extreme value", func(t *testing.T) {
		values := []float64{120, 122, 118, 121, 119, 123, 300}
		kept, idx := FilterIQR(values)
		assert.NotContains(t, kept, 300.0)
		assert.Len(t, kept, 6)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, idx)
	})

	t.Run("keeps everything when values are tight", func(t *testing.T) {
		values := []float64{5.0, 5.1, 5.2, 5.0, 5.1}
		kept, idx := FilterIQR(values)
		assert.Equal(t, values, kept)
		assert.Len(t, idx, 5)
	})

	t.Run("small samples bypass the fences", func(t *testing.T) {
		// Fewer than four values: fences are unreliable, keep all finite.
		values := []float64{1, 2, 1000}
		kept, _ := FilterIQR(values)
		assert.Equal(t, values, kept)
	})

	t.Run("drops non-finite readings", func(t *testing.T) {
		values := []float64{120, math.NaN(), 121, math.Inf(1), 119, 122}
		kept, idx := FilterIQR(values)
		assert.Equal(t, []float64{120, 121, 119, 122}, kept)
		assert.Equal(t, []int{0, 2, 4, 5}, idx)
	})

	t.Run("preserves chronological order", func(t *testing.T) {
		values := []float64{130, 110, 125, 115, 128, 112}
		kept, _ := FilterIQR(values)
		assert.Equal(t, values, kept)
	})
}

// TestFilterZScore tests the z-score filter.
func TestFilterZScore(t *testing.T) {
	t.Run("removes value beyond cutoff", func(t *testing.T) {
		// 500 sits far beyond three standard deviations of the rest.
		values := []float64{100, 101, 99, 100, 102, 98, 100, 101, 99, 100, 500}
		kept, _ := FilterZScore(values)
		assert.NotContains(t, kept, 500.0)
		assert.Len(t, kept, 10)
	})

	t.Run("flat series keeps everything", func(t *testing.T) {
		values := []float64{7, 7, 7, 7}
		kept, idx := FilterZScore(values)
		assert.Equal(t, values, kept)
		assert.Len(t, idx, 4)
	})
}
