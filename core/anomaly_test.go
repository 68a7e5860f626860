package core

import (
	"math"
	"testing"

	"github.com/songwei/vitalrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDetector flags a fixed set of row indices.
type stubDetector struct {
	indices []int
}

func (d stubDetector) Detect(_ [][]float64) []int { return d.indices }

// TestZScoreDetector tests the column z-score detector.
func TestZScoreDetector(t *testing.T) {
	t.Run("flags the outlying row", func(t *testing.T) {
		matrix := make([][]float64, 15)
		for i := range matrix {
			matrix[i] = []float64{100 + float64(i%5), 60 + float64(i%3)}
		}
		matrix[9][0] = 160

		assert.Equal(t, []int{9}, ZScoreDetector{}.Detect(matrix))
	})

	t.Run("custom cutoff widens the net", func(t *testing.T) {
		matrix := [][]float64{
			{100}, {101}, {99}, {100}, {102}, {98}, {100}, {101}, {99}, {100}, {500},
		}
		assert.Equal(t, []int{10}, ZScoreDetector{Cutoff: 2.5}.Detect(matrix))
	})

	t.Run("zero-spread column flags nothing", func(t *testing.T) {
		matrix := [][]float64{{5}, {5}, {5}, {5}}
		assert.Empty(t, ZScoreDetector{}.Detect(matrix))
	})

	t.Run("NaN cells are skipped", func(t *testing.T) {
		matrix := make([][]float64, 15)
		for i := range matrix {
			matrix[i] = []float64{100 + float64(i%5)}
		}
		matrix[3][0] = math.NaN()
		assert.Empty(t, ZScoreDetector{}.Detect(matrix))
	})

	t.Run("empty matrix yields nil", func(t *testing.T) {
		assert.Nil(t, ZScoreDetector{}.Detect(nil))
	})
}

// TestBuildDayMatrix pivots cleaned samples into a day-by-metric matrix.
func TestBuildDayMatrix(t *testing.T) {
	base := testPeriodStart
	series := map[string]schema.MetricSeries{
		schema.MetricHeartRate: {
			Metric: schema.MetricHeartRate,
			Samples: []schema.MetricSample{
				{Timestamp: base, Value: 70},
				{Timestamp: base, Value: 74}, // same day, averaged
				{Timestamp: base.AddDate(0, 0, 1), Value: 71},
				{Timestamp: base.AddDate(0, 0, 2), Value: 73},
			},
		},
		schema.MetricSystolic: {
			Metric: schema.MetricSystolic,
			Samples: []schema.MetricSample{
				{Timestamp: base, Value: 120},
				{Timestamp: base, Value: 124},
				{Timestamp: base.AddDate(0, 0, 2), Value: 126},
			},
		},
	}
	fs := BuildFeatures("user-1", series, base, base.AddDate(0, 0, 30), schema.OutlierIQR)

	days, matrix := buildDayMatrix(fs)
	require.Equal(t, []string{"2026-02-01", "2026-02-02", "2026-02-03"}, days)
	require.Len(t, matrix, 3)

	// Columns are metric names in sorted order: heart_rate, systolic_bp.
	assert.InDelta(t, 72.0, matrix[0][0], 0.001)
	assert.InDelta(t, 122.0, matrix[0][1], 0.001)
	assert.InDelta(t, 71.0, matrix[1][0], 0.001)
	assert.True(t, math.IsNaN(matrix[1][1])) // no pressure reading that day
	assert.InDelta(t, 126.0, matrix[2][1], 0.001)
}

// TestDetectAbnormalDays maps flagged row indices back to day labels.
func TestDetectAbnormalDays(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricHeartRate: {70, 72, 71, 69},
	})

	days := detectAbnormalDays(fs, stubDetector{indices: []int{1, 3}})
	assert.Equal(t, []string{"2026-02-02", "2026-02-04"}, days)
}

// TestDetectAbnormalDaysEmpty returns nothing for an empty feature set.
func TestDetectAbnormalDaysEmpty(t *testing.T) {
	assert.Nil(t, detectAbnormalDays(featureSetOf(nil), nil))
}
