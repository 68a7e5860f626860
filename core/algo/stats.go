package algo

import (
	"math"
	"sort"
	"time"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Std returns the population standard deviation, or 0 for fewer than two values.
func Std(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}

// MinMax returns the minimum and maximum of the slice.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// CV returns the coefficient of variation (std/mean). A zero mean would
// divide by zero, so it yields 0 by convention.
func CV(values []float64) float64 {
	mean := Mean(values)
	if mean == 0 {
		return 0
	}
	return math.Abs(Std(values) / mean)
}

// SlopeIndex returns the least-squares slope of values against their sample
// index. Needs at least two values; returns 0 otherwise.
func SlopeIndex(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	// x = 0..n-1, so sum(x) and sum(x^2) have closed forms.
	fn := float64(n)
	sumX := fn * (fn - 1) / 2
	sumXX := fn * (fn - 1) * (2*fn - 1) / 6
	var sumY, sumXY float64
	for i, v := range values {
		sumY += v
		sumXY += float64(i) * v
	}
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// SlopeTime returns the least-squares slope of values against their
// timestamps, expressed per day. When timestamps are missing or degenerate
// it falls back to the index slope (one sample per day).
func SlopeTime(values []float64, timestamps []time.Time) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	if len(timestamps) != n {
		return SlopeIndex(values)
	}
	base := timestamps[0]
	xs := make([]float64, n)
	for i, ts := range timestamps {
		xs[i] = ts.Sub(base).Hours() / 24
	}
	var sumX, sumY, sumXY, sumXX float64
	for i := range n {
		sumX += xs[i]
		sumY += values[i]
		sumXY += xs[i] * values[i]
		sumXX += xs[i] * xs[i]
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return SlopeIndex(values)
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// Quantile returns the q-th quantile (0..1) using linear interpolation
// between closest ranks, matching the common "linear" method.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Median returns the middle value via Quantile.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// ZScores returns the z-score of every value against the slice's own mean
// and population standard deviation. A zero deviation yields all zeros.
func ZScores(values []float64) []float64 {
	out := make([]float64, len(values))
	std := Std(values)
	if std == 0 {
		return out
	}
	mean := Mean(values)
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}
