package algo

import "math"

// ZScoreCutoff is the |z| beyond which a value counts as an outlier.
const ZScoreCutoff = 3.0

// iqrMultiplier is Tukey's fence factor for the IQR filter.
const iqrMultiplier = 1.5

// dropNonFinite removes NaN and infinite readings. Malformed input is
// discarded here, before any statistic sees it.
func dropNonFinite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// FilterIQR removes values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR], preserving
// the original order of the survivors. It returns the kept values and the
// indices (into the input) that were kept. With fewer than four finite
// values the fences are unreliable, so everything finite is kept.
func FilterIQR(values []float64) ([]float64, []int) {
	finite := dropNonFinite(values)
	if len(finite) < 4 {
		return keepFinite(values)
	}
	q1 := Quantile(finite, 0.25)
	q3 := Quantile(finite, 0.75)
	iqr := q3 - q1
	lo := q1 - iqrMultiplier*iqr
	hi := q3 + iqrMultiplier*iqr

	kept := make([]float64, 0, len(values))
	idx := make([]int, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo || v > hi {
			continue
		}
		kept = append(kept, v)
		idx = append(idx, i)
	}
	return kept, idx
}

// FilterZScore removes values with |z| > ZScoreCutoff against the slice's
// own mean and population standard deviation, preserving order. With a zero
// deviation nothing is an outlier.
func FilterZScore(values []float64) ([]float64, []int) {
	finite := dropNonFinite(values)
	std := Std(finite)
	if std == 0 {
		return keepFinite(values)
	}
	mean := Mean(finite)

	kept := make([]float64, 0, len(values))
	idx := make([]int, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if math.Abs((v-mean)/std) > ZScoreCutoff {
			continue
		}
		kept = append(kept, v)
		idx = append(idx, i)
	}
	return kept, idx
}

// keepFinite keeps every finite value with its index.
func keepFinite(values []float64) ([]float64, []int) {
	kept := make([]float64, 0, len(values))
	idx := make([]int, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		kept = append(kept, v)
		idx = append(idx, i)
	}
	return kept, idx
}
