package algo

import "math"

// TopsisCloseness ranks alternatives by the TOPSIS method: vector-normalize
// each criterion column, apply the criterion weights, then measure every
// alternative's Euclidean distance to the per-criterion ideal-best and
// ideal-worst vectors. The returned closeness for alternative i is
// distWorst/(distBest+distWorst), in [0,1], higher meaning nearer the ideal
// (i.e. more pressing when all criteria are benefit criteria for risk).
//
// matrix is row-major: matrix[i][j] is alternative i's value for criterion j.
// All criteria are treated as benefit criteria (more is worse/riskier).
func TopsisCloseness(matrix [][]float64, weights []float64) []float64 {
	n := len(matrix)
	if n == 0 {
		return nil
	}
	m := len(weights)

	// Vector normalization per column, guarded against all-zero columns.
	norms := make([]float64, m)
	for j := range m {
		var ss float64
		for i := range n {
			ss += matrix[i][j] * matrix[i][j]
		}
		norms[j] = math.Sqrt(ss)
	}

	weighted := make([][]float64, n)
	for i := range n {
		weighted[i] = make([]float64, m)
		for j := range m {
			v := 0.0
			if norms[j] > 0 {
				v = matrix[i][j] / norms[j]
			}
			weighted[i][j] = v * weights[j]
		}
	}

	// Per-criterion ideal best (max) and worst (min).
	best := make([]float64, m)
	worst := make([]float64, m)
	for j := range m {
		best[j] = weighted[0][j]
		worst[j] = weighted[0][j]
		for i := 1; i < n; i++ {
			if weighted[i][j] > best[j] {
				best[j] = weighted[i][j]
			}
			if weighted[i][j] < worst[j] {
				worst[j] = weighted[i][j]
			}
		}
	}

	closeness := make([]float64, n)
	for i := range n {
		var dBest, dWorst float64
		for j := range m {
			db := weighted[i][j] - best[j]
			dw := weighted[i][j] - worst[j]
			dBest += db * db
			dWorst += dw * dw
		}
		dBest = math.Sqrt(dBest)
		dWorst = math.Sqrt(dWorst)
		if dBest+dWorst == 0 {
			// All alternatives identical on every criterion.
			closeness[i] = 0.5
			continue
		}
		closeness[i] = dWorst / (dBest + dWorst)
	}
	return closeness
}
