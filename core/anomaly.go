package core

import (
	"math"
	"sort"

	"github.com/songwei/vitalrisk/core/algo"
	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"
)

// ZScoreDetector is the deterministic anomaly detector: a row is anomalous
// when any of its features sits more than Cutoff standard deviations from
// that feature's column mean. It is always available, so the engine never
// hard-depends on an external ML library; an isolation-forest style detector
// can be plugged in through the same interface.
type ZScoreDetector struct {
	// Cutoff is the |z| beyond which a feature flags its row. Zero means
	// the default cutoff.
	Cutoff float64
}

var _ contract.AnomalyDetector = ZScoreDetector{} // Compile-time check

// Detect returns the indices of anomalous rows, ascending.
func (d ZScoreDetector) Detect(matrix [][]float64) []int {
	if len(matrix) == 0 {
		return nil
	}
	cutoff := d.Cutoff
	if cutoff <= 0 {
		cutoff = algo.ZScoreCutoff
	}

	cols := len(matrix[0])
	flagged := make(map[int]struct{})
	column := make([]float64, 0, len(matrix))

	for j := range cols {
		column = column[:0]
		for _, row := range matrix {
			if j < len(row) && !math.IsNaN(row[j]) {
				column = append(column, row[j])
			}
		}
		std := algo.Std(column)
		if std == 0 {
			continue
		}
		mean := algo.Mean(column)
		for i, row := range matrix {
			if j >= len(row) || math.IsNaN(row[j]) {
				continue
			}
			if math.Abs((row[j]-mean)/std) > cutoff {
				flagged[i] = struct{}{}
			}
		}
	}

	out := make([]int, 0, len(flagged))
	for i := range flagged {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// detectAbnormalDays builds the per-day feature matrix from the feature set
// and runs the detector over it, returning the flagged day labels.
func detectAbnormalDays(fs *schema.FeatureSet, detector contract.AnomalyDetector) []string {
	if detector == nil {
		detector = ZScoreDetector{}
	}
	days, matrix := buildDayMatrix(fs)
	if len(days) == 0 {
		return nil
	}
	idx := detector.Detect(matrix)
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(days) {
			out = append(out, days[i])
		}
	}
	return out
}

// buildDayMatrix pivots the cleaned per-metric samples into a day-by-metric
// matrix. Metrics with several samples on one day contribute their mean;
// missing cells are NaN so the detector can skip them.
func buildDayMatrix(fs *schema.FeatureSet) ([]string, [][]float64) {
	if fs == nil || len(fs.Metrics) == 0 {
		return nil, nil
	}

	metrics := make([]string, 0, len(fs.Metrics))
	for name, mf := range fs.Metrics {
		if mf.Usable() && len(mf.CleanDays) == len(mf.Clean) {
			metrics = append(metrics, name)
		}
	}
	sort.Strings(metrics)
	if len(metrics) == 0 {
		return nil, nil
	}

	type cell struct {
		sum float64
		n   int
	}
	byDay := make(map[string]map[string]*cell)
	for _, name := range metrics {
		mf := fs.Metrics[name]
		for i, day := range mf.CleanDays {
			if day == "" {
				continue
			}
			if byDay[day] == nil {
				byDay[day] = make(map[string]*cell)
			}
			c := byDay[day][name]
			if c == nil {
				c = &cell{}
				byDay[day][name] = c
			}
			c.sum += mf.Clean[i]
			c.n++
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	matrix := make([][]float64, len(days))
	for i, day := range days {
		row := make([]float64, len(metrics))
		for j, name := range metrics {
			if c := byDay[day][name]; c != nil && c.n > 0 {
				row[j] = c.sum / float64(c.n)
			} else {
				row[j] = math.NaN()
			}
		}
		matrix[i] = row
	}
	return days, matrix
}
