// Package core implements the health risk assessment pipeline: feature
// engineering, disease and lifestyle assessors, trend analysis and risk
// fusion. Every public operation is a pure function of its inputs; nothing
// here performs I/O or holds state across calls.
package core

import (
	"time"

	"github.com/songwei/vitalrisk/core/algo"
	"github.com/songwei/vitalrisk/schema"
)

// BuildFeatures cleans the raw per-metric series and derives the statistical
// features the assessors consume. Outlier removal runs before any statistic;
// a metric with fewer than schema.MinCleanSamples clean samples keeps nil
// derived fields rather than guessed defaults.
func BuildFeatures(userID string, seriesByMetric map[string]schema.MetricSeries, periodStart, periodEnd time.Time, method schema.OutlierMethod) *schema.FeatureSet {
	fs := &schema.FeatureSet{
		UserID:      userID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Metrics:     make(map[string]*schema.MetricFeatures, len(seriesByMetric)),
	}
	for name, series := range seriesByMetric {
		fs.Metrics[name] = buildMetricFeatures(name, series, method)
	}
	return fs
}

// buildMetricFeatures derives the statistics for a single metric series.
func buildMetricFeatures(name string, series schema.MetricSeries, method schema.OutlierMethod) *schema.MetricFeatures {
	raw := series.Values()
	clean, kept := cleanValues(raw, method)

	mf := &schema.MetricFeatures{
		Metric:      name,
		Unit:        series.Unit,
		RawCount:    len(raw),
		SampleCount: len(clean),
		Clean:       clean,
		CleanDays:   dayLabels(series.Timestamps(), kept),
	}
	if len(clean) < schema.MinCleanSamples {
		return mf
	}

	mean := algo.Mean(clean)
	std := algo.Std(clean)
	lo, hi := algo.MinMax(clean)
	slope := algo.SlopeIndex(clean)

	mf.Mean = &mean
	mf.Std = &std
	mf.Min = &lo
	mf.Max = &hi
	mf.TrendSlope = &slope

	// cv guarded at the computation site: a zero mean yields no cv rather
	// than a division by zero.
	if mean != 0 {
		cv := algo.CV(clean)
		mf.CV = &cv
	}

	if band, ok := schema.NormalRange(name); ok && band.Bounded() {
		inBand := 0
		for _, v := range clean {
			if band.Contains(v) {
				inBand++
			}
		}
		rate := float64(inBand) / float64(len(clean))
		mf.ComplianceRate = &rate
	}
	return mf
}

// CalculateBaseline derives the personal historical reference distribution
// per metric from the cleaned historical window. Metrics with fewer than
// schema.MinCleanSamples clean samples are omitted entirely.
func CalculateBaseline(userID string, historical map[string]schema.MetricSeries, windowDays int, method schema.OutlierMethod) *schema.Baseline {
	if windowDays <= 0 {
		windowDays = 90
	}
	b := &schema.Baseline{
		UserID:     userID,
		WindowDays: windowDays,
		Metrics:    make(map[string]schema.BaselineStats, len(historical)),
	}
	for name, series := range historical {
		clean, _ := cleanValues(series.Values(), method)
		if len(clean) < schema.MinCleanSamples {
			continue
		}
		b.Metrics[name] = schema.BaselineStats{
			Mean:        algo.Mean(clean),
			Std:         algo.Std(clean),
			Median:      algo.Median(clean),
			P25:         algo.Quantile(clean, 0.25),
			P75:         algo.Quantile(clean, 0.75),
			SampleCount: len(clean),
		}
	}
	return b
}

// cleanValues dispatches to the configured outlier filter.
func cleanValues(raw []float64, method schema.OutlierMethod) ([]float64, []int) {
	if method == schema.OutlierZScore {
		return algo.FilterZScore(raw)
	}
	return algo.FilterIQR(raw)
}

// dayLabels maps kept sample indices to YYYY-MM-DD labels. Series without
// timestamps yield empty labels.
func dayLabels(timestamps []time.Time, kept []int) []string {
	out := make([]string, 0, len(kept))
	for _, i := range kept {
		if i < len(timestamps) && !timestamps[i].IsZero() {
			out = append(out, timestamps[i].Format("2006-01-02"))
		} else {
			out = append(out, "")
		}
	}
	return out
}
