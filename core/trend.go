package core

import (
	"fmt"
	"time"

	"github.com/songwei/vitalrisk/core/algo"
	"github.com/songwei/vitalrisk/schema"
)

// genericThresholds covers metrics without a tuned entry: no absolute
// bounds, volatility-only alerting.
var genericThresholds = schema.TrendThresholds{
	CVWarn:              0.25,
	ConsecutiveAbnormal: 3,
}

// AnalyzeTrend inspects one raw metric series for drift, volatility and
// sustained abnormal runs. It operates on the raw series, independent of the
// feature engineering stage. Fewer than three points yields a normal,
// "insufficient data" alert rather than an error.
func AnalyzeTrend(metricName string, values []float64, timestamps []time.Time, thresholds map[string]schema.TrendThresholds) schema.TrendAlert {
	if len(values) < schema.MinCleanSamples {
		return schema.TrendAlert{
			MetricName:     metricName,
			AlertLevel:     schema.AlertNormal,
			TrendDirection: schema.TrendStable,
			Message:        fmt.Sprintf("insufficient data for %s trend analysis (fewer than %d readings)", schema.DisplayName(metricName), schema.MinCleanSamples),
			Suggestion:     "keep measuring regularly so trends can be detected",
		}
	}

	th, ok := thresholds[metricName]
	if !ok {
		th = genericThresholds
	}

	current := values[len(values)-1]
	mean := algo.Mean(values)
	cv := algo.CV(values)
	slope := algo.SlopeTime(values, timestamps)
	consecutive := consecutiveAbnormal(metricName, values)

	direction := trendDirection(slope, cv, th)
	level, message := alertCascade(metricName, current, slope, cv, consecutive, direction, th)

	return schema.TrendAlert{
		MetricName:          metricName,
		AlertLevel:          level,
		TrendDirection:      direction,
		CurrentValue:        current,
		AvgValue:            mean,
		Slope:               slope,
		Volatility:          cv,
		ConsecutiveAbnormal: consecutive,
		Message:             message,
		Suggestion:          suggestionFor(metricName, level, direction),
	}
}

// AnalyzeAllMetrics runs trend analysis over every supplied series and
// returns the alerts sorted most-severe-first.
func AnalyzeAllMetrics(seriesByMetric map[string]schema.MetricSeries, thresholds map[string]schema.TrendThresholds) []schema.TrendAlert {
	alerts := make([]schema.TrendAlert, 0, len(seriesByMetric))
	for name, series := range seriesByMetric {
		alerts = append(alerts, AnalyzeTrend(name, series.Values(), series.Timestamps(), thresholds))
	}
	algo.SortAlerts(alerts)
	return alerts
}

// consecutiveAbnormal returns the run length of out-of-band values ending at
// the latest sample. Metrics without a normal band always report zero.
func consecutiveAbnormal(metricName string, values []float64) int {
	band, ok := schema.NormalRange(metricName)
	if !ok || !band.Bounded() {
		return 0
	}
	run := 0
	for i := len(values) - 1; i >= 0; i-- {
		if band.Contains(values[i]) {
			break
		}
		run++
	}
	return run
}

// trendDirection classifies the series movement. Volatility dominates; a
// slope past half the warning threshold reads as a real drift.
func trendDirection(slope, cv float64, th schema.TrendThresholds) schema.TrendDirection {
	if th.CVWarn > 0 && cv >= th.CVWarn {
		return schema.TrendVolatile
	}
	if th.SlopeWarn > 0 {
		half := th.SlopeWarn / 2
		if slope > half {
			return schema.TrendRising
		}
		if slope < -half {
			return schema.TrendFalling
		}
	}
	return schema.TrendStable
}

// alertCascade applies the ordered alert rules; the first match wins.
func alertCascade(metricName string, current, slope, cv float64, consecutive int, direction schema.TrendDirection, th schema.TrendThresholds) (schema.AlertLevel, string) {
	name := schema.DisplayName(metricName)
	unit := schema.Unit(metricName)

	switch {
	case th.CriticalBreached(current):
		return schema.AlertCritical,
			fmt.Sprintf("%s reading of %.1f %s breaches the critical bound", name, current, unit)
	case th.ConsecutiveAbnormal > 0 && consecutive >= th.ConsecutiveAbnormal:
		return schema.AlertWarning,
			fmt.Sprintf("%s has been out of range for %d consecutive readings", name, consecutive)
	case th.SlopeWarn > 0 && (slope >= th.SlopeWarn || slope <= -th.SlopeWarn):
		verb := "rising"
		if slope < 0 {
			verb = "falling"
		}
		return schema.AlertWarning,
			fmt.Sprintf("%s is %s at %.1f %s per day", name, verb, absFloat(slope), unit)
	case th.CVWarn > 0 && cv >= th.CVWarn:
		return schema.AlertAttention,
			fmt.Sprintf("%s readings are unusually volatile (cv %.2f)", name, cv)
	case th.WarnBreached(current):
		return schema.AlertAttention,
			fmt.Sprintf("%s reading of %.1f %s is in the warning band", name, current, unit)
	default:
		msg := fmt.Sprintf("%s is stable", name)
		if direction != schema.TrendStable {
			msg = fmt.Sprintf("%s shows a mild %s tendency", name, direction)
		}
		return schema.AlertNormal, msg
	}
}

// suggestionFor pairs each alert with a short actionable suggestion.
func suggestionFor(metricName string, level schema.AlertLevel, direction schema.TrendDirection) string {
	name := schema.DisplayName(metricName)
	switch level {
	case schema.AlertCritical:
		return fmt.Sprintf("seek medical attention promptly; the latest %s reading needs review", name)
	case schema.AlertWarning:
		if direction == schema.TrendRising || direction == schema.TrendFalling {
			return fmt.Sprintf("monitor %s daily and discuss the trend at the next checkup", name)
		}
		return fmt.Sprintf("measure %s more frequently over the coming days", name)
	case schema.AlertAttention:
		return fmt.Sprintf("keep an eye on %s; re-measure at a consistent time of day", name)
	default:
		return "maintain the current measurement routine"
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
