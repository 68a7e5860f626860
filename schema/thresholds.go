package schema

// TrendThresholds holds the per-metric bounds and thresholds the trend
// analyzer alerts on. Values are tuned for an elderly population and are
// configuration defaults, not clinical constants; the config file may
// override any of them.
type TrendThresholds struct {
	CriticalLow  *float64 `json:"critical_low" mapstructure:"critical_low"`
	CriticalHigh *float64 `json:"critical_high" mapstructure:"critical_high"`
	WarnLow      *float64 `json:"warn_low" mapstructure:"warn_low"`
	WarnHigh     *float64 `json:"warn_high" mapstructure:"warn_high"`

	// SlopeWarn is the absolute per-day slope that raises a warning.
	// Half this value already marks the direction as rising/falling.
	SlopeWarn float64 `json:"slope_warn" mapstructure:"slope_warn"`

	// CVWarn is the coefficient of variation that marks the series volatile.
	CVWarn float64 `json:"cv_warn" mapstructure:"cv_warn"`

	// ConsecutiveAbnormal is the out-of-band run length (ending at the latest
	// sample) that raises a warning.
	ConsecutiveAbnormal int `json:"consecutive_abnormal" mapstructure:"consecutive_abnormal"`
}

// CriticalBreached reports whether v breaches a critical bound.
func (t TrendThresholds) CriticalBreached(v float64) bool {
	if t.CriticalHigh != nil && v >= *t.CriticalHigh {
		return true
	}
	if t.CriticalLow != nil && v <= *t.CriticalLow {
		return true
	}
	return false
}

// WarnBreached reports whether v lies in a warning band.
func (t TrendThresholds) WarnBreached(v float64) bool {
	if t.WarnHigh != nil && v >= *t.WarnHigh {
		return true
	}
	if t.WarnLow != nil && v <= *t.WarnLow {
		return true
	}
	return false
}

// GetDefaultTrendThresholds returns a fresh copy of the default per-metric
// trend thresholds so callers can overlay configuration without mutating the
// shared table.
func GetDefaultTrendThresholds() map[string]TrendThresholds {
	return map[string]TrendThresholds{
		MetricSystolic: {
			CriticalLow: f(85), CriticalHigh: f(180),
			WarnLow: f(90), WarnHigh: f(140),
			SlopeWarn: 2.0, CVWarn: 0.15, ConsecutiveAbnormal: 3,
		},
		MetricDiastolic: {
			CriticalLow: f(50), CriticalHigh: f(110),
			WarnLow: f(60), WarnHigh: f(90),
			SlopeWarn: 1.5, CVWarn: 0.15, ConsecutiveAbnormal: 3,
		},
		MetricFastingGluc: {
			CriticalLow: f(3.0), CriticalHigh: f(13.9),
			WarnLow: f(3.9), WarnHigh: f(7.0),
			SlopeWarn: 0.3, CVWarn: 0.20, ConsecutiveAbnormal: 2,
		},
		MetricPostprandial: {
			CriticalLow: f(3.9), CriticalHigh: f(16.7),
			WarnLow: f(4.4), WarnHigh: f(11.1),
			SlopeWarn: 0.5, CVWarn: 0.20, ConsecutiveAbnormal: 2,
		},
		MetricHeartRate: {
			CriticalLow: f(45), CriticalHigh: f(130),
			WarnLow: f(55), WarnHigh: f(100),
			SlopeWarn: 3.0, CVWarn: 0.18, ConsecutiveAbnormal: 3,
		},
		MetricSpO2: {
			CriticalLow: f(90),
			WarnLow:     f(92),
			SlopeWarn:   0.5, CVWarn: 0.03, ConsecutiveAbnormal: 2,
		},
	}
}
