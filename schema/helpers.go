package schema

// Fixed partition boundaries for the graded enums. Each partition is a
// strictly-ordered, non-overlapping cover of the 0-100 score range.
const (
	riskVeryHighFloor = 70.0
	riskHighFloor     = 45.0
	riskMediumFloor   = 25.0

	controlExcellentFloor = 85.0
	controlGoodFloor      = 70.0
	controlFairFloor      = 55.0

	healthExcellentFloor  = 85.0
	healthGoodFloor       = 70.0
	healthSuboptimalFloor = 55.0
	healthAttentionFloor  = 40.0

	priorityCriticalFloor = 0.7
	priorityHighFloor     = 0.5
	priorityMediumFloor   = 0.3
)

// RiskLevelForScore maps a 0-100 risk score onto its risk level band.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= riskVeryHighFloor:
		return RiskVeryHigh
	case score >= riskHighFloor:
		return RiskHigh
	case score >= riskMediumFloor:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ControlStatusForScore maps a 0-100 control-quality score onto its band.
func ControlStatusForScore(score float64) ControlStatus {
	switch {
	case score >= controlExcellentFloor:
		return ControlExcellent
	case score >= controlGoodFloor:
		return ControlGood
	case score >= controlFairFloor:
		return ControlFair
	default:
		return ControlPoor
	}
}

// HealthLevelForScore maps the fused 0-100 overall score onto its band.
func HealthLevelForScore(score float64) HealthLevel {
	switch {
	case score >= healthExcellentFloor:
		return HealthExcellent
	case score >= healthGoodFloor:
		return HealthGood
	case score >= healthSuboptimalFloor:
		return HealthSuboptimal
	case score >= healthAttentionFloor:
		return HealthAttentionNeeded
	default:
		return HealthHighRisk
	}
}

// PriorityForCloseness maps a TOPSIS relative closeness onto a priority.
func PriorityForCloseness(closeness float64) Priority {
	switch {
	case closeness >= priorityCriticalFloor:
		return PriorityCritical
	case closeness >= priorityHighFloor:
		return PriorityHigh
	case closeness >= priorityMediumFloor:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// VolatilityLevelForCV qualifies a coefficient of variation.
func VolatilityLevelForCV(cv float64) VolatilityLevel {
	switch {
	case cv >= 0.20:
		return VolatilitySevere
	case cv >= 0.10:
		return VolatilityModerate
	default:
		return VolatilityMild
	}
}

// metricDisplayNames maps metric keys to human-readable names for findings
// and report output.
var metricDisplayNames = map[string]string{
	MetricSystolic:     "systolic blood pressure",
	MetricDiastolic:    "diastolic blood pressure",
	MetricFastingGluc:  "fasting glucose",
	MetricPostprandial: "postprandial glucose",
	MetricHeartRate:    "heart rate",
	MetricSpO2:         "blood oxygen saturation",
	MetricTC:           "total cholesterol",
	MetricLDL:          "LDL cholesterol",
	MetricHDL:          "HDL cholesterol",
	MetricTG:           "triglycerides",
	MetricSleepHours:   "sleep duration",
	MetricSteps:        "daily steps",
	MetricWeight:       "weight",
}

// DisplayName returns a human-readable name for a metric key.
func DisplayName(metric string) string {
	if name, ok := metricDisplayNames[metric]; ok {
		return name
	}
	return metric
}

// metricUnits maps metric keys to their canonical units.
var metricUnits = map[string]string{
	MetricSystolic:     "mmHg",
	MetricDiastolic:    "mmHg",
	MetricFastingGluc:  "mmol/L",
	MetricPostprandial: "mmol/L",
	MetricHeartRate:    "bpm",
	MetricSpO2:         "%",
	MetricTC:           "mmol/L",
	MetricLDL:          "mmol/L",
	MetricHDL:          "mmol/L",
	MetricTG:           "mmol/L",
	MetricSleepHours:   "h",
	MetricSteps:        "steps",
	MetricWeight:       "kg",
}

// Unit returns the canonical unit for a metric key, or "" when unknown.
func Unit(metric string) string {
	return metricUnits[metric]
}
