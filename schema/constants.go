package schema

// Custom string types for type safety.
type (
	// RiskLevel grades a 0-100 risk score into four ordered bands.
	RiskLevel string

	// ControlStatus grades a 0-100 control-quality score into four ordered bands.
	ControlStatus string

	// HealthLevel grades the fused 0-100 overall score into five ordered bands.
	HealthLevel string

	// AlertLevel is the severity of a trend alert.
	AlertLevel string

	// TrendDirection describes the movement of a metric series.
	TrendDirection string

	// VolatilityLevel qualifies the coefficient of variation of a metric.
	VolatilityLevel string

	// Priority is the TOPSIS-derived priority of a risk factor.
	Priority string

	// IntakeLevel is a categorical diet self-report value.
	IntakeLevel string

	// OutlierMethod selects the outlier removal strategy for feature building.
	OutlierMethod string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for assessment storage.
	DatabaseBackend string
)

// MinCleanSamples is the minimum number of clean samples a metric needs
// before any derived statistic is computed for it.
const MinCleanSamples = 3

// Risk levels, ordered from best to worst.
const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// Control statuses, ordered from best to worst.
const (
	ControlExcellent ControlStatus = "excellent"
	ControlGood      ControlStatus = "good"
	ControlFair      ControlStatus = "fair"
	ControlPoor      ControlStatus = "poor"
)

// Health levels, ordered from best to worst.
const (
	HealthExcellent       HealthLevel = "excellent"
	HealthGood            HealthLevel = "good"
	HealthSuboptimal      HealthLevel = "suboptimal"
	HealthAttentionNeeded HealthLevel = "attention_needed"
	HealthHighRisk        HealthLevel = "high_risk"
)

// Alert levels, ordered from least to most severe.
const (
	AlertNormal    AlertLevel = "normal"
	AlertAttention AlertLevel = "attention"
	AlertWarning   AlertLevel = "warning"
	AlertCritical  AlertLevel = "critical"
)

// Trend directions.
const (
	TrendRising   TrendDirection = "rising"
	TrendFalling  TrendDirection = "falling"
	TrendStable   TrendDirection = "stable"
	TrendVolatile TrendDirection = "volatile"
)

// Volatility levels.
const (
	VolatilityMild     VolatilityLevel = "mild"
	VolatilityModerate VolatilityLevel = "moderate"
	VolatilitySevere   VolatilityLevel = "severe"
)

// Risk factor priorities, ordered from most to least pressing.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Diet intake levels.
const (
	IntakeLow    IntakeLevel = "low"
	IntakeMedium IntakeLevel = "medium"
	IntakeHigh   IntakeLevel = "high"
)

// Outlier removal methods.
const (
	OutlierIQR    OutlierMethod = "iqr" // default
	OutlierZScore OutlierMethod = "zscore"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Risk factor categories used by the fusion engine.
const (
	CategoryDisease   = "disease"
	CategoryLifestyle = "lifestyle"
	CategoryTrend     = "trend"
)

// Disease names used by the disease assessors and the AHP weight table.
const (
	DiseaseHypertension = "hypertension"
	DiseaseDiabetes     = "diabetes"
	DiseaseDyslipidemia = "dyslipidemia"
)

// Metric names recognized across the pipeline.
const (
	MetricSystolic     = "systolic_bp"
	MetricDiastolic    = "diastolic_bp"
	MetricFastingGluc  = "fasting_glucose"
	MetricPostprandial = "postprandial_glucose"
	MetricHeartRate    = "heart_rate"
	MetricSpO2         = "spo2"
	MetricTC           = "total_cholesterol"
	MetricLDL          = "ldl"
	MetricHDL          = "hdl"
	MetricTG           = "triglycerides"
	MetricSleepHours   = "sleep_duration"
	MetricSteps        = "steps"
	MetricWeight       = "weight"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidStoreBackends lists all valid storage backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidOutlierMethods lists all valid outlier removal methods.
var ValidOutlierMethods = map[OutlierMethod]struct{}{
	OutlierIQR:    {},
	OutlierZScore: {},
}

// alertLevelRank orders alert levels by severity for sorting and comparison.
var alertLevelRank = map[AlertLevel]int{
	AlertNormal:    0,
	AlertAttention: 1,
	AlertWarning:   2,
	AlertCritical:  3,
}

// Rank returns the severity rank of an alert level (higher is more severe).
func (a AlertLevel) Rank() int {
	return alertLevelRank[a]
}

// riskLevelRank orders risk levels for comparison.
var riskLevelRank = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskVeryHigh: 3,
}

// Rank returns the severity rank of a risk level (higher is worse).
func (r RiskLevel) Rank() int {
	return riskLevelRank[r]
}
