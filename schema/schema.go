// Package schema has configs, models and shared defaults for all parts of vitalrisk.
package schema

import "time"

// MetricSample is a single timestamped measurement.
type MetricSample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// MetricSeries is an ordered sequence of measurements for one health metric.
// Samples are expected in chronological order; the engine never reorders them.
type MetricSeries struct {
	Metric  string         `json:"metric"`
	Unit    string         `json:"unit"`
	Samples []MetricSample `json:"samples"`
}

// Values returns the raw sample values in chronological order.
func (s MetricSeries) Values() []float64 {
	out := make([]float64, len(s.Samples))
	for i, sample := range s.Samples {
		out[i] = sample.Value
	}
	return out
}

// Timestamps returns the sample timestamps in chronological order.
func (s MetricSeries) Timestamps() []time.Time {
	out := make([]time.Time, len(s.Samples))
	for i, sample := range s.Samples {
		out[i] = sample.Timestamp
	}
	return out
}

// MetricFeatures holds the derived statistics for one metric over one period.
// Derived fields are nil when fewer than MinCleanSamples clean samples exist;
// they are never silently defaulted to zero.
type MetricFeatures struct {
	Metric         string    `json:"metric"`
	Unit           string    `json:"unit"`
	SampleCount    int       `json:"sample_count"` // clean samples after outlier removal
	RawCount       int       `json:"raw_count"`    // samples before outlier removal
	Mean           *float64  `json:"mean"`
	Std            *float64  `json:"std"`
	Min            *float64  `json:"min"`
	Max            *float64  `json:"max"`
	CV             *float64  `json:"cv"`              // coefficient of variation (std/mean)
	TrendSlope     *float64  `json:"trend_slope"`     // least-squares slope against sample index
	ComplianceRate *float64  `json:"compliance_rate"` // fraction of clean samples inside the normal band
	Clean          []float64 `json:"-"`               // cleaned values, chronological; feeds lifestyle and anomaly stages
	CleanDays      []string  `json:"-"`               // per-clean-sample day labels (YYYY-MM-DD)
}

// Usable reports whether the metric has enough clean samples for assessment.
func (mf *MetricFeatures) Usable() bool {
	return mf != nil && mf.SampleCount >= MinCleanSamples && mf.Mean != nil
}

// FeatureSet is the per-user, per-period output of the feature engineering stage.
type FeatureSet struct {
	UserID      string                     `json:"user_id"`
	PeriodStart time.Time                  `json:"period_start"`
	PeriodEnd   time.Time                  `json:"period_end"`
	Metrics     map[string]*MetricFeatures `json:"metrics"`
}

// Metric returns the features for a metric, or nil when absent.
func (fs *FeatureSet) Metric(name string) *MetricFeatures {
	if fs == nil {
		return nil
	}
	return fs.Metrics[name]
}

// BaselineStats is a user's historical reference distribution for one metric.
type BaselineStats struct {
	Mean        float64 `json:"mean"`
	Std         float64 `json:"std"`
	Median      float64 `json:"median"`
	P25         float64 `json:"p25"`
	P75         float64 `json:"p75"`
	SampleCount int     `json:"sample_count"`
}

// Baseline holds per-metric historical reference statistics over a window.
type Baseline struct {
	UserID     string                   `json:"user_id"`
	WindowDays int                      `json:"window_days"`
	Metrics    map[string]BaselineStats `json:"metrics"`
}

// Stats returns the baseline stats for a metric and whether they are usable.
// A baseline entry built from too few samples is treated as absent.
func (b *Baseline) Stats(metric string) (BaselineStats, bool) {
	if b == nil {
		return BaselineStats{}, false
	}
	st, ok := b.Metrics[metric]
	if !ok || st.SampleCount < MinCleanSamples {
		return BaselineStats{}, false
	}
	return st, true
}

// DietReport is the optional categorical diet self-report.
type DietReport struct {
	SaltIntake      IntakeLevel `json:"salt_intake" validate:"omitempty,oneof=low medium high"`
	OilIntake       IntakeLevel `json:"oil_intake" validate:"omitempty,oneof=low medium high"`
	SugarIntake     IntakeLevel `json:"sugar_intake" validate:"omitempty,oneof=low medium high"`
	VegetableIntake IntakeLevel `json:"vegetable_intake" validate:"omitempty,oneof=low medium high"`
}

// DiseaseRiskResult is the output of a single disease assessor.
type DiseaseRiskResult struct {
	Disease        string            `json:"disease"`
	RiskScore      float64           `json:"risk_score"`    // 0-100, higher is worse
	RiskLevel      RiskLevel         `json:"risk_level"`    // 4-band partition of RiskScore
	ControlScore   float64           `json:"control_score"` // 0-100, higher is better
	ControlStatus  ControlStatus     `json:"control_status"`
	ComplianceRate *float64          `json:"compliance_rate"`
	Volatility     VolatilityLevel   `json:"volatility_level"`
	KeyFindings    []string          `json:"key_findings"`
	MetricGrades   map[string]string `json:"metric_grades"`
}

// DimensionScore is one lifestyle sub-dimension score with its risk level.
type DimensionScore struct {
	Score     float64   `json:"score"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// LifestyleRiskResult is the output of the lifestyle assessment stage.
type LifestyleRiskResult struct {
	OverallScore float64        `json:"overall_score"`
	RiskLevel    RiskLevel      `json:"risk_level"`
	Sleep        DimensionScore `json:"sleep"`
	Exercise     DimensionScore `json:"exercise"`
	Diet         DimensionScore `json:"diet"`
	Regularity   DimensionScore `json:"regularity"`
	KeyIssues    []string       `json:"key_issues"`
	AbnormalDays []string       `json:"abnormal_days"` // YYYY-MM-DD labels of statistically outlying days
}

// TrendAlert is the per-metric output of the trend analysis stage.
type TrendAlert struct {
	MetricName          string         `json:"metric_name"`
	AlertLevel          AlertLevel     `json:"alert_level"`
	TrendDirection      TrendDirection `json:"trend_direction"`
	CurrentValue        float64        `json:"current_value"`
	AvgValue            float64        `json:"avg_value"`
	Slope               float64        `json:"slope"`      // value per day
	Volatility          float64        `json:"volatility"` // coefficient of variation
	ConsecutiveAbnormal int            `json:"consecutive_abnormal"`
	Message             string         `json:"message"`
	Suggestion          string         `json:"suggestion"`
}

// RiskFactor is one ranked entry of the fused assessment.
// Severity, Urgency, Frequency and Controllability are normalized to [0,1].
type RiskFactor struct {
	Category        string   `json:"category"` // disease, lifestyle or trend
	Name            string   `json:"name"`
	RiskScore       float64  `json:"risk_score"`
	Severity        float64  `json:"severity"`
	Urgency         float64  `json:"urgency"`
	Frequency       float64  `json:"frequency"`
	TrendScore      float64  `json:"trend_score"`
	Controllability float64  `json:"controllability"`
	Closeness       float64  `json:"closeness"` // TOPSIS relative closeness, ranking key
	Priority        Priority `json:"priority"`
	Evidence        []string `json:"evidence"`
}

// AssessmentResult is the comprehensive, JSON-serializable output of one
// assessment run. It is the only artifact meant to outlive the call.
type AssessmentResult struct {
	AssessmentID string    `json:"assessment_id"`
	UserID       string    `json:"user_id"`
	GeneratedAt  time.Time `json:"generated_at"`

	OverallScore float64     `json:"overall_score"` // 0-100, higher is better
	HealthLevel  HealthLevel `json:"health_level"`

	// Dimension risk scores, 0-100 where higher is worse. A nil score means
	// the dimension had no input and was dropped from fusion weighting.
	DiseaseRiskScore   *float64 `json:"disease_risk_score"`
	LifestyleRiskScore *float64 `json:"lifestyle_risk_score"`
	TrendRiskScore     *float64 `json:"trend_risk_score"`

	DiseaseResults  map[string]DiseaseRiskResult `json:"disease_results"`
	LifestyleResult *LifestyleRiskResult         `json:"lifestyle_result"`
	TrendAlerts     []TrendAlert                 `json:"trend_alerts"`

	TopRiskFactors    []RiskFactor       `json:"top_risk_factors"` // TOPSIS-closeness sorted, most severe first
	Recommendations   []string           `json:"recommendations"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
	RiskDistribution  map[string]float64 `json:"risk_distribution"`

	// DataQuality is set when the run degraded (for example zero usable
	// metrics); empty on a normal run.
	DataQuality string `json:"data_quality,omitempty"`
}
