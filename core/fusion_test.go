package core

import (
	"testing"

	"github.com/songwei/vitalrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complianceRate(v float64) *float64 { return &v }

func fullFusionInputs() (map[string]schema.DiseaseRiskResult, *schema.LifestyleRiskResult, []schema.TrendAlert) {
	diseases := map[string]schema.DiseaseRiskResult{
		schema.DiseaseHypertension: {
			Disease:        schema.DiseaseHypertension,
			RiskScore:      60,
			RiskLevel:      schema.RiskHigh,
			ControlScore:   40,
			ControlStatus:  schema.ControlPoor,
			ComplianceRate: complianceRate(0.4),
			Volatility:     schema.VolatilityModerate,
			KeyFindings:    []string{"average blood pressure is in the stage 1 hypertension range"},
		},
		schema.DiseaseDiabetes: {
			Disease:       schema.DiseaseDiabetes,
			RiskScore:     20,
			RiskLevel:     schema.RiskLow,
			ControlScore:  90,
			ControlStatus: schema.ControlExcellent,
			Volatility:    schema.VolatilityMild,
		},
	}
	lifestyle := &schema.LifestyleRiskResult{
		OverallScore: 55,
		RiskLevel:    schema.RiskMedium,
		Sleep:        schema.DimensionScore{Score: 45, RiskLevel: schema.RiskHigh},
		Exercise:     schema.DimensionScore{Score: 75, RiskLevel: schema.RiskLow},
		Diet:         schema.DimensionScore{Score: 80, RiskLevel: schema.RiskLow},
		Regularity:   schema.DimensionScore{Score: 72, RiskLevel: schema.RiskLow},
	}
	alerts := []schema.TrendAlert{
		{
			MetricName:          schema.MetricSystolic,
			AlertLevel:          schema.AlertWarning,
			TrendDirection:      schema.TrendRising,
			CurrentValue:        150,
			AvgValue:            140,
			Volatility:          0.1,
			ConsecutiveAbnormal: 3,
			Message:             "systolic blood pressure is rising at 2.5 mmHg per day",
		},
		{
			MetricName:     schema.MetricHeartRate,
			AlertLevel:     schema.AlertNormal,
			TrendDirection: schema.TrendStable,
			CurrentValue:   72,
			AvgValue:       71,
			Volatility:     0.03,
		},
	}
	return diseases, lifestyle, alerts
}

// TestFuseRisksFull checks the fused scores and extracted factors of a run
// with all three dimensions present.
func TestFuseRisksFull(t *testing.T) {
	diseases, lifestyle, alerts := fullFusionInputs()

	r := FuseRisks(diseases, lifestyle, alerts, "user-1", "assessment-1", nil)
	require.NotNil(t, r)

	// AHP disease average: (60*0.40 + 20*0.35) / 0.75.
	require.NotNil(t, r.DiseaseRiskScore)
	assert.InDelta(t, 41.333, *r.DiseaseRiskScore, 0.001)
	require.NotNil(t, r.LifestyleRiskScore)
	assert.InDelta(t, 45.0, *r.LifestyleRiskScore, 0.001)
	// Worsening systolic at 0.714 sigma plus one stable metric.
	require.NotNil(t, r.TrendRiskScore)
	assert.InDelta(t, 43.571, *r.TrendRiskScore, 0.001)

	assert.InDelta(t, 57.0, r.OverallScore, 0.05)
	assert.Equal(t, schema.HealthSuboptimal, r.HealthLevel)
	assert.Empty(t, r.DataQuality)

	// Diabetes stays below the candidate floor; the other three rank.
	require.Len(t, r.TopRiskFactors, 3)
	names := make(map[string]struct{}, 3)
	for _, f := range r.TopRiskFactors {
		names[f.Name] = struct{}{}
		assert.GreaterOrEqual(t, f.Closeness, 0.0)
		assert.LessOrEqual(t, f.Closeness, 1.0)
		assert.NotEmpty(t, f.Priority)
	}
	assert.Contains(t, names, schema.DiseaseHypertension)
	assert.Contains(t, names, schema.LifestyleSleep)
	assert.Contains(t, names, schema.MetricSystolic)

	assert.NotEmpty(t, r.Recommendations)
	assert.LessOrEqual(t, len(r.Recommendations), 5)

	var distTotal float64
	for _, share := range r.RiskDistribution {
		distTotal += share
	}
	assert.InDelta(t, 1.0, distTotal, 0.001)
}

// TestFuseRisksDeterministic requires bit-identical results for identical inputs.
func TestFuseRisksDeterministic(t *testing.T) {
	diseases, lifestyle, alerts := fullFusionInputs()

	first := FuseRisks(diseases, lifestyle, alerts, "user-1", "assessment-1", nil)
	second := FuseRisks(diseases, lifestyle, alerts, "user-1", "assessment-1", nil)
	assert.Equal(t, first, second)
}

// TestFuseRisksLifestyleOnly renormalizes the weights onto the single
// dimension present.
func TestFuseRisksLifestyleOnly(t *testing.T) {
	lifestyle := &schema.LifestyleRiskResult{
		OverallScore: 80,
		RiskLevel:    schema.RiskLow,
		Sleep:        schema.DimensionScore{Score: 82, RiskLevel: schema.RiskLow},
		Exercise:     schema.DimensionScore{Score: 78, RiskLevel: schema.RiskLow},
		Diet:         schema.DimensionScore{Score: 80, RiskLevel: schema.RiskLow},
		Regularity:   schema.DimensionScore{Score: 80, RiskLevel: schema.RiskLow},
	}

	r := FuseRisks(nil, lifestyle, nil, "user-1", "assessment-1", nil)
	require.NotNil(t, r)
	assert.InDelta(t, 80.0, r.OverallScore, 0.001)
	assert.Equal(t, schema.HealthGood, r.HealthLevel)
	assert.Nil(t, r.DiseaseRiskScore)
	assert.Nil(t, r.TrendRiskScore)
	assert.InDelta(t, 1.0, r.FeatureImportance[schema.DimensionLifestyle], 0.001)
	assert.Empty(t, r.TopRiskFactors)
	assert.Equal(t, []string{genericRecommendation}, r.Recommendations)
}

// TestFuseRisksDegenerate degrades gracefully when nothing is assessable.
func TestFuseRisksDegenerate(t *testing.T) {
	r := FuseRisks(nil, nil, nil, "user-1", "assessment-1", nil)
	require.NotNil(t, r)
	assert.InDelta(t, defaultOverallScore, r.OverallScore, 0.001)
	assert.Equal(t, schema.HealthGood, r.HealthLevel)
	assert.NotEmpty(t, r.DataQuality)
	assert.Empty(t, r.TopRiskFactors)
	assert.Equal(t, []string{genericRecommendation}, r.Recommendations)
	assert.Empty(t, r.FeatureImportance)
}

// TestFuseRisksWeightRenormalization keeps the present-dimension weights
// summing to one.
func TestFuseRisksWeightRenormalization(t *testing.T) {
	diseases, _, alerts := fullFusionInputs()

	r := FuseRisks(diseases, nil, alerts, "user-1", "assessment-1", nil)
	require.NotNil(t, r)

	var sum float64
	for _, w := range r.FeatureImportance {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 0.001)
	_, hasLifestyle := r.FeatureImportance[schema.DimensionLifestyle]
	assert.False(t, hasLifestyle)
	// Default 0.45/0.25 split renormalized over disease and trend.
	assert.InDelta(t, 0.45/0.70, r.FeatureImportance[schema.DimensionDisease], 0.001)
}

// TestFuseRisksTopFactorsLimit honors the configured factor cap.
func TestFuseRisksTopFactorsLimit(t *testing.T) {
	diseases, lifestyle, alerts := fullFusionInputs()

	r := FuseRisks(diseases, lifestyle, alerts, "user-1", "assessment-1", &FusionOptions{TopFactors: 1})
	require.NotNil(t, r)
	assert.Len(t, r.TopRiskFactors, 1)
}

// TestFuseRisksHighRiskNotice prepends the urgency notice when the fused
// level demands action.
func TestFuseRisksHighRiskNotice(t *testing.T) {
	diseases := map[string]schema.DiseaseRiskResult{
		schema.DiseaseHypertension: {
			Disease:       schema.DiseaseHypertension,
			RiskScore:     90,
			RiskLevel:     schema.RiskVeryHigh,
			ControlStatus: schema.ControlPoor,
			Volatility:    schema.VolatilitySevere,
		},
	}
	lifestyle := &schema.LifestyleRiskResult{
		OverallScore: 20,
		RiskLevel:    schema.RiskHigh,
		Sleep:        schema.DimensionScore{Score: 20, RiskLevel: schema.RiskHigh},
		Exercise:     schema.DimensionScore{Score: 20, RiskLevel: schema.RiskHigh},
		Diet:         schema.DimensionScore{Score: 20, RiskLevel: schema.RiskHigh},
		Regularity:   schema.DimensionScore{Score: 20, RiskLevel: schema.RiskHigh},
	}

	r := FuseRisks(diseases, lifestyle, nil, "user-1", "assessment-1", nil)
	require.NotNil(t, r)
	assert.Equal(t, schema.HealthHighRisk, r.HealthLevel)
	require.NotEmpty(t, r.Recommendations)
	assert.Contains(t, r.Recommendations[0], "consult a physician")
}

// TestClassifyMovement folds direction with metric polarity.
func TestClassifyMovement(t *testing.T) {
	tests := []struct {
		name     string
		alert    schema.TrendAlert
		expected movement
	}{
		{"rising pressure worsens", schema.TrendAlert{MetricName: schema.MetricSystolic, TrendDirection: schema.TrendRising}, movementWorsening},
		{"falling pressure improves", schema.TrendAlert{MetricName: schema.MetricSystolic, TrendDirection: schema.TrendFalling}, movementImproving},
		{"falling oxygen worsens", schema.TrendAlert{MetricName: schema.MetricSpO2, TrendDirection: schema.TrendFalling}, movementWorsening},
		{"rising steps improve", schema.TrendAlert{MetricName: schema.MetricSteps, TrendDirection: schema.TrendRising}, movementImproving},
		{"volatile counts as worsening", schema.TrendAlert{MetricName: schema.MetricHeartRate, TrendDirection: schema.TrendVolatile}, movementWorsening},
		{"stable stays stable", schema.TrendAlert{MetricName: schema.MetricSystolic, TrendDirection: schema.TrendStable}, movementStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyMovement(tt.alert))
		})
	}
}
