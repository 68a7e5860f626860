package core

import (
	"math"
	"testing"

	"github.com/songwei/vitalrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAssessHypertensionHealthy scores tight, in-band readings as low risk.
func TestAssessHypertensionHealthy(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricSystolic:  {114, 118, 120, 116, 122},
		schema.MetricDiastolic: {74, 76, 75, 77, 73},
	})

	r := AssessHypertension(fs, nil)
	require.NotNil(t, r)
	assert.Equal(t, schema.DiseaseHypertension, r.Disease)
	assert.Equal(t, schema.RiskLow, r.RiskLevel)
	assert.Equal(t, schema.ControlExcellent, r.ControlStatus)
	assert.Equal(t, "normal", r.MetricGrades["blood_pressure"])
	assert.Empty(t, r.KeyFindings)
	require.NotNil(t, r.ComplianceRate)
	assert.InDelta(t, 1.0, *r.ComplianceRate, 0.001)
}

// TestAssessHypertensionSevere scores sustained stage 2 readings as high risk
// with poor control.
func TestAssessHypertensionSevere(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricSystolic:  {168, 170, 172, 174, 176},
		schema.MetricDiastolic: {98, 102, 104, 100, 106},
	})

	r := AssessHypertension(fs, nil)
	require.NotNil(t, r)
	assert.Equal(t, schema.RiskHigh, r.RiskLevel)
	assert.Equal(t, schema.ControlPoor, r.ControlStatus)
	assert.Equal(t, "stage 2-3 hypertension range", r.MetricGrades["blood_pressure"])
	assert.NotEmpty(t, r.KeyFindings)
}

// TestAssessHypertensionWorseOf lets an isolated high diastolic dominate.
func TestAssessHypertensionWorseOf(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricSystolic:  {118, 118, 118, 118},
		schema.MetricDiastolic: {98, 98, 98, 98},
	})

	r := AssessHypertension(fs, nil)
	require.NotNil(t, r)
	assert.Equal(t, schema.RiskHigh, r.RiskLevel)
	assert.Equal(t, "stage 1 hypertension range", r.MetricGrades["blood_pressure"])
	// The worse compliance rate dominates: diastolic is fully out of band.
	require.NotNil(t, r.ComplianceRate)
	assert.InDelta(t, 0.0, *r.ComplianceRate, 0.001)
}

// TestAssessHypertensionBoundarySmoothing verifies that a small mean shift
// across a grade edge moves the risk score smoothly, not by a full grade.
func TestAssessHypertensionBoundarySmoothing(t *testing.T) {
	lower := AssessHypertension(featureSetOf(map[string][]float64{
		schema.MetricSystolic: {141, 141, 141, 141},
	}), nil)
	higher := AssessHypertension(featureSetOf(map[string][]float64{
		schema.MetricSystolic: {143, 143, 143, 143},
	}), nil)
	require.NotNil(t, lower)
	require.NotNil(t, higher)

	assert.Greater(t, higher.RiskScore, lower.RiskScore)
	assert.Less(t, math.Abs(higher.RiskScore-lower.RiskScore), 5.0)
	assert.Equal(t, lower.RiskLevel, higher.RiskLevel)
}

// TestAssessHypertensionBaselineDeviation adds risk when the period mean
// drifts far from the personal baseline.
func TestAssessHypertensionBaselineDeviation(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricSystolic: {150, 150, 150, 150},
	})
	baseline := &schema.Baseline{
		UserID:     "user-1",
		WindowDays: 90,
		Metrics: map[string]schema.BaselineStats{
			schema.MetricSystolic: {Mean: 120, Std: 10, SampleCount: 30},
		},
	}

	without := AssessHypertension(fs, nil)
	with := AssessHypertension(fs, baseline)
	require.NotNil(t, without)
	require.NotNil(t, with)

	// A 3-sigma drift maps to the full deviation contribution.
	assert.InDelta(t, 15.0, with.RiskScore-without.RiskScore, 0.001)
	assert.Contains(t, with.KeyFindings[len(with.KeyFindings)-1], "standard deviations")
}

// TestAssessHypertensionNoData skips the disease without usable pressure metrics.
func TestAssessHypertensionNoData(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricSystolic:    {120, 122}, // too sparse
		schema.MetricFastingGluc: {5.5, 5.6, 5.7, 5.5},
	})
	assert.Nil(t, AssessHypertension(fs, nil))
}
