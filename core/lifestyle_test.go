package core

import (
	"testing"

	"github.com/songwei/vitalrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAssessLifestyleHealthy scores regular sleep, daily activity and a good
// diet as low risk with no issues.
func TestAssessLifestyleHealthy(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricSleepHours: {7.5, 8.0, 7.8, 8.2, 7.6},
		schema.MetricSteps:      {8000, 9000, 8500, 9500, 8800},
	})
	diet := &schema.DietReport{
		SaltIntake:      schema.IntakeLow,
		OilIntake:       schema.IntakeLow,
		SugarIntake:     schema.IntakeLow,
		VegetableIntake: schema.IntakeHigh,
	}

	r := AssessLifestyle(fs, diet, nil, nil, 0)
	require.NotNil(t, r)
	assert.Greater(t, r.OverallScore, 85.0)
	assert.Equal(t, schema.RiskLow, r.RiskLevel)
	assert.InDelta(t, 100.0, r.Diet.Score, 0.001)
	assert.Empty(t, r.KeyIssues)
}

// TestAssessLifestylePoorSleep flags short, irregular sleep and degrades the
// missing dimensions to neutral defaults.
func TestAssessLifestylePoorSleep(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricSleepHours: {4.5, 5.0, 4.8, 5.2, 4.6},
	})

	r := AssessLifestyle(fs, nil, nil, nil, 0)
	require.NotNil(t, r)
	assert.Equal(t, schema.RiskHigh, r.Sleep.RiskLevel)
	assert.Equal(t, neutralDimension, r.Exercise.Score)
	assert.Equal(t, schema.NeutralDietScore, r.Diet.Score)
	require.NotEmpty(t, r.KeyIssues)
	assert.Contains(t, r.KeyIssues[0], "sleep")
}

// TestAssessLifestylePoorDiet maps a salt-heavy, vegetable-poor report onto
// the fixed point table.
func TestAssessLifestylePoorDiet(t *testing.T) {
	diet := &schema.DietReport{
		SaltIntake:      schema.IntakeHigh,
		OilIntake:       schema.IntakeHigh,
		SugarIntake:     schema.IntakeHigh,
		VegetableIntake: schema.IntakeLow,
	}

	r := AssessLifestyle(featureSetOf(nil), diet, nil, nil, 0)
	require.NotNil(t, r)
	assert.InDelta(t, 20.0, r.Diet.Score, 0.001)
	assert.Equal(t, schema.RiskHigh, r.Diet.RiskLevel)
	assert.Contains(t, r.KeyIssues[0], "diet")
}

// TestAssessLifestyleSedentary scores a low, irregular step count as an issue.
func TestAssessLifestyleSedentary(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricSteps: {1500, 3500, 2000, 4000, 1800},
	})

	r := AssessLifestyle(fs, nil, nil, nil, 0)
	require.NotNil(t, r)
	assert.Less(t, r.Exercise.Score, lifestyleIssueScore)
	assert.Equal(t, schema.RiskHigh, r.Exercise.RiskLevel)
	require.NotEmpty(t, r.KeyIssues)
	assert.Contains(t, r.KeyIssues[0], "activity")
}

// TestAssessLifestyleCustomWeights renormalizes over a non-unit weight sum.
func TestAssessLifestyleCustomWeights(t *testing.T) {
	diet := &schema.DietReport{
		SaltIntake:      schema.IntakeLow,
		OilIntake:       schema.IntakeLow,
		SugarIntake:     schema.IntakeLow,
		VegetableIntake: schema.IntakeHigh,
	}
	weights := map[string]float64{schema.LifestyleDiet: 2.0}

	r := AssessLifestyle(featureSetOf(nil), diet, nil, weights, 0)
	require.NotNil(t, r)
	// Diet is the only weighted dimension, so it carries the overall score.
	assert.InDelta(t, 100.0, r.OverallScore, 0.001)
}

// TestAssessLifestyleAnomalyLimit reports a key issue only past the
// configured abnormal-day limit.
func TestAssessLifestyleAnomalyLimit(t *testing.T) {
	fs := featureSetOf(map[string][]float64{
		schema.MetricSleepHours: {7.5, 7.8, 7.6, 7.4, 7.7},
	})
	detector := stubDetector{indices: []int{0, 1, 2}}

	within := AssessLifestyle(fs, nil, detector, nil, 5)
	require.NotNil(t, within)
	assert.Len(t, within.AbnormalDays, 3)
	assert.Empty(t, within.KeyIssues)

	over := AssessLifestyle(fs, nil, detector, nil, 2)
	require.NotNil(t, over)
	require.NotEmpty(t, over.KeyIssues)
	assert.Contains(t, over.KeyIssues[0], "unusual readings")
}
