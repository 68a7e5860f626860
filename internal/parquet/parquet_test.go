package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/songwei/vitalrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvertAssessmentRecords maps database rows onto Parquet rows.
func TestConvertAssessmentRecords(t *testing.T) {
	diseaseRisk := 41.3
	generatedAt := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
	records := []schema.AssessmentRecord{
		{
			AssessmentID: "assessment-1",
			UserID:       "user-1",
			GeneratedAt:  generatedAt,
			OverallScore: 57.0,
			HealthLevel:  string(schema.HealthSuboptimal),
			DiseaseRisk:  &diseaseRisk,
			ResultJSON:   `{"overall_score":57}`,
		},
	}

	rows := ConvertAssessmentRecords(records)
	require.Len(t, rows, 1)
	assert.Equal(t, "assessment-1", rows[0].AssessmentID)
	assert.Equal(t, 57.0, rows[0].OverallScore)
	require.NotNil(t, rows[0].DiseaseRisk)
	assert.Equal(t, 41.3, *rows[0].DiseaseRisk)
	assert.Nil(t, rows[0].LifestyleRisk)
	assert.True(t, rows[0].GeneratedAt.Equal(generatedAt))
}

// TestConvertRiskFactorRecords maps factor rows including the rank narrowing.
func TestConvertRiskFactorRecords(t *testing.T) {
	records := []schema.RiskFactorRecord{
		{AssessmentID: "assessment-1", Rank: 1, Category: "disease", Name: "hypertension", RiskScore: 60, Closeness: 0.82, Priority: "critical"},
		{AssessmentID: "assessment-1", Rank: 2, Category: "lifestyle", Name: "sleep", RiskScore: 55, Closeness: 0.48, Priority: "medium"},
	}

	rows := ConvertRiskFactorRecords(records)
	require.Len(t, rows, 2)
	assert.Equal(t, int32(1), rows[0].Rank)
	assert.Equal(t, "hypertension", rows[0].Name)
	assert.Equal(t, int32(2), rows[1].Rank)
}

// TestWriteAssessmentRunsParquet writes a non-empty file without error.
func TestWriteAssessmentRunsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assessments.parquet")
	lifestyleRisk := 45.0
	data := []AssessmentRun{
		{
			AssessmentID:  "assessment-1",
			UserID:        "user-1",
			GeneratedAt:   time.Now().UTC(),
			OverallScore:  57.0,
			HealthLevel:   "suboptimal",
			LifestyleRisk: &lifestyleRisk,
			ResultJSON:    "{}",
		},
	}

	require.NoError(t, WriteAssessmentRunsParquet(data, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// TestWriteRiskFactorsParquet writes a non-empty file without error.
func TestWriteRiskFactorsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.parquet")
	data := []RiskFactorRow{
		{AssessmentID: "assessment-1", Rank: 1, Category: "disease", Name: "hypertension", RiskScore: 60, Closeness: 0.82, Priority: "critical"},
	}

	require.NoError(t, WriteRiskFactorsParquet(data, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
