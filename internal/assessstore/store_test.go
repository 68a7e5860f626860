package assessstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/songwei/vitalrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) (*StoreImpl, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "vitalrisk_test.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*StoreImpl), dbPath
}

func sampleResult(id string, generatedAt time.Time) *schema.AssessmentResult {
	diseaseRisk := 41.3
	lifestyleRisk := 45.0
	return &schema.AssessmentResult{
		AssessmentID:       id,
		UserID:             "user-1",
		GeneratedAt:        generatedAt,
		OverallScore:       57.0,
		HealthLevel:        schema.HealthSuboptimal,
		DiseaseRiskScore:   &diseaseRisk,
		LifestyleRiskScore: &lifestyleRisk,
		TopRiskFactors: []schema.RiskFactor{
			{Category: schema.CategoryDisease, Name: schema.DiseaseHypertension, RiskScore: 60, Closeness: 0.82, Priority: schema.PriorityCritical},
			{Category: schema.CategoryLifestyle, Name: schema.LifestyleSleep, RiskScore: 55, Closeness: 0.48, Priority: schema.PriorityMedium},
		},
		Recommendations: []string{"limit daily salt intake to under 5g and avoid pickled foods"},
	}
}

// TestStoreRoundTrip saves a result and reads it back through both tables.
func TestStoreRoundTrip(t *testing.T) {
	store, _ := tempStore(t)
	generatedAt := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

	require.NoError(t, store.SaveResult(sampleResult("assessment-1", generatedAt)))

	assessments, err := store.GetAllAssessments()
	require.NoError(t, err)
	require.Len(t, assessments, 1)

	rec := assessments[0]
	assert.Equal(t, "assessment-1", rec.AssessmentID)
	assert.Equal(t, "user-1", rec.UserID)
	assert.True(t, rec.GeneratedAt.Equal(generatedAt))
	assert.Equal(t, 57.0, rec.OverallScore)
	assert.Equal(t, string(schema.HealthSuboptimal), rec.HealthLevel)
	require.NotNil(t, rec.DiseaseRisk)
	assert.InDelta(t, 41.3, *rec.DiseaseRisk, 0.001)
	assert.Nil(t, rec.TrendRisk) // absent dimension stays NULL
	assert.Contains(t, rec.ResultJSON, `"overall_score":57`)

	factors, err := store.GetAllRiskFactors()
	require.NoError(t, err)
	require.Len(t, factors, 2)
	assert.Equal(t, 1, factors[0].Rank)
	assert.Equal(t, schema.DiseaseHypertension, factors[0].Name)
	assert.Equal(t, 2, factors[1].Rank)
	assert.Equal(t, schema.LifestyleSleep, factors[1].Name)
}

// TestStoreGetStatus reports totals and the latest generation time.
func TestStoreGetStatus(t *testing.T) {
	store, dbPath := tempStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, dbPath, status.Location)
	assert.Zero(t, status.TotalAssessments)
	assert.Nil(t, status.LastGeneratedAt)

	first := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	require.NoError(t, store.SaveResult(sampleResult("assessment-1", first)))
	require.NoError(t, store.SaveResult(sampleResult("assessment-2", second)))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalAssessments)
	assert.Equal(t, int64(4), status.TotalRiskFactors)
	require.NotNil(t, status.LastGeneratedAt)
	assert.True(t, status.LastGeneratedAt.Equal(second))
}

// TestStoreDuplicateAssessment rejects reusing an assessment id.
func TestStoreDuplicateAssessment(t *testing.T) {
	store, _ := tempStore(t)
	generatedAt := time.Now().UTC()

	require.NoError(t, store.SaveResult(sampleResult("assessment-1", generatedAt)))
	err := store.SaveResult(sampleResult("assessment-1", generatedAt))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert assessment")
}

// TestStoreClear empties both tables.
func TestStoreClear(t *testing.T) {
	store, dbPath := tempStore(t)
	require.NoError(t, store.SaveResult(sampleResult("assessment-1", time.Now().UTC())))
	require.NoError(t, store.Close())

	require.NoError(t, Clear(schema.SQLiteBackend, dbPath))

	reopened, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	status, err := reopened.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalAssessments)
	assert.Zero(t, status.TotalRiskFactors)
}

// TestStoreNoneBackend is a complete no-op.
func TestStoreNoneBackend(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)

	require.NoError(t, store.SaveResult(sampleResult("assessment-1", time.Now())))
	assessments, err := store.GetAllAssessments()
	require.NoError(t, err)
	assert.Nil(t, assessments)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	require.NoError(t, store.Close())
}

// TestStoreUnsupportedBackend fails fast on unknown backends.
func TestStoreUnsupportedBackend(t *testing.T) {
	_, err := NewStore("oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}

// TestQuoteTableName quotes per backend dialect.
func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`vitalrisk_assessments`", quoteTableName(assessmentsTable, schema.MySQLBackend))
	assert.Equal(t, `"vitalrisk_assessments"`, quoteTableName(assessmentsTable, schema.SQLiteBackend))
	assert.Equal(t, `"vitalrisk_assessments"`, quoteTableName(assessmentsTable, schema.PostgreSQLBackend))
}

// TestPlaceholders numbers parameters only for PostgreSQL.
func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(schema.SQLiteBackend, 3))
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
}
