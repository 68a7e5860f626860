// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/songwei/vitalrisk/schema"
)

// MeasurementSource defines the storage/repository collaborator that supplies
// raw measurements to the engine. This keeps the assessment pipeline testable
// without a live measurement store.
type MeasurementSource interface {
	// FetchSeries returns the per-metric ordered measurement series for a
	// user inside the assessment window.
	FetchSeries(ctx context.Context, userID string, start, end time.Time) (map[string]schema.MetricSeries, error)

	// FetchHistorical returns the per-metric series for the baseline window
	// ending at 'end'. An empty map means no personal baseline is available.
	FetchHistorical(ctx context.Context, userID string, end time.Time, windowDays int) (map[string]schema.MetricSeries, error)

	// FetchDietReport returns the user's diet self-report, or nil when none
	// was filed. A nil report degrades the diet dimension to a neutral
	// default rather than failing the assessment.
	FetchDietReport(ctx context.Context, userID string) (*schema.DietReport, error)
}

// AssessmentStore defines the persistence collaborator that keeps one record
// per assessment_id/user_id. This allows the storage layer to be mocked for
// testing and swapped across database backends.
type AssessmentStore interface {
	// SaveResult persists a completed assessment with its ranked risk factors.
	SaveResult(result *schema.AssessmentResult) error

	// GetAllAssessments returns every stored assessment row.
	GetAllAssessments() ([]schema.AssessmentRecord, error)

	// GetAllRiskFactors returns every stored risk factor row.
	GetAllRiskFactors() ([]schema.RiskFactorRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// AnomalyDetector flags statistically outlying rows of a per-day feature
// matrix. The deterministic Z-score detector is always available; an
// isolation-forest style detector can be plugged in without the engine
// hard-depending on an ML library.
type AnomalyDetector interface {
	// Detect returns the indices of outlying rows, ascending.
	Detect(matrix [][]float64) []int
}
