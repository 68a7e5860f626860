package contract

import (
	"context"
	"time"

	"github.com/songwei/vitalrisk/schema"
	"github.com/stretchr/testify/mock"
)

// MockMeasurementSource is a testify mock for MeasurementSource.
type MockMeasurementSource struct {
	mock.Mock
}

var _ MeasurementSource = &MockMeasurementSource{} // Compile-time check

// FetchSeries mocks the measurement series lookup.
func (m *MockMeasurementSource) FetchSeries(ctx context.Context, userID string, start, end time.Time) (map[string]schema.MetricSeries, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]schema.MetricSeries), args.Error(1)
}

// FetchHistorical mocks the baseline window lookup.
func (m *MockMeasurementSource) FetchHistorical(ctx context.Context, userID string, end time.Time, windowDays int) (map[string]schema.MetricSeries, error) {
	args := m.Called(ctx, userID, end, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]schema.MetricSeries), args.Error(1)
}

// FetchDietReport mocks the diet self-report lookup.
func (m *MockMeasurementSource) FetchDietReport(ctx context.Context, userID string) (*schema.DietReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schema.DietReport), args.Error(1)
}

// MockAssessmentStore is a testify mock for AssessmentStore.
type MockAssessmentStore struct {
	mock.Mock
}

var _ AssessmentStore = &MockAssessmentStore{} // Compile-time check

// SaveResult mocks persisting a result.
func (m *MockAssessmentStore) SaveResult(result *schema.AssessmentResult) error {
	args := m.Called(result)
	return args.Error(0)
}

// GetAllAssessments mocks reading back all assessment rows.
func (m *MockAssessmentStore) GetAllAssessments() ([]schema.AssessmentRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.AssessmentRecord), args.Error(1)
}

// GetAllRiskFactors mocks reading back all risk factor rows.
func (m *MockAssessmentStore) GetAllRiskFactors() ([]schema.RiskFactorRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.RiskFactorRecord), args.Error(1)
}

// GetStatus mocks the store status lookup.
func (m *MockAssessmentStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close mocks closing the store.
func (m *MockAssessmentStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
