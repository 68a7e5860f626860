package schema

import "time"

// AssessmentRecord is the flattened row persisted per assessment run.
// The full structured result rides along as JSON so downstream consumers
// (report rendering, exports) never lose detail to the flattening.
type AssessmentRecord struct {
	AssessmentID  string
	UserID        string
	GeneratedAt   time.Time
	OverallScore  float64
	HealthLevel   string
	DiseaseRisk   *float64
	LifestyleRisk *float64
	TrendRisk     *float64
	ResultJSON    string
}

// RiskFactorRecord is one ranked risk factor row persisted per assessment.
type RiskFactorRecord struct {
	AssessmentID string
	Rank         int
	Category     string
	Name         string
	RiskScore    float64
	Closeness    float64
	Priority     string
}

// StoreStatus reports the state of an assessment store.
type StoreStatus struct {
	Backend          DatabaseBackend
	Location         string
	TotalAssessments int64
	TotalRiskFactors int64
	LastGeneratedAt  *time.Time
}
