// Package parquet provides data structures and functions for exporting
// assessment history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/songwei/vitalrisk/schema"
)

// AssessmentRun represents one persisted assessment.
// This struct maps to the vitalrisk_assessments database table.
type AssessmentRun struct {
	// AssessmentID is the unique identifier for this assessment run
	AssessmentID string `parquet:"assessment_id,snappy"`

	// UserID is the assessed user
	UserID string `parquet:"user_id,snappy"`

	// GeneratedAt is when the assessment was produced
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// OverallScore is the fused 0-100 health score, higher is better
	OverallScore float64 `parquet:"overall_score,snappy"`

	// HealthLevel is the 5-band label derived from OverallScore
	HealthLevel string `parquet:"health_level,snappy"`

	// DiseaseRisk is the disease dimension risk score (nullable when the
	// dimension had no input)
	DiseaseRisk *float64 `parquet:"disease_risk,optional,snappy"`

	// LifestyleRisk is the lifestyle dimension risk score (nullable)
	LifestyleRisk *float64 `parquet:"lifestyle_risk,optional,snappy"`

	// TrendRisk is the trend dimension risk score (nullable)
	TrendRisk *float64 `parquet:"trend_risk,optional,snappy"`

	// ResultJSON is the full structured result for downstream consumers
	ResultJSON string `parquet:"result_json,snappy"`
}

// RiskFactorRow represents one ranked risk factor of an assessment.
// This struct maps to the vitalrisk_risk_factors database table.
type RiskFactorRow struct {
	// AssessmentID references the parent assessment run
	AssessmentID string `parquet:"assessment_id,snappy"`

	// Rank is the 1-based position in the ranked factor list
	Rank int32 `parquet:"factor_rank,snappy"`

	// Category is disease, lifestyle or trend
	Category string `parquet:"category,snappy"`

	// Name identifies the factor inside its category
	Name string `parquet:"name,snappy"`

	// RiskScore is the factor's own 0-100 risk score
	RiskScore float64 `parquet:"risk_score,snappy"`

	// Closeness is the TOPSIS relative closeness used for ranking
	Closeness float64 `parquet:"closeness,snappy"`

	// Priority is the closeness-derived label
	Priority string `parquet:"priority,snappy"`
}

// WriteAssessmentRunsParquet writes a slice of AssessmentRun structs to a Parquet file.
func WriteAssessmentRunsParquet(data []AssessmentRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the AssessmentRun struct tags
	writer := parquet.NewGenericWriter[AssessmentRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteRiskFactorsParquet writes a slice of RiskFactorRow structs to a Parquet file.
func WriteRiskFactorsParquet(data []RiskFactorRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[RiskFactorRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertAssessmentRecords converts database records to Parquet rows.
func ConvertAssessmentRecords(records []schema.AssessmentRecord) []AssessmentRun {
	result := make([]AssessmentRun, len(records))
	for i, r := range records {
		result[i] = AssessmentRun{
			AssessmentID:  r.AssessmentID,
			UserID:        r.UserID,
			GeneratedAt:   r.GeneratedAt,
			OverallScore:  r.OverallScore,
			HealthLevel:   r.HealthLevel,
			DiseaseRisk:   r.DiseaseRisk,
			LifestyleRisk: r.LifestyleRisk,
			TrendRisk:     r.TrendRisk,
			ResultJSON:    r.ResultJSON,
		}
	}
	return result
}

// ConvertRiskFactorRecords converts database records to Parquet rows.
func ConvertRiskFactorRecords(records []schema.RiskFactorRecord) []RiskFactorRow {
	result := make([]RiskFactorRow, len(records))
	for i, r := range records {
		result[i] = RiskFactorRow{
			AssessmentID: r.AssessmentID,
			Rank:         int32(r.Rank),
			Category:     r.Category,
			Name:         r.Name,
			RiskScore:    r.RiskScore,
			Closeness:    r.Closeness,
			Priority:     r.Priority,
		}
	}
	return result
}
