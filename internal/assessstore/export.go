package assessstore

import (
	"errors"
	"fmt"

	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/internal/parquet"
	"github.com/songwei/vitalrisk/schema"
)

// ExecuteExport dumps the assessment history to a pair of Parquet files.
func ExecuteExport(store contract.AssessmentStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalAssessments == 0 {
		return errors.New("no assessment data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total assessments: %d\n", status.TotalAssessments)
	fmt.Printf("Total risk factors: %d\n", status.TotalRiskFactors)

	assessments, err := store.GetAllAssessments()
	if err != nil {
		return fmt.Errorf("failed to retrieve assessments: %w", err)
	}
	riskFactors, err := store.GetAllRiskFactors()
	if err != nil {
		return fmt.Errorf("failed to retrieve risk factors: %w", err)
	}

	assessmentRows := parquet.ConvertAssessmentRecords(assessments)
	factorRows := parquet.ConvertRiskFactorRecords(riskFactors)

	assessmentsFile := outputFile + ".assessments.parquet"
	if err := parquet.WriteAssessmentRunsParquet(assessmentRows, assessmentsFile); err != nil {
		return fmt.Errorf("failed to write assessments: %w", err)
	}
	fmt.Printf("Exported %d assessments to: %s\n", len(assessmentRows), assessmentsFile)

	factorsFile := outputFile + ".risk_factors.parquet"
	if err := parquet.WriteRiskFactorsParquet(factorRows, factorsFile); err != nil {
		return fmt.Errorf("failed to write risk factors: %w", err)
	}
	fmt.Printf("Exported %d risk factor rows to: %s\n", len(factorRows), factorsFile)

	return nil
}

// PrintStoreStatus prints store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Total Assessments: %d\n", status.TotalAssessments)
	fmt.Printf("Total Risk Factors: %d\n", status.TotalRiskFactors)
	if status.LastGeneratedAt != nil {
		fmt.Printf("Last Assessment: %s\n", status.LastGeneratedAt.Format("2006-01-02 15:04:05"))
	}
}
