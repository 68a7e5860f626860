package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAssessmentResult outputs one assessment, dispatching based on the
// output format configured.
func WriteAssessmentResult(result *schema.AssessmentResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtOptFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentCSV(w, result, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentReport(result, cfg, fmtFloat, fmtOptFloat, duration, w)
		}, "Wrote report")
	}
	return nil
}

// writeAssessmentCSV flattens the ranked risk factors into CSV rows.
func writeAssessmentCSV(w io.Writer, result *schema.AssessmentResult, fmtFloat func(float64) string) error {
	header := []string{"rank", "category", "name", "risk_score", "closeness", "priority", "evidence"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, f := range result.TopRiskFactors {
			rec := []string{
				strconv.Itoa(i + 1),
				f.Category,
				f.Name,
				fmtFloat(f.RiskScore),
				fmt.Sprintf("%.3f", f.Closeness),
				string(f.Priority),
				strings.Join(f.Evidence, "; "),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeAssessmentReport generates the human-readable assessment report.
func writeAssessmentReport(result *schema.AssessmentResult, cfg *contract.Config, fmtFloat func(float64) string, fmtOptFloat func(*float64) string, duration time.Duration, writer io.Writer) error {
	healthLabel := string(result.HealthLevel)
	if cfg.UseColors {
		healthLabel = contract.ColorHealthLevel(result.HealthLevel)
	}
	fmt.Fprintf(writer, "Assessment for user %s\n", result.UserID)
	fmt.Fprintf(writer, "Overall score: %s (%s)\n", fmtFloat(result.OverallScore), healthLabel)
	fmt.Fprintf(writer, "Dimension risk: disease %s | lifestyle %s | trend %s\n",
		fmtOptFloat(result.DiseaseRiskScore), fmtOptFloat(result.LifestyleRiskScore), fmtOptFloat(result.TrendRiskScore))
	if result.DataQuality != "" {
		fmt.Fprintf(writer, "Data quality: %s\n", result.DataQuality)
	}
	fmt.Fprintln(writer)

	if len(result.DiseaseResults) > 0 {
		if err := writeDiseaseTable(result, cfg, fmtFloat, writer); err != nil {
			return err
		}
		fmt.Fprintln(writer)
	}

	if result.LifestyleResult != nil {
		writeLifestyleSection(result.LifestyleResult, fmtFloat, writer)
		fmt.Fprintln(writer)
	}

	if len(result.TopRiskFactors) > 0 {
		if err := writeRiskFactorTable(result.TopRiskFactors, cfg, fmtFloat, writer); err != nil {
			return err
		}
		fmt.Fprintln(writer)
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(writer, "Recommendations:")
		for i, rec := range result.Recommendations {
			fmt.Fprintf(writer, "  %d. %s\n", i+1, rec)
		}
		fmt.Fprintln(writer)
	}

	fmt.Fprintf(writer, "Assessment completed in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}

// writeDiseaseTable renders the per-disease summary table.
func writeDiseaseTable(result *schema.AssessmentResult, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Disease", "Risk", "Level", "Control", "Status", "Compliance"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	names := make([]string, 0, len(result.DiseaseResults))
	for name := range result.DiseaseResults {
		names = append(names, name)
	}
	sort.Strings(names)

	var data [][]string
	for _, name := range names {
		d := result.DiseaseResults[name]
		riskLabel := contract.GetPlainRiskLabel(d.RiskScore)
		if cfg.UseColors {
			riskLabel = contract.GetColorRiskLabel(d.RiskScore)
		}
		compliance := "-"
		if d.ComplianceRate != nil {
			compliance = fmt.Sprintf("%.0f%%", *d.ComplianceRate*100)
		}
		data = append(data, []string{
			name,
			fmtFloat(d.RiskScore),
			riskLabel,
			fmtFloat(d.ControlScore),
			string(d.ControlStatus),
			compliance,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeLifestyleSection renders the lifestyle dimension scores and issues.
func writeLifestyleSection(l *schema.LifestyleRiskResult, fmtFloat func(float64) string, writer io.Writer) {
	fmt.Fprintf(writer, "Lifestyle score: %s (%s risk)\n", fmtFloat(l.OverallScore), l.RiskLevel)
	fmt.Fprintf(writer, "  sleep %s | exercise %s | diet %s | regularity %s\n",
		fmtFloat(l.Sleep.Score), fmtFloat(l.Exercise.Score), fmtFloat(l.Diet.Score), fmtFloat(l.Regularity.Score))
	for _, issue := range l.KeyIssues {
		fmt.Fprintf(writer, "  - %s\n", issue)
	}
}

// writeRiskFactorTable renders the ranked risk factors.
func writeRiskFactorTable(factors []schema.RiskFactor, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Category", "Name", "Risk", "Closeness", "Priority", "Evidence"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	evidenceWidth := getTerminalWidth(cfg) - 60
	if evidenceWidth < 20 {
		evidenceWidth = 20
	}

	var data [][]string
	for i, f := range factors {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			f.Category,
			f.Name,
			fmtFloat(f.RiskScore),
			fmt.Sprintf("%.3f", f.Closeness),
			string(f.Priority),
			truncate(strings.Join(f.Evidence, "; "), evidenceWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
