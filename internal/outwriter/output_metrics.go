package outwriter

import (
	"fmt"
	"io"
	"sort"

	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// metricReference is the JSON shape of the metric reference output.
type metricReference struct {
	Metrics          []metricReferenceRow              `json:"metrics"`
	DiseaseWeights   map[string]float64                `json:"disease_weights"`
	DimensionWeights map[string]float64                `json:"dimension_weights"`
	TopsisWeights    map[string]float64                `json:"topsis_weights"`
	LifestyleWeights map[string]float64                `json:"lifestyle_weights"`
	TrendThresholds  map[string]schema.TrendThresholds `json:"trend_thresholds"`
}

type metricReferenceRow struct {
	Metric      string   `json:"metric"`
	DisplayName string   `json:"display_name"`
	Unit        string   `json:"unit"`
	NormalLow   *float64 `json:"normal_low"`
	NormalHigh  *float64 `json:"normal_high"`
}

// WriteMetricReference outputs the active metric bands, thresholds and weight
// tables, dispatching based on the output format configured.
func WriteMetricReference(cfg *contract.Config) error {
	ref := buildMetricReference(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, ref)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricReferenceText(ref, w)
		}, "Wrote reference")
	}
}

func buildMetricReference(cfg *contract.Config) metricReference {
	metrics := make([]string, 0, len(schema.NormalRanges))
	for name := range schema.NormalRanges {
		metrics = append(metrics, name)
	}
	sort.Strings(metrics)

	rows := make([]metricReferenceRow, 0, len(metrics))
	for _, name := range metrics {
		band := schema.NormalRanges[name]
		rows = append(rows, metricReferenceRow{
			Metric:      name,
			DisplayName: schema.DisplayName(name),
			Unit:        schema.Unit(name),
			NormalLow:   band.Low,
			NormalHigh:  band.High,
		})
	}

	return metricReference{
		Metrics:          rows,
		DiseaseWeights:   cfg.DiseaseWeights,
		DimensionWeights: cfg.DimensionWeights,
		TopsisWeights:    cfg.TopsisWeights,
		LifestyleWeights: cfg.LifestyleWeights,
		TrendThresholds:  cfg.TrendThresholds,
	}
}

// writeMetricReferenceText renders the reference tables for the terminal.
func writeMetricReferenceText(ref metricReference, writer io.Writer) error {
	fmt.Fprintln(writer, "Metric normal ranges:")
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Metric", "Unit", "Normal Low", "Normal High", "Slope Warn", "CV Warn"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	fmtBound := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.1f", *v)
	}

	var data [][]string
	for _, row := range ref.Metrics {
		slopeWarn, cvWarn := "-", "-"
		if th, ok := ref.TrendThresholds[row.Metric]; ok {
			slopeWarn = fmt.Sprintf("%.1f", th.SlopeWarn)
			cvWarn = fmt.Sprintf("%.2f", th.CVWarn)
		}
		data = append(data, []string{
			row.DisplayName,
			row.Unit,
			fmtBound(row.NormalLow),
			fmtBound(row.NormalHigh),
			slopeWarn,
			cvWarn,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "Fusion formulas:")
	fmt.Fprintf(writer, "  overall = %s (renormalized over present dimensions)\n",
		formatWeights(ref.DimensionWeights, []string{schema.DimensionDisease, schema.DimensionLifestyle, schema.DimensionTrend}))
	fmt.Fprintf(writer, "  disease = %s\n",
		formatWeights(ref.DiseaseWeights, []string{schema.DiseaseHypertension, schema.DiseaseDiabetes, schema.DiseaseDyslipidemia}))
	fmt.Fprintf(writer, "  topsis  = %s\n",
		formatWeights(ref.TopsisWeights, []string{schema.CriterionSeverity, schema.CriterionUrgency, schema.CriterionFrequency, schema.CriterionTrend}))
	fmt.Fprintf(writer, "  lifestyle = %s\n",
		formatWeights(ref.LifestyleWeights, []string{schema.LifestyleSleep, schema.LifestyleExercise, schema.LifestyleDiet, schema.LifestyleRegularity}))
	return nil
}
