package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteTrendAlerts outputs trend analysis results, dispatching based on the
// output format configured.
func WriteTrendAlerts(alerts []schema.TrendAlert, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, alerts)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, alerts, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(alerts, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeTrendCSV writes the trend alerts in CSV format.
func writeTrendCSV(w io.Writer, alerts []schema.TrendAlert, fmtFloat func(float64) string) error {
	header := []string{"metric", "alert_level", "direction", "current", "average", "slope", "volatility", "consecutive_abnormal", "message"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, a := range alerts {
			rec := []string{
				a.MetricName,
				string(a.AlertLevel),
				string(a.TrendDirection),
				fmtFloat(a.CurrentValue),
				fmtFloat(a.AvgValue),
				fmt.Sprintf("%.3f", a.Slope),
				fmt.Sprintf("%.3f", a.Volatility),
				strconv.Itoa(a.ConsecutiveAbnormal),
				a.Message,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeTrendTable generates and writes the human-readable trend table.
func writeTrendTable(alerts []schema.TrendAlert, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Metric", "Alert", "Direction", "Current", "Avg", "Slope/Day", "CV", "Message"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	messageWidth := getTerminalWidth(cfg) - 70
	if messageWidth < 20 {
		messageWidth = 20
	}

	var data [][]string
	for _, a := range alerts {
		alertLabel := string(a.AlertLevel)
		if cfg.UseColors {
			alertLabel = contract.ColorAlertLevel(a.AlertLevel)
		}
		data = append(data, []string{
			schema.DisplayName(a.MetricName),
			alertLabel,
			string(a.TrendDirection),
			fmtFloat(a.CurrentValue),
			fmtFloat(a.AvgValue),
			fmt.Sprintf("%.3f", a.Slope),
			fmt.Sprintf("%.3f", a.Volatility),
			truncate(a.Message, messageWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	abnormal := 0
	for _, a := range alerts {
		if a.AlertLevel != schema.AlertNormal {
			abnormal++
		}
	}
	if _, err := fmt.Fprintf(writer, "Analyzed %d metrics (%d with alerts)\n", len(alerts), abnormal); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Trend analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
