package cmd

import (
	"errors"
	"time"

	"github.com/songwei/vitalrisk/core"
	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/internal/outwriter"
	"github.com/songwei/vitalrisk/internal/source"
	"github.com/spf13/cobra"
)

// trendsCmd runs the trend analysis stage on its own.
var trendsCmd = &cobra.Command{
	Use:   "trends [input-file]",
	Short: "Analyze metric trends without a full assessment.",
	Long: `Run per-metric trend analysis over the assessment window.

For every metric with enough readings, reports:
- Trend direction (rising, falling, stable, volatile)
- Per-day slope from a least-squares fit on measurement timestamps
- Volatility as the coefficient of variation
- Consecutive out-of-range readings ending at the latest sample
- An alert level with a plain-language message and suggestion

Alerts are ordered most-severe-first.

Examples:
  # Show trend alerts for the last 30 days
  vitalrisk trends --user wang-123 --input measurements.json

  # Export alerts to CSV
  vitalrisk trends -u wang-123 -i measurements.json --output csv --output-file alerts.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		if cfg.InputFile == "" {
			contract.LogFatal("Cannot run trend analysis", errors.New("--input is required"))
		}

		src, err := source.NewFileSource(cfg.InputFile)
		if err != nil {
			contract.LogFatal("Cannot read measurements", err)
		}

		end := time.Now()
		windowStart := end.AddDate(0, 0, -cfg.AssessmentDays)
		seriesByMetric, err := src.FetchSeries(rootCtx, cfg.UserID, windowStart, end)
		if err != nil {
			contract.LogFatal("Cannot fetch measurements", err)
		}

		alerts := core.AnalyzeAllMetrics(seriesByMetric, cfg.TrendThresholds)

		ow := outwriter.NewOutWriter()
		if err := ow.WriteTrends(alerts, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write trend output", err)
		}
	},
}
