package cmd

import (
	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/internal/outwriter"
	"github.com/spf13/cobra"
)

// metricsCmd shows the active metric bands, thresholds and weight tables.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show metric reference bands, thresholds and weights.",
	Long: `Display the reference tables the engine assesses against.

Shows:
- Clinically normal band per metric (tuned for an elderly population)
- Trend alert thresholds (slope and volatility warning levels)
- The fusion weight tables, including any config file overrides

Use this to verify which thresholds a deployment is running with before
interpreting its reports.

Examples:
  # Print the reference tables
  vitalrisk metrics

  # Machine-readable form, including full thresholds
  vitalrisk metrics --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ow := outwriter.NewOutWriter()
		if err := ow.WriteMetrics(cfg); err != nil {
			contract.LogFatal("Cannot write metric reference", err)
		}
	},
}
