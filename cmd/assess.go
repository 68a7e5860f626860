package cmd

import (
	"errors"
	"time"

	"github.com/songwei/vitalrisk/core"
	"github.com/songwei/vitalrisk/internal/assessstore"
	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/internal/outwriter"
	"github.com/songwei/vitalrisk/internal/source"
	"github.com/spf13/cobra"
)

// assessCmd runs the full risk assessment pipeline for one user.
var assessCmd = &cobra.Command{
	Use:   "assess [input-file]",
	Short: "Run a full health risk assessment for one user.",
	Long: `Run the complete assessment pipeline on a measurement export.

The pipeline:
- Cleans each metric series and derives per-metric features
- Scores hypertension, diabetes and dyslipidemia risk and control quality
- Scores sleep, exercise and diet habits and flags anomalous days
- Analyzes each metric series for drift, volatility and abnormal runs
- Fuses the three dimensions into one graded score with ranked risk factors

Missing data degrades gracefully: dimensions without input are dropped from
fusion weighting instead of failing the run.

Examples:
  # Assess the last 30 days from an export file
  vitalrisk assess --user wang-123 --input measurements.json

  # Shorter window, machine-readable output
  vitalrisk assess -u wang-123 -i measurements.json --days 14 --output json

  # Keep results out of the local store
  vitalrisk assess -u wang-123 -i measurements.json --store-backend none`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		if cfg.InputFile == "" {
			contract.LogFatal("Cannot run assessment", errors.New("--input is required"))
		}

		src, err := source.NewFileSource(cfg.InputFile)
		if err != nil {
			contract.LogFatal("Cannot read measurements", err)
		}

		store, err := assessstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open assessment store", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				contract.LogWarn("closing assessment store", err)
			}
		}()

		result, err := core.ExecuteAssessment(rootCtx, cfg, src, store)
		if err != nil {
			contract.LogFatal("Cannot run assessment", err)
		}

		ow := outwriter.NewOutWriter()
		if err := ow.WriteAssessment(result, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write assessment output", err)
		}
	},
}
