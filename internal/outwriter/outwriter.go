// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the
// command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAssessment prints a full assessment result using the configured output format.
func (ow *OutWriter) WriteAssessment(result *schema.AssessmentResult, cfg *contract.Config, duration time.Duration) error {
	return WriteAssessmentResult(result, cfg, duration)
}

// WriteTrends prints trend alerts using the configured output format.
func (ow *OutWriter) WriteTrends(alerts []schema.TrendAlert, cfg *contract.Config, duration time.Duration) error {
	return WriteTrendAlerts(alerts, cfg, duration)
}

// WriteMetrics prints the metric reference (normal ranges, thresholds and
// active weights) using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return WriteMetricReference(cfg)
}

// getTerminalWidth returns the effective terminal width, honoring the
// configured override and falling back to a conservative default for CI.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}
