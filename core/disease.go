package core

import (
	"fmt"
	"math"

	"github.com/songwei/vitalrisk/core/algo"
	"github.com/songwei/vitalrisk/schema"
)

// Component caps of the disease score composition. The control-quality score
// is compliance(<=40) + stability(<=30) + level(<=30); the risk score is
// level(<=40) + non-compliance(<=25) + volatility(<=20) + baseline
// deviation(<=15).
const (
	complianceControlCap = 40.0
	nonComplianceRiskCap = 25.0

	// neutralComplianceComponent is granted when a metric has no defined
	// normal band, so the absent dimension neither rewards nor punishes.
	neutralComplianceComponent = 20.0
	neutralStabilityComponent  = 20.0

	complianceFindingThreshold = 0.8
)

// complianceComponent maps a compliance rate onto the control score.
func complianceComponent(rate *float64) float64 {
	if rate == nil {
		return neutralComplianceComponent
	}
	return algo.Clamp01(*rate) * complianceControlCap
}

// stabilityComponent maps a coefficient of variation onto the control score
// through the smoothed stability curve.
func stabilityComponent(cv *float64) float64 {
	if cv == nil {
		return neutralStabilityComponent
	}
	return algo.Interp(schema.StabilityCurve, *cv)
}

// nonComplianceRisk maps a compliance rate onto the risk score.
func nonComplianceRisk(rate *float64) float64 {
	if rate == nil {
		return 0
	}
	return (1 - algo.Clamp01(*rate)) * nonComplianceRiskCap
}

// volatilityRisk maps a coefficient of variation onto the risk score.
func volatilityRisk(cv *float64) float64 {
	if cv == nil {
		return 0
	}
	return algo.Interp(schema.VolatilityRiskCurve, *cv)
}

// baselineDeviation returns how far the period mean drifted from the
// personal baseline, in baseline standard deviations. A missing or
// degenerate baseline (zero spread) reports not-ok and contributes nothing,
// per the InvalidBaseline handling rule.
func baselineDeviation(metric string, mean float64, baseline *schema.Baseline) (float64, bool) {
	st, ok := baseline.Stats(metric)
	if !ok || st.Std <= 0 {
		return 0, false
	}
	return math.Abs(mean-st.Mean) / st.Std, true
}

// deviationRisk maps a baseline deviation onto the risk score.
func deviationRisk(dev float64) float64 {
	return algo.Interp(schema.DeviationRiskCurve, dev)
}

// worseCompliance returns the lower of two optional compliance rates; the
// more severe reading dominates, mirroring the worse-of rule for levels.
func worseCompliance(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a < *b:
		return a
	default:
		return b
	}
}

// worseCV returns the higher of two optional coefficients of variation.
func worseCV(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a > *b:
		return a
	default:
		return b
	}
}

// volatilityFinding appends a volatility note when the metric fluctuates
// moderately or severely.
func volatilityFinding(findings []string, disease string, cv *float64) []string {
	if cv == nil {
		return findings
	}
	switch schema.VolatilityLevelForCV(*cv) {
	case schema.VolatilitySevere:
		return append(findings, fmt.Sprintf("%s readings fluctuate severely (cv %.2f); review measurement timing and medication adherence", disease, *cv))
	case schema.VolatilityModerate:
		return append(findings, fmt.Sprintf("%s readings fluctuate moderately (cv %.2f)", disease, *cv))
	default:
		return findings
	}
}

// complianceFinding appends a compliance note when the rate drops below the
// reporting threshold.
func complianceFinding(findings []string, disease string, rate *float64) []string {
	if rate == nil || *rate >= complianceFindingThreshold {
		return findings
	}
	return append(findings, fmt.Sprintf("only %.0f%% of %s readings were within the target range", *rate*100, disease))
}

// deviationFinding appends a baseline drift note when the deviation exceeds
// the configured threshold.
func deviationFinding(findings []string, metric string, dev float64, ok bool) []string {
	if !ok || dev < schema.BaselineDeviationNoteThreshold {
		return findings
	}
	return append(findings, fmt.Sprintf("%s drifted %.1f standard deviations from the personal baseline", schema.DisplayName(metric), dev))
}
