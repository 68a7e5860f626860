package core

import (
	"fmt"

	"github.com/songwei/vitalrisk/core/algo"
	"github.com/songwei/vitalrisk/schema"
)

// lipidCurves maps each lipid fraction to its weighted risk curve. The curve
// maxima sum to 100, so the summed contributions form the risk score
// directly.
var lipidCurves = []struct {
	metric string
	curve  []schema.CurvePoint
}{
	{schema.MetricTC, schema.TCRiskCurve},
	{schema.MetricLDL, schema.LDLRiskCurve},
	{schema.MetricHDL, schema.HDLRiskCurve},
	{schema.MetricTG, schema.TGRiskCurve},
}

// AssessDyslipidemia classifies the four lipid fractions independently
// against their fixed bands and sums the weighted contributions into one
// risk score. Lipid panels are sparse spot checks, so this assessor carries
// no volatility or baseline dimension. Returns nil when no lipid fraction
// has enough clean samples.
func AssessDyslipidemia(fs *schema.FeatureSet, _ *schema.Baseline) *schema.DiseaseRiskResult {
	var risk float64
	var present, abnormal int
	var complianceSum float64
	var complianceN int
	grades := make(map[string]string)
	var findings []string

	for _, lc := range lipidCurves {
		mf := fs.Metric(lc.metric)
		if !mf.Usable() {
			continue
		}
		present++
		risk += algo.Interp(lc.curve, *mf.Mean)

		grade := schema.GradeLipid(lc.metric, *mf.Mean)
		grades[lc.metric] = grade
		if grade != "desirable" {
			abnormal++
			findings = append(findings, fmt.Sprintf("%s is %s (%.1f %s)", schema.DisplayName(lc.metric), grade, *mf.Mean, schema.Unit(lc.metric)))
		}
		if mf.ComplianceRate != nil {
			complianceSum += *mf.ComplianceRate
			complianceN++
		}
	}
	if present == 0 {
		return nil
	}

	risk = algo.ClampScore(risk)

	var compliance *float64
	if complianceN > 0 {
		rate := complianceSum / float64(complianceN)
		compliance = &rate
	}
	findings = complianceFinding(findings, "lipid", compliance)

	// Without a volatility dimension, control quality reduces to compliance
	// plus the inverse of the summed band risk.
	control := algo.ClampScore(complianceComponent(compliance) + (100-risk)*0.6)

	return &schema.DiseaseRiskResult{
		Disease:        schema.DiseaseDyslipidemia,
		RiskScore:      risk,
		RiskLevel:      schema.RiskLevelForScore(risk),
		ControlScore:   control,
		ControlStatus:  schema.ControlStatusForScore(control),
		ComplianceRate: compliance,
		Volatility:     schema.VolatilityMild,
		KeyFindings:    findings,
		MetricGrades:   grades,
	}
}
