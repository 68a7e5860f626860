package core

import (
	"fmt"

	"github.com/songwei/vitalrisk/core/algo"
	"github.com/songwei/vitalrisk/schema"
)

// AssessDiabetes scores glycemic control and risk from fasting and
// postprandial glucose features. The composition mirrors the hypertension
// assessor: both glucose readings are scored through their own clinical band
// curves and the worse reading dominates. Returns nil when neither glucose
// metric has enough clean samples.
func AssessDiabetes(fs *schema.FeatureSet, baseline *schema.Baseline) *schema.DiseaseRiskResult {
	fasting := fs.Metric(schema.MetricFastingGluc)
	post := fs.Metric(schema.MetricPostprandial)
	if !fasting.Usable() && !post.Usable() {
		return nil
	}

	var levelRisk, levelControl float64
	var compliance, cv *float64
	grades := make(map[string]string)

	switch {
	case fasting.Usable() && post.Usable():
		levelRisk = max(
			algo.Interp(schema.FastingGlucoseRiskCurve, *fasting.Mean),
			algo.Interp(schema.PostprandialRiskCurve, *post.Mean),
		)
		levelControl = min(
			algo.Interp(schema.FastingGlucoseControlCurve, *fasting.Mean),
			algo.Interp(schema.PostprandialControlCurve, *post.Mean),
		)
		compliance = worseCompliance(fasting.ComplianceRate, post.ComplianceRate)
		cv = worseCV(fasting.CV, post.CV)
		grades[schema.MetricFastingGluc] = schema.GradeGlucose(*fasting.Mean)
		grades[schema.MetricPostprandial] = gradePostprandial(*post.Mean)
	case fasting.Usable():
		levelRisk = algo.Interp(schema.FastingGlucoseRiskCurve, *fasting.Mean)
		levelControl = algo.Interp(schema.FastingGlucoseControlCurve, *fasting.Mean)
		compliance = fasting.ComplianceRate
		cv = fasting.CV
		grades[schema.MetricFastingGluc] = schema.GradeGlucose(*fasting.Mean)
	default:
		levelRisk = algo.Interp(schema.PostprandialRiskCurve, *post.Mean)
		levelControl = algo.Interp(schema.PostprandialControlCurve, *post.Mean)
		compliance = post.ComplianceRate
		cv = post.CV
		grades[schema.MetricPostprandial] = gradePostprandial(*post.Mean)
	}

	risk := levelRisk + nonComplianceRisk(compliance) + volatilityRisk(cv)
	control := complianceComponent(compliance) + stabilityComponent(cv) + levelControl

	var dev float64
	var devOK bool
	if fasting.Usable() {
		dev, devOK = baselineDeviation(schema.MetricFastingGluc, *fasting.Mean, baseline)
	}
	if post.Usable() {
		if d, ok := baselineDeviation(schema.MetricPostprandial, *post.Mean, baseline); ok && d > dev {
			dev, devOK = d, true
		}
	}
	if devOK {
		risk += deviationRisk(dev)
	}

	risk = algo.ClampScore(risk)
	control = algo.ClampScore(control)

	var findings []string
	for _, metric := range []string{schema.MetricFastingGluc, schema.MetricPostprandial} {
		if grade, ok := grades[metric]; ok && grade != "normal" {
			findings = append(findings, fmt.Sprintf("average %s is in the %s", schema.DisplayName(metric), grade))
		}
	}
	findings = complianceFinding(findings, "blood glucose", compliance)
	findings = volatilityFinding(findings, "blood glucose", cv)
	findings = deviationFinding(findings, schema.MetricFastingGluc, dev, devOK)

	vol := schema.VolatilityMild
	if cv != nil {
		vol = schema.VolatilityLevelForCV(*cv)
	}

	return &schema.DiseaseRiskResult{
		Disease:        schema.DiseaseDiabetes,
		RiskScore:      risk,
		RiskLevel:      schema.RiskLevelForScore(risk),
		ControlScore:   control,
		ControlStatus:  schema.ControlStatusForScore(control),
		ComplianceRate: compliance,
		Volatility:     vol,
		KeyFindings:    findings,
		MetricGrades:   grades,
	}
}

// gradePostprandial labels a postprandial glucose mean against its bands
// (normal <7.8, impaired 7.8-11.1, diabetic >=11.1 mmol/L).
func gradePostprandial(v float64) string {
	switch {
	case v >= 11.1:
		return "diabetic range"
	case v >= 7.8:
		return "impaired glucose tolerance"
	default:
		return "normal"
	}
}
