package core

import (
	"fmt"

	"github.com/songwei/vitalrisk/core/algo"
	"github.com/songwei/vitalrisk/schema"
)

// AssessHypertension scores blood pressure control and risk from the feature
// set. Systolic and diastolic readings are scored independently through
// piecewise-linear clinical band curves and combined by taking the worse of
// the two, so the more severe reading always dominates. Returns nil when
// neither pressure metric has enough clean samples; the caller simply skips
// the disease in that case.
func AssessHypertension(fs *schema.FeatureSet, baseline *schema.Baseline) *schema.DiseaseRiskResult {
	sys := fs.Metric(schema.MetricSystolic)
	dia := fs.Metric(schema.MetricDiastolic)
	if !sys.Usable() && !dia.Usable() {
		return nil
	}

	var levelRisk, levelControl float64
	var compliance, cv *float64
	grades := make(map[string]string)

	switch {
	case sys.Usable() && dia.Usable():
		levelRisk = max(
			algo.Interp(schema.SystolicRiskCurve, *sys.Mean),
			algo.Interp(schema.DiastolicRiskCurve, *dia.Mean),
		)
		levelControl = min(
			algo.Interp(schema.SystolicControlCurve, *sys.Mean),
			algo.Interp(schema.DiastolicControlCurve, *dia.Mean),
		)
		compliance = worseCompliance(sys.ComplianceRate, dia.ComplianceRate)
		cv = worseCV(sys.CV, dia.CV)
		grades["blood_pressure"] = schema.GradeBP(*sys.Mean, *dia.Mean)
	case sys.Usable():
		levelRisk = algo.Interp(schema.SystolicRiskCurve, *sys.Mean)
		levelControl = algo.Interp(schema.SystolicControlCurve, *sys.Mean)
		compliance = sys.ComplianceRate
		cv = sys.CV
		grades["blood_pressure"] = schema.GradeBP(*sys.Mean, 0)
	default:
		levelRisk = algo.Interp(schema.DiastolicRiskCurve, *dia.Mean)
		levelControl = algo.Interp(schema.DiastolicControlCurve, *dia.Mean)
		compliance = dia.ComplianceRate
		cv = dia.CV
		grades["blood_pressure"] = schema.GradeBP(0, *dia.Mean)
	}

	risk := levelRisk + nonComplianceRisk(compliance) + volatilityRisk(cv)
	control := complianceComponent(compliance) + stabilityComponent(cv) + levelControl

	var dev float64
	var devOK bool
	if sys.Usable() {
		dev, devOK = baselineDeviation(schema.MetricSystolic, *sys.Mean, baseline)
	}
	if dia.Usable() {
		if d, ok := baselineDeviation(schema.MetricDiastolic, *dia.Mean, baseline); ok && d > dev {
			dev, devOK = d, true
		}
	}
	if devOK {
		risk += deviationRisk(dev)
	}

	risk = algo.ClampScore(risk)
	control = algo.ClampScore(control)

	var findings []string
	if grade := grades["blood_pressure"]; grade != "normal" {
		findings = append(findings, fmt.Sprintf("average blood pressure is in the %s", describeGrade(grade)))
	}
	findings = complianceFinding(findings, "blood pressure", compliance)
	findings = volatilityFinding(findings, "blood pressure", cv)
	findings = deviationFinding(findings, schema.MetricSystolic, dev, devOK)

	vol := schema.VolatilityMild
	if cv != nil {
		vol = schema.VolatilityLevelForCV(*cv)
	}

	return &schema.DiseaseRiskResult{
		Disease:        schema.DiseaseHypertension,
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

// describeGrade phrases a grade label for a finding sentence.
func describeGrade(grade string) string {
	if grade == "elevated" {
		return "elevated range"
	}
	return grade
}
