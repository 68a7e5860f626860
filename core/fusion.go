package core

import (
	"fmt"
	"sort"

	"github.com/songwei/vitalrisk/core/algo"
	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"
)

// Candidate extraction and trend mapping constants.
const (
	diseaseCandidateFloor = 30.0 // diseases scoring above this become risk factor candidates

	trendWorseningBase  = 50.0
	trendWorseningStep  = 10.0
	trendImprovingBase  = 20.0
	trendImprovingStep  = 5.0
	trendStableRisk     = 30.0
	defaultOverallScore = 70.0
)

// FusionOptions carries the configured weight tables and limits. A nil
// options value falls back to the schema defaults.
type FusionOptions struct {
	DiseaseWeights     map[string]float64
	DimensionWeights   map[string]float64
	TopsisWeights      map[string]float64
	TopFactors         int
	MaxRecommendations int
}

func (o *FusionOptions) normalized() *FusionOptions {
	out := &FusionOptions{
		TopFactors:         contract.DefaultTopFactors,
		MaxRecommendations: contract.DefaultMaxRecommendations,
	}
	if o != nil {
		*out = *o
	}
	if out.DiseaseWeights == nil {
		out.DiseaseWeights = schema.GetDefaultDiseaseWeights()
	}
	if out.DimensionWeights == nil {
		out.DimensionWeights = schema.GetDefaultDimensionWeights()
	}
	if out.TopsisWeights == nil {
		out.TopsisWeights = schema.GetDefaultTopsisWeights()
	}
	if out.TopFactors <= 0 {
		out.TopFactors = contract.DefaultTopFactors
	}
	if out.MaxRecommendations <= 0 {
		out.MaxRecommendations = contract.DefaultMaxRecommendations
	}
	return out
}

// FuseRisks combines the disease, lifestyle and trend result sets into one
// graded, explainable assessment. Absent dimensions never error: their
// weight is dropped and the remaining weights renormalized. The function is
// deterministic; identical inputs yield identical results.
func FuseRisks(diseases map[string]schema.DiseaseRiskResult, lifestyle *schema.LifestyleRiskResult, alerts []schema.TrendAlert, userID, assessmentID string, opts *FusionOptions) *schema.AssessmentResult {
	o := opts.normalized()

	result := &schema.AssessmentResult{
		AssessmentID:    assessmentID,
		UserID:          userID,
		DiseaseResults:  diseases,
		LifestyleResult: lifestyle,
		TrendAlerts:     alerts,
	}

	// --- 1. Dimension risk scores ---
	diseaseRisk, diseaseOK := diseaseRiskScore(diseases, o.DiseaseWeights)
	if diseaseOK {
		result.DiseaseRiskScore = &diseaseRisk
	}
	var lifestyleRisk float64
	if lifestyle != nil {
		lifestyleRisk = 100 - lifestyle.OverallScore
		result.LifestyleRiskScore = &lifestyleRisk
	}
	trendRisk, trendOK := trendRiskScore(alerts)
	if trendOK {
		result.TrendRiskScore = &trendRisk
	}

	// --- 2. Overall score with weight renormalization ---
	weights := presentDimensionWeights(o.DimensionWeights, diseaseOK, lifestyle != nil, trendOK)
	if len(weights) == 0 {
		// Degenerate case: nothing to fuse. Return a neutral result with an
		// explicit data quality note instead of erroring.
		result.OverallScore = defaultOverallScore
		result.HealthLevel = schema.HealthLevelForScore(defaultOverallScore)
		result.TopRiskFactors = []schema.RiskFactor{}
		result.Recommendations = []string{genericRecommendation}
		result.FeatureImportance = map[string]float64{}
		result.RiskDistribution = map[string]float64{}
		result.DataQuality = "no usable metrics, lifestyle or trend data in this period"
		return result
	}

	var overall float64
	if w, ok := weights[schema.DimensionDisease]; ok {
		overall += (100 - diseaseRisk) * w
	}
	if w, ok := weights[schema.DimensionLifestyle]; ok {
		overall += lifestyle.OverallScore * w
	}
	if w, ok := weights[schema.DimensionTrend]; ok {
		overall += (100 - trendRisk) * w
	}
	overall = algo.ClampScore(overall)
	result.OverallScore = overall

	// --- 3. Health level ---
	result.HealthLevel = schema.HealthLevelForScore(overall)

	// --- 4. Candidate extraction ---
	candidates := extractCandidates(diseases, lifestyle, alerts)

	// --- 5. TOPSIS ranking ---
	ranked := rankCandidates(candidates, o.TopsisWeights)
	top := algo.RankFactors(ranked, o.TopFactors)
	if top == nil {
		top = []schema.RiskFactor{}
	}
	result.TopRiskFactors = top

	// --- 6. Recommendations ---
	result.Recommendations = buildRecommendations(top, result.HealthLevel, o.MaxRecommendations)

	result.FeatureImportance = weights
	result.RiskDistribution = riskDistribution(candidates)
	return result
}

// diseaseRiskScore is the AHP-weighted average of per-disease risk scores,
// renormalized over the diseases actually present.
func diseaseRiskScore(diseases map[string]schema.DiseaseRiskResult, weights map[string]float64) (float64, bool) {
	if len(diseases) == 0 {
		return 0, false
	}
	names := make([]string, 0, len(diseases))
	for name := range diseases {
		names = append(names, name)
	}
	sort.Strings(names)

	var weighted, total float64
	for _, name := range names {
		w, ok := weights[name]
		if !ok {
			w = 0.25 // unconfigured diseases still participate with a floor weight
		}
		weighted += diseases[name].RiskScore * w
		total += w
	}
	if total == 0 {
		return 0, false
	}
	return weighted / total, true
}

// lowIsBadMetrics marks metrics where a falling trend worsens health.
var lowIsBadMetrics = map[string]struct{}{
	schema.MetricSpO2:       {},
	schema.MetricSteps:      {},
	schema.MetricHDL:        {},
	schema.MetricSleepHours: {},
}

// trendRiskScore maps each alert's direction onto a risk value and averages
// over the metrics: worsening 50+10*|deviation| capped at 100, improving
// 20-5*|deviation| floored at 0, stable 30.
func trendRiskScore(alerts []schema.TrendAlert) (float64, bool) {
	if len(alerts) == 0 {
		return 0, false
	}
	var sum float64
	for _, a := range alerts {
		dev := alertDeviation(a)
		switch classifyMovement(a) {
		case movementWorsening:
			sum += min(100, trendWorseningBase+trendWorseningStep*dev)
		case movementImproving:
			sum += max(0, trendImprovingBase-trendImprovingStep*dev)
		default:
			sum += trendStableRisk
		}
	}
	return sum / float64(len(alerts)), true
}

type movement int

const (
	movementStable movement = iota
	movementWorsening
	movementImproving
)

// classifyMovement folds the trend direction with the metric's polarity.
// Volatile series count as worsening: erratic vitals are a risk in
// themselves for an elderly population.
func classifyMovement(a schema.TrendAlert) movement {
	_, lowBad := lowIsBadMetrics[a.MetricName]
	switch a.TrendDirection {
	case schema.TrendVolatile:
		return movementWorsening
	case schema.TrendRising:
		if lowBad {
			return movementImproving
		}
		return movementWorsening
	case schema.TrendFalling:
		if lowBad {
			return movementWorsening
		}
		return movementImproving
	default:
		return movementStable
	}
}

// alertDeviation expresses how far the current value sits from the series
// mean, in standard deviations reconstructed from the cv. Guarded against
// zero spread.
func alertDeviation(a schema.TrendAlert) float64 {
	std := a.Volatility * absFloat(a.AvgValue)
	if std == 0 {
		return 0
	}
	return absFloat(a.CurrentValue-a.AvgValue) / std
}

// presentDimensionWeights renormalizes the configured dimension weights over
// the dimensions that produced a score.
func presentDimensionWeights(configured map[string]float64, disease, lifestyle, trend bool) map[string]float64 {
	present := make(map[string]float64, 3)
	if disease {
		present[schema.DimensionDisease] = configured[schema.DimensionDisease]
	}
	if lifestyle {
		present[schema.DimensionLifestyle] = configured[schema.DimensionLifestyle]
	}
	if trend {
		present[schema.DimensionTrend] = configured[schema.DimensionTrend]
	}
	var total float64
	for _, w := range present {
		total += w
	}
	if total == 0 {
		return map[string]float64{}
	}
	for k, w := range present {
		present[k] = w / total
	}
	return present
}

// riskDistribution reports each category's share of the total candidate
// risk, for the explainability section of the report.
func riskDistribution(candidates []schema.RiskFactor) map[string]float64 {
	out := map[string]float64{}
	var total float64
	for _, c := range candidates {
		out[c.Category] += c.RiskScore
		total += c.RiskScore
	}
	if total == 0 {
		return map[string]float64{}
	}
	for k, v := range out {
		out[k] = v / total
	}
	return out
}

// rankCandidates builds the TOPSIS decision matrix over the four criteria
// and annotates every candidate with its relative closeness and priority.
func rankCandidates(candidates []schema.RiskFactor, topsisWeights map[string]float64) []schema.RiskFactor {
	if len(candidates) == 0 {
		return nil
	}
	matrix := make([][]float64, len(candidates))
	for i, c := range candidates {
		matrix[i] = []float64{c.Severity, c.Urgency, c.Frequency, c.TrendScore}
	}
	weights := []float64{
		topsisWeights[schema.CriterionSeverity],
		topsisWeights[schema.CriterionUrgency],
		topsisWeights[schema.CriterionFrequency],
		topsisWeights[schema.CriterionTrend],
	}
	closeness := algo.TopsisCloseness(matrix, weights)
	for i := range candidates {
		candidates[i].Closeness = closeness[i]
		candidates[i].Priority = schema.PriorityForCloseness(closeness[i])
	}
	return candidates
}

// extractCandidates collects risk factor candidates from all three result
// sets: diseases above the risk floor, lifestyle sub-dimensions flagged
// medium or high, and worsening trends.
func extractCandidates(diseases map[string]schema.DiseaseRiskResult, lifestyle *schema.LifestyleRiskResult, alerts []schema.TrendAlert) []schema.RiskFactor {
	var out []schema.RiskFactor

	names := make([]string, 0, len(diseases))
	for name := range diseases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := diseases[name]
		if d.RiskScore <= diseaseCandidateFloor {
			continue
		}
		out = append(out, diseaseCandidate(d))
	}

	if lifestyle != nil {
		out = append(out, lifestyleCandidates(lifestyle)...)
	}

	for _, a := range alerts {
		if classifyMovement(a) != movementWorsening {
			continue
		}
		out = append(out, trendCandidate(a))
	}
	return out
}

// diseaseControllability encodes how responsive each disease is to
// intervention; lifestyle-driven conditions rank as more controllable.
var diseaseControllability = map[string]float64{
	schema.DiseaseHypertension: 0.80,
	schema.DiseaseDiabetes:     0.70,
	schema.DiseaseDyslipidemia: 0.75,
}

func diseaseCandidate(d schema.DiseaseRiskResult) schema.RiskFactor {
	severity := algo.Clamp01(d.RiskScore / 100)

	urgency := severity
	if d.ControlStatus == schema.ControlPoor {
		urgency += 0.15
	}
	if d.ComplianceRate != nil && *d.ComplianceRate < 0.5 {
		urgency += 0.10
	}
	urgency = algo.Clamp01(urgency)

	frequency := 0.5
	if d.ComplianceRate != nil {
		frequency = algo.Clamp01(1 - *d.ComplianceRate)
	}

	trendScore := 0.4
	switch d.Volatility {
	case schema.VolatilitySevere:
		trendScore = 0.8
	case schema.VolatilityModerate:
		trendScore = 0.6
	}

	controllability, ok := diseaseControllability[d.Disease]
	if !ok {
		controllability = 0.7
	}

	return schema.RiskFactor{
		Category:        schema.CategoryDisease,
		Name:            d.Disease,
		RiskScore:       d.RiskScore,
		Severity:        severity,
		Urgency:         urgency,
		Frequency:       frequency,
		TrendScore:      trendScore,
		Controllability: controllability,
		Evidence:        d.KeyFindings,
	}
}

// lifestyleCandidates emits one candidate per sub-dimension flagged medium
// or high, in a fixed order for determinism.
func lifestyleCandidates(l *schema.LifestyleRiskResult) []schema.RiskFactor {
	dims := []struct {
		name  string
		score schema.DimensionScore
	}{
		{schema.LifestyleSleep, l.Sleep},
		{schema.LifestyleExercise, l.Exercise},
		{schema.LifestyleDiet, l.Diet},
		{schema.LifestyleRegularity, l.Regularity},
	}
	var out []schema.RiskFactor
	for _, dim := range dims {
		if dim.score.RiskLevel == schema.RiskLow {
			continue
		}
		risk := 100 - dim.score.Score
		urgency := 0.4
		if dim.score.RiskLevel == schema.RiskHigh {
			urgency = 0.6
		}
		out = append(out, schema.RiskFactor{
			Category:        schema.CategoryLifestyle,
			Name:            dim.name,
			RiskScore:       risk,
			Severity:        algo.Clamp01(risk / 100),
			Urgency:         urgency,
			Frequency:       0.7, // daily habits recur by definition
			TrendScore:      0.5,
			Controllability: 0.9,
			Evidence:        []string{fmt.Sprintf("%s score %.0f (%s risk)", dim.name, dim.score.Score, dim.score.RiskLevel)},
		})
	}
	return out
}

func trendCandidate(a schema.TrendAlert) schema.RiskFactor {
	severity := algo.Clamp01(float64(a.AlertLevel.Rank()) / 3)

	urgency := 0.4
	switch a.AlertLevel {
	case schema.AlertCritical:
		urgency = 1.0
	case schema.AlertWarning:
		urgency = 0.7
	case schema.AlertAttention:
		urgency = 0.5
	}

	risk := min(100, trendWorseningBase+trendWorseningStep*alertDeviation(a))

	return schema.RiskFactor{
		Category:        schema.CategoryTrend,
		Name:            a.MetricName,
		RiskScore:       risk,
		Severity:        severity,
		Urgency:         urgency,
		Frequency:       algo.Clamp01(float64(a.ConsecutiveAbnormal) / 5),
		TrendScore:      0.9,
		Controllability: 0.6,
		Evidence:        []string{a.Message},
	}
}
