package core

import (
	"fmt"

	"github.com/songwei/vitalrisk/core/algo"
	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"
)

// Lifestyle component caps and thresholds.
const (
	sleepDurationCap    = 40.0
	sleepRegularityCap  = 30.0
	sleepFrequencyCap   = 30.0
	minSleepHours       = 6.0 // nights below this count as insufficient
	exerciseStepsCap    = 40.0
	exerciseActiveCap   = 35.0
	exerciseRegularCap  = 25.0
	activeDaySteps      = 6000.0
	neutralDimension    = 60.0
	lifestyleIssueScore = 60.0
)

// Smoothed lifestyle scoring curves, reusing the same piecewise-linear
// utility as the clinical band scoring.
var (
	// Sleep duration peaks at the 7-9h band and falls off linearly to the
	// 4h/12h bounds.
	sleepDurationCurve = []schema.CurvePoint{
		{X: 4, Y: 0}, {X: 7, Y: sleepDurationCap}, {X: 9, Y: sleepDurationCap}, {X: 12, Y: 0},
	}
	// Nightly duration spread (hours of standard deviation).
	sleepRegularityCurve = []schema.CurvePoint{
		{X: 0.0, Y: sleepRegularityCap}, {X: 0.5, Y: 28}, {X: 1.0, Y: 20}, {X: 1.5, Y: 12}, {X: 2.5, Y: 4}, {X: 3.5, Y: 0},
	}
	// Daily steps ramp from a sedentary threshold to the optimal 10k steps.
	stepsCurve = []schema.CurvePoint{
		{X: 2000, Y: 0}, {X: 10000, Y: exerciseStepsCap},
	}
	// Step-count coefficient of variation.
	exerciseRegularityCurve = []schema.CurvePoint{
		{X: 0.1, Y: exerciseRegularCap}, {X: 0.3, Y: 18}, {X: 0.5, Y: 10}, {X: 0.8, Y: 3}, {X: 1.2, Y: 0},
	}
)

// AssessLifestyle scores the sleep, exercise and diet dimensions and flags
// anomalous days. A missing diet report degrades that dimension to a neutral
// default instead of failing the assessment; the same applies to missing
// sleep or step series.
func AssessLifestyle(fs *schema.FeatureSet, diet *schema.DietReport, detector contract.AnomalyDetector, weights map[string]float64, anomalyDayLimit int) *schema.LifestyleRiskResult {
	if weights == nil {
		weights = schema.GetDefaultLifestyleWeights()
	}
	if anomalyDayLimit <= 0 {
		anomalyDayLimit = contract.DefaultAnomalyDayLimit
	}

	var issues []string

	sleepScore, sleepReg, sleepOK := scoreSleep(fs.Metric(schema.MetricSleepHours))
	exScore, exReg, exOK := scoreExercise(fs.Metric(schema.MetricSteps))
	dietScore := scoreDiet(diet)

	regScore := regularityScore(sleepReg, sleepOK, exReg, exOK)

	overall := weights[schema.LifestyleSleep]*sleepScore +
		weights[schema.LifestyleExercise]*exScore +
		weights[schema.LifestyleDiet]*dietScore +
		weights[schema.LifestyleRegularity]*regScore
	overall = algo.ClampScore(overall / weightSum(weights))

	if sleepOK && sleepScore < lifestyleIssueScore {
		issues = append(issues, "sleep quality is below target; irregular or insufficient sleep detected")
	}
	if exOK && exScore < lifestyleIssueScore {
		issues = append(issues, "activity level is below target; daily steps fall short of the recommended amount")
	}
	if diet != nil && dietScore < lifestyleIssueScore {
		issues = append(issues, "diet self-report indicates excessive salt, oil or sugar intake")
	}

	abnormalDays := detectAbnormalDays(fs, detector)
	if len(abnormalDays) > anomalyDayLimit {
		issues = append(issues, fmt.Sprintf("%d days in this period had statistically unusual readings", len(abnormalDays)))
	}

	return &schema.LifestyleRiskResult{
		OverallScore: overall,
		RiskLevel:    lifestyleRiskLevel(overall),
		Sleep:        schema.DimensionScore{Score: sleepScore, RiskLevel: lifestyleRiskLevel(sleepScore)},
		Exercise:     schema.DimensionScore{Score: exScore, RiskLevel: lifestyleRiskLevel(exScore)},
		Diet:         schema.DimensionScore{Score: dietScore, RiskLevel: lifestyleRiskLevel(dietScore)},
		Regularity:   schema.DimensionScore{Score: regScore, RiskLevel: lifestyleRiskLevel(regScore)},
		KeyIssues:    issues,
		AbnormalDays: abnormalDays,
	}
}

// lifestyleRiskLevel is the fixed 3-band partition for lifestyle scores.
func lifestyleRiskLevel(score float64) schema.RiskLevel {
	switch {
	case score >= 70:
		return schema.RiskLow
	case score >= 50:
		return schema.RiskMedium
	default:
		return schema.RiskHigh
	}
}

// scoreSleep composes the sleep dimension: duration peak, nightly
// regularity, and the frequency of insufficient nights. The second return is
// the regularity component for the shared regularity dimension.
func scoreSleep(mf *schema.MetricFeatures) (float64, float64, bool) {
	if !mf.Usable() {
		return neutralDimension, 0, false
	}
	duration := algo.Interp(sleepDurationCurve, *mf.Mean)
	regularity := algo.Interp(sleepRegularityCurve, *mf.Std)

	short := 0
	for _, v := range mf.Clean {
		if v < minSleepHours {
			short++
		}
	}
	shortFrac := float64(short) / float64(len(mf.Clean))
	frequency := (1 - shortFrac) * sleepFrequencyCap

	return algo.ClampScore(duration + regularity + frequency), regularity, true
}

// scoreExercise composes the exercise dimension: mean daily steps, the ratio
// of active days, and step-count regularity.
func scoreExercise(mf *schema.MetricFeatures) (float64, float64, bool) {
	if !mf.Usable() {
		return neutralDimension, 0, false
	}
	steps := algo.Interp(stepsCurve, *mf.Mean)

	active := 0
	for _, v := range mf.Clean {
		if v >= activeDaySteps {
			active++
		}
	}
	activeRatio := float64(active) / float64(len(mf.Clean))
	activeComponent := activeRatio * exerciseActiveCap

	regularity := 0.0
	if mf.CV != nil {
		regularity = algo.Interp(exerciseRegularityCurve, *mf.CV)
	}

	return algo.ClampScore(steps + activeComponent + regularity), regularity, true
}

// scoreDiet maps the categorical self-report through the fixed point table.
// A missing report yields the neutral default score.
func scoreDiet(diet *schema.DietReport) float64 {
	if diet == nil {
		return schema.NeutralDietScore
	}
	score := schema.DietPoints("salt_intake", diet.SaltIntake) +
		schema.DietPoints("oil_intake", diet.OilIntake) +
		schema.DietPoints("sugar_intake", diet.SugarIntake) +
		schema.DietPoints("vegetable_intake", diet.VegetableIntake)
	return algo.ClampScore(score)
}

// regularityScore normalizes the sleep and exercise regularity components to
// a shared 0-100 dimension.
func regularityScore(sleepReg float64, sleepOK bool, exReg float64, exOK bool) float64 {
	switch {
	case sleepOK && exOK:
		return (sleepReg/sleepRegularityCap*100 + exReg/exerciseRegularCap*100) / 2
	case sleepOK:
		return sleepReg / sleepRegularityCap * 100
	case exOK:
		return exReg / exerciseRegularCap * 100
	default:
		return neutralDimension
	}
}

func weightSum(weights map[string]float64) float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return 1
	}
	return sum
}
