package schema

import "maps"

// The weight tables below are AHP-derived constants carried over from the
// production tuning of the platform. They are configuration defaults; the
// config file may override any entry, and the fusion engine renormalizes
// over the dimensions actually present.

// Dimension keys for the top-level fusion weights.
const (
	DimensionDisease   = "disease"
	DimensionLifestyle = "lifestyle"
	DimensionTrend     = "trend"
)

// TOPSIS criteria keys.
const (
	CriterionSeverity  = "severity"
	CriterionUrgency   = "urgency"
	CriterionFrequency = "frequency"
	CriterionTrend     = "trend"
)

// Lifestyle sub-dimension keys.
const (
	LifestyleSleep      = "sleep"
	LifestyleExercise   = "exercise"
	LifestyleDiet       = "diet"
	LifestyleRegularity = "regularity"
)

var defaultDiseaseWeights = map[string]float64{
	DiseaseHypertension: 0.40,
	DiseaseDiabetes:     0.35,
	DiseaseDyslipidemia: 0.25,
}

var defaultDimensionWeights = map[string]float64{
	DimensionDisease:   0.45,
	DimensionLifestyle: 0.30,
	DimensionTrend:     0.25,
}

var defaultTopsisWeights = map[string]float64{
	CriterionSeverity:  0.35,
	CriterionUrgency:   0.30,
	CriterionFrequency: 0.20,
	CriterionTrend:     0.15,
}

var defaultLifestyleWeights = map[string]float64{
	LifestyleSleep:      0.35,
	LifestyleExercise:   0.35,
	LifestyleDiet:       0.20,
	LifestyleRegularity: 0.10,
}

// GetDefaultDiseaseWeights returns a copy of the per-disease AHP weights.
func GetDefaultDiseaseWeights() map[string]float64 {
	out := make(map[string]float64, len(defaultDiseaseWeights))
	maps.Copy(out, defaultDiseaseWeights)
	return out
}

// GetDefaultDimensionWeights returns a copy of the top-level fusion weights.
func GetDefaultDimensionWeights() map[string]float64 {
	out := make(map[string]float64, len(defaultDimensionWeights))
	maps.Copy(out, defaultDimensionWeights)
	return out
}

// GetDefaultTopsisWeights returns a copy of the TOPSIS criteria weights.
func GetDefaultTopsisWeights() map[string]float64 {
	out := make(map[string]float64, len(defaultTopsisWeights))
	maps.Copy(out, defaultTopsisWeights)
	return out
}

// GetDefaultLifestyleWeights returns a copy of the lifestyle sub-dimension weights.
func GetDefaultLifestyleWeights() map[string]float64 {
	out := make(map[string]float64, len(defaultLifestyleWeights))
	maps.Copy(out, defaultLifestyleWeights)
	return out
}

// NeutralDietScore is used when no diet self-report is supplied: the diet
// dimension degrades to a medium-risk default instead of failing the run.
const NeutralDietScore = 60.0

// dietPointTable maps each self-report key and level to its point value.
// The four keys sum to 100 at their best levels.
var dietPointTable = map[string]map[IntakeLevel]float64{
	"salt_intake":      {IntakeLow: 25, IntakeMedium: 15, IntakeHigh: 5},
	"oil_intake":       {IntakeLow: 25, IntakeMedium: 15, IntakeHigh: 5},
	"sugar_intake":     {IntakeLow: 25, IntakeMedium: 15, IntakeHigh: 5},
	"vegetable_intake": {IntakeLow: 5, IntakeMedium: 15, IntakeHigh: 25},
}

// DietPoints returns the point value for one self-report entry. Unknown keys
// or levels fall back to the medium value so a sloppy report never breaks
// the assessment.
func DietPoints(key string, level IntakeLevel) float64 {
	levels, ok := dietPointTable[key]
	if !ok {
		return 0
	}
	if pts, ok := levels[level]; ok {
		return pts
	}
	return levels[IntakeMedium]
}
