package core

import (
	"fmt"

	"github.com/songwei/vitalrisk/schema"
)

const genericRecommendation = "maintain current habits and keep measuring regularly"

// urgencyNotice is prepended when the fused health level calls for action.
var urgencyNotice = map[schema.HealthLevel]string{
	schema.HealthAttentionNeeded: "several indicators need attention; schedule a checkup within the next few weeks",
	schema.HealthHighRisk:        "overall risk is high; consult a physician as soon as possible",
}

// recommendationTable maps category/name pairs to fixed advice strings so
// identical assessments always produce identical recommendations.
var recommendationTable = map[string][]string{
	schema.CategoryDisease + "/" + schema.DiseaseHypertension: {
		"limit daily salt intake to under 5g and avoid pickled foods",
		"take blood pressure medication as prescribed and measure at the same time each day",
	},
	schema.CategoryDisease + "/" + schema.DiseaseDiabetes: {
		"spread carbohydrate intake across the day and avoid sugary drinks",
		"check glucose before breakfast and two hours after the main meal",
	},
	schema.CategoryDisease + "/" + schema.DiseaseDyslipidemia: {
		"cut back on fried foods and animal fat; prefer fish and vegetable oil",
		"repeat the lipid panel in three months to confirm the trend",
	},
	schema.CategoryLifestyle + "/" + schema.LifestyleSleep: {
		"keep a fixed bedtime and aim for 7 to 9 hours of sleep",
	},
	schema.CategoryLifestyle + "/" + schema.LifestyleExercise: {
		"build up to 6000 or more steps per day with a daily walk",
	},
	schema.CategoryLifestyle + "/" + schema.LifestyleDiet: {
		"reduce salt, oil and sugar; add a serving of vegetables to each meal",
	},
	schema.CategoryLifestyle + "/" + schema.LifestyleRegularity: {
		"keep daily routines consistent; irregular days drive the volatility seen in the readings",
	},
}

// trendRecommendation covers the trend category, where the metric name is
// open-ended.
func trendRecommendation(metricName string) string {
	return fmt.Sprintf("monitor %s closely over the next two weeks and record every reading", schema.DisplayName(metricName))
}

// buildRecommendations turns the ranked factors into a bounded, deterministic
// advice list. The urgency notice, when present, counts against the cap.
func buildRecommendations(factors []schema.RiskFactor, level schema.HealthLevel, limit int) []string {
	out := make([]string, 0, limit)
	if notice, ok := urgencyNotice[level]; ok {
		out = append(out, notice)
	}

	seen := make(map[string]struct{})
	for _, f := range factors {
		if len(out) >= limit {
			break
		}
		var advice []string
		if f.Category == schema.CategoryTrend {
			advice = []string{trendRecommendation(f.Name)}
		} else {
			advice = recommendationTable[f.Category+"/"+f.Name]
		}
		for _, a := range advice {
			if len(out) >= limit {
				break
			}
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}

	if len(out) == 0 {
		out = append(out, genericRecommendation)
	}
	return out
}
