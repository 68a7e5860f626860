package algo

import (
	"sort"

	"github.com/songwei/vitalrisk/schema"
)

// RankFactors sorts risk factors by TOPSIS closeness in descending order and
// returns the top 'limit' factors. Ties break on risk score, then name, so
// identical inputs always rank identically.
func RankFactors(factors []schema.RiskFactor, limit int) []schema.RiskFactor {
	sort.SliceStable(factors, func(i, j int) bool {
		if factors[i].Closeness != factors[j].Closeness {
			return factors[i].Closeness > factors[j].Closeness
		}
		if factors[i].RiskScore != factors[j].RiskScore {
			return factors[i].RiskScore > factors[j].RiskScore
		}
		return factors[i].Name < factors[j].Name
	})
	if limit > 0 && len(factors) > limit {
		return factors[:limit]
	}
	return factors
}

// SortAlerts orders trend alerts most-severe-first. Ties break on metric
// name for deterministic output.
func SortAlerts(alerts []schema.TrendAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].AlertLevel.Rank(), alerts[j].AlertLevel.Rank()
		if ri != rj {
			return ri > rj
		}
		return alerts[i].MetricName < alerts[j].MetricName
	})
}
