package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"
)

// ExecuteAssessment runs the full pipeline for one user: fetch, feature
// engineering, the three disease assessors, lifestyle, trend analysis and
// fusion. The result is persisted through the store when one is supplied.
// Fetch and persistence failures abort the run; missing data inside the run
// only degrades the affected dimension.
func ExecuteAssessment(ctx context.Context, cfg *contract.Config, source contract.MeasurementSource, store contract.AssessmentStore) (*schema.AssessmentResult, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -cfg.AssessmentDays)

	seriesByMetric, err := source.FetchSeries(ctx, cfg.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch measurements: %w", err)
	}
	historical, err := source.FetchHistorical(ctx, cfg.UserID, end, cfg.BaselineWindowDays)
	if err != nil {
		return nil, fmt.Errorf("fetch historical measurements: %w", err)
	}
	diet, err := source.FetchDietReport(ctx, cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch diet report: %w", err)
	}
	if err := contract.ValidateDietReport(diet); err != nil {
		return nil, err
	}

	fs := BuildFeatures(cfg.UserID, seriesByMetric, start, end, cfg.OutlierMethod)
	baseline := CalculateBaseline(cfg.UserID, historical, cfg.BaselineWindowDays, cfg.OutlierMethod)

	diseases := make(map[string]schema.DiseaseRiskResult)
	if r := AssessHypertension(fs, baseline); r != nil {
		diseases[r.Disease] = *r
	}
	if r := AssessDiabetes(fs, baseline); r != nil {
		diseases[r.Disease] = *r
	}
	if r := AssessDyslipidemia(fs, baseline); r != nil {
		diseases[r.Disease] = *r
	}

	var lifestyle *schema.LifestyleRiskResult
	if hasLifestyleInput(fs, diet) {
		lifestyle = AssessLifestyle(fs, diet, ZScoreDetector{}, cfg.LifestyleWeights, cfg.AnomalyDayLimit)
	}

	alerts := AnalyzeAllMetrics(analyzableSeries(seriesByMetric), cfg.TrendThresholds)

	result := FuseRisks(diseases, lifestyle, alerts, cfg.UserID, uuid.NewString(), &FusionOptions{
		DiseaseWeights:     cfg.DiseaseWeights,
		DimensionWeights:   cfg.DimensionWeights,
		TopsisWeights:      cfg.TopsisWeights,
		TopFactors:         cfg.TopFactors,
		MaxRecommendations: cfg.MaxRecommendations,
	})
	result.GeneratedAt = end

	if store != nil {
		if err := store.SaveResult(result); err != nil {
			return nil, fmt.Errorf("persist assessment: %w", err)
		}
	}
	return result, nil
}

// hasLifestyleInput reports whether the lifestyle dimension has anything to
// score. Without sleep, steps or a diet report the dimension is dropped from
// fusion instead of contributing a fabricated neutral score.
func hasLifestyleInput(fs *schema.FeatureSet, diet *schema.DietReport) bool {
	if diet != nil {
		return true
	}
	return fs.Metric(schema.MetricSleepHours).Usable() || fs.Metric(schema.MetricSteps).Usable()
}

// analyzableSeries filters out empty series so the trend stage does not emit
// placeholder alerts for metrics the user never measured.
func analyzableSeries(seriesByMetric map[string]schema.MetricSeries) map[string]schema.MetricSeries {
	out := make(map[string]schema.MetricSeries, len(seriesByMetric))
	for name, series := range seriesByMetric {
		if len(series.Samples) > 0 {
			out[name] = series
		}
	}
	return out
}
