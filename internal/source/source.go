// Package source implements the file-backed measurement source. The input
// file is a single JSON document exported from the measurement platform,
// holding the recent series, the historical series for baseline calculation
// and the optional diet self-report.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/songwei/vitalrisk/internal/contract"
	"github.com/songwei/vitalrisk/schema"
)

// inputDocument is the on-disk layout of a measurement export.
type inputDocument struct {
	UserID     string                `json:"user_id"`
	Metrics    []schema.MetricSeries `json:"metrics"`
	Historical []schema.MetricSeries `json:"historical"`
	DietReport *schema.DietReport    `json:"diet_report"`
}

// FileSource serves measurements from one JSON export file. The file is read
// once at construction; all Fetch methods then filter in memory.
type FileSource struct {
	doc inputDocument
}

var _ contract.MeasurementSource = &FileSource{} // Compile-time check

// NewFileSource reads and parses a measurement export file.
func NewFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read measurement file: %w", err)
	}
	var doc inputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse measurement file %s: %w", path, err)
	}
	return &FileSource{doc: doc}, nil
}

// FetchSeries returns the per-metric series restricted to [start, end].
func (s *FileSource) FetchSeries(_ context.Context, userID string, start, end time.Time) (map[string]schema.MetricSeries, error) {
	if err := s.checkUser(userID); err != nil {
		return nil, err
	}
	return filterSeries(s.doc.Metrics, start, end), nil
}

// FetchHistorical returns the baseline-window series ending at 'end'. When
// the export carries no separate historical block, the recent series double
// as history.
func (s *FileSource) FetchHistorical(_ context.Context, userID string, end time.Time, windowDays int) (map[string]schema.MetricSeries, error) {
	if err := s.checkUser(userID); err != nil {
		return nil, err
	}
	start := end.AddDate(0, 0, -windowDays)
	series := s.doc.Historical
	if len(series) == 0 {
		series = s.doc.Metrics
	}
	return filterSeries(series, start, end), nil
}

// FetchDietReport returns the diet self-report, or nil when none was filed.
func (s *FileSource) FetchDietReport(_ context.Context, userID string) (*schema.DietReport, error) {
	if err := s.checkUser(userID); err != nil {
		return nil, err
	}
	return s.doc.DietReport, nil
}

// checkUser guards against assessing the wrong export. An export without a
// user_id is accepted as-is for ad hoc files.
func (s *FileSource) checkUser(userID string) error {
	if s.doc.UserID != "" && userID != "" && s.doc.UserID != userID {
		return fmt.Errorf("measurement file belongs to user %s, not %s", s.doc.UserID, userID)
	}
	return nil
}

// filterSeries keeps samples inside [start, end], preserving sample order
// and dropping metrics left empty by the filter.
func filterSeries(series []schema.MetricSeries, start, end time.Time) map[string]schema.MetricSeries {
	out := make(map[string]schema.MetricSeries, len(series))
	for _, ms := range series {
		kept := make([]schema.MetricSample, 0, len(ms.Samples))
		for _, sample := range ms.Samples {
			if sample.Timestamp.Before(start) || sample.Timestamp.After(end) {
				continue
			}
			kept = append(kept, sample)
		}
		if len(kept) == 0 {
			continue
		}
		out[ms.Metric] = schema.MetricSeries{Metric: ms.Metric, Unit: ms.Unit, Samples: kept}
	}
	return out
}
