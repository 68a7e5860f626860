package source

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/songwei/vitalrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sourceBase = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

// writeExport marshals a document to a temp file and returns its path.
func writeExport(t *testing.T, doc inputDocument) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func dailySamples(start time.Time, values ...float64) []schema.MetricSample {
	out := make([]schema.MetricSample, len(values))
	for i, v := range values {
		out[i] = schema.MetricSample{Timestamp: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

// TestFileSourceFetchSeries filters samples to the assessment window.
func TestFileSourceFetchSeries(t *testing.T) {
	path := writeExport(t, inputDocument{
		UserID: "user-1",
		Metrics: []schema.MetricSeries{
			{
				Metric:  schema.MetricSystolic,
				Unit:    "mmHg",
				Samples: dailySamples(sourceBase, 120, 122, 118, 121, 125, 123),
			},
		},
	})

	s, err := NewFileSource(path)
	require.NoError(t, err)

	// Window covering only the middle four days.
	start := sourceBase.AddDate(0, 0, 1)
	end := sourceBase.AddDate(0, 0, 4)
	series, err := s.FetchSeries(context.Background(), "user-1", start, end)
	require.NoError(t, err)

	ms, ok := series[schema.MetricSystolic]
	require.True(t, ok)
	assert.Equal(t, []float64{122, 118, 121, 125}, ms.Values())
	assert.Equal(t, "mmHg", ms.Unit)
}

// TestFileSourceFetchSeriesEmptyWindow drops metrics emptied by the filter.
func TestFileSourceFetchSeriesEmptyWindow(t *testing.T) {
	path := writeExport(t, inputDocument{
		Metrics: []schema.MetricSeries{
			{Metric: schema.MetricSystolic, Samples: dailySamples(sourceBase, 120, 122)},
		},
	})

	s, err := NewFileSource(path)
	require.NoError(t, err)

	series, err := s.FetchSeries(context.Background(), "user-1", sourceBase.AddDate(0, 0, 30), sourceBase.AddDate(0, 0, 60))
	require.NoError(t, err)
	assert.Empty(t, series)
}

// TestFileSourceFetchHistorical falls back to the recent series when the
// export carries no historical block.
func TestFileSourceFetchHistorical(t *testing.T) {
	withHistory := writeExport(t, inputDocument{
		Metrics: []schema.MetricSeries{
			{Metric: schema.MetricSystolic, Samples: dailySamples(sourceBase, 150, 152)},
		},
		Historical: []schema.MetricSeries{
			{Metric: schema.MetricSystolic, Samples: dailySamples(sourceBase.AddDate(0, 0, -60), 120, 122, 118)},
		},
	})

	s, err := NewFileSource(withHistory)
	require.NoError(t, err)

	historical, err := s.FetchHistorical(context.Background(), "", sourceBase.AddDate(0, 0, 5), 90)
	require.NoError(t, err)
	require.Contains(t, historical, schema.MetricSystolic)
	assert.Equal(t, []float64{120, 122, 118}, historical[schema.MetricSystolic].Values())

	noHistory := writeExport(t, inputDocument{
		Metrics: []schema.MetricSeries{
			{Metric: schema.MetricSystolic, Samples: dailySamples(sourceBase, 150, 152)},
		},
	})
	s, err = NewFileSource(noHistory)
	require.NoError(t, err)

	historical, err = s.FetchHistorical(context.Background(), "", sourceBase.AddDate(0, 0, 5), 90)
	require.NoError(t, err)
	assert.Equal(t, []float64{150, 152}, historical[schema.MetricSystolic].Values())
}

// TestFileSourceUserMismatch refuses to serve another user's export.
func TestFileSourceUserMismatch(t *testing.T) {
	path := writeExport(t, inputDocument{UserID: "user-1"})

	s, err := NewFileSource(path)
	require.NoError(t, err)

	_, err = s.FetchSeries(context.Background(), "user-2", sourceBase, sourceBase.AddDate(0, 0, 30))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "belongs to user user-1")

	// An empty requested user accepts any export.
	_, err = s.FetchSeries(context.Background(), "", sourceBase, sourceBase.AddDate(0, 0, 30))
	assert.NoError(t, err)
}

// TestFileSourceDietReport returns the optional self-report untouched.
func TestFileSourceDietReport(t *testing.T) {
	path := writeExport(t, inputDocument{
		DietReport: &schema.DietReport{SaltIntake: schema.IntakeHigh},
	})

	s, err := NewFileSource(path)
	require.NoError(t, err)

	diet, err := s.FetchDietReport(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, diet)
	assert.Equal(t, schema.IntakeHigh, diet.SaltIntake)
}

// TestNewFileSourceErrors covers a missing file and malformed JSON.
func TestNewFileSourceErrors(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read measurement file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = NewFileSource(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse measurement file")
}
