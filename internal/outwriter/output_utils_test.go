package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteJSON indents consistently.
func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"score": 57}))
	assert.Equal(t, "{\n  \"score\": 57\n}\n", buf.String())
}

// TestCreateFormatters tests the precision and nil handling closures.
func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtOptFloat := createFormatters(1)
	assert.Equal(t, "57.0", fmtFloat(57.01))
	assert.Equal(t, "-", fmtOptFloat(nil))
	v := 41.35
	assert.Equal(t, "41.3", fmtOptFloat(&v))

	fmtFloat2, _ := createFormatters(2)
	assert.Equal(t, "57.01", fmtFloat2(57.012))
}

// TestFormatWeights renders weights in the given key order, skipping zeros.
func TestFormatWeights(t *testing.T) {
	weights := map[string]float64{"disease": 0.45, "lifestyle": 0.30, "trend": 0}
	out := formatWeights(weights, []string{"disease", "lifestyle", "trend"})
	assert.Equal(t, "0.45*disease+0.30*lifestyle", out)

	assert.Equal(t, "", formatWeights(nil, []string{"disease"}))
}

// TestTruncate shortens long cells and leaves short ones alone.
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long ...", truncate("long message here", 8))
	// Degenerate widths pass through untouched.
	assert.Equal(t, "abcdef", truncate("abcdef", 3))
}

// TestWriteCSVWithHeader writes the header before any row.
func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"metric", "value"}, func(w *csv.Writer) error {
		return w.Write([]string{"systolic_bp", "120.5"})
	})
	require.NoError(t, err)
	assert.Equal(t, "metric,value\nsystolic_bp,120.5\n", buf.String())
}
