package results

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/annotation"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/metrics"
)

func createTestReport(t *testing.T) *Report {
	t.Helper()

	box := annotation.Polygon{{0, 0}, {1, 1}}
	other := annotation.Polygon{{2, 2}, {3, 3}}
	groundTruth := []annotation.Sample{
		{ID: "a", Record: annotation.Record{"circle": {box}}},
		{ID: "b", Record: annotation.Record{"triangle": {box}}},
	}
	prediction := []annotation.Sample{
		{ID: "a", Record: annotation.Record{"circle": {box, other}}},
		{ID: "b", Record: annotation.Record{"triangle": {box}}},
	}

	result, err := metrics.CalculatePrecision(groundTruth, prediction)
	require.NoError(t, err, "CalculatePrecision failed")

	return &Report{
		Config: RunConfig{
			OriginalPath:    "img",
			GroundTruthPath: "ground_truth",
			PredictionPath:  "prediction",
			OutputPath:      "output",
			NameFilter:      "marker:36",
		},
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Elapsed:     "1.5s",
		Result:      result,
		Composites:  []string{"0.jpg", "1.jpg"},
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	dir := t.TempDir()
	report := createTestReport(t)

	require.NoError(t, report.SaveJSON(dir), "SaveJSON failed")

	loaded, err := LoadJSON(dir)
	require.NoError(t, err, "LoadJSON failed")

	assert.Equal(t, report.Config, loaded.Config)
	assert.True(t, loaded.GeneratedAt.Equal(report.GeneratedAt), "Expected GeneratedAt %v, got %v", report.GeneratedAt, loaded.GeneratedAt)
	assert.Equal(t, report.Result.Precision, loaded.Result.Precision)
	assert.Equal(t, 2, loaded.Result.TruePositive, "Expected TP=2")
	assert.Equal(t, 1, loaded.Result.FalsePositive, "Expected FP=1")
	require.Len(t, loaded.Result.Samples, 2)
	assert.Equal(t, "b", loaded.Result.Samples[1].ID)
	assert.Len(t, loaded.Composites, 2)
}

func TestLoadJSONErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadJSON(dir)
	assert.Error(t, err, "Expected error for missing results file")

	require.NoError(t, os.WriteFile(filepath.Join(dir, JSONFile), []byte("{not json"), 0644))
	_, err = LoadJSON(dir)
	assert.Error(t, err, "Expected error for malformed results file")

	require.NoError(t, os.WriteFile(filepath.Join(dir, JSONFile), []byte(`{"elapsed": "1s"}`), 0644))
	_, err = LoadJSON(dir)
	assert.Error(t, err, "Expected error for results file without a result section")
}

func TestSaveYAML(t *testing.T) {
	dir := t.TempDir()
	report := createTestReport(t)

	require.NoError(t, report.SaveYAML(dir), "SaveYAML failed")

	data, err := os.ReadFile(filepath.Join(dir, YAMLFile))
	require.NoError(t, err, "Failed to read YAML file")

	for _, want := range []string{"original_path: img", "name_filter: marker:36", "true_positive: 2", "category: circle"} {
		assert.Contains(t, string(data), want)
	}

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded), "YAML output does not parse")
	assert.Contains(t, decoded, "result", "Expected a result section in the YAML output")
}

func TestSaveAndLoadParquet(t *testing.T) {
	dir := t.TempDir()
	report := createTestReport(t)

	require.NoError(t, report.SaveParquet(dir), "SaveParquet failed")

	rows, err := LoadParquet(dir)
	require.NoError(t, err, "LoadParquet failed")
	require.Len(t, rows, 2)

	expected := SampleRow{Index: 0, ID: "a", TruePositive: 1, FalsePositive: 1, GroundTruth: 1, Composite: "0.jpg"}
	assert.Equal(t, expected, rows[0])
	assert.Equal(t, "1.jpg", rows[1].Composite)
}

func TestLoadParquetMissing(t *testing.T) {
	_, err := LoadParquet(t.TempDir())
	assert.Error(t, err, "Expected error for missing parquet file")
}

func TestRowsWithoutComposites(t *testing.T) {
	report := createTestReport(t)
	report.Composites = nil

	rows := report.Rows()
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Empty(t, row.Composite)
	}

	empty := &Report{}
	assert.Nil(t, empty.Rows(), "Expected nil rows for a report without a result")
}
