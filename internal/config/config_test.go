package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "img", cfg.OriginalPath)
	assert.Equal(t, "ground_truth", cfg.GroundTruthPath)
	assert.Equal(t, "prediction", cfg.PredictionPath)
	assert.Equal(t, "blue", cfg.GroundTruthColor)
	assert.Equal(t, 3, cfg.GroundTruthWidth)
	assert.Equal(t, "yellow", cfg.PredictionColor)
	assert.Equal(t, 2, cfg.PredictionWidth)
	assert.NoError(t, cfg.Validate(), "Expected defaults to validate")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeneye.yaml")
	content := `original_path: /data/img
ground_truth_path: /data/gt
prediction_path: /data/pred
output_path: /data/out
name_filter: "length:8"
prediction_color: "#ff00ff"
concurrency: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "failed to write config")

	cfg, err := Load(path)
	require.NoError(t, err, "Load failed")

	assert.Equal(t, "/data/img", cfg.OriginalPath)
	assert.Equal(t, "/data/out", cfg.OutputPath)
	assert.Equal(t, "length:8", cfg.NameFilter)
	assert.Equal(t, 4, cfg.Concurrency)
	// Keys missing from the file keep their defaults
	assert.Equal(t, "blue", cfg.GroundTruthColor)
	assert.Equal(t, 2, cfg.PredictionWidth)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeneye.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_path: from-file\n"), 0644), "failed to write config")
	t.Setenv("GREENEYE_OUTPUT_PATH", "from-env")
	t.Setenv("GREENEYE_CONCURRENCY", "3")

	cfg, err := Load(path)
	require.NoError(t, err, "Load failed")
	assert.Equal(t, "from-env", cfg.OutputPath, "Expected env to win")
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "Expected error for missing config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("concurrency: [1, 2"), 0644), "failed to write config")
	_, err = Load(path)
	assert.Error(t, err, "Expected error for malformed config file")

	t.Setenv("GREENEYE_CONCURRENCY", "many")
	_, err = Load("")
	assert.Error(t, err, "Expected error for non-numeric GREENEYE_CONCURRENCY")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.OriginalPath = ""
	cfg.GroundTruthWidth = 0
	cfg.PredictionColor = "not-a-color"
	cfg.JPEGQuality = 101
	cfg.Concurrency = 0
	cfg.NameFilter = "glob:*"

	err := cfg.Validate()
	require.Error(t, err, "Expected validation errors")

	for _, want := range []string{"original_path", "ground_truth_width", "prediction_color", "jpeg_quality", "concurrency", "glob"} {
		assert.ErrorContains(t, err, want)
	}
}
